package epub

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/blackwell-systems/gen-epub-book/internal/book"
	"github.com/blackwell-systems/gen-epub-book/internal/bookerr"
)

type ncxDocument struct {
	XMLName  xml.Name  `xml:"ncx"`
	Xmlns    string    `xml:"xmlns,attr"`
	Version  string    `xml:"version,attr"`
	Head     ncxHead   `xml:"head"`
	DocTitle ncxText   `xml:"docTitle"`
	NavMap   ncxNavMap `xml:"navMap"`
}

type ncxHead struct {
	Meta []ncxMeta `xml:"meta"`
}

type ncxMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type ncxText struct {
	Text string `xml:"text"`
}

type ncxNavMap struct {
	NavPoints []ncxNavPoint `xml:"navPoint"`
}

type ncxNavPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     ncxText    `xml:"navLabel"`
	Content   ncxContent `xml:"content"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

// buildNCX scans content pages for title markers. File pages are always
// scanned; inline pages only when stringTOC is set. Pages without a marker
// are left out of the navigation map.
func buildNCX(b *book.Book, stringTOC bool) (*ncxDocument, error) {
	doc := &ncxDocument{
		Xmlns:   "http://www.daisy.org/z3986/2005/ncx/",
		Version: "2005-1",
		Head: ncxHead{Meta: []ncxMeta{
			{Name: "dtb:uid", Content: b.UUID},
			{Name: "dtb:depth", Content: "1"},
			{Name: "dtb:totalPageCount", Content: "0"},
			{Name: "dtb:maxPageNumber", Content: "0"},
		}},
		DocTitle: ncxText{Text: b.Name},
	}

	for _, e := range b.Content {
		title, ok, err := pageTitle(e, stringTOC)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		doc.NavMap.NavPoints = append(doc.NavMap.NavPoints, ncxNavPoint{
			ID:        uuid.NewString(),
			PlayOrder: len(doc.NavMap.NavPoints) + 1,
			Label:     ncxText{Text: title},
			Content:   ncxContent{Src: e.ArchivePath},
		})
	}
	return doc, nil
}

func pageTitle(e *book.ManifestEntry, stringTOC bool) (string, bool, error) {
	switch {
	case e.Source.IsFile():
		f, err := os.Open(e.Source.Path)
		if err != nil {
			return "", false, bookerr.NewIO("content file", "open", e.Source.Path, err)
		}
		defer f.Close()
		title, ok := FindTitle(f)
		return title, ok, nil
	case e.Source.IsRaw() && stringTOC:
		title, ok := FindTitle(strings.NewReader(e.Source.Raw))
		return title, ok, nil
	default:
		return "", false, nil
	}
}
