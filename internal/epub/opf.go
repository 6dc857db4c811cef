package epub

import (
	"encoding/xml"
	"time"

	"github.com/blackwell-systems/gen-epub-book/internal/book"
)

type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Xmlns    string      `xml:"xmlns,attr"`
	UniqueID string      `xml:"unique-identifier,attr"`
	Version  string      `xml:"version,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
	Guide    opfGuide    `xml:"guide"`
}

type opfMetadata struct {
	XmlnsDC     string           `xml:"xmlns:dc,attr"`
	XmlnsOPF    string           `xml:"xmlns:opf,attr"`
	Title       string           `xml:"dc:title"`
	Creator     opfCreator       `xml:"dc:creator"`
	Identifier  opfIdentifier    `xml:"dc:identifier"`
	Date        string           `xml:"dc:date"`
	Language    string           `xml:"dc:language"`
	Cover       *opfMeta         `xml:"meta,omitempty"`
	Description *opfInlineMarkup `xml:"dc:description,omitempty"`
}

type opfCreator struct {
	Role string `xml:"opf:role,attr"`
	Name string `xml:",chardata"`
}

type opfIdentifier struct {
	ID     string `xml:"id,attr"`
	Scheme string `xml:"opf:scheme,attr"`
	Value  string `xml:",chardata"`
}

type opfMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

// opfInlineMarkup is embedded verbatim.
type opfInlineMarkup struct {
	Inner string `xml:",innerxml"`
}

type opfManifest struct {
	Items []opfItem `xml:"item"`
}

type opfItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

type opfSpine struct {
	Toc      string       `xml:"toc,attr"`
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef string `xml:"idref,attr"`
}

type opfGuide struct {
	References []opfReference `xml:"reference"`
}

type opfReference struct {
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
	Href  string `xml:"href,attr"`
}

const ncxID = "toc"

// buildOPF assembles the package document. description is the already
// fetched description markup, if the book has one.
func buildOPF(b *book.Book, description *string, strict bool) (*opfPackage, error) {
	pkg := &opfPackage{
		Xmlns:    "http://www.idpf.org/2007/opf",
		UniqueID: "uuid",
		Version:  "2.0",
		Metadata: opfMetadata{
			XmlnsDC:    "http://purl.org/dc/elements/1.1/",
			XmlnsOPF:   "http://www.idpf.org/2007/opf",
			Title:      b.Name,
			Creator:    opfCreator{Role: "aut", Name: b.Author},
			Identifier: opfIdentifier{ID: "uuid", Scheme: "uuid", Value: b.UUID},
			Date:       b.Date.Format(time.RFC3339),
			Language:   b.Language,
		},
		Spine: opfSpine{Toc: ncxID},
	}
	if img := b.CoverImage(); img != nil {
		pkg.Metadata.Cover = &opfMeta{Name: "cover", Content: img.ID}
	}
	if description != nil {
		pkg.Metadata.Description = &opfInlineMarkup{Inner: *description}
	}

	pkg.Manifest.Items = append(pkg.Manifest.Items, opfItem{ID: ncxID, Href: pathNCX, MediaType: mediaNCX})
	ids := map[string]bool{ncxID: true}
	for _, e := range b.Entries() {
		if ids[e.ID] {
			continue
		}
		ids[e.ID] = true

		mt, err := MediaType(e.ArchivePath, strict)
		if err != nil {
			return nil, err
		}
		pkg.Manifest.Items = append(pkg.Manifest.Items, opfItem{ID: e.ID, Href: e.ArchivePath, MediaType: mt})
	}

	inSpine := make(map[string]bool)
	for _, e := range b.Spine() {
		if inSpine[e.ID] {
			continue
		}
		inSpine[e.ID] = true
		pkg.Spine.ItemRefs = append(pkg.Spine.ItemRefs, opfItemRef{IDRef: e.ID})
	}

	if b.Cover != nil {
		pkg.Guide.References = append(pkg.Guide.References, opfReference{Type: "cover", Title: "Cover", Href: b.Cover.ArchivePath})
	}
	pkg.Guide.References = append(pkg.Guide.References, opfReference{Type: "toc", Title: "Table of Contents", Href: pathNCX})
	return pkg, nil
}
