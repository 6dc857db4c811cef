// Package book assembles descriptor elements into a Book and resolves the
// files it references against the include directories.
//
// A Book goes through two phases. FromElements assigns every manifest entry a
// provisional id and archive path derived from the path as written; Normalize
// then rewrites both once it knows which include directory each file lives in.
package book

import (
	"net/url"
	"time"

	"golang.org/x/net/html"

	"github.com/blackwell-systems/gen-epub-book/internal/element"
)

// SourceKind says where the bytes of a Source come from.
type SourceKind int

const (
	FileSource SourceKind = iota
	NetworkSource
	RawSource
)

// Source locates the payload of a manifest entry or of the description.
type Source struct {
	Kind SourceKind
	Path string
	URL  *url.URL
	Raw  string
}

func File(path string) Source { return Source{Kind: FileSource, Path: path} }
func Network(u *url.URL) Source { return Source{Kind: NetworkSource, URL: u} }
func Raw(content string) Source { return Source{Kind: RawSource, Raw: content} }
func (s Source) IsFile() bool { return s.Kind == FileSource }
func (s Source) IsNetwork() bool { return s.Kind == NetworkSource }
func (s Source) IsRaw() bool { return s.Kind == RawSource }

func (s Source) String() string {
	switch s.Kind {
	case FileSource:
		return "file " + s.Path
	case NetworkSource:
		return "url " + s.URL.String()
	default:
		return "inline " + truncate(s.Raw, 40)
	}
}

// ManifestEntry is one resource declared in the package manifest.
type ManifestEntry struct {
	ID          string
	ArchivePath string
	Source      Source
	// Origin is the element that produced the entry; it names the entry in
	// errors and log output.
	Origin element.Kind
	// Wraps is set on generated pages that display an image; Source.Raw is
	// the markup pointing at Wraps.ArchivePath.
	Wraps *ManifestEntry
}

// Book is a validated, ordered collection of everything that goes into the
// package.
type Book struct {
	Name     string
	Author   string
	Date     time.Time
	Language string

	// Cover is the generated page showing the cover image, which itself is
	// Cover.Wraps and also listed in NonContent.
	Cover       *ManifestEntry
	Description *Source

	// Content is the reading order.
	Content []*ManifestEntry
	// NonContent holds resources referenced by content: images, stylesheets,
	// fonts.
	NonContent []*ManifestEntry

	UUID string
}

// CoverImage returns the manifest entry of the cover image, if any.
func (b *Book) CoverImage() *ManifestEntry {
	if b.Cover == nil {
		return nil
	}
	return b.Cover.Wraps
}

// Entries returns every manifest entry in manifest order: cover page, content,
// then non-content. Entries may repeat ids or archive paths.
func (b *Book) Entries() []*ManifestEntry {
	all := make([]*ManifestEntry, 0, 1+len(b.Content)+len(b.NonContent))
	if b.Cover != nil {
		all = append(all, b.Cover)
	}
	all = append(all, b.Content...)
	return append(all, b.NonContent...)
}

// Spine returns the pages in reading order: the cover page, if any, followed
// by the content.
func (b *Book) Spine() []*ManifestEntry {
	if b.Cover == nil {
		return b.Content
	}
	return append([]*ManifestEntry{b.Cover}, b.Content...)
}

// ImageMarkup is the body of a generated page that shows the image at src.
func ImageMarkup(src string) string {
	src = html.EscapeString(src)
	return `<center><img src="` + src + `" alt="` + src + `"></img></center>`
}

func wrapImage(id, archivePath string, origin element.Kind, image *ManifestEntry) *ManifestEntry {
	return &ManifestEntry{
		ID:          id,
		ArchivePath: archivePath,
		Source:      Raw(ImageMarkup(image.ArchivePath)),
		Origin:      origin,
		Wraps:       image,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
