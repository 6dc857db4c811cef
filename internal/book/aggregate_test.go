package book_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/blackwell-systems/gen-epub-book/internal/book"
	"github.com/blackwell-systems/gen-epub-book/internal/bookerr"
	"github.com/blackwell-systems/gen-epub-book/internal/element"
)

var testDate = time.Date(2017, 2, 8, 15, 30, 18, 0, time.FixedZone("", 3600))

func text(k element.Kind, s string) element.Element { return element.Element{Kind: k, Text: s} }
func path(k element.Kind, p string) element.Element { return element.Element{Kind: k, Path: p} }

func link(t *testing.T, k element.Kind, raw string) element.Element {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return element.Element{Kind: k, URL: u}
}

func required() []element.Element {
	return []element.Element{
		text(element.Name, "Simple ePub demonstration"),
		text(element.Author, "nabijaczleweli"),
		{Kind: element.Date, Date: testDate},
		text(element.Language, "en-GB"),
	}
}

func wantBookErr(t *testing.T, err error, kind bookerr.Kind) *bookerr.Error {
	t.Helper()
	var be *bookerr.Error
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want %v", err, kind)
	}
	if be.Kind != kind {
		t.Fatalf("error kind = %v, want %v (%v)", be.Kind, kind, err)
	}
	return be
}

func TestFromElements_Minimal(t *testing.T) {
	b, err := book.FromElements(required())
	if err != nil {
		t.Fatalf("FromElements: %v", err)
	}
	if b.Name != "Simple ePub demonstration" || b.Author != "nabijaczleweli" || b.Language != "en-GB" {
		t.Errorf("scalars = %q %q %q", b.Name, b.Author, b.Language)
	}
	if !b.Date.Equal(testDate) {
		t.Errorf("Date = %v", b.Date)
	}
	if b.Cover != nil || b.Description != nil || len(b.Content) != 0 || len(b.NonContent) != 0 {
		t.Errorf("unexpected optional parts: %+v", b)
	}
	if len(b.UUID) != 36 {
		t.Errorf("UUID = %q", b.UUID)
	}
}

func TestFromElements_FreshUUIDPerBook(t *testing.T) {
	a, _ := book.FromElements(required())
	b, _ := book.FromElements(required())
	if a.UUID == b.UUID {
		t.Error("two books share a UUID")
	}
}

func TestFromElements_MissingInPriorityOrder(t *testing.T) {
	cases := []struct {
		drop []int
		want string
	}{
		{[]int{0}, "Name"},
		{[]int{1}, "Author"},
		{[]int{2}, "Date"},
		{[]int{3}, "Language"},
		{[]int{1, 3}, "Author"},
		{[]int{2, 3}, "Date"},
		{[]int{0, 1, 2, 3}, "Name"},
	}
	for _, c := range cases {
		var elems []element.Element
		for i, e := range required() {
			skip := false
			for _, d := range c.drop {
				skip = skip || d == i
			}
			if !skip {
				elems = append(elems, e)
			}
		}
		_, err := book.FromElements(elems)
		be := wantBookErr(t, err, bookerr.RequiredElementMissing)
		if be.Element != c.want {
			t.Errorf("drop %v: missing %q, want %q", c.drop, be.Element, c.want)
		}
	}
}

func TestFromElements_DuplicateScalars(t *testing.T) {
	for _, el := range required() {
		elems := append(required(), el)
		_, err := book.FromElements(elems)
		be := wantBookErr(t, err, bookerr.WrongElementAmount)
		if be.Element != el.Kind.String() || be.Actual != 2 || be.Relation != "exactly" || be.Bound != 1 {
			t.Errorf("duplicate %v: %+v", el.Kind, be)
		}
	}
}

func TestFromElements_ThirdDuplicateStillReportsTwo(t *testing.T) {
	elems := append(required(), text(element.Name, "b"), text(element.Name, "c"))
	_, err := book.FromElements(elems)
	be := wantBookErr(t, err, bookerr.WrongElementAmount)
	if be.Actual != 2 {
		t.Errorf("Actual = %d, want 2", be.Actual)
	}
}

func TestFromElements_CoverExclusive(t *testing.T) {
	file := path(element.Cover, "cover.png")
	net := link(t, element.NetworkCover, "http://i.imgur.com/ViQ2WED.jpg")
	for _, pair := range [][2]element.Element{{file, file}, {net, net}, {file, net}, {net, file}} {
		_, err := book.FromElements(append(required(), pair[0], pair[1]))
		be := wantBookErr(t, err, bookerr.WrongElementAmount)
		if be.Error() != "Wrong amount of Cover and Network-Cover elements: 2, must be exactly 1" {
			t.Errorf("%v + %v: %v", pair[0].Kind, pair[1].Kind, be)
		}
	}
}

func TestFromElements_DescriptionExclusive(t *testing.T) {
	kinds := []element.Element{
		path(element.Description, "blurb.html"),
		text(element.StringDescription, "<p>blurb</p>"),
		link(t, element.NetworkDescription, "https://example.com/blurb.html"),
	}
	for _, a := range kinds {
		for _, b := range kinds {
			_, err := book.FromElements(append(required(), a, b))
			be := wantBookErr(t, err, bookerr.WrongElementAmount)
			if be.Element != book.GroupDescription {
				t.Errorf("%v + %v: element %q", a.Kind, b.Kind, be.Element)
			}
		}
	}
}

func TestFromElements_FileCover(t *testing.T) {
	b, err := book.FromElements(append(required(), path(element.Cover, "examples/cover.png")))
	if err != nil {
		t.Fatal(err)
	}
	img := b.CoverImage()
	if img == nil {
		t.Fatal("no cover image")
	}
	if img.ID != "examples-cover" || img.ArchivePath != "examples-cover.png" || img.Source.Path != "examples/cover.png" {
		t.Errorf("cover image = %+v", img)
	}
	if b.Cover.ID != "cover-content-4" || b.Cover.ArchivePath != "cover-data-4.html" {
		t.Errorf("cover page = %+v", b.Cover)
	}
	if b.Cover.Source.Raw != `<center><img src="examples-cover.png" alt="examples-cover.png"></img></center>` {
		t.Errorf("cover markup = %q", b.Cover.Source.Raw)
	}
	if len(b.NonContent) != 1 || b.NonContent[0] != img {
		t.Error("cover image should be the only non-content entry")
	}
	if len(b.Content) != 0 {
		t.Error("cover page must not be in Content")
	}
	if spine := b.Spine(); len(spine) != 1 || spine[0] != b.Cover {
		t.Errorf("spine = %v", spine)
	}
}

func TestFromElements_NetworkCover(t *testing.T) {
	b, err := book.FromElements(append(required(), link(t, element.NetworkCover, "http://i.imgur.com/ViQ2WED.jpg")))
	if err != nil {
		t.Fatal(err)
	}
	img := b.CoverImage()
	if img.ID != "ViQ2WED" || img.ArchivePath != "ViQ2WED.jpg" || !img.Source.IsNetwork() {
		t.Errorf("cover image = %+v", img)
	}
}

func TestFromElements_ContentPropagation(t *testing.T) {
	elems := []element.Element{
		text(element.Name, "Simple ePub demonstration"),
		path(element.Content, "examples/simple/ctnt.html"),
		text(element.Author, "nabijaczleweli"),
		text(element.StringContent, "<em>Seize the means of production!</em>"),
		{Kind: element.Date, Date: testDate},
		path(element.ImageContent, "examples/simple/chapter_image.png"),
		text(element.Language, "en-GB"),
		link(t, element.NetworkImageContent, "http://i.imgur.com/ViQ2WED.jpg"),
		path(element.Include, "style.css"),
		link(t, element.NetworkInclude, "https://example.com/fonts/serif.ttf"),
	}
	b, err := book.FromElements(elems)
	if err != nil {
		t.Fatal(err)
	}

	type idPath struct{ id, path string }
	wantContent := []idPath{
		{"examples-simple-ctnt", "examples-simple-ctnt.html"},
		{"string-content-3", "string-data-3.html"},
		{"image-content-5", "image-data-5.html"},
		{"network-image-content-7", "network-image-data-7.html"},
	}
	if len(b.Content) != len(wantContent) {
		t.Fatalf("len(Content) = %d", len(b.Content))
	}
	for i, w := range wantContent {
		if b.Content[i].ID != w.id || b.Content[i].ArchivePath != w.path {
			t.Errorf("Content[%d] = %s %s, want %s %s", i, b.Content[i].ID, b.Content[i].ArchivePath, w.id, w.path)
		}
	}
	if b.Content[1].Source.Raw != "<em>Seize the means of production!</em>" {
		t.Errorf("string content = %q", b.Content[1].Source.Raw)
	}
	if b.Content[3].Source.Raw != `<center><img src="ViQ2WED.jpg" alt="ViQ2WED.jpg"></img></center>` {
		t.Errorf("network image markup = %q", b.Content[3].Source.Raw)
	}

	wantNon := []idPath{
		{"examples-simple-chapter_image", "examples-simple-chapter_image.png"},
		{"ViQ2WED", "ViQ2WED.jpg"},
		{"style", "style.css"},
		{"serif", "serif.ttf"},
	}
	if len(b.NonContent) != len(wantNon) {
		t.Fatalf("len(NonContent) = %d", len(b.NonContent))
	}
	for i, w := range wantNon {
		if b.NonContent[i].ID != w.id || b.NonContent[i].ArchivePath != w.path {
			t.Errorf("NonContent[%d] = %s %s, want %s %s", i, b.NonContent[i].ID, b.NonContent[i].ArchivePath, w.id, w.path)
		}
	}
	if b.Content[2].Wraps != b.NonContent[0] || b.Content[3].Wraps != b.NonContent[1] {
		t.Error("image pages should wrap their image entries")
	}
}

func TestFromElements_Description(t *testing.T) {
	b, err := book.FromElements(append(required(), text(element.StringDescription, "<p>A book.</p>")))
	if err != nil {
		t.Fatal(err)
	}
	if b.Description == nil || !b.Description.IsRaw() || b.Description.Raw != "<p>A book.</p>" {
		t.Errorf("Description = %+v", b.Description)
	}
	if len(b.Content)+len(b.NonContent) != 0 {
		t.Error("description must not become a manifest entry")
	}
}

func TestImageMarkup_Escapes(t *testing.T) {
	got := book.ImageMarkup(`a"b&c.png`)
	want := `<center><img src="a&#34;b&amp;c.png" alt="a&#34;b&amp;c.png"></img></center>`
	if got != want {
		t.Errorf("ImageMarkup = %q, want %q", got, want)
	}
}
