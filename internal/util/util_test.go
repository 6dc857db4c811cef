package util_test

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/gen-epub-book/internal/util"
)

func TestSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"./a/../b/c.html", "b-c"},
		{"ch1.html", "ch1"},
		{"content/ch01.html", "content-ch01"},
		{"../shared/style.css", "shared-style"},
		{`images\cover.png`, "images-cover"},
		{"simple/./nested/page.xhtml", "simple-nested-page"},
		{"no-extension", "no-extension"},
		{"dir.d/file", "dir.d-file"},
		{".hidden", ".hidden"},
	}
	for _, c := range cases {
		if got := util.Slug(c.in); got != c.want {
			t.Errorf("Slug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestArchiveFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"./a/../b/c.html", "b-c.html"},
		{"cover.png", "cover.png"},
		{`fonts\serif\regular.ttf`, "fonts-serif-regular.ttf"},
		{"../up/one.css", "up-one.css"},
		{"README", "README"},
	}
	for _, c := range cases {
		if got := util.ArchiveFilename(c.in); got != c.want {
			t.Errorf("ArchiveFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugFromURL(t *testing.T) {
	cases := []struct{ in, slug, file string }{
		{"https://example.com/images/cover.png", "cover", "cover.png"},
		{"https://example.com/a/b/archive.tar.gz?x=1", "archive", "archive.tar.gz"},
		{"https://example.com/", "download", "download"},
		{"https://example.com", "download", "download"},
	}
	for _, c := range cases {
		u, err := url.Parse(c.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := util.SlugFromURL(u); got != c.slug {
			t.Errorf("SlugFromURL(%q) = %q, want %q", c.in, got, c.slug)
		}
		if got := util.URLFilename(u); got != c.file {
			t.Errorf("URLFilename(%q) = %q, want %q", c.in, got, c.file)
		}
	}
}

func TestUppercaseFirst(t *testing.T) {
	cases := []struct{ in, want string }{
		{"abolish", "Abolish"},
		{"writ", "Writ"},
		{"", ""},
		{"Open", "Open"},
	}
	for _, c := range cases {
		if got := util.UppercaseFirst(c.in); got != c.want {
			t.Errorf("UppercaseFirst(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	if err := util.EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	fi, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("Stat after EnsureDir: %v", err)
	}
	if !fi.IsDir() {
		t.Error("EnsureDir path is not a directory")
	}
}

func TestEnsureParent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out", "book.epub")
	if err := util.EnsureParent(target); err != nil {
		t.Fatalf("EnsureParent: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(target)); err != nil {
		t.Errorf("parent not created: %v", err)
	}
	if err := util.EnsureParent("book.epub"); err != nil {
		t.Errorf("EnsureParent on bare filename: %v", err)
	}
}
