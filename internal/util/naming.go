package util

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slug derives a manifest id from a relative path: the extension is dropped,
// backslashes become forward slashes, "." and ".." segments are removed and the
// remaining segments are joined with "-".
//
//	Slug("./a/../b/c.html") == "b-c"
func Slug(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimSuffix(p, extension(p))
	p = path.Clean(p)

	segs := make([]string, 0, strings.Count(p, "/")+1)
	for _, s := range strings.Split(p, "/") {
		if s == "" || s == "." || s == ".." {
			continue
		}
		segs = append(segs, s)
	}
	return strings.Join(segs, "-")
}

// ArchiveFilename is Slug(p) with the original extension kept. The result is
// always a flat, forward-slash-free name suitable as an in-archive path.
func ArchiveFilename(p string) string {
	return Slug(p) + extension(strings.ReplaceAll(p, `\`, "/"))
}

// URLFilename returns the final path segment of u, or "download" when the URL
// has no usable path.
func URLFilename(u *url.URL) string {
	base := path.Base(u.Path)
	if base == "" || base == "." || base == "/" {
		return "download"
	}
	return base
}

// SlugFromURL returns the final path segment of u up to its first '.'.
func SlugFromURL(u *url.URL) string {
	name := URLFilename(u)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

// UppercaseFirst upper-cases the first letter of s and leaves the rest alone.
func UppercaseFirst(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// extension returns the extension of the last path element, treating dotfiles
// such as ".nojekyll" as extensionless.
func extension(p string) string {
	base := path.Base(p)
	ext := path.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}
