// Package include resolves relative content references against an ordered
// list of include directories.
//
// The first directory is conventionally the descriptor's own directory and is
// unnamed; further directories may carry a name, which namespaces the ids and
// archive paths of files found in them so two roots can both provide, say,
// "style.css" without colliding inside the package.
package include

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/gen-epub-book/internal/bookerr"
	"github.com/blackwell-systems/gen-epub-book/internal/util"
)

// Directory is one root of the search path.
type Directory struct {
	// Name is empty for unnamed directories.
	Name string
	// Display is the directory as the user wrote it.
	Display string
	// Root is the absolute, canonical directory.
	Root string
}

// Unnamed builds an unnamed directory without touching the filesystem.
func Unnamed(display, root string) Directory {
	return Directory{Display: display, Root: root}
}

// Named builds a named directory without touching the filesystem.
func Named(name, display, root string) Directory {
	return Directory{Name: name, Display: display, Root: root}
}

// IsNamed reports whether d namespaces the files found in it.
func (d Directory) IsNamed() bool { return d.Name != "" }

// Parse reads a "[name=]path" specifier. The path must exist and must not be a
// regular file.
func Parse(spec string) (Directory, error) {
	var name, dir string
	if i := strings.IndexByte(spec, '='); i >= 0 {
		name, dir = spec[:i], spec[i+1:]
	} else {
		dir = spec
	}

	root, err := Canonical(dir)
	if err != nil {
		return Directory{}, bookerr.NewParse("directory", "include directory", "not found")
	}
	fi, err := os.Stat(root)
	if err != nil {
		return Directory{}, bookerr.NewParse("directory", "include directory", "not found")
	}
	if fi.Mode().IsRegular() {
		return Directory{}, bookerr.NewWrongFileState("a directory", dir)
	}
	return Directory{Name: name, Display: dir, Root: root}, nil
}

// ParseAll parses specifiers in order, stopping at the first failure.
func ParseAll(specs []string) ([]Directory, error) {
	dirs := make([]Directory, 0, len(specs))
	for _, s := range specs {
		d, err := Parse(s)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

func (d Directory) String() string {
	if d.IsNamed() {
		return d.Name + "=" + d.Display
	}
	return d.Display
}

// Lookup returns the absolute path of rel under d if it names a regular file.
func (d Directory) Lookup(rel string) (string, bool) {
	abs := filepath.Join(d.Root, filepath.FromSlash(rel))
	fi, err := os.Stat(abs)
	if err != nil || !fi.Mode().IsRegular() {
		return "", false
	}
	return abs, true
}

// PackedID is the manifest id of rel once it is known to live in d.
func (d Directory) PackedID(rel string) string {
	if d.IsNamed() {
		return d.Name + "--" + util.Slug(rel)
	}
	return util.Slug(rel)
}

// PackedName is the in-archive path of rel once it is known to live in d.
func (d Directory) PackedName(rel string) string {
	if d.IsNamed() {
		return d.Name + "/" + util.ArchiveFilename(rel)
	}
	return util.ArchiveFilename(rel)
}

// DisplayPath renders rel as found under d, for log output.
func (d Directory) DisplayPath(rel string) string {
	if d.Display == "" || strings.HasSuffix(d.Display, "/") || strings.HasSuffix(d.Display, `\`) {
		return d.Display + rel
	}
	return d.Display + "/" + rel
}

// Resolve scans dirs in order and returns the first that contains rel as a
// regular file, along with the file's absolute path.
func Resolve(rel string, dirs []Directory) (Directory, string, bool) {
	for _, d := range dirs {
		if abs, ok := d.Lookup(rel); ok {
			return d, abs, true
		}
	}
	return Directory{}, "", false
}

// Canonical returns the absolute path of p with symlinks resolved.
func Canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
