package book

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/gen-epub-book/internal/bookerr"
	"github.com/blackwell-systems/gen-epub-book/internal/element"
	"github.com/blackwell-systems/gen-epub-book/internal/include"
)

// Normalize resolves every file-backed entry against dirs, in order: the cover
// image, the description, content, then non-content. Resolved entries get
// root-qualified ids and archive paths and an absolute canonical path. When
// log is non-nil one line is written to it per resolved file.
//
// The first file that cannot be resolved aborts normalization; entries
// handled before it stay rewritten.
func (b *Book) Normalize(dirs []include.Directory, log io.Writer) error {
	n := normalizer{dirs: dirs, log: log, seen: make(map[*ManifestEntry]bool)}

	if img := b.CoverImage(); img != nil {
		if err := n.entry(img); err != nil {
			return err
		}
	}
	if b.Description != nil && b.Description.IsFile() {
		abs, err := n.resolve(b.Description.Path, element.Description.String())
		if err != nil {
			return err
		}
		b.Description.Path = abs.path
	}
	for _, e := range b.Content {
		if err := n.entry(e); err != nil {
			return err
		}
	}
	for _, e := range b.NonContent {
		if err := n.entry(e); err != nil {
			return err
		}
	}

	for _, page := range b.Spine() {
		if page.Wraps != nil {
			page.Source = Raw(ImageMarkup(page.Wraps.ArchivePath))
		}
	}
	return nil
}

type normalizer struct {
	dirs []include.Directory
	log  io.Writer
	seen map[*ManifestEntry]bool
}

type resolved struct {
	dir  include.Directory
	path string
}

func (n *normalizer) entry(e *ManifestEntry) error {
	if n.seen[e] || !e.Source.IsFile() {
		return nil
	}
	n.seen[e] = true

	rel := e.Source.Path
	r, err := n.resolve(rel, e.Origin.String())
	if err != nil {
		return err
	}
	e.ID = r.dir.PackedID(rel)
	e.ArchivePath = r.dir.PackedName(rel)
	e.Source.Path = r.path
	return nil
}

func (n *normalizer) resolve(rel, who string) (resolved, error) {
	dir, abs, ok := include.Resolve(rel, n.dirs)
	if !ok {
		return resolved{}, n.notFound(rel, who)
	}
	canon, err := include.Canonical(abs)
	if err != nil {
		return resolved{}, bookerr.NewIO(who, "canonicalise", rel, err)
	}
	if n.log != nil {
		fmt.Fprintf(n.log, "Normalised %s to %s for %s.\n", rel, dir.DisplayPath(rel), who)
	}
	return resolved{dir: dir, path: canon}, nil
}

// notFound distinguishes a path that exists somewhere as a non-file from one
// that is missing everywhere.
func (n *normalizer) notFound(rel, who string) error {
	for _, d := range n.dirs {
		candidate := filepath.Join(d.Root, filepath.FromSlash(rel))
		if _, err := os.Stat(candidate); err == nil {
			return bookerr.NewWrongFileState("a file", rel)
		}
	}
	return bookerr.NewFileNotFound(who, rel)
}
