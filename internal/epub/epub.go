// Package epub writes a resolved book as an EPUB 2 container.
//
// The archive holds, in order: the uncompressed mimetype marker, the OCF
// container pointer, the OPF package document, the NCX table of contents and
// one payload per distinct archive path.
package epub

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"hash/crc32"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/blackwell-systems/gen-epub-book/internal/book"
	"github.com/blackwell-systems/gen-epub-book/internal/bookerr"
)

// Fetcher retrieves network-sourced payloads.
type Fetcher interface {
	Fetch(ctx context.Context, u *url.URL) (io.ReadCloser, error)
}

// Options control serialization.
type Options struct {
	// StringTOC also scans inline content for title markers.
	StringTOC bool
	// StrictTypes fails on archive paths with an unrecognised extension
	// instead of declaring them text/plain.
	StrictTypes bool
	// Fetcher is required only when the book has network sources.
	Fetcher Fetcher
	// Log, when set, receives one line per written payload.
	Log io.Writer
}

// Write serializes b to w. b must have been normalized. On failure w holds a
// truncated archive that should be discarded.
func Write(ctx context.Context, w io.Writer, b *book.Book, opts Options) error {
	s := &serializer{ctx: ctx, zw: zip.NewWriter(w), book: b, opts: opts}
	if err := s.write(); err != nil {
		return err
	}
	if err := s.zw.Close(); err != nil {
		return bookerr.NewIO("output file", "write", "finishing archive", err)
	}
	return nil
}

type serializer struct {
	ctx  context.Context
	zw   *zip.Writer
	book *book.Book
	opts Options
}

func (s *serializer) write() error {
	if err := s.writeMimetype(); err != nil {
		return err
	}
	if err := s.writeString(pathContainer, containerXML); err != nil {
		return err
	}

	description, err := s.description()
	if err != nil {
		return err
	}
	pkg, err := buildOPF(s.book, description, s.opts.StrictTypes)
	if err != nil {
		return err
	}
	if err := s.writeXML(pathOPF, pkg); err != nil {
		return err
	}

	ncx, err := buildNCX(s.book, s.opts.StringTOC)
	if err != nil {
		return err
	}
	if err := s.writeXML(pathNCX, ncx); err != nil {
		return err
	}

	return s.writePayloads()
}

// writeMimetype stores the marker uncompressed and without a data
// descriptor so it can be sniffed at a fixed offset.
func (s *serializer) writeMimetype() error {
	data := []byte(mimetype)
	fw, err := s.zw.CreateRaw(&zip.FileHeader{
		Name:               pathMimetype,
		Method:             zip.Store,
		CRC32:              crc32.ChecksumIEEE(data),
		CompressedSize64:   uint64(len(data)),
		UncompressedSize64: uint64(len(data)),
	})
	if err != nil {
		return bookerr.NewIO(pathMimetype, "create", "", err)
	}
	if _, err := fw.Write(data); err != nil {
		return bookerr.NewIO(pathMimetype, "write", "", err)
	}
	return nil
}

func (s *serializer) create(name string) (io.Writer, error) {
	fw, err := s.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: s.book.Date,
	})
	if err != nil {
		return nil, bookerr.NewIO(name, "create", "", err)
	}
	return fw, nil
}

func (s *serializer) writeString(name, content string) error {
	fw, err := s.create(name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(fw, content); err != nil {
		return bookerr.NewIO(name, "write", "", err)
	}
	return nil
}

func (s *serializer) writeXML(name string, doc any) error {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return bookerr.NewIO(name, "write", "encoding XML", err)
	}
	return s.writeString(name, xml.Header+string(out)+"\n")
}

// description loads the description markup so it can be inlined into the
// package metadata.
func (s *serializer) description() (*string, error) {
	src := s.book.Description
	if src == nil {
		return nil, nil
	}

	var text string
	switch src.Kind {
	case book.RawSource:
		text = src.Raw
	case book.FileSource:
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, bookerr.NewIO("description", "read", src.Path, err)
		}
		text = string(data)
	case book.NetworkSource:
		rc, err := s.fetch(src.URL)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, bookerr.NewIO("description", "read", src.URL.String(), err)
		}
		text = string(data)
	}
	return &text, nil
}

// writePayloads streams every distinct archive path once. Entries sharing a
// path are the same physical resource used in two roles.
func (s *serializer) writePayloads() error {
	written := make(map[string]bool)
	for _, e := range s.book.Entries() {
		if written[e.ArchivePath] {
			continue
		}
		written[e.ArchivePath] = true

		if err := s.writePayload(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *serializer) writePayload(e *book.ManifestEntry) error {
	fw, err := s.create(e.ArchivePath)
	if err != nil {
		return err
	}

	var n int64
	switch e.Source.Kind {
	case book.RawSource:
		var c int
		c, err = io.WriteString(fw, xhtmlPage(e.Source.Raw))
		n = int64(c)
	case book.FileSource:
		n, err = s.copyFile(fw, e)
	case book.NetworkSource:
		n, err = s.copyNetwork(fw, e)
	}
	if err != nil {
		return err
	}

	if s.opts.Log != nil {
		fmt.Fprintf(s.opts.Log, "Packed %s (%d bytes) from %s.\n", e.ArchivePath, n, e.Source)
	}
	return nil
}

func (s *serializer) copyFile(fw io.Writer, e *book.ManifestEntry) (int64, error) {
	f, err := os.Open(e.Source.Path)
	if err != nil {
		return 0, bookerr.NewIO(strings.ToLower(e.Origin.String())+" file", "open", e.Source.Path, err)
	}
	defer f.Close()

	n, err := io.Copy(fw, f)
	if err != nil {
		return n, bookerr.NewIO(e.ArchivePath, "write", "", err)
	}
	return n, nil
}

func (s *serializer) copyNetwork(fw io.Writer, e *book.ManifestEntry) (int64, error) {
	rc, err := s.fetch(e.Source.URL)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	n, err := io.Copy(fw, rc)
	if err != nil {
		return n, bookerr.NewIO(e.ArchivePath, "write", e.Source.URL.String(), err)
	}
	return n, nil
}

func (s *serializer) fetch(u *url.URL) (io.ReadCloser, error) {
	if s.opts.Fetcher == nil {
		return nil, bookerr.NewIO("network resource", "fetch", "no fetcher configured", nil)
	}
	rc, err := s.opts.Fetcher.Fetch(s.ctx, u)
	if err != nil {
		return nil, bookerr.NewIO("network resource", "fetch", u.String(), err)
	}
	return rc, nil
}
