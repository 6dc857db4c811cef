package app

import (
	"io"
	"os"
	"strings"

	"github.com/blackwell-systems/gen-epub-book/internal/book"
	"github.com/blackwell-systems/gen-epub-book/internal/bookerr"
	"github.com/blackwell-systems/gen-epub-book/internal/cache"
	"github.com/blackwell-systems/gen-epub-book/internal/element"
	"github.com/blackwell-systems/gen-epub-book/internal/include"
	"github.com/blackwell-systems/gen-epub-book/internal/ingest"
)

// stdio marks SOURCE or TARGET as the standard stream.
const stdio = "-"

func (s *session) parseOptions() element.ParseOptions {
	return element.ParseOptions{Separator: s.cfg.Separator, FreeDate: s.cfg.FreeDate}
}

// sideLog is where verbose diagnostics go, or nil when quiet.
func (s *session) sideLog(errOut io.Writer) io.Writer {
	if s.cfg.Verbose {
		return errOut
	}
	return nil
}

// readElements parses the descriptor at source, or stdin for "-".
func (s *session) readElements(source string, stdin io.Reader) ([]element.Element, error) {
	if source == stdio {
		return element.ParseDescriptor("input file", stdin, s.parseOptions())
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, bookerr.NewIO("input file", "open", source, err)
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, bookerr.NewIO("input file", "open", source, err)
	}
	if fi.IsDir() {
		return nil, bookerr.NewWrongFileState("a file", source)
	}
	return element.ParseDescriptor("input file", f, s.parseOptions())
}

// includeDirs builds the search path: the descriptor's own directory, then
// --include flags, then the config file's include list.
func (s *session) includeDirs(source string) ([]include.Directory, error) {
	display, dir := relativeRoot(source)
	root, err := include.Canonical(dir)
	if err != nil {
		return nil, bookerr.NewIO("relative root", "canonicalise", dir, err)
	}
	dirs := []include.Directory{include.Unnamed(display, root)}

	specs := append(append([]string{}, s.flags.include...), s.cfg.Include...)
	extra, err := include.ParseAll(specs)
	if err != nil {
		return nil, err
	}
	return append(dirs, extra...), nil
}

// relativeRoot splits source into the prefix shown in log lines and the
// directory relative paths resolve against.
func relativeRoot(source string) (display, dir string) {
	if source == stdio {
		return "", "."
	}
	i := strings.LastIndexAny(source, `/\`)
	if i < 0 {
		return "", "."
	}
	if i == 0 {
		return source[:1], source[:1]
	}
	return source[:i+1], source[:i]
}

// loadBook runs the descriptor through parsing, aggregation and
// normalization.
func (s *session) loadBook(source string, stdin io.Reader, errOut io.Writer) (*book.Book, error) {
	dirs, err := s.includeDirs(source)
	if err != nil {
		return nil, err
	}
	elems, err := s.readElements(source, stdin)
	if err != nil {
		return nil, err
	}
	b, err := book.FromElements(elems)
	if err != nil {
		return nil, err
	}
	if err := b.Normalize(dirs, s.sideLog(errOut)); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *session) fetcher(errOut io.Writer) *ingest.HTTPFetcher {
	f := ingest.NewHTTPFetcher(s.cfg.Fetch.Timeout, s.cfg.Fetch.UserAgent)
	f.Log = s.sideLog(errOut)
	if s.cfg.Cache.Enabled {
		f.Cache = cache.New(s.cfg.Cache.Dir)
	}
	return f
}
