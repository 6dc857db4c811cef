package app

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gen-epub-book/internal/bookerr"
	"github.com/blackwell-systems/gen-epub-book/internal/epub"
	"github.com/blackwell-systems/gen-epub-book/internal/util"
)

// runBuild assembles source into target. A target file that was only
// partially written is removed.
func (s *session) runBuild(cmd *cobra.Command, source, target string) error {
	errOut := cmd.ErrOrStderr()

	b, err := s.loadBook(source, cmd.InOrStdin(), errOut)
	if err != nil {
		return err
	}
	if len(b.Content) == 0 {
		warn(errOut, "%s has no content pages", displayName(source))
	}

	opts := epub.Options{
		StringTOC:   s.cfg.StringTOC,
		StrictTypes: s.cfg.StrictTypes,
		Fetcher:     s.fetcher(errOut),
		Log:         s.sideLog(errOut),
	}

	if target == stdio {
		out := cmd.OutOrStdout()
		if f, isFile := out.(*os.File); isFile && util.IsTerminal(f) {
			return fmt.Errorf("refusing to write an archive to a terminal; redirect stdout or name a TARGET")
		}
		w := bufio.NewWriter(out)
		if err := epub.Write(cmd.Context(), w, b, opts); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return bookerr.NewIO("output file", "write", "stdout", err)
		}
		return nil
	}

	n, err := writeTarget(target, func(w io.Writer) error {
		return epub.Write(cmd.Context(), w, b, opts)
	})
	if err != nil {
		return err
	}
	if s.cfg.Verbose {
		ok(errOut, "Wrote %s (%d bytes)", target, n)
	}
	return nil
}

// writeTarget creates target, runs write against it and removes the file
// again if anything fails.
func writeTarget(target string, write func(io.Writer) error) (n int64, err error) {
	if err := util.EnsureParent(target); err != nil {
		return 0, bookerr.NewIO("output file", "create", target, err)
	}
	f, err := os.Create(target)
	if err != nil {
		return 0, bookerr.NewIO("output file", "create", target, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(target)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return 0, bookerr.NewIO("output file", "write", target, err)
	}
	fi, statErr := f.Stat()
	if err := f.Close(); err != nil {
		return 0, bookerr.NewIO("output file", "close", target, err)
	}
	if statErr == nil {
		n = fi.Size()
	}
	return n, nil
}

func displayName(source string) string {
	if source == stdio {
		return "stdin"
	}
	return source
}
