package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gen-epub-book/internal/epub"
	"github.com/blackwell-systems/gen-epub-book/internal/tui"
)

func newElementsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "elements <SOURCE>",
		Short: "Print the elements parsed from a descriptor",
		Long: `Print every recognised descriptor line, one element per line, in the
order they will be aggregated. Unknown keys and lines without a value are
skipped just as they are when assembling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elems, err := s.readElements(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, el := range elems {
				fmt.Fprintln(out, el)
			}
			return nil
		},
	}
}

func newManifestCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest <SOURCE>",
		Short: "Resolve a descriptor and show the package manifest",
		Long: `Aggregate and resolve a descriptor without writing anything, then show
the book's metadata and every manifest entry with its archive path, media
type, spine membership and source. Network resources are not fetched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := s.loadBook(args[0], cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			header(out, "%s", b.Name)
			printField(out, "author", b.Author)
			printField(out, "date", b.Date.Format(time.RFC3339))
			printField(out, "language", b.Language)
			printField(out, "uuid", b.UUID)
			if img := b.CoverImage(); img != nil {
				printField(out, "cover", img.ArchivePath)
			}
			if b.Description != nil {
				printField(out, "description", b.Description.String())
			}
			fmt.Fprintln(out)

			rows := tui.ManifestRows(b, func(p string) (string, error) {
				return epub.MediaType(p, s.cfg.StrictTypes)
			})
			fmt.Fprintln(out, tui.RenderManifest(rows))
			return nil
		},
	}
}
