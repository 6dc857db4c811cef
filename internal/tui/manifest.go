package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/gen-epub-book/internal/book"
)

// ManifestRow is one line of the manifest table.
type ManifestRow struct {
	ID          string
	ArchivePath string
	MediaType   string
	Source      string
	Spine       bool
	kind        book.SourceKind
}

// ManifestRows lists the distinct manifest entries of b in package order.
// mediaType resolves an archive path; a failure is shown in the column.
func ManifestRows(b *book.Book, mediaType func(string) (string, error)) []ManifestRow {
	inSpine := make(map[string]bool)
	for _, e := range b.Spine() {
		inSpine[e.ID] = true
	}

	var rows []ManifestRow
	seen := make(map[string]bool)
	for _, e := range b.Entries() {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true

		mt, err := mediaType(e.ArchivePath)
		if err != nil {
			mt = "?"
		}
		rows = append(rows, ManifestRow{
			ID:          e.ID,
			ArchivePath: e.ArchivePath,
			MediaType:   mt,
			Source:      e.Source.String(),
			Spine:       inSpine[e.ID],
			kind:        e.Source.Kind,
		})
	}
	return rows
}

var manifestHeaders = []string{"ID", "PATH", "TYPE", "SPINE", "SOURCE"}

// maxSourceWidth caps the source column; inline sources are already short.
const maxSourceWidth = 60

// RenderManifest lays rows out as a bordered table.
func RenderManifest(rows []ManifestRow) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		spine := ""
		if r.Spine {
			spine = "yes"
		}
		cells[i] = []string{r.ID, r.ArchivePath, r.MediaType, spine, truncateText(r.Source, maxSourceWidth)}
	}

	widths := make([]int, len(manifestHeaders))
	for c, h := range manifestHeaders {
		widths[c] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for c, v := range row {
			if w := lipgloss.Width(v); w > widths[c] {
				widths[c] = w
			}
		}
	}

	var s strings.Builder
	s.WriteString(renderRow(manifestHeaders, widths, func(int) lipgloss.Style { return StyleHeader }))
	for i, row := range cells {
		r := rows[i]
		s.WriteString("\n")
		s.WriteString(renderRow(row, widths, func(col int) lipgloss.Style {
			switch {
			case col == 3 && r.Spine:
				return StyleSpine
			case col == 4 && r.kind == book.NetworkSource:
				return StyleNetwork
			case col == 4 && r.kind == book.RawSource:
				return StyleGenerated
			default:
				return StyleNormal
			}
		}))
	}
	return StyleBorder.Padding(0, 1).Render(s.String())
}

func renderRow(cells []string, widths []int, style func(col int) lipgloss.Style) string {
	parts := make([]string, len(cells))
	for c, v := range cells {
		st := style(c).Width(widths[c])
		if c < len(cells)-1 {
			st = st.MarginRight(2)
		}
		parts[c] = st.Render(v)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// truncateText shortens s to max runes, marking the cut with an ellipsis.
func truncateText(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
