package util

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// InitColor configures color output based on flags and terminal detection.
// Diagnostics go to stderr, so that is the stream checked; stdout may well be
// the archive itself.
func InitColor(noColor bool) {
	if noColor || !IsTerminal(os.Stderr) {
		color.NoColor = true
	}
}
