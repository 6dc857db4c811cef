// Package app wires the gen-epub-book command tree.
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gen-epub-book/internal/bookerr"
	"github.com/blackwell-systems/gen-epub-book/internal/config"
	"github.com/blackwell-systems/gen-epub-book/internal/element"
	"github.com/blackwell-systems/gen-epub-book/internal/util"
)

var appVersion = "dev"

// SetVersion records the build version reported by the version command.
func SetVersion(v string) { appVersion = v }

// flagValues holds the persistent flags. They override the config file
// only when given explicitly.
type flagValues struct {
	config      string
	noColor     bool
	include     []string
	separator   string
	freeDate    bool
	stringTOC   bool
	strictTypes bool
	verbose     bool
	timeout     time.Duration
	cache       bool
}

// session is the state shared by one invocation of the command tree.
type session struct {
	flags flagValues
	cfg   *config.Config
}

// Execute is the entry point called from main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprint(os.Stderr, color.RedString("error: "))
		bookerr.Print(os.Stderr, err)
		os.Exit(bookerr.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	s := &session{}

	cmd := &cobra.Command{
		Use:   "gen-epub-book <SOURCE> <TARGET>",
		Short: "Assemble an ePub book from a plain-text descriptor",
		Long: `gen-epub-book reads a descriptor of "Key: Value" lines naming the book's
metadata, content pages, images and auxiliary files, and writes a
self-contained EPUB 2 package.

Relative paths in the descriptor are resolved against the descriptor's own
directory first, then against every --include directory in order. A named
include ("name=path") places its files under "name/" in the package.

Use "-" as SOURCE to read the descriptor from stdin (paths then resolve
against the working directory) and "-" as TARGET to write to stdout.`,
		Example: `  gen-epub-book book.epupp book.epub
  gen-epub-book -I assets=../shared/assets -D book.epupp out/book.epub
  cat book.epupp | gen-epub-book - - > book.epub`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runBuild(cmd, args[0], args[1])
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&s.flags.config, "config", "", "Config file path (default: ~/.config/gen-epub-book/config.yml)")
	pf.BoolVar(&s.flags.noColor, "no-color", false, "Disable colored output")
	pf.StringArrayVarP(&s.flags.include, "include", "I", nil, "Additional include directory, as [name=]path (repeatable)")
	pf.StringVarP(&s.flags.separator, "separator", "S", element.DefaultSeparator, "Separator between descriptor keys and values")
	pf.BoolVarP(&s.flags.freeDate, "free-date", "D", false, "Also accept RFC2822 and unix-timestamp dates")
	pf.BoolVar(&s.flags.stringTOC, "string-toc", false, "Scan inline content for table-of-contents titles")
	pf.BoolVar(&s.flags.strictTypes, "strict-types", false, "Fail on files with an unrecognised extension")
	pf.BoolVarP(&s.flags.verbose, "verbose", "v", false, "Report resolved, fetched and packed files on stderr")
	pf.DurationVar(&s.flags.timeout, "fetch-timeout", 0, "Timeout for each network fetch (default from config)")
	pf.BoolVar(&s.flags.cache, "cache", false, "Cache network-fetched resources on disk")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(s.flags.noColor)
		return s.loadConfig(cmd)
	}

	cmd.AddCommand(
		newElementsCmd(s),
		newManifestCmd(s),
		newConfigCmd(s),
		newCacheCmd(s),
		newVersionCmd(),
		newCompletionCmd(),
	)
	return cmd
}

// loadConfig reads the config file and layers explicitly set flags on top.
// config init tolerates an unreadable file since it is about to replace it.
func (s *session) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(s.flags.config)
	if err != nil {
		if cmd.Name() != "init" || cmd.Parent() == nil || cmd.Parent().Name() != "config" {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = config.Defaults()
	}

	f := cmd.Flags()
	if f.Changed("separator") {
		if s.flags.separator == "" {
			return fmt.Errorf("--separator must not be empty")
		}
		cfg.Separator = s.flags.separator
	}
	if f.Changed("free-date") {
		cfg.FreeDate = s.flags.freeDate
	}
	if f.Changed("string-toc") {
		cfg.StringTOC = s.flags.stringTOC
	}
	if f.Changed("strict-types") {
		cfg.StrictTypes = s.flags.strictTypes
	}
	if f.Changed("verbose") {
		cfg.Verbose = s.flags.verbose
	}
	if f.Changed("fetch-timeout") {
		cfg.Fetch.Timeout = s.flags.timeout
	}
	if f.Changed("cache") {
		cfg.Cache.Enabled = s.flags.cache
	}
	s.cfg = cfg
	return nil
}

// ok prints a green success line.
func ok(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, color.CyanString(fmt.Sprintf(format, a...)))
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-14s %s\n", color.CyanString(label+":"), value)
}
