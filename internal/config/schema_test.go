package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/gen-epub-book/internal/config"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := config.Defaults()
	if cfg.Separator != ":" {
		t.Errorf("Separator = %q, want %q", cfg.Separator, ":")
	}
	if cfg.Fetch.Timeout != d.Fetch.Timeout || cfg.Fetch.UserAgent != d.Fetch.UserAgent {
		t.Errorf("Fetch = %+v, want %+v", cfg.Fetch, d.Fetch)
	}
	if cfg.Cache.Enabled || cfg.Cache.Dir == "" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if len(cfg.Include) != 0 {
		t.Errorf("Include = %v", cfg.Include)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `separator: "="
free_date: true
string_toc: true
include:
  - assets=./assets
  - ../shared
fetch:
  timeout: 30s
cache:
  enabled: true
  dir: /tmp/epub-cache
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Separator != "=" || !cfg.FreeDate || !cfg.StringTOC || cfg.StrictTypes {
		t.Errorf("flags = %+v", cfg)
	}
	if len(cfg.Include) != 2 || cfg.Include[0] != "assets=./assets" || cfg.Include[1] != "../shared" {
		t.Errorf("Include = %v", cfg.Include)
	}
	if cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Fetch.Timeout)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Dir != "/tmp/epub-cache" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("verbose: false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GEN_EPUB_BOOK_VERBOSE", "true")
	t.Setenv("GEN_EPUB_BOOK_FETCH_USER_AGENT", "test-agent/1.0")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Verbose {
		t.Error("GEN_EPUB_BOOK_VERBOSE not applied")
	}
	if cfg.Fetch.UserAgent != "test-agent/1.0" {
		t.Errorf("UserAgent = %q", cfg.Fetch.UserAgent)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("separator: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad_EmptySeparator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("separator: \"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("expected error for empty separator")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := config.Defaults()
	cfg.Separator = "->"
	cfg.StrictTypes = true
	cfg.Include = []string{"fonts=/usr/share/fonts"}
	cfg.Fetch.Timeout = 90 * time.Second

	if err := config.Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Separator != "->" || !got.StrictTypes || got.Fetch.Timeout != 90*time.Second {
		t.Errorf("round trip = %+v", got)
	}
	if len(got.Include) != 1 || got.Include[0] != "fonts=/usr/share/fonts" {
		t.Errorf("Include = %v", got.Include)
	}
}

func TestEncode_DurationsAreReadable(t *testing.T) {
	var buf bytes.Buffer
	if err := config.Encode(&buf, config.Defaults()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "timeout: 5m0s") {
		t.Errorf("encoded config:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "include:") {
		t.Error("empty include list should be omitted")
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv("GEN_EPUB_BOOK_CONFIG", "/etc/gen-epub-book.yml")
	if got := config.ResolvePath("/explicit.yml"); got != "/explicit.yml" {
		t.Errorf("explicit = %q", got)
	}
	if got := config.ResolvePath(""); got != "/etc/gen-epub-book.yml" {
		t.Errorf("env = %q", got)
	}
	t.Setenv("GEN_EPUB_BOOK_CONFIG", "")
	if got := config.ResolvePath(""); got != config.DefaultPath() {
		t.Errorf("default = %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := config.ExpandHome("~/x/y"); got != filepath.Join(home, "x", "y") {
		t.Errorf("ExpandHome(~/x/y) = %q", got)
	}
	if got := config.ExpandHome("/abs"); got != "/abs" {
		t.Errorf("ExpandHome(/abs) = %q", got)
	}
}
