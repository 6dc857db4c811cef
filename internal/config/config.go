// Package config loads gen-epub-book settings from an optional YAML file and
// GEN_EPUB_BOOK_* environment variables.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/gen-epub-book/internal/element"
	"github.com/blackwell-systems/gen-epub-book/internal/ingest"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GEN_EPUB_BOOK"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gen-epub-book", "config.yml")
}

// ResolvePath picks the config file: explicit, then $GEN_EPUB_BOOK_CONFIG,
// then DefaultPath.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return ExpandHome(explicit)
	}
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return ExpandHome(p)
	}
	return DefaultPath()
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Separator: element.DefaultSeparator,
		Fetch: FetchConfig{
			Timeout:   ingest.DefaultTimeout,
			UserAgent: ingest.DefaultUserAgent,
		},
		Cache: CacheConfig{Dir: defaultCacheDir()},
	}
}

// Load reads the config from path (see ResolvePath) and the environment. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("separator", d.Separator)
	v.SetDefault("free_date", d.FreeDate)
	v.SetDefault("string_toc", d.StringTOC)
	v.SetDefault("strict_types", d.StrictTypes)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("include", []string{})
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(ResolvePath(path))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// A missing file just means defaults; config init creates one.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Separator == "" {
		return nil, fmt.Errorf("parsing config: separator must not be empty")
	}

	cfg.Cache.Dir = ExpandHome(cfg.Cache.Dir)
	return &cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, cfg)
}

// Encode writes cfg as YAML with two-space indentation.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "gen-epub-book")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "gen-epub-book")
}
