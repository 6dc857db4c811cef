package config

import "time"

// Config is the top-level gen-epub-book configuration. Every field has a
// matching command-line flag that takes precedence over it.
type Config struct {
	// Separator splits descriptor lines into key and value.
	Separator   string `mapstructure:"separator" yaml:"separator"`
	FreeDate    bool   `mapstructure:"free_date" yaml:"free_date"`
	StringTOC   bool   `mapstructure:"string_toc" yaml:"string_toc"`
	StrictTypes bool   `mapstructure:"strict_types" yaml:"strict_types"`
	Verbose     bool   `mapstructure:"verbose" yaml:"verbose"`
	// Include lists extra include directories as [name=]path specifiers,
	// searched after the ones given on the command line.
	Include []string `mapstructure:"include" yaml:"include,omitempty"`

	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`
}

// FetchConfig holds settings for network-sourced elements.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// CacheConfig controls the on-disk cache of fetched resources.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir     string `mapstructure:"dir" yaml:"dir"`
}
