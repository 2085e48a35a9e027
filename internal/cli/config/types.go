// Package config provides configuration management for the pkgmanifest CLI.
//
// Values are layered with koanf. Precedence (highest to lowest):
// flags > PKGMANIFEST_* env vars > PKGMANIFEST_* keys in .env > pkgmanifest.yaml > defaults.
package config

import (
	"log/slog"

	"github.com/leapstack-labs/pkgmanifest/internal/manifest"
)

// Config holds all CLI configuration options.
type Config struct {
	Manifest     string `koanf:"manifest"`
	SourceExt    string `koanf:"source_ext"`
	Strict       bool   `koanf:"strict"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultManifest  = "Cargo.toml"
	DefaultSourceExt = manifest.DefaultSourceExt
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// ConfigFileNames are searched, in order, in the working directory.
var ConfigFileNames = []string{"pkgmanifest.yaml", "pkgmanifest.yml"}

// CompileOptions converts the configuration into manifest compile options.
func (c *Config) CompileOptions(logger *slog.Logger) []manifest.Option {
	opts := []manifest.Option{
		manifest.WithLogger(logger),
		manifest.WithSourceExt(c.SourceExt),
	}
	if c.Strict {
		opts = append(opts, manifest.WithStrict())
	}
	return opts
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Manifest:     DefaultManifest,
		SourceExt:    DefaultSourceExt,
		OutputFormat: DefaultOutput,
	}
}
