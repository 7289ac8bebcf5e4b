// Package config reads the batch updater's configuration from the process
// environment. All settings flow through environment variables so the tool
// drops into a container without flag plumbing; a local .env file is honored
// for development runs.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
)

// Config is the full configuration for one batch run, constructed once at
// startup and passed by value into the processing pipeline.
type Config struct {
	// Directory is the root of the tree to sweep for EPUB files.
	Directory string `env:"DIRECTORY"`

	// Template is the filename pattern used to extract metadata fields.
	Template string `env:"TEMPLATE"`

	// Title, Description and Subject are output templates for the
	// corresponding metadata fields. Empty means built-in default (Title,
	// Subject) or leave untouched (Description).
	Title       string `env:"TITLE"`
	Description string `env:"DESCRIPTION"`
	Subject     string `env:"SUBJECT"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	DryRun   bool   `env:"DRY_RUN" envDefault:"false"`
}

// Load parses the environment into a Config. It does not validate; call
// Validate before running a sweep.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a batch run.
func (c Config) Validate() error {
	if c.Directory == "" {
		return fmt.Errorf("DIRECTORY is required")
	}
	if c.Template == "" {
		return fmt.Errorf("TEMPLATE is required")
	}
	info, err := os.Stat(c.Directory)
	if err != nil {
		return fmt.Errorf("DIRECTORY %s: %w", c.Directory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("DIRECTORY %s is not a directory", c.Directory)
	}
	return nil
}

// Usage describes the environment contract for error output.
func Usage() string {
	return `Required:
  DIRECTORY    Path to directory containing EPUB files
  TEMPLATE     Filename template pattern

Optional:
  TITLE        Title template (supports {author}, {type}, {year}, {ausgabe}, {month}, {day})
  SUBJECT      Subject template (same placeholders)
  DESCRIPTION  Description template (same placeholders)
  LOG_LEVEL    debug, info, warn or error (default info)
  DRY_RUN      Report changes without writing files

Example TEMPLATE: {author} {type} {year} - Ausgabe {ausgabe} ({year}-{month}-{day})
Example TITLE:    {ausgabe}/{year[-2:]}
Example SUBJECT:  {author} - {type} {ausgabe}/{year}`
}
