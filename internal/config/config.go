// Package config loads the xlmerge command line configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes where spreadsheets live and how they are merged.
type Config struct {
	// Folder holds the summary and the source spreadsheets.
	Folder string `yaml:"folder"`
	// Summary is the file name of the summary spreadsheet inside Folder.
	Summary string `yaml:"summary"`
	// Sheet is the nominated sheet every workbook must expose.
	Sheet string `yaml:"sheet"`
	// Patterns select source files by name.
	Patterns []string `yaml:"patterns"`
	// PreserveHiddenRows keeps hidden source rows hidden in the summary.
	PreserveHiddenRows bool `yaml:"preserve_hidden_rows"`
	// Select is an optional expression choosing which eligible files are merged.
	Select string `yaml:"select"`
	// Concurrency bounds parallel validation.
	Concurrency int `yaml:"concurrency"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Folder:      ".",
		Summary:     "_OVERVIEW SUMMARY.xlsx",
		Sheet:       "Sheet1",
		Patterns:    []string{"*.xlsx", "*.xls"},
		Concurrency: 4,
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that required settings are present.
func (c Config) Validate() error {
	var errs []error
	if c.Folder == "" {
		errs = append(errs, errors.New("folder is required"))
	}
	if c.Summary == "" {
		errs = append(errs, errors.New("summary is required"))
	}
	if c.Sheet == "" {
		errs = append(errs, errors.New("sheet is required"))
	}
	if len(c.Patterns) == 0 {
		errs = append(errs, errors.New("at least one pattern is required"))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be positive, got %d", c.Concurrency))
	}
	return errors.Join(errs...)
}
