package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/leengari/tidytable/internal/logging"
	"github.com/leengari/tidytable/internal/render"
	"github.com/leengari/tidytable/internal/storage"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !render.ValidFormat(c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (want one of %v)", c.OutputFormat, render.Formats)
	}
	if c.CSV.Delimiter != "" && utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	return nil
}

// CSVOptions converts the CSV section into loader options
func (c *Config) CSVOptions() storage.CSVOptions {
	opts := storage.CSVOptions{
		MissingTokens: c.CSV.MissingTokens,
		KeepText:      c.CSV.KeepText,
	}
	if c.CSV.Delimiter != "" {
		opts.Delimiter, _ = utf8.DecodeRuneInString(c.CSV.Delimiter)
	}
	return opts
}
