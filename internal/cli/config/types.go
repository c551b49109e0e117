// Package config provides configuration management for the tidy CLI.
package config

// CSVConfig controls how CSV sources are read
type CSVConfig struct {
	Delimiter     string   `koanf:"delimiter"`
	MissingTokens []string `koanf:"missing"`
	KeepText      bool     `koanf:"keep_text"`
}

// Config holds all CLI configuration options.
type Config struct {
	LogLevel     string    `koanf:"log_level"`
	SeqURL       string    `koanf:"seq_url"`
	OutputFormat string    `koanf:"output"`
	SaveDir      string    `koanf:"save_dir"`
	SQLitePath   string    `koanf:"sqlite"`
	Verbose      bool      `koanf:"verbose"`
	CSV          CSVConfig `koanf:"csv"`
}

// Default configuration values
const (
	DefaultLogLevel = "info"
	DefaultOutput   = "text"
	DefaultFileName = "tidy.yaml"
)
