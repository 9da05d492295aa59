// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// GenerateConfig holds settings for the generate stage.
type GenerateConfig struct {
	// Extensions selects which files of the image directory are processed
	// (default ".jpg", ".jpeg"). Matching is case-insensitive.
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Template is the path of the template file holding the
	// ConfigurationRecord. Empty means a new, empty record.
	Template string `json:"template" yaml:"template"`

	// KeepGoing isolates per-image failures instead of aborting the batch
	// on the first one.
	KeepGoing bool `json:"keep_going" yaml:"keep_going"`

	// Indent is the number of spaces per nesting level in written
	// documents (default 2, a negative value writes one line).
	Indent int `json:"indent" yaml:"indent"`
}

// LedgerConfig holds settings for the run ledger.
type LedgerConfig struct {
	// Enabled records every generate run in the ledger.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding the ledger database.
	Dir string `json:"dir" yaml:"dir"`
}

// AppConfig groups all configuration for the CLI.
type AppConfig struct {
	Generate GenerateConfig `json:"generate" yaml:"generate"`
	Ledger   LedgerConfig   `json:"ledger" yaml:"ledger"`
	LogLevel string         `json:"log_level" yaml:"log_level"`
}
