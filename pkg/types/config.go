package types

import (
	"errors"
	"path/filepath"
	"strings"
)

// Config holds the resolved settings for a coven invocation.
type Config struct {
	LineageFile    string `json:"lineage_file" yaml:"lineage_file"`
	MillennialYear int    `json:"millennial_year" yaml:"millennial_year"`
}

// Supported lineage file extensions.
const (
	FormatYAML  = ".yaml"
	FormatYML   = ".yml"
	FormatJSONL = ".jsonl"
)

// Config validation errors.
var (
	ErrLineageFileEmpty  = errors.New("lineage file must not be empty")
	ErrUnsupportedFormat = errors.New("unsupported lineage file format")
	ErrYearInvalid       = errors.New("millennial year must not be negative")
)

var knownFormats = map[string]bool{
	FormatYAML:  true,
	FormatYML:   true,
	FormatJSONL: true,
}

// IsSupportedFormat reports whether path has a lineage file extension coven
// can decode.
func IsSupportedFormat(path string) bool {
	return knownFormats[strings.ToLower(filepath.Ext(path))]
}

// DefaultConfig returns a Config with MillennialYear set and no lineage file.
func DefaultConfig() Config {
	return Config{MillennialYear: MillennialYear}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.LineageFile == "" {
		return ErrLineageFileEmpty
	}
	if !IsSupportedFormat(c.LineageFile) {
		return ErrUnsupportedFormat
	}
	if c.MillennialYear < 0 {
		return ErrYearInvalid
	}
	return nil
}
