package config

import (
	"fmt"
	"strings"
)

// Encodings lists the output encodings shown in usage. Any IANA charset
// name is also accepted.
var Encodings = []string{"UTF-8", "ASCII7", "Latin1", "Latin2", "Windows-1252", "MacRoman", "KOI8-R", "UTF-16", "UTF-16BE", "UTF-16LE"}

const (
	DefaultEngine   = "ledongthuc"
	DefaultEncoding = "UTF-8"
)

// engineDescriptions back GetEngineDescription. Keys match extract's
// registry names.
var engineDescriptions = map[string]string{
	"ledongthuc": "github.com/ledongthuc/pdf - font-aware plain text (default)",
	"rsc":        "rsc.io/pdf - glyph positions, or show operators when fonts lack widths",
	"pdfcpu":     "pdfcpu - content-stream string literals, ASCII only",
}

// GetEngineDescription returns a one-line description of an engine
func GetEngineDescription(name string) string {
	if d, ok := engineDescriptions[strings.ToLower(name)]; ok {
		return d
	}
	return "unknown engine"
}

// PageWindow validates a --first/--last pair. Zero means unbounded.
func PageWindow(first, last int) error {
	switch {
	case first < 0 || last < 0:
		return fmt.Errorf("page numbers must be positive")
	case last > 0 && first > last:
		return fmt.Errorf("first page %d is after last page %d", first, last)
	}
	return nil
}

// GetPageWindowDescription returns a human-readable page window
func GetPageWindowDescription(first, last int) string {
	switch {
	case first <= 1 && last == 0:
		return "all pages"
	case last == 0:
		return fmt.Sprintf("pages %d-end", first)
	case first <= 1:
		return fmt.Sprintf("pages 1-%d", last)
	default:
		return fmt.Sprintf("pages %d-%d", first, last)
	}
}
