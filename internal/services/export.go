// Package services – Export
//
// Export renders a template collection as a downloadable artifact. It is a
// read-only projection and has no effect on the store.
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tbourn/moreply-backend/internal/domain"
)

// ExportFilename is the attachment name used for downloads.
const ExportFilename = "moreply-templates.txt"

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ParseFormat maps a query value onto a format; blank means JSON.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Export serializes templates as a 2-space indented JSON array (the stored
// layout) or as YAML. An empty collection yields ErrNothingToExport.
func Export(templates []domain.Template, format string) ([]byte, error) {
	if len(templates) == 0 {
		return nil, ErrNothingToExport
	}
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	if f == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(templates); err != nil {
			return nil, fmt.Errorf("export yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("export yaml: %w", err)
		}
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(templates); err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
