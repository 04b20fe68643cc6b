package spec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format identifies a payload encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForFile picks the payload format from a filename extension.
func FormatForFile(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported payload extension: %s", filepath.Ext(filename))
	}
}

// DecodePayload parses payload bytes in the given format and validates the
// result.
func DecodePayload(data []byte, format Format) (*Payload, error) {
	var p Payload
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode json payload: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode yaml payload: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown payload format: %q", format)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPayload reads and decodes a payload file, choosing the format by
// extension.
func LoadPayload(path string) (*Payload, error) {
	format, err := FormatForFile(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return DecodePayload(data, format)
}

// Validate checks the payload for structural problems.
func (p *Payload) Validate() error {
	if len(p.Sections) == 0 {
		return fmt.Errorf("payload has no sections")
	}
	for i, s := range p.Sections {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("section %d has an empty title", i)
		}
	}
	return nil
}
