package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned for a document without sections
var ErrEmptyDocument = errors.New("document has no sections")

//go:embed default.yaml
var defaultDocument []byte

// Parse decodes and validates a YAML document; unknown fields are rejected
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads path, or the embedded default document when path is empty
func Load(path string) (*Document, error) {
	if path == "" {
		return Parse(defaultDocument)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (d *Document) validate() error {
	if len(d.Sections) == 0 {
		return ErrEmptyDocument
	}
	seen := make(map[string]struct{}, len(d.Sections))
	for i := range d.Sections {
		s := &d.Sections[i]
		s.ID = strings.TrimSpace(s.ID)
		if s.ID == "" {
			return fmt.Errorf("section %d: missing id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("section %q: duplicate id", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
