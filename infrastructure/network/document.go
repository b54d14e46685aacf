// Package network reads and writes whole subway networks as YAML.
package network

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned when a network document is malformed.
var ErrInvalidDocument = errors.New("invalid network document")

// Document is the YAML form of a network.
type Document struct {
	Stations []string `yaml:"stations,omitempty"`
	Lines    []Line   `yaml:"lines"`
}

// Line is a line and its sections. When exported the sections are in
// travel order.
type Line struct {
	Name     string    `yaml:"name"`
	Color    string    `yaml:"color"`
	Sections []Section `yaml:"sections"`
}

// Section connects two stations by name.
type Section struct {
	Up     string `yaml:"up"`
	Down   string `yaml:"down"`
	Length int    `yaml:"length"`
}

// Decode reads a document. Unknown fields are rejected.
func Decode(r io.Reader) (Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// Encode writes a document.
func Encode(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode network: %w", err)
	}
	return enc.Close()
}

// Validate checks the document shape. Whether sections fit together is
// left to the line engine during import.
func (d Document) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(d.Lines))

	for i, l := range d.Lines {
		name := strings.TrimSpace(l.Name)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("line %d: name is required", i+1))
		case seen[name]:
			errs = append(errs, fmt.Errorf("line %q: listed twice", name))
		}
		seen[name] = true

		if len(l.Sections) == 0 {
			errs = append(errs, fmt.Errorf("line %q: at least one section is required", name))
		}
		for j, s := range l.Sections {
			if strings.TrimSpace(s.Up) == "" || strings.TrimSpace(s.Down) == "" {
				errs = append(errs, fmt.Errorf("line %q section %d: both stations are required", name, j+1))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(errs...))
	}
	return nil
}
