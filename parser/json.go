// Package parser handles JSON import/export for component catalogs.
//
// A catalog document names the typed components available for synthesis
// and the target signature the sketch must satisfy:
//
//	{
//	  "components": [
//	    {"name": "add", "inputs": {"int": ["a", "b"]}, "output": "int"},
//	    {"name": "log", "inputs": {"string": ["msg"]}}
//	  ],
//	  "target": {"inputs": {"int": ["x", "y"]}, "output": "int"}
//	}
//
// A component without an "output" field returns nothing and is given the
// sentinel "None" output type.
package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-synth/catalog"
)

// Document is a parsed catalog file.
type Document struct {
	Components []catalog.Component `json:"components"`
	Target     catalog.Signature   `json:"target"`
}

// FromJSON parses a catalog document from JSON bytes.
func FromJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ToJSON serializes the document with indentation.
func (d *Document) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// LoadFile reads and parses a catalog file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return FromJSON(data)
}

// SaveFile writes the document to a file.
func (d *Document) SaveFile(path string) error {
	data, err := d.ToJSON()
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

func (d *Document) validate() error {
	if len(d.Components) == 0 {
		return fmt.Errorf("catalog has no components")
	}
	seen := make(map[string]bool, len(d.Components))
	for i, c := range d.Components {
		if c.Name == "" {
			return fmt.Errorf("component %d: %w", i, catalog.ErrUnnamedComponent)
		}
		if seen[c.Name] {
			return fmt.Errorf("component %q declared twice", c.Name)
		}
		seen[c.Name] = true
	}
	if d.Target.Output == "" {
		return fmt.Errorf("target signature has no output type")
	}
	return nil
}
