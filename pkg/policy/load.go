package policy

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode reads a YAML policy document. Keys that do not map onto a section
// field are rejected so a misspelt section never silently disappears.
// Decode does not validate the result.
func Decode(r io.Reader) (*Policy, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Policy
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty policy document")
		}
		return nil, fmt.Errorf("failed to decode policy: %w", err)
	}
	return &p, nil
}

// LoadFile decodes the YAML policy document at path.
func LoadFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Encode writes p as a YAML document.
func (p *Policy) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode policy: %w", err)
	}
	return enc.Close()
}
