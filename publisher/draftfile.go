package publisher

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDraft reads a YAML draft saved by SaveDraft.
func LoadDraft(path string) (*Draft, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open draft: %w", err)
	}
	defer file.Close()
	return ReadDraft(file)
}

// ReadDraft decodes a YAML draft from r.
func ReadDraft(r io.Reader) (*Draft, error) {
	d := &Draft{}
	if err := yaml.NewDecoder(r).Decode(d); err != nil {
		if err == io.EOF {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}
	return d, nil
}

// SaveDraft writes the draft as YAML. Saving is always an explicit step;
// nothing in this package persists a draft on its own.
func (d *Draft) SaveDraft(path string) error {
	buf := &bytes.Buffer{}
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return nil
}
