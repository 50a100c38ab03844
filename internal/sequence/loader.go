package sequence

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads one sequence definition from a YAML file.
func LoadFile(path string) (*Sequence, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seq Sequence
	if err := yaml.Unmarshal(b, &seq); err != nil {
		return nil, err
	}
	if seq.ID == "" {
		return nil, errors.New("sequence file missing id")
	}
	return &seq, nil
}

// SaveFile writes a sequence definition to a YAML file. Lifecycle callbacks
// are not serialized.
func SaveFile(path string, seq *Sequence) error {
	b, err := yaml.Marshal(seq)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
