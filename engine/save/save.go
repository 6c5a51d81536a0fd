// Package save owns the JSON format of the meta-progression record.
// Reading and writing the file is the caller's job; this package only
// encodes, decodes, and defaults.
package save

import (
	"encoding/json"
	"os"

	"github.com/nathoo/dundork/engine/mutator"
	"github.com/nathoo/dundork/types"
)

// DefaultMeta returns a fresh progression record for a first run.
func DefaultMeta() *types.Meta {
	return &types.Meta{
		UnlockedClasses: []string{mutator.DefaultClass},
		LastClass:       mutator.DefaultClass,
	}
}

// Encode serializes the meta record to indented JSON.
func Encode(m *types.Meta) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// Decode parses a meta record, layering the stored values over the
// defaults so missing keys keep sane values.
func Decode(data []byte) (*types.Meta, error) {
	m := DefaultMeta()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	if len(m.UnlockedClasses) == 0 {
		m.UnlockedClasses = []string{mutator.DefaultClass}
	}
	if m.LastClass == "" {
		m.LastClass = mutator.DefaultClass
	}
	return m, nil
}

// LoadFile reads the meta record from path. A missing or unreadable file
// yields the defaults — losing meta-progression must never block a run.
func LoadFile(path string) *types.Meta {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultMeta()
	}
	m, err := Decode(data)
	if err != nil {
		return DefaultMeta()
	}
	return m
}

// WriteFile persists the meta record to path. Errors are returned for the
// caller to report; the game state itself is unaffected.
func WriteFile(path string, m *types.Meta) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
