package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	yamlv3 "gopkg.in/yaml.v3"
)

// UIState is what the TUI remembers between runs.
type UIState struct {
	LastAuthorID int `yaml:"last_author_id"`
}

// LoadUIState reads the UI state at path. A missing file is an empty state.
func LoadUIState(path string) (UIState, error) {
	var st UIState
	if path == "" {
		return st, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("reading ui state %s: %w", path, err)
	}
	if err := yamlv3.Unmarshal(data, &st); err != nil {
		return UIState{}, fmt.Errorf("parsing ui state %s: %w", path, err)
	}
	return st, nil
}

// SaveUIState writes st to path, creating its directory.
func SaveUIState(path string, st UIState) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating ui state dir: %w", err)
	}
	data, err := yamlv3.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshalling ui state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing ui state to %s: %w", path, err)
	}
	return nil
}
