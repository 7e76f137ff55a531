package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Store handles persistence of settings to a YAML file.
type Store struct {
	path string
}

// NewStore creates a new settings store.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load reads settings from the file. A missing file yields the defaults.
func (s *Store) Load() (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return Settings{}, err
	}

	// Unmarshalling over the defaults keeps them for keys the file omits.
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// Save writes settings to the file.
func (s *Store) Save(settings Settings) error {
	bytes, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, bytes, 0644)
}
