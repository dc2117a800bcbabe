package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FiltersFile stores the display filter chosen for each list.
const FiltersFile = "filters.yaml"

// FiltersPath returns the path to the saved list filters.
func (c *Config) FiltersPath() string {
	return filepath.Join(c.Dir, FiltersFile)
}

// LoadFilters reads the saved filters, keyed by list ID.
// A missing file yields an empty map.
func (c *Config) LoadFilters() (map[string]string, error) {
	filters := map[string]string{}
	data, err := os.ReadFile(c.FiltersPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return filters, nil
		}
		return nil, fmt.Errorf("read filters: %w", err)
	}
	if err := yaml.Unmarshal(data, &filters); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FiltersFile, err)
	}
	if filters == nil {
		filters = map[string]string{}
	}
	return filters, nil
}

// SaveFilters writes the filters, keyed by list ID.
func (c *Config) SaveFilters(filters map[string]string) error {
	data, err := yaml.Marshal(filters)
	if err != nil {
		return err
	}
	if err := c.EnsureDir(); err != nil {
		return err
	}
	return os.WriteFile(c.FiltersPath(), data, 0600)
}
