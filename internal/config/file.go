package config

import (
	"fmt"

	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"go.yaml.in/yaml/v3"
)

// Marshal renders the configuration in config-file form.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to the project config file, creating the
// rule directory when needed.
func Save(projectDir string, c *Config) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := platform.WriteFile(FilePath(projectDir), string(data)); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
