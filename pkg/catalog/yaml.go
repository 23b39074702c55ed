package catalog

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the on-disk shape of a permission definitions file.
type yamlDocument struct {
	Permissions []Permission `yaml:"permissions"`
}

// LoadYAML registers every permission from a YAML definitions document.
// Identifiers already present in the catalog are skipped, which makes
// loading the same document on every process start safe.
func (c *Catalog) LoadYAML(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read permission definitions: %w", err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse permission definitions: %w", err)
	}

	for _, p := range doc.Permissions {
		if err := c.Register(p.ID, p.Category, p.Description); err != nil {
			if errors.Is(err, ErrDuplicatePermission) {
				continue
			}
			return err
		}
	}

	return nil
}
