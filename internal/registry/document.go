package registry

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// document is the top-level shape of a registry file.
type document struct {
	Packages []Package `yaml:"packages"`
}

// ParseDocument validates a registry document and returns its packages in
// document order.
func ParseDocument(data []byte) ([]Package, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding packages: %w", err)
	}

	packages := make([]Package, 0, len(doc.Packages))
	for i, raw := range doc.Packages {
		p, err := NewPackage(raw)
		if err != nil {
			return nil, fmt.Errorf("package #%d: %w", i+1, err)
		}
		packages = append(packages, p)
	}
	return packages, nil
}
