package registry

import (
	"maps"
	"slices"
	"strings"
)

// Package is one entry of a registry document.
type Package struct {
	Name        string         `yaml:"name" json:"name"`
	URL         string         `yaml:"url,omitempty" json:"url,omitempty"`
	Version     string         `yaml:"version,omitempty" json:"version,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Tags        []string       `yaml:"tags,omitempty" json:"tags,omitempty"`
	Author      string         `yaml:"author,omitempty" json:"author,omitempty"`
	License     string         `yaml:"license,omitempty" json:"license,omitempty"`
	Docs        string         `yaml:"docs,omitempty" json:"docs,omitempty"`
	Runtime     string         `yaml:"runtime,omitempty" json:"runtime,omitempty"`
	Overrides   map[string]any `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// NewPackage validates a decoded record and returns a detached copy with
// every optional field at its typed default. Records without a name are
// rejected with ErrMissingName.
func NewPackage(p Package) (Package, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Package{}, ErrMissingName
	}
	p.Tags = slices.Clone(p.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Overrides = maps.Clone(p.Overrides)
	return p, nil
}

// RequiredRuntime returns the runtime version range the package declares,
// taken from the runtime field or, failing that, from overrides.runtime.
// Empty means any runtime is accepted.
func (p Package) RequiredRuntime() string {
	if r := strings.TrimSpace(p.Runtime); r != "" {
		return r
	}
	if r, ok := p.Overrides["runtime"].(string); ok {
		return strings.TrimSpace(r)
	}
	return ""
}

// InstallReference returns what the packager should install. Packages native
// to the micropython-lib index carry no url; their name is the locator.
func (p Package) InstallReference() string {
	if p.URL != "" {
		return p.URL
	}
	return p.Name
}

// Descriptor returns the package descriptor override, or nil when the
// overrides list neither urls nor deps.
func (p Package) Descriptor() map[string]any {
	_, urls := p.Overrides["urls"]
	_, deps := p.Overrides["deps"]
	if !urls && !deps {
		return nil
	}
	return maps.Clone(p.Overrides)
}
