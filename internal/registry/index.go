package registry

import "strings"

// Index answers queries over an aggregated package list. Order is the
// aggregate order: source order, then document order.
type Index struct {
	packages []Package
}

// NewIndex creates an Index over pkgs. The slice is copied.
func NewIndex(pkgs []Package) *Index {
	return &Index{packages: append([]Package(nil), pkgs...)}
}

// Len returns the number of packages, duplicates included.
func (i *Index) Len() int { return len(i.packages) }

// All returns every package in aggregate order.
func (i *Index) All() []Package {
	return append([]Package{}, i.packages...)
}

// FindByName returns the first package named exactly name (case-sensitive).
func (i *Index) FindByName(name string) (Package, error) {
	for _, p := range i.packages {
		if p.Name == name {
			return p, nil
		}
	}
	return Package{}, &PackageNotFoundError{Name: name}
}

// Search returns the packages whose name, description or any tag contains
// pattern, ignoring case. An empty pattern matches everything. No match
// yields an empty, non-nil slice.
func (i *Index) Search(pattern string) []Package {
	if pattern == "" {
		return i.All()
	}

	q := strings.ToLower(pattern)
	matches := []Package{}
	for _, p := range i.packages {
		if Matches(p, q) {
			matches = append(matches, p)
		}
	}
	return matches
}

// Matches reports whether p matches the lowercased query q.
func Matches(p Package, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
