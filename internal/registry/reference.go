package registry

import (
	"regexp"
	"strings"
)

// schemeLike matches a URI scheme or VCS shorthand such as "github:" or "https:".
var schemeLike = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// ReferencePolicy decides whether an install argument is a direct reference
// to installable source (bypassing the registry) or a registry package name.
// Direct references skip the runtime compatibility check, so the boundary is
// kept configurable.
type ReferencePolicy struct {
	// Prefixes mark direct references, compared case-insensitively.
	Prefixes []string
	// Suffixes mark direct references to single files or descriptors.
	Suffixes []string
	// AnyScheme treats every scheme-like prefix ("xyz:") as a direct reference.
	AnyScheme bool
}

// DefaultReferencePolicy returns the policy used when nothing is configured.
func DefaultReferencePolicy() ReferencePolicy {
	return ReferencePolicy{
		Prefixes:  []string{"github:", "gitlab:", "http://", "https://", "file://"},
		Suffixes:  []string{".py", ".mpy", ".json"},
		AnyScheme: true,
	}
}

// IsCustomReference reports whether token should be installed as given
// instead of being looked up in the registry.
func (p ReferencePolicy) IsCustomReference(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	lower := strings.ToLower(token)

	for _, prefix := range p.Prefixes {
		if prefix != "" && strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	if p.AnyScheme && schemeLike.MatchString(token) {
		return true
	}

	// A version pin may follow the file name: "lib/foo.py@v1".
	name, _ := SplitVersionPin(lower)
	for _, suffix := range p.Suffixes {
		if suffix != "" && strings.HasSuffix(name, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// SplitVersionPin splits "name@version" into its parts. Tokens without a pin,
// or starting with "@", are returned unchanged with an empty version.
func SplitVersionPin(token string) (name, version string) {
	idx := strings.LastIndex(token, "@")
	if idx <= 0 || idx == len(token)-1 {
		return token, ""
	}
	return token[:idx], token[idx+1:]
}
