package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCustomReferenceDefaultPolicy(t *testing.T) {
	policy := DefaultReferencePolicy()

	tests := []struct {
		token string
		want  bool
	}{
		{"github:acme/lib", true},
		{"github:acme/lib@main", true},
		{"GitHub:acme/lib", true},
		{"gitlab:acme/lib", true},
		{"https://example.com/x.py", true},
		{"http://example.com/package.json", true},
		{"file:///tmp/pkg/package.json", true},
		{"bitbucket:acme/lib", true},
		{"lib/sensor.py", true},
		{"lib/sensor.mpy", true},
		{"./pkg/package.json", true},
		{"lib/sensor.py@v2", true},
		{"micropython-ujson", false},
		{"micropython-ujson@1.0.0", false},
		{"arduino-iot-cloud", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.IsCustomReference(tt.token))
		})
	}
}

func TestIsCustomReferenceConfigurablePolicy(t *testing.T) {
	strict := ReferencePolicy{Prefixes: []string{"github:"}}

	assert.True(t, strict.IsCustomReference("github:acme/lib"))
	assert.False(t, strict.IsCustomReference("gitlab:acme/lib"))
	assert.False(t, strict.IsCustomReference("lib/sensor.py"))

	none := ReferencePolicy{}
	assert.False(t, none.IsCustomReference("https://example.com/x.py"))
}

func TestSplitVersionPin(t *testing.T) {
	tests := []struct {
		token, name, version string
	}{
		{"aioble", "aioble", ""},
		{"aioble@0.5.0", "aioble", "0.5.0"},
		{"@scoped", "@scoped", ""},
		{"trailing@", "trailing@", ""},
		{"a@b@c", "a@b", "c"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			name, version := SplitVersionPin(tt.token)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.version, version)
		})
	}
}
