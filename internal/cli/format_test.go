package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/upy-labs/upy/internal/registry"
)

func brackets(s ...string) string { return "[" + strings.Join(s, "") + "]" }

func TestHighlight(t *testing.T) {
	tests := []struct {
		text    string
		pattern string
		want    string
	}{
		{"arduino-iot-cloud", "iot", "arduino-[iot]-cloud"},
		{"SenML encoder", "senml", "[SenML] encoder"},
		{"aaa", "a", "[a][a][a]"},
		{"no match", "xyz", "no match"},
		{"empty pattern", "", "empty pattern"},
		{"café au lait", "É", "caf[é] au lait"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, highlight(tt.text, tt.pattern, brackets), tt.text)
	}
}

func TestExcerpt(t *testing.T) {
	short := "A short description"
	assert.Equal(t, short, excerpt(short, "short", 80))

	long := strings.Repeat("a", 100) + "needle" + strings.Repeat("b", 100)
	got := excerpt(long, "needle", 80)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Contains(t, got, "needle")
	assert.Len(t, []rune(strings.Trim(got, ".")), 80)

	head := "needle" + strings.Repeat("x", 200)
	got = excerpt(head, "needle", 80)
	assert.True(t, strings.HasPrefix(got, "needle"))
	assert.True(t, strings.HasSuffix(got, "..."))

	tail := strings.Repeat("x", 200) + "needle"
	got = excerpt(tail, "NEEDLE", 80)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "needle"))
}

func TestPrintMatches(t *testing.T) {
	pkgs := []registry.Package{
		{Name: "arduino-iot-cloud", Description: "Arduino IoT Cloud client", Tags: []string{"iot", "cloud"}},
		{Name: "senml", Description: "SenML encoder", Tags: []string{"IoT-data"}},
	}

	var buf bytes.Buffer
	printMatches(&buf, pkgs, "iot", brackets)

	want := "📦 arduino-[iot]-cloud\n" +
		"📝 Arduino [IoT] Cloud client\n" +
		"🔖 [[iot]]\n" +
		"\n" +
		"📦 senml\n" +
		"🔖 [[IoT]-data]\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintMatchesEmpty(t *testing.T) {
	var buf bytes.Buffer
	printMatches(&buf, nil, "x", brackets)
	assert.Equal(t, "🤷 No matching packages found.\n", buf.String())
}
