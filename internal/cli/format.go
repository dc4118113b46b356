package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/upy-labs/upy/internal/registry"
)

const descriptionWidth = 80

var highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#528CE3")).Bold(true)

// highlight renders every case-insensitive occurrence of pattern in text
// with render, keeping the original casing.
func highlight(text, pattern string, render func(...string) string) string {
	if pattern == "" {
		return text
	}
	r := []rune(text)
	p := []rune(pattern)

	var b strings.Builder
	start := 0
	for i := 0; i+len(p) <= len(r); {
		if equalFold(r[i:i+len(p)], p) {
			b.WriteString(string(r[start:i]))
			b.WriteString(render(string(r[i : i+len(p)])))
			i += len(p)
			start = i
			continue
		}
		i++
	}
	b.WriteString(string(r[start:]))
	return b.String()
}

// excerpt shortens text to width runes around the first match of pattern,
// marking cut ends with "...".
func excerpt(text, pattern string, width int) string {
	r := []rune(text)
	if len(r) <= width {
		return text
	}

	at := indexFold(r, []rune(pattern))
	if at < 0 {
		at = 0
	}
	start := max(0, at-(width-len([]rune(pattern)))/2)
	end := min(len(r), start+width)
	start = max(0, end-width)

	out := string(r[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(r) {
		out += "..."
	}
	return out
}

func indexFold(r, p []rune) int {
	for i := 0; i+len(p) <= len(r); i++ {
		if equalFold(r[i:i+len(p)], p) {
			return i
		}
	}
	return -1
}

func equalFold(a, b []rune) bool {
	for i := range a {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}

// printMatches prints search results with the pattern highlighted in the
// name, in the description and in matching tags.
func printMatches(w io.Writer, pkgs []registry.Package, pattern string, render func(...string) string) {
	if len(pkgs) == 0 {
		fmt.Fprintln(w, "🤷 No matching packages found.")
		return
	}

	q := []rune(pattern)
	for i, p := range pkgs {
		fmt.Fprintf(w, "📦 %s\n", highlight(p.Name, pattern, render))

		if p.Description != "" && indexFold([]rune(p.Description), q) >= 0 {
			fmt.Fprintf(w, "📝 %s\n", highlight(excerpt(p.Description, pattern, descriptionWidth), pattern, render))
		}

		var tags []string
		for _, tag := range p.Tags {
			if indexFold([]rune(tag), q) >= 0 {
				tags = append(tags, highlight(tag, pattern, render))
			}
		}
		if len(tags) > 0 {
			fmt.Fprintf(w, "🔖 [%s]\n", strings.Join(tags, ", "))
		}

		if i < len(pkgs)-1 {
			fmt.Fprintln(w)
		}
	}
}
