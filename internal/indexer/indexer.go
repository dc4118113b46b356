package indexer

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"go.yaml.in/yaml/v3"

	"github.com/upy-labs/upy/internal/registry"
)

const (
	packageJSON = "package.json"
	manifestPy  = "manifest.py"
)

// descriptionRe extracts the description="..." argument of metadata() in a
// manifest.py.
var descriptionRe = regexp.MustCompile(`description="(.*?)"`)

// Result is the outcome of a scan.
type Result struct {
	Packages []registry.Package
	// Warnings lists files that could not be read. They do not fail the scan.
	Warnings []string
}

// Scan walks root and returns one package per directory that contains a
// package.json or a manifest.py. The directory name is used as both the
// package name and its url.
func Scan(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	res := &Result{Packages: []registry.Package{}}
	seen := make(map[string]int) // directory -> index in res.Packages

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			res.Warnings = append(res.Warnings, err.Error())
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || (d.Name() != packageJSON && d.Name() != manifestPy) {
			return nil
		}

		dir := filepath.Dir(path)
		idx, ok := seen[dir]
		if !ok {
			name := filepath.Base(dir)
			res.Packages = append(res.Packages, registry.Package{Name: name, URL: name})
			idx = len(res.Packages) - 1
			seen[dir] = idx
		}

		if d.Name() == manifestPy {
			desc, err := readDescription(path)
			if err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("reading %s: %v", path, err))
				return nil
			}
			if desc != "" {
				res.Packages[idx].Description = desc
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return res, nil
}

func readDescription(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if m := descriptionRe.FindSubmatch(data); m != nil {
		return string(m[1]), nil
	}
	return "", nil
}

// Encode renders packages as a registry document. The output is checked
// against the registry schema before it is returned.
func Encode(pkgs []registry.Package) ([]byte, error) {
	doc := struct {
		Packages []registry.Package `yaml:"packages"`
	}{Packages: pkgs}
	if doc.Packages == nil {
		doc.Packages = []registry.Package{}
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding registry document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding registry document: %w", err)
	}

	if err := registry.Validate(buf.Bytes()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write scans root and writes the resulting document to output.
func Write(root, output string) (*Result, error) {
	res, err := Scan(root)
	if err != nil {
		return nil, err
	}
	data, err := Encode(res.Packages)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", output, err)
	}
	return res, nil
}
