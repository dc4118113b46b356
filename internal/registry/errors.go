package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPackageNotFound is returned when no package in the registry has the requested name.
	ErrPackageNotFound = errors.New("package not found")

	// ErrMissingName is returned for package records without a name.
	ErrMissingName = errors.New("package record is missing a name")
)

// RegistryFetchError reports a registry source that could not be fetched or
// parsed. The whole aggregation fails with it; there is no partial registry.
type RegistryFetchError struct {
	URL string
	Err error
}

func (e *RegistryFetchError) Error() string {
	return fmt.Sprintf("fetching package list from %s: %v", e.URL, e.Err)
}

func (e *RegistryFetchError) Unwrap() error {
	return e.Err
}

// PackageNotFoundError wraps ErrPackageNotFound with the requested name.
type PackageNotFoundError struct {
	Name string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package '%s' not found", e.Name)
}

func (e *PackageNotFoundError) Unwrap() error {
	return ErrPackageNotFound
}

// HTTPError represents a non-200 response from a registry source.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// SchemaError reports a registry document that does not match the schema.
type SchemaError struct {
	Issues []ValidationIssue
}

func (e *SchemaError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			msgs = append(msgs, issue.Path+": "+issue.Message)
		} else {
			msgs = append(msgs, issue.Message)
		}
	}
	return "invalid registry document: " + strings.Join(msgs, "; ")
}
