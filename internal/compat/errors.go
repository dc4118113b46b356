package compat

import "fmt"

// InvalidRuntimeVersionError means the device reported a version that is
// not a well-formed semantic version. The probe is broken; this is fatal.
type InvalidRuntimeVersionError struct {
	Version string
	Err     error
}

func (e *InvalidRuntimeVersionError) Error() string {
	return fmt.Sprintf("device reported invalid runtime version %q: %v", e.Version, e.Err)
}

func (e *InvalidRuntimeVersionError) Unwrap() error {
	return e.Err
}

// InvalidRequirementError means a package declares a runtime range that
// cannot be parsed.
type InvalidRequirementError struct {
	Package     string
	Requirement string
	Err         error
}

func (e *InvalidRequirementError) Error() string {
	return fmt.Sprintf("package %s declares invalid runtime requirement %q: %v", e.Package, e.Requirement, e.Err)
}

func (e *InvalidRequirementError) Unwrap() error {
	return e.Err
}
