package install

import (
	"context"

	"github.com/upy-labs/upy/internal/board"
	"github.com/upy-labs/upy/internal/compat"
	"github.com/upy-labs/upy/internal/registry"
)

// PackageOptions carries the optional parts of a packager request.
type PackageOptions struct {
	// Version pins the installed version. Empty installs the default.
	Version string
	// Target is the directory on the device. Empty uses the device default.
	Target string
	// Descriptor replaces the package.json fetched from the source.
	Descriptor map[string]any
}

// Packager transfers a package onto a device.
//
//go:generate mockgen -source=packager.go -destination=mocks/mock_packager.go -package=mocks
type Packager interface {
	PackageAndInstall(ctx context.Context, port, reference string, opts PackageOptions) error
}

// Finder looks packages up by exact name.
type Finder interface {
	FindByName(name string) (registry.Package, error)
}

// Checker decides whether a package can run on a device.
type Checker interface {
	Check(ctx context.Context, pkg registry.Package, dev board.Device) (compat.Result, error)
}
