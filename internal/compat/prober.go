package compat

import (
	"context"

	"github.com/upy-labs/upy/internal/board"
)

// Prober reads the runtime version from a connected device.
//
//go:generate mockgen -source=prober.go -destination=mocks/mock_prober.go -package=mocks
type Prober interface {
	// ProbeRuntimeVersion returns the version string reported by the device.
	ProbeRuntimeVersion(ctx context.Context, dev board.Device) (string, error)
}
