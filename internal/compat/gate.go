package compat

import (
	"context"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"

	"github.com/upy-labs/upy/internal/board"
	"github.com/upy-labs/upy/internal/registry"
)

// Result is the outcome of a compatibility check. When Compatible is false,
// Required and Actual carry the values to show the user.
type Result struct {
	Compatible bool
	Required   string
	Actual     string
}

// Gate checks packages against a device's runtime.
type Gate struct {
	prober Prober
	logger *log.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithGateLogger sets the logger used for debug output.
func WithGateLogger(l *log.Logger) GateOption {
	return func(g *Gate) {
		g.logger = l
	}
}

// NewGate creates a Gate that probes devices through p.
func NewGate(p Prober, opts ...GateOption) *Gate {
	g := &Gate{
		prober: p,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check evaluates pkg against the runtime on dev. Packages without a
// requirement are compatible and the device is not contacted. Probe errors
// are returned unmodified.
func (g *Gate) Check(ctx context.Context, pkg registry.Package, dev board.Device) (Result, error) {
	required := strings.TrimSpace(pkg.RequiredRuntime())
	if required == "" {
		return Result{Compatible: true}, nil
	}

	raw, err := g.prober.ProbeRuntimeVersion(ctx, dev)
	if err != nil {
		return Result{}, err
	}

	actual, err := parseRuntimeVersion(raw)
	if err != nil {
		return Result{}, &InvalidRuntimeVersionError{Version: raw, Err: err}
	}

	constraint, err := semver.NewConstraint(required)
	if err != nil {
		return Result{}, &InvalidRequirementError{Package: pkg.Name, Requirement: required, Err: err}
	}

	ok := constraint.Check(actual)
	g.logger.Debug("runtime check", "package", pkg.Name, "required", required, "actual", actual.String(), "compatible", ok)

	return Result{
		Compatible: ok,
		Required:   required,
		Actual:     raw,
	}, nil
}

// parseRuntimeVersion strips a leading "v" and parses strictly, so partial
// versions like "1.20" are rejected.
func parseRuntimeVersion(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.StrictNewVersion(version)
}
