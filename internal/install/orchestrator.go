package install

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/upy-labs/upy/internal/board"
	"github.com/upy-labs/upy/internal/registry"
)

// Status is the result of a single install request that did not fail.
type Status int

const (
	StatusInstalled Status = iota
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Mismatch describes a package whose runtime requirement the device does
// not satisfy.
type Mismatch struct {
	Package  registry.Package
	Required string
	Actual   string
}

// ConfirmFunc is asked whether to install despite a runtime mismatch.
// Returns true to proceed.
type ConfirmFunc func(ctx context.Context, m Mismatch) (bool, error)

// Outcome reports what happened to one install request.
type Outcome struct {
	// Reference is the string handed to the packager, or the request as
	// given when the packager was not called.
	Reference string
	// Package is nil for direct references.
	Package  *registry.Package
	Status   Status
	Mismatch *Mismatch
}

// Orchestrator resolves install requests and delegates them to a Packager.
type Orchestrator struct {
	finder   Finder
	gate     Checker
	packager Packager
	policy   registry.ReferencePolicy
	confirm  ConfirmFunc
	target   string
	logger   *log.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConfirm sets the mismatch confirmation callback. Without one, every
// mismatch is declined.
func WithConfirm(fn ConfirmFunc) Option {
	return func(o *Orchestrator) {
		o.confirm = fn
	}
}

// WithReferencePolicy sets how direct references are told apart from
// registry names.
func WithReferencePolicy(p registry.ReferencePolicy) Option {
	return func(o *Orchestrator) {
		o.policy = p
	}
}

// WithTarget sets the install directory on the device.
func WithTarget(dir string) Option {
	return func(o *Orchestrator) {
		o.target = dir
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(finder Finder, gate Checker, packager Packager, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		finder:   finder,
		gate:     gate,
		packager: packager,
		policy:   registry.DefaultReferencePolicy(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Install installs reference onto dev. Direct references go straight to the
// packager. Registry names (optionally pinned as name@version) are resolved,
// gated and then installed.
func (o *Orchestrator) Install(ctx context.Context, reference string, dev board.Device) (Outcome, error) {
	reference = strings.TrimSpace(reference)

	if o.policy.IsCustomReference(reference) {
		o.logger.Debug("direct reference", "reference", reference)
		if err := o.delegate(ctx, dev, reference, PackageOptions{Target: o.target}); err != nil {
			return Outcome{Reference: reference}, err
		}
		return Outcome{Reference: reference, Status: StatusInstalled}, nil
	}

	name, version := registry.SplitVersionPin(reference)
	pkg, err := o.finder.FindByName(name)
	if err != nil {
		return Outcome{Reference: reference}, err
	}
	return o.InstallPackage(ctx, pkg, version, dev)
}

// InstallPackage installs an already resolved registry package. version may
// be empty.
func (o *Orchestrator) InstallPackage(ctx context.Context, pkg registry.Package, version string, dev board.Device) (Outcome, error) {
	ref := pkg.InstallReference()
	out := Outcome{Reference: ref, Package: &pkg}

	res, err := o.gate.Check(ctx, pkg, dev)
	if err != nil {
		return out, err
	}
	if !res.Compatible {
		m := &Mismatch{Package: pkg, Required: res.Required, Actual: res.Actual}
		out.Mismatch = m

		proceed := false
		if o.confirm != nil {
			proceed, err = o.confirm(ctx, *m)
			if err != nil {
				return out, err
			}
		}
		if !proceed {
			o.logger.Debug("install skipped", "package", pkg.Name, "required", m.Required, "actual", m.Actual)
			out.Status = StatusSkipped
			return out, nil
		}
	}

	opts := PackageOptions{
		Version:    version,
		Target:     o.target,
		Descriptor: pkg.Descriptor(),
	}
	if err := o.delegate(ctx, dev, ref, opts); err != nil {
		return out, err
	}
	out.Status = StatusInstalled
	return out, nil
}

func (o *Orchestrator) delegate(ctx context.Context, dev board.Device, ref string, opts PackageOptions) error {
	o.logger.Debug("packaging", "port", dev.Port, "reference", ref, "version", opts.Version, "target", opts.Target)
	if err := o.packager.PackageAndInstall(ctx, dev.Port, ref, opts); err != nil {
		return newInstallationError(ref, err)
	}
	return nil
}
