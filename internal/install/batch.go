package install

import (
	"context"
	"errors"

	"github.com/upy-labs/upy/internal/board"
	"github.com/upy-labs/upy/internal/registry"
)

// BatchResult pairs a request with its outcome.
type BatchResult struct {
	Request string
	Outcome Outcome
	Err     error
}

// BatchOptions configures InstallAll.
type BatchOptions struct {
	// StopOn reports whether a failed request ends the batch. Nil never
	// stops.
	StopOn func(error) bool
}

// StopOnFatal stops a batch on anything except a missing package or a
// failed installation, which only affect their own request.
func StopOnFatal(err error) bool {
	var notFound *registry.PackageNotFoundError
	var installErr *InstallationError
	return !errors.As(err, &notFound) && !errors.As(err, &installErr)
}

// InstallAll installs refs onto dev one at a time in order. The returned
// slice has one entry per processed request; requests after a stop are not
// included.
func (o *Orchestrator) InstallAll(ctx context.Context, refs []string, dev board.Device, opts BatchOptions) []BatchResult {
	results := make([]BatchResult, 0, len(refs))
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			results = append(results, BatchResult{Request: ref, Outcome: Outcome{Reference: ref}, Err: err})
			break
		}

		out, err := o.Install(ctx, ref, dev)
		results = append(results, BatchResult{Request: ref, Outcome: out, Err: err})
		if err != nil && opts.StopOn != nil && opts.StopOn(err) {
			break
		}
	}
	return results
}
