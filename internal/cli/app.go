package cli

import (
	"context"
	"sync"

	"github.com/upy-labs/upy/internal/board"
	"github.com/upy-labs/upy/internal/branding"
	"github.com/upy-labs/upy/internal/compat"
	"github.com/upy-labs/upy/internal/config"
	"github.com/upy-labs/upy/internal/install"
	"github.com/upy-labs/upy/internal/mpremote"
	"github.com/upy-labs/upy/internal/registry"
)

// boardTool is what the CLI needs from the mpremote adapter.
type boardTool interface {
	compat.Prober
	install.Packager
}

// Collaborators the commands are built from. Tests replace them.
var (
	newLister = func() board.Lister {
		return board.NewEnumerator(board.WithEnumeratorLogger(logger))
	}
	newBoardTool = func() boardTool {
		return mpremote.New(mpremote.WithCommand(config.PackagerCommand()), mpremote.WithLogger(logger))
	}
)

// registrySources returns the --registry overrides or the configured URLs.
func registrySources() []string {
	if len(registryFlags) > 0 {
		return registryFlags
	}
	return config.RegistryURLs()
}

func newAggregator() *registry.Aggregator {
	return registry.NewAggregator(registrySources(),
		registry.WithHTTPClient(registry.NewHTTPClient(config.RegistryTimeout())),
		registry.WithUserAgent(branding.UserAgent()),
		registry.WithLogger(logger),
	)
}

func loadIndex(ctx context.Context) (*registry.Index, error) {
	return newAggregator().FetchIndex(ctx)
}

func referencePolicy() registry.ReferencePolicy {
	return registry.ReferencePolicy{
		Prefixes:  config.List(config.KeyReferencePrefixes),
		Suffixes:  config.List(config.KeyReferenceSuffixes),
		AnyScheme: config.ReferenceAnyScheme(),
	}
}

// deviceFilter combines flag values with the configured defaults. Flags win
// when set.
func deviceFilter(vendor, product string) (board.Filter, error) {
	if vendor == "" {
		vendor = config.DeviceVendorID()
	}
	if product == "" {
		product = config.DeviceProductID()
	}
	return board.ParseFilter(vendor, product)
}

func connectedDevices(f board.Filter) ([]board.Device, error) {
	return board.NewResolver(newLister(), nil, logger).ConnectedDevices(f)
}

// lazyIndex fetches the registry on first lookup, at most once. Installs of
// direct references alone never touch the network.
type lazyIndex struct {
	ctx  context.Context
	once sync.Once
	idx  *registry.Index
	err  error
}

func (l *lazyIndex) FindByName(name string) (registry.Package, error) {
	l.once.Do(func() {
		l.idx, l.err = loadIndex(l.ctx)
	})
	if l.err != nil {
		return registry.Package{}, l.err
	}
	return l.idx.FindByName(name)
}
