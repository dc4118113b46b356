package install_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/upy-labs/upy/internal/compat"
	compatmocks "github.com/upy-labs/upy/internal/compat/mocks"
	"github.com/upy-labs/upy/internal/install"
	"github.com/upy-labs/upy/internal/install/mocks"
	"github.com/upy-labs/upy/internal/registry"
)

func TestInstallAllRunsInOrderAndContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	packager := mocks.NewMockPackager(ctrl)
	gomock.InOrder(
		packager.EXPECT().PackageAndInstall(gomock.Any(), device.Port, "micropython-ujson", gomock.Any()).Return(nil),
		packager.EXPECT().PackageAndInstall(gomock.Any(), device.Port, "github:acme/broken", gomock.Any()).Return(errors.New("connection lost")),
		packager.EXPECT().PackageAndInstall(gomock.Any(), device.Port, "https://example.com/x.py", gomock.Any()).Return(nil),
	)

	o := install.NewOrchestrator(testIndex(), compat.NewGate(compatmocks.NewMockProber(ctrl)), packager)
	refs := []string{"micropython-ujson", "missing", "github:acme/broken", "https://example.com/x.py"}
	results := o.InstallAll(context.Background(), refs, device, install.BatchOptions{StopOn: install.StopOnFatal})

	require.Len(t, results, 4)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, registry.ErrPackageNotFound)
	var ie *install.InstallationError
	assert.ErrorAs(t, results[2].Err, &ie)
	assert.NoError(t, results[3].Err)
	for i, r := range results {
		assert.Equal(t, refs[i], r.Request)
	}
}

func TestInstallAllStopsOnFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := compatmocks.NewMockProber(ctrl)
	prober.EXPECT().ProbeRuntimeVersion(gomock.Any(), gomock.Any()).Return("garbage", nil)
	packager := mocks.NewMockPackager(ctrl)

	o := install.NewOrchestrator(testIndex(), compat.NewGate(prober), packager)
	results := o.InstallAll(context.Background(), []string{"arduino-iot-cloud", "micropython-ujson"}, device, install.BatchOptions{StopOn: install.StopOnFatal})

	require.Len(t, results, 1)
	var invalid *compat.InvalidRuntimeVersionError
	assert.ErrorAs(t, results[0].Err, &invalid)
}

func TestInstallAllStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := install.NewOrchestrator(testIndex(), mocks.NewMockChecker(ctrl), mocks.NewMockPackager(ctrl))
	results := o.InstallAll(ctx, []string{"micropython-ujson", "senml"}, device, install.BatchOptions{})

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestStopOnFatal(t *testing.T) {
	assert.False(t, install.StopOnFatal(&registry.PackageNotFoundError{Name: "x"}))
	assert.False(t, install.StopOnFatal(&install.InstallationError{Reference: "x", Err: errors.New("boom")}))
	assert.True(t, install.StopOnFatal(&compat.InvalidRuntimeVersionError{Version: "x"}))
	assert.True(t, install.StopOnFatal(errors.New("enumeration failed")))
}
