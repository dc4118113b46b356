package compat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/upy-labs/upy/internal/board"
	"github.com/upy-labs/upy/internal/compat"
	"github.com/upy-labs/upy/internal/compat/mocks"
	"github.com/upy-labs/upy/internal/registry"
)

var nanoESP32 = board.Device{VendorID: 0x2341, ProductID: 0x0070, Port: "/dev/ttyACM0"}

func TestCheckWithoutRequirementSkipsProbe(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	// No EXPECT: any probe call fails the test.

	gate := compat.NewGate(prober)
	res, err := gate.Check(context.Background(), registry.Package{Name: "senml"}, nanoESP32)
	require.NoError(t, err)
	assert.True(t, res.Compatible)
}

func TestCheckRuntimeRange(t *testing.T) {
	tests := []struct {
		name       string
		required   string
		actual     string
		compatible bool
	}{
		{"below minimum", ">=1.20.0", "1.19.9", false},
		{"at minimum", ">=1.20.0", "1.20.0", true},
		{"v prefix", ">=1.20.0", "v1.22.1", true},
		{"hyphen range", "1.19.0 - 1.21.0", "1.22.0", false},
		{"wildcard", "1.22.x", "1.22.2", true},
		{"caret", "^1.20", "2.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			prober := mocks.NewMockProber(ctrl)
			prober.EXPECT().ProbeRuntimeVersion(gomock.Any(), nanoESP32).Return(tt.actual, nil)

			gate := compat.NewGate(prober)
			res, err := gate.Check(context.Background(), registry.Package{Name: "pkg", Runtime: tt.required}, nanoESP32)
			require.NoError(t, err)
			assert.Equal(t, tt.compatible, res.Compatible)
			assert.Equal(t, tt.required, res.Required)
			assert.Equal(t, tt.actual, res.Actual)
		})
	}
}

func TestCheckUsesOverrideRuntime(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	prober.EXPECT().ProbeRuntimeVersion(gomock.Any(), gomock.Any()).Return("1.19.9", nil)

	pkg := registry.Package{Name: "arduino-iot-cloud", Overrides: map[string]any{"runtime": ">=1.20.0"}}
	res, err := compat.NewGate(prober).Check(context.Background(), pkg, nanoESP32)
	require.NoError(t, err)
	assert.False(t, res.Compatible)
	assert.Equal(t, ">=1.20.0", res.Required)
}

func TestCheckInvalidRuntimeVersion(t *testing.T) {
	for _, version := range []string{"not-a-version", "1.20", ""} {
		t.Run(version, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			prober := mocks.NewMockProber(ctrl)
			prober.EXPECT().ProbeRuntimeVersion(gomock.Any(), gomock.Any()).Return(version, nil)

			_, err := compat.NewGate(prober).Check(context.Background(), registry.Package{Name: "pkg", Runtime: ">=1.20.0"}, nanoESP32)
			var invalid *compat.InvalidRuntimeVersionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, version, invalid.Version)
		})
	}
}

func TestCheckInvalidRequirement(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	prober.EXPECT().ProbeRuntimeVersion(gomock.Any(), gomock.Any()).Return("1.22.0", nil)

	_, err := compat.NewGate(prober).Check(context.Background(), registry.Package{Name: "pkg", Runtime: "at least one"}, nanoESP32)
	var invalid *compat.InvalidRequirementError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "pkg", invalid.Package)
}

func TestCheckReturnsProbeErrorUnmodified(t *testing.T) {
	probeErr := errors.New("could not enter raw repl")

	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	prober.EXPECT().ProbeRuntimeVersion(gomock.Any(), gomock.Any()).Return("", probeErr)

	_, err := compat.NewGate(prober).Check(context.Background(), registry.Package{Name: "pkg", Runtime: ">=1.20.0"}, nanoESP32)
	assert.Same(t, probeErr, err)
}
