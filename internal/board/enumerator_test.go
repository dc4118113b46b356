package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

func staticPorts(ports ...*enumerator.PortDetails) PortLister {
	return func() ([]*enumerator.PortDetails, error) {
		return ports, nil
	}
}

func TestListSkipsPortsWithoutIDs(t *testing.T) {
	e := NewEnumerator(WithPortLister(staticPorts(
		&enumerator.PortDetails{Name: "/dev/ttyS0"},
		&enumerator.PortDetails{Name: "/dev/ttyACM0", IsUSB: true, VID: "2341", PID: "056B", SerialNumber: "ABC123"},
		nil,
	)))

	devices, err := e.List(Filter{})
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, Device{VendorID: 0x2341, ProductID: 0x056b, SerialNumber: "ABC123", Port: "/dev/ttyACM0"}, devices[0])
}

func TestListKeepsPortWithOnlyOneID(t *testing.T) {
	e := NewEnumerator(WithPortLister(staticPorts(
		&enumerator.PortDetails{Name: "COM3", VID: "2341"},
	)))

	devices, err := e.List(Filter{})
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, uint16(0), devices[0].ProductID)
}

func TestListAppliesFilter(t *testing.T) {
	e := NewEnumerator(WithPortLister(staticPorts(
		&enumerator.PortDetails{Name: "/dev/ttyACM0", VID: "2341", PID: "056b"},
		&enumerator.PortDetails{Name: "/dev/ttyACM1", VID: "2e8a", PID: "0005"},
		&enumerator.PortDetails{Name: "/dev/ttyACM2", VID: "2341", PID: "025b"},
	)))

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"/dev/ttyACM0", "/dev/ttyACM1", "/dev/ttyACM2"}},
		{"vendor", Filter{VendorID: 0x2341}, []string{"/dev/ttyACM0", "/dev/ttyACM2"}},
		{"vendor and product", Filter{VendorID: 0x2341, ProductID: 0x025b}, []string{"/dev/ttyACM2"}},
		{"product only", Filter{ProductID: 0x0005}, []string{"/dev/ttyACM1"}},
		{"nothing matches", Filter{VendorID: 0x1234}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices, err := e.List(tt.filter)
			require.NoError(t, err)

			var ports []string
			for _, d := range devices {
				ports = append(ports, d.Port)
			}
			assert.Equal(t, tt.want, ports)
		})
	}
}

func TestListDropsCorruptSerialNumber(t *testing.T) {
	e := NewEnumerator(WithPortLister(staticPorts(
		&enumerator.PortDetails{Name: "COM4", VID: "2341", PID: "056b", SerialNumber: "5&2A8B3F&0&2"},
	)))

	devices, err := e.List(Filter{})
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Empty(t, devices[0].SerialNumber)
}

func TestListEnumerationFailure(t *testing.T) {
	osErr := errors.New("permission denied")
	e := NewEnumerator(WithPortLister(func() ([]*enumerator.PortDetails, error) {
		return nil, osErr
	}))

	_, err := e.List(Filter{})
	assert.ErrorIs(t, err, ErrEnumerationFailed)
	assert.ErrorIs(t, err, osErr)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{"", 0, false},
		{"2341", 0x2341, false},
		{"0x2341", 0x2341, false},
		{"0X056B", 0x056b, false},
		{" 056b ", 0x056b, false},
		{"zz", 0, true},
		{"123456", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
