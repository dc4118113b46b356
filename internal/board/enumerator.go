package board

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"go.bug.st/serial/enumerator"
)

// PortLister returns the OS serial port inventory.
type PortLister func() ([]*enumerator.PortDetails, error)

// corruptSerialMarker appears in serial numbers that were not read correctly
// (Windows reports the device instance path instead).
const corruptSerialMarker = "&"

// Enumerator lists attached serial devices. It queries the OS on every call
// so hot-plugged boards are always seen.
type Enumerator struct {
	list   PortLister
	logger *log.Logger
}

// EnumeratorOption configures an Enumerator.
type EnumeratorOption func(*Enumerator)

// WithPortLister replaces the OS port query (useful for testing).
func WithPortLister(fn PortLister) EnumeratorOption {
	return func(e *Enumerator) {
		e.list = fn
	}
}

// WithEnumeratorLogger sets the logger used for debug output.
func WithEnumeratorLogger(l *log.Logger) EnumeratorOption {
	return func(e *Enumerator) {
		e.logger = l
	}
}

// NewEnumerator creates an Enumerator backed by go.bug.st/serial.
func NewEnumerator(opts ...EnumeratorOption) *Enumerator {
	e := &Enumerator{
		list:   enumerator.GetDetailedPortsList,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// List returns the attached devices passing the filter. Ports without both a
// vendor and a product ID are skipped since they cannot be a target board.
func (e *Enumerator) List(f Filter) ([]Device, error) {
	ports, err := e.list()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumerationFailed, err)
	}

	var devices []Device
	for _, p := range ports {
		if p == nil {
			continue
		}
		d, ok := deviceFromPort(p)
		if !ok {
			e.logger.Debug("skipping port without USB IDs", "port", p.Name)
			continue
		}
		if !f.matches(d) {
			e.logger.Debug("skipping filtered device", "port", d.Port, "usb", d.USBID())
			continue
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// deviceFromPort converts an OS port entry. ok is false when the entry has
// neither a vendor nor a product ID.
func deviceFromPort(p *enumerator.PortDetails) (Device, bool) {
	vid, _ := ParseID(p.VID)
	pid, _ := ParseID(p.PID)
	if vid == 0 && pid == 0 {
		return Device{}, false
	}

	serial := strings.TrimSpace(p.SerialNumber)
	if strings.Contains(serial, corruptSerialMarker) {
		serial = ""
	}

	return Device{
		VendorID:     vid,
		ProductID:    pid,
		SerialNumber: serial,
		Port:         p.Name,
	}, true
}
