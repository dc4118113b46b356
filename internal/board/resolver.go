package board

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Lister enumerates devices. *Enumerator is the production implementation.
type Lister interface {
	List(f Filter) ([]Device, error)
}

// Resolver enumerates devices and annotates them from a descriptor table.
type Resolver struct {
	lister Lister
	table  *Table
	logger *log.Logger
}

// NewResolver creates a Resolver. A nil table means DefaultTable and a nil
// logger discards output.
func NewResolver(lister Lister, table *Table, logger *log.Logger) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{lister: lister, table: table, logger: logger}
}

// ConnectedDevices lists the attached devices passing f, with Manufacturer and
// Name filled in when the table knows the board. An ambiguous table entry is
// returned as *AmbiguousDescriptorError and no devices are returned.
func (r *Resolver) ConnectedDevices(f Filter) ([]Device, error) {
	devices, err := r.lister.List(f)
	if err != nil {
		return nil, err
	}

	for i := range devices {
		d := &devices[i]
		desc, ok, err := r.table.Lookup(d.VendorID, d.ProductID)
		if err != nil {
			return nil, err
		}
		if ok {
			d.Manufacturer = desc.Manufacturer
			d.Name = desc.Name
		}
		r.logger.Debug("found device", "port", d.Port, "usb", d.USBID(), "name", d.DisplayName(), "serial", d.SerialNumber)
	}
	return devices, nil
}

// SelectionKind classifies the outcome of Select.
type SelectionKind int

const (
	// SelectionNone means no device is connected.
	SelectionNone SelectionKind = iota
	// SelectionSingle means exactly one device is connected and was picked.
	SelectionSingle
	// SelectionRequiresChoice means the caller must pick one of Choices.
	SelectionRequiresChoice
)

// Selection is the result of applying the selection policy.
type Selection struct {
	Kind    SelectionKind
	Device  Device   // set for SelectionSingle
	Choices []Device // set for SelectionRequiresChoice
}

// Select applies the selection policy: none, the only device, or a required choice.
func Select(devices []Device) Selection {
	switch len(devices) {
	case 0:
		return Selection{Kind: SelectionNone}
	case 1:
		return Selection{Kind: SelectionSingle, Device: devices[0]}
	default:
		return Selection{Kind: SelectionRequiresChoice, Choices: devices}
	}
}

// Choose returns the device attached to port. Ports are unique among the
// devices of one enumeration.
func Choose(devices []Device, port string) (Device, error) {
	for _, d := range devices {
		if d.Port == port {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w %s", ErrUnknownPort, port)
}
