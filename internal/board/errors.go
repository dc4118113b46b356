package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEnumerationFailed is returned when the OS serial port inventory cannot be read.
	ErrEnumerationFailed = errors.New("device enumeration failed")

	// ErrUnknownPort is returned when a chosen port is not among the enumerated devices.
	ErrUnknownPort = errors.New("no connected device on port")
)

// AmbiguousDescriptorError reports more than one descriptor for the same
// vendor/product pair. It signals a defect in the descriptor table.
type AmbiguousDescriptorError struct {
	VendorID  uint16
	ProductID uint16
	Matches   []Descriptor
}

func (e *AmbiguousDescriptorError) Error() string {
	names := make([]string, 0, len(e.Matches))
	for _, m := range e.Matches {
		names = append(names, fmt.Sprintf("%q", m.Manufacturer+" "+m.Name))
	}
	return fmt.Sprintf("ambiguous board descriptor for %04x:%04x: %d entries match (%s)",
		e.VendorID, e.ProductID, len(e.Matches), strings.Join(names, ", "))
}
