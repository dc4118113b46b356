package board

import (
	"cmp"
	"slices"
	"sync"
)

// Descriptor maps a USB vendor/product pair to a board model.
type Descriptor struct {
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Name         string
}

// Table is an immutable set of descriptors. Lookups scan every entry so a
// duplicated pair is reported instead of silently resolved.
type Table struct {
	entries []Descriptor
}

// NewTable returns a table over the given descriptors. Uniqueness is not
// checked here; call Validate at startup, and every Lookup re-checks the pair
// it resolves.
func NewTable(entries ...Descriptor) *Table {
	return &Table{entries: append([]Descriptor(nil), entries...)}
}

// Len returns the number of descriptors.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the descriptors in declaration order.
func (t *Table) Entries() []Descriptor {
	return append([]Descriptor(nil), t.entries...)
}

// Lookup returns the descriptor for vid:pid. ok is false when no entry
// matches; more than one match yields *AmbiguousDescriptorError.
func (t *Table) Lookup(vid, pid uint16) (Descriptor, bool, error) {
	var matches []Descriptor
	for _, d := range t.entries {
		if d.VendorID == vid && d.ProductID == pid {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return Descriptor{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return Descriptor{}, false, &AmbiguousDescriptorError{VendorID: vid, ProductID: pid, Matches: matches}
	}
}

// Validate checks that no two entries share a vendor/product pair.
func (t *Table) Validate() error {
	type key struct{ vid, pid uint16 }
	seen := make(map[key]bool, len(t.entries))
	for _, d := range t.entries {
		k := key{d.VendorID, d.ProductID}
		if seen[k] {
			_, _, err := t.Lookup(d.VendorID, d.ProductID)
			return err
		}
		seen[k] = true
	}
	return nil
}

const (
	vendorArduino     = 0x2341
	vendorRaspberryPi = 0x2e8a
	vendorEspressif   = 0x303a
	vendorMicroPython = 0xf055
)

// knownBoards is keyed by vendor<<16 | product. The keys are constants, so
// the compiler rejects a duplicated pair. The 0x04xx/0x05xx products are
// what the boards report while running MicroPython.
var knownBoards = map[uint32]Descriptor{
	vendorArduino<<16 | 0x0070:     {Manufacturer: "Arduino", Name: "Nano ESP32"},
	vendorArduino<<16 | 0x056b:     {Manufacturer: "Arduino", Name: "Nano ESP32"},
	vendorArduino<<16 | 0x005e:     {Manufacturer: "Arduino", Name: "Nano RP2040 Connect"},
	vendorArduino<<16 | 0x025e:     {Manufacturer: "Arduino", Name: "Nano RP2040 Connect"},
	vendorArduino<<16 | 0x025b:     {Manufacturer: "Arduino", Name: "Portenta H7"},
	vendorArduino<<16 | 0x055b:     {Manufacturer: "Arduino", Name: "Portenta H7"},
	vendorArduino<<16 | 0x0468:     {Manufacturer: "Arduino", Name: "Portenta C33"},
	vendorArduino<<16 | 0x025f:     {Manufacturer: "Arduino", Name: "Nicla Vision"},
	vendorArduino<<16 | 0x055f:     {Manufacturer: "Arduino", Name: "Nicla Vision"},
	vendorArduino<<16 | 0x0264:     {Manufacturer: "Arduino", Name: "Opta"},
	vendorArduino<<16 | 0x0564:     {Manufacturer: "Arduino", Name: "Opta"},
	vendorArduino<<16 | 0x0266:     {Manufacturer: "Arduino", Name: "Giga R1 WiFi"},
	vendorArduino<<16 | 0x0366:     {Manufacturer: "Arduino", Name: "Giga R1 WiFi"},
	vendorArduino<<16 | 0x0566:     {Manufacturer: "Arduino", Name: "Giga R1 WiFi"},
	vendorArduino<<16 | 0x805a:     {Manufacturer: "Arduino", Name: "Nano 33 BLE"},
	vendorMicroPython<<16 | 0x9802: {Manufacturer: "Arduino", Name: "Nano 33 BLE"},
	vendorRaspberryPi<<16 | 0x0005: {Manufacturer: "Raspberry Pi", Name: "Pico"},
	vendorEspressif<<16 | 0x1001:   {Manufacturer: "Espressif", Name: "ESP32-S3"},
	vendorEspressif<<16 | 0x4001:   {Manufacturer: "Espressif", Name: "ESP32-S2"},
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultTable returns the compiled-in descriptor table, ordered by vendor then product.
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		entries := make([]Descriptor, 0, len(knownBoards))
		for id, d := range knownBoards {
			d.VendorID, d.ProductID = uint16(id>>16), uint16(id)
			entries = append(entries, d)
		}
		sortDescriptors(entries)
		defaultTable = NewTable(entries...)
	})
	return defaultTable
}

func sortDescriptors(entries []Descriptor) {
	slices.SortFunc(entries, func(a, b Descriptor) int {
		if c := cmp.Compare(a.VendorID, b.VendorID); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
}
