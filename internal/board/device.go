package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Device is a serial-capable board currently attached to the host.
// Port identifies the device for the lifetime of one process run.
type Device struct {
	VendorID     uint16
	ProductID    uint16
	SerialNumber string // empty when unknown or unreliable
	Port         string
	Manufacturer string // empty when no descriptor matched
	Name         string // empty when no descriptor matched
}

// Known reports whether the device was matched against a descriptor.
func (d Device) Known() bool {
	return d.Name != ""
}

// USBID returns the "vvvv:pppp" pair in lowercase hex.
func (d Device) USBID() string {
	return fmt.Sprintf("%04x:%04x", d.VendorID, d.ProductID)
}

// DisplayName returns a human-readable label such as "Arduino Nano ESP32".
// Unknown boards fall back to their USB ID.
func (d Device) DisplayName() string {
	switch {
	case d.Manufacturer != "" && d.Name != "":
		return d.Manufacturer + " " + d.Name
	case d.Name != "":
		return d.Name
	default:
		return "Unknown board (" + d.USBID() + ")"
	}
}

// Filter restricts enumeration to one vendor and/or product. Zero fields match anything.
type Filter struct {
	VendorID  uint16
	ProductID uint16
}

func (f Filter) matches(d Device) bool {
	if f.VendorID != 0 && d.VendorID != f.VendorID {
		return false
	}
	if f.ProductID != 0 && d.ProductID != f.ProductID {
		return false
	}
	return true
}

// ParseID parses a USB vendor or product ID written in hex, with or without
// a 0x prefix ("2341", "0x2341"). An empty string yields 0.
func ParseID(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid USB ID %q: %w", s, err)
	}
	return uint16(v), nil
}

// ParseFilter builds a Filter from user-supplied vendor and product strings.
func ParseFilter(vendor, product string) (Filter, error) {
	vid, err := ParseID(vendor)
	if err != nil {
		return Filter{}, fmt.Errorf("vendor ID: %w", err)
	}
	pid, err := ParseID(product)
	if err != nil {
		return Filter{}, fmt.Errorf("product ID: %w", err)
	}
	return Filter{VendorID: vid, ProductID: pid}, nil
}
