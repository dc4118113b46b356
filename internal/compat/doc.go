// Package compat reconciles a package's declared runtime requirement with
// the MicroPython version running on a device.
//
// The gate only reports. A mismatch is returned as a Result for the caller
// to confirm or skip; it is never an error.
package compat
