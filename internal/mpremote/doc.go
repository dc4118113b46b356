// Package mpremote drives the mpremote command line tool. It reads the
// MicroPython version from a board and installs packages with mip.
package mpremote
