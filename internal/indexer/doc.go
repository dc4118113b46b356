// Package indexer builds a registry document from a directory of MicroPython
// packages, such as a micropython-lib checkout.
package indexer
