// Package board finds the MicroPython board a command should act on. It lists
// USB serial ports through the operating system, annotates each one with a
// manufacturer and model name from a compiled-in descriptor table, and
// implements the selection policy: no board, exactly one board, or a choice
// the caller has to make between several.
package board
