// Package cli defines the Cobra command tree for the upy CLI. Each file in
// this package registers one top-level command (list, find, install, etc.)
// with the root command. Commands delegate to internal packages for the
// domain logic and only handle flags, output formatting, and prompts.
package cli
