// Package install turns package arguments into packager invocations.
//
// An argument is either a direct reference (a URL or VCS shorthand) that is
// handed to the packager unchanged, or a registry name that is resolved,
// checked against the device runtime and then installed. Batches run one
// request at a time because the packager owns the device's serial
// connection while it works.
package install
