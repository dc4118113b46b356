package install

import (
	"fmt"
	"strings"
)

// InstallationError wraps a packager failure. Hint is set when the failure
// matches a known cause.
type InstallationError struct {
	Reference string
	Err       error
	Hint      string
}

func (e *InstallationError) Error() string {
	msg := fmt.Sprintf("installing %s: %v", e.Reference, e.Err)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *InstallationError) Unwrap() error {
	return e.Err
}

// knownFailures maps packager output fragments to a clearer explanation.
var knownFailures = []struct {
	fragments []string
	hint      string
}{
	{
		fragments: []string{"package.json", "404"},
		hint:      "the source has no package.json; point to a file or a repository with a package.json",
	},
	{
		fragments: []string{"package.json", "not found"},
		hint:      "the source has no package.json; point to a file or a repository with a package.json",
	},
	{
		fragments: []string{"could not enter raw repl"},
		hint:      "the board is busy; stop the running program or reset the board and retry",
	},
}

func newInstallationError(reference string, err error) *InstallationError {
	lower := strings.ToLower(err.Error())
	ie := &InstallationError{Reference: reference, Err: err}
	for _, kf := range knownFailures {
		if containsAll(lower, kf.fragments) {
			ie.Hint = kf.hint
			break
		}
	}
	return ie
}

func containsAll(s string, fragments []string) bool {
	for _, f := range fragments {
		if !strings.Contains(s, f) {
			return false
		}
	}
	return true
}
