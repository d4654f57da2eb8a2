package testutil

import (
	"os"
	"testing"

	"golang.org/x/term"
)

// SkipIfTerminal skips tests that assert non-interactive behavior when the test
// binary is attached to a terminal.
func SkipIfTerminal(t *testing.T) {
	t.Helper()
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("skipping: attached to a terminal")
	}
}
