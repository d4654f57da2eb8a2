// Package testutil holds helpers shared by chrono tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Isolate points HOME and XDG_CONFIG_HOME at fresh temp dirs and changes into an
// empty working directory, so no user config or state leaks into the test.
// It returns the temporary home.
func Isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Chdir(t.TempDir())
	return home
}

// WriteFile writes body to name inside a fresh temp dir and returns its path.
func WriteFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
