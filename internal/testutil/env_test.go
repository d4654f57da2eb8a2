package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsolate(t *testing.T) {
	home := Isolate(t)
	require.Equal(t, home, os.Getenv("HOME"))
	require.Equal(t, filepath.Join(home, "xdg"), os.Getenv("XDG_CONFIG_HOME"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	entries, err := os.ReadDir(wd)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, "timeline.json", "[]")
	require.Equal(t, "timeline.json", filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}
