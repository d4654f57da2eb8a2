package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherSignalsOnDatasetWrite(t *testing.T) {
	path := writeDataset(t, sampleDataset)
	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	select {
	case <-w.Events():
	case <-time.After(5 * time.Second):
		t.Fatal("no reload signal after dataset write")
	}
}

func TestWatcherCloseStopsProcessing(t *testing.T) {
	path := writeDataset(t, sampleDataset)
	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	select {
	case <-w.done:
	default:
		t.Fatal("event loop still running after Close")
	}
	for range w.Events() {
	}
}
