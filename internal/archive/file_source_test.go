package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/chrono/internal/config"
	"github.com/tOgg1/chrono/internal/testutil"
)

const sampleDataset = `[
  {"id": "a", "type": "book", "title": "A", "date": "1950-01-01"},
  {"id": "b", "type": "book", "title": "B", "date": "1955-06-01"},
  {"id": "c", "type": "event", "title": "C", "date": "1961-01-01", "summary": "**bold**"},
  {"id": "bad", "type": "event", "title": "", "date": "1961"}
]`

func writeDataset(t *testing.T, body string) string {
	t.Helper()
	return testutil.WriteFile(t, "timeline.json", body)
}

func TestFileSourceLoad(t *testing.T) {
	src := NewFileSource(writeDataset(t, sampleDataset))
	items, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "c", items[2].ID)
	require.Equal(t, "**bold**", items[2].Summary)
	require.NoError(t, src.Close())
}

func TestDecodeRecordsObjectForm(t *testing.T) {
	records, err := DecodeRecords([]byte(`{"items": [{"title": "T", "date": "1970"}]}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "T", records[0].Title)

	records, err = DecodeRecords([]byte("  "))
	require.NoError(t, err)
	require.Empty(t, records)

	_, err = DecodeRecords([]byte(`[{"title": 5}]`))
	require.Error(t, err)
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	require.Error(t, err)
}

func TestOpenSource(t *testing.T) {
	src, err := OpenSource(config.DataConfig{Source: config.SourceFile, Path: "x.json"})
	require.NoError(t, err)
	require.IsType(t, &FileSource{}, src)

	db, err := OpenSource(config.DataConfig{Source: config.SourceSQLite, Database: filepath.Join(t.TempDir(), "a.db")})
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, db)
	require.NoError(t, db.Close())

	_, err = OpenSource(config.DataConfig{Source: "ftp"})
	require.ErrorIs(t, err, ErrUnknownSource)
}
