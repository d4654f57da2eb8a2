package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreImportAndLoad(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "chrono.db"))
	require.NoError(t, err)
	defer store.Close()

	records, err := DecodeRecords([]byte(sampleDataset))
	require.NoError(t, err)
	n, err := store.Import(ctx, records)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	items, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, []string{"a", "b", "c"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestSQLiteStoreUpsertsByID(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "chrono.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Import(ctx, []Record{{ID: "a", Title: "Old", Date: "1950"}})
	require.NoError(t, err)
	_, err = store.Import(ctx, []Record{{ID: "a", Title: "New", Date: "1951"}})
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	records, err := store.Records(ctx)
	require.NoError(t, err)
	require.Equal(t, "New", records[0].Title)
}

func TestSQLiteStoreAssignsUUIDs(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "chrono.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Import(ctx, []Record{{Title: "One", Date: "1950"}, {Title: "Two", Date: "1950"}})
	require.NoError(t, err)

	records, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		_, err := uuid.Parse(rec.ID)
		require.NoError(t, err)
	}
	require.NotEqual(t, records[0].ID, records[1].ID)
}

func TestSQLiteStoreReimportWithoutIDsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "chrono.db"))
	require.NoError(t, err)
	defer store.Close()

	batch := []Record{{Title: "One", Date: "1950"}, {Title: "Two", Date: "1951", Summary: "first"}}
	_, err = store.Import(ctx, batch)
	require.NoError(t, err)
	first, err := store.Records(ctx)
	require.NoError(t, err)

	batch[1].Summary = "second"
	_, err = store.Import(ctx, batch)
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	again, err := store.Records(ctx)
	require.NoError(t, err)
	require.Equal(t, first[0].ID, again[0].ID)
	require.Equal(t, first[1].ID, again[1].ID)
	require.Equal(t, "second", again[1].Summary)

	items, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"one-1950", "two-1951"}, []string{items[0].AnchorID, items[1].AnchorID})
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}
