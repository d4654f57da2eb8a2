package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActiveRowNearestCenter(t *testing.T) {
	rows := []VirtualRow{
		{Index: 0, Start: 0, Size: 2, Key: "h"},
		{Index: 1, Start: 2, Size: 7, Key: "a"},
		{Index: 2, Start: 9, Size: 7, Key: "b"},
	}
	row, ok := ActiveRow(rows, 0, 10)
	require.True(t, ok)
	require.Equal(t, "a", row.Key)

	row, _ = ActiveRow(rows, 8, 10)
	require.Equal(t, "b", row.Key)

	_, ok = ActiveRow(nil, 0, 10)
	require.False(t, ok)
}

func TestActiveRowTieGoesToLaterRow(t *testing.T) {
	rows := []VirtualRow{
		{Index: 0, Start: 0, Size: 4, Key: "x"},
		{Index: 1, Start: 4, Size: 4, Key: "y"},
	}
	row, ok := ActiveRow(rows, 0, 8)
	require.True(t, ok)
	require.Equal(t, "y", row.Key)
}

func TestTrackerPinnedWins(t *testing.T) {
	rows := []VirtualRow{{Index: 0, Start: 0, Size: 4, Key: "x"}}
	var tr Tracker

	anchor, changed := tr.Update(rows, 0, 8, "")
	require.True(t, changed)
	require.Equal(t, "x", anchor)

	_, changed = tr.Update(rows, 0, 8, "")
	require.False(t, changed)

	anchor, changed = tr.Update(rows, 0, 8, "target")
	require.True(t, changed)
	require.Equal(t, "target", anchor)

	tr.Reset()
	require.Equal(t, "", tr.Active())
}
