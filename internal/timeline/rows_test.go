package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type rowSummary struct {
	Kind   RowKind
	Anchor string
	Pos    int
}

func summarize(rows []Row) []rowSummary {
	out := make([]rowSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowSummary{Kind: r.Kind, Anchor: r.AnchorID, Pos: r.PositionIndex})
	}
	return out
}

func TestBuildRowsInterleavesDecadeHeaders(t *testing.T) {
	rows := BuildRows(Apply(exampleItems(), DefaultFilter()))

	require.Equal(t, []rowSummary{
		{Kind: RowDecadeHeader, Anchor: "decade-1950", Pos: -1},
		{Kind: RowItem, Anchor: "a", Pos: 0},
		{Kind: RowItem, Anchor: "b", Pos: 1},
		{Kind: RowDecadeHeader, Anchor: "decade-1960", Pos: -1},
		{Kind: RowItem, Anchor: "c", Pos: 2},
	}, summarize(rows))
	require.Equal(t, "A", rows[1].Item.Title)
}

func TestBuildRowsTypeFilterDropsEmptyDecade(t *testing.T) {
	rows := BuildRows(Apply(exampleItems(), DefaultFilter().WithType(TypeBook)))

	require.Equal(t, []rowSummary{
		{Kind: RowDecadeHeader, Anchor: "decade-1950", Pos: -1},
		{Kind: RowItem, Anchor: "a", Pos: 0},
		{Kind: RowItem, Anchor: "b", Pos: 1},
	}, summarize(rows))
}

func TestBuildRowsEmpty(t *testing.T) {
	rows := BuildRows(Apply(exampleItems(), DefaultFilter().WithSearch("no such record")))
	require.Empty(t, rows)
	require.Empty(t, Decades(rows))
}

func TestBuildRowsOrderingAndHeadersForAllFilters(t *testing.T) {
	items := sampleItems(90)
	filters := []FilterState{DefaultFilter(), DefaultFilter().WithSearch("creator 3"), DefaultFilter().WithSearch("TAG1")}
	for _, typ := range ItemTypes {
		filters = append(filters, DefaultFilter().WithType(typ), DefaultFilter().WithType(typ).WithSearch("record 0"))
	}

	for _, f := range filters {
		filtered := Apply(items, f)
		rows := BuildRows(filtered)

		distinct := map[int]struct{}{}
		for _, it := range filtered {
			distinct[it.Decade] = struct{}{}
		}
		require.Len(t, rows, len(distinct)+len(filtered), "filter %+v", f)

		headers := map[int]int{}
		pos := 0
		for i, r := range rows {
			if i > 0 {
				prev := rows[i-1]
				require.LessOrEqual(t, prev.Decade, r.Decade)
				if prev.Kind == RowItem && r.Kind == RowItem && prev.Decade == r.Decade {
					require.False(t, r.Item.Date.Before(prev.Item.Date))
				}
			}
			if r.IsHeader() {
				headers[r.Decade]++
				require.Less(t, i+1, len(rows), "header must precede an item")
				require.Equal(t, RowItem, rows[i+1].Kind)
				require.Equal(t, r.Decade, rows[i+1].Decade)
				continue
			}
			require.Equal(t, pos, r.PositionIndex)
			pos++
		}
		require.Len(t, headers, len(distinct))
		for decade, n := range headers {
			require.Equal(t, 1, n, "decade %d", decade)
		}
	}
}

func TestDecadeOf(t *testing.T) {
	require.Equal(t, 1950, DecadeOf(1950))
	require.Equal(t, 1950, DecadeOf(1959))
	require.Equal(t, 2000, DecadeOf(2009))
	require.Equal(t, -10, DecadeOf(-3))
}
