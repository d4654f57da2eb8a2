package timeline

import "fmt"

type RowKind int

const (
	RowDecadeHeader RowKind = iota
	RowItem
)

func (k RowKind) String() string {
	switch k {
	case RowDecadeHeader:
		return "decade"
	case RowItem:
		return "item"
	default:
		return "unknown"
	}
}

// Row is either a decade header or an item row; Kind says which fields are set.
// PositionIndex counts item rows only and is -1 on headers.
type Row struct {
	Kind          RowKind
	Decade        int
	AnchorID      string
	Item          Item
	PositionIndex int
}

func (r Row) IsHeader() bool { return r.Kind == RowDecadeHeader }

// DecadeAnchor is the fixed anchor of a decade header, e.g. "decade-1950".
func DecadeAnchor(decade int) string {
	return fmt.Sprintf("decade-%04d", decade)
}

// BuildRows interleaves decade headers with item rows in one linear pass. The input
// must already be filtered and sorted by (Decade, Date).
func BuildRows(items []Item) []Row {
	rows := make([]Row, 0, len(items)+len(items)/8+1)
	lastDecade := 0
	started := false
	position := 0
	for i := range items {
		item := items[i]
		if !started || item.Decade != lastDecade {
			rows = append(rows, Row{
				Kind:          RowDecadeHeader,
				Decade:        item.Decade,
				AnchorID:      DecadeAnchor(item.Decade),
				PositionIndex: -1,
			})
			lastDecade = item.Decade
			started = true
		}
		rows = append(rows, Row{
			Kind:          RowItem,
			Decade:        item.Decade,
			AnchorID:      item.AnchorID,
			Item:          item,
			PositionIndex: position,
		})
		position++
	}
	return rows
}

// Decades lists the decades that have a header in rows, ascending.
func Decades(rows []Row) []int {
	out := make([]int, 0, 16)
	for i := range rows {
		if rows[i].Kind == RowDecadeHeader {
			out = append(out, rows[i].Decade)
		}
	}
	return out
}
