package timeline

// AnchorIndex maps anchor ids to row indices. It is rebuilt from scratch on every
// row-set change.
type AnchorIndex struct {
	byAnchor map[string]int
	anchors  []string
}

func NewAnchorIndex(rows []Row) *AnchorIndex {
	idx := &AnchorIndex{}
	idx.Rebuild(rows)
	return idx
}

// Rebuild replaces the index contents and returns any anchors that appeared more
// than once. The first occurrence wins; duplicates mean the data source broke the
// uniqueness contract.
func (x *AnchorIndex) Rebuild(rows []Row) []string {
	x.byAnchor = make(map[string]int, len(rows))
	x.anchors = make([]string, 0, len(rows))
	var dups []string
	for i := range rows {
		anchor := rows[i].AnchorID
		if _, ok := x.byAnchor[anchor]; ok {
			dups = append(dups, anchor)
			continue
		}
		x.byAnchor[anchor] = i
		x.anchors = append(x.anchors, anchor)
	}
	return dups
}

func (x *AnchorIndex) Lookup(anchor string) (int, bool) {
	if x == nil || anchor == "" {
		return 0, false
	}
	i, ok := x.byAnchor[anchor]
	return i, ok
}

func (x *AnchorIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.byAnchor)
}

// Anchors returns the indexed anchors in row order.
func (x *AnchorIndex) Anchors() []string {
	if x == nil {
		return nil
	}
	return append([]string(nil), x.anchors...)
}
