package timeline

import "strings"

// FilterState is the single upstream input of the row pipeline. It is a value:
// every toolbar interaction replaces it wholesale.
type FilterState struct {
	Search  string
	Type    ItemType
	Compact bool
}

func DefaultFilter() FilterState {
	return FilterState{Type: TypeAll}
}

func (f FilterState) WithSearch(search string) FilterState {
	f.Search = search
	return f
}

func (f FilterState) WithType(t ItemType) FilterState {
	if t == "" {
		t = TypeAll
	}
	f.Type = t
	return f
}

func (f FilterState) WithCompact(compact bool) FilterState {
	f.Compact = compact
	return f
}

// Active reports whether the filter excludes anything.
func (f FilterState) Active() bool {
	return strings.TrimSpace(f.Search) != "" || (f.Type != "" && f.Type != TypeAll)
}

// Matches applies the search and type predicates (logical AND).
func (f FilterState) Matches(item Item) bool {
	if f.Type != "" && f.Type != TypeAll && item.Type != f.Type {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	if needle == "" {
		return true
	}
	return strings.Contains(searchHaystack(item), needle)
}

// Apply returns the items matching f, preserving input order.
func Apply(items []Item, f FilterState) []Item {
	out := make([]Item, 0, len(items))
	for i := range items {
		if f.Matches(items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

func searchHaystack(item Item) string {
	parts := make([]string, 0, 2+len(item.Tags))
	parts = append(parts, item.Title, item.CreatorLabel)
	parts = append(parts, item.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
