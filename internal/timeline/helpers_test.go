package timeline

import (
	"fmt"
	"time"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newItem(anchor string, typ ItemType, date time.Time, title string) Item {
	return Item{
		ID:       anchor,
		Type:     typ,
		Title:    title,
		Date:     date,
		Decade:   DecadeOf(date.Year()),
		AnchorID: anchor,
	}
}

// sampleItems spreads n items over consecutive years starting in 1950, three per
// year, cycling through the item types.
func sampleItems(n int) []Item {
	out := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		year := 1950 + i/3
		typ := ItemTypes[i%len(ItemTypes)]
		out = append(out, Item{
			ID:           fmt.Sprintf("id-%03d", i),
			Type:         typ,
			Title:        fmt.Sprintf("Record %03d", i),
			Date:         day(year, time.Month(1+(i%3)*4), 1),
			Decade:       DecadeOf(year),
			CreatorLabel: fmt.Sprintf("Creator %d", i%5),
			Tags:         []string{fmt.Sprintf("tag%d", i%4)},
			AnchorID:     fmt.Sprintf("record-%03d-%d", i, year),
		})
	}
	return out
}

func exampleItems() []Item {
	return []Item{
		newItem("a", TypeBook, day(1950, 1, 1), "A"),
		newItem("b", TypeBook, day(1955, 6, 1), "B"),
		newItem("c", TypeEvent, day(1961, 1, 1), "C"),
	}
}

func newTestEngine(height int, items []Item, hash string) (*Engine, *MemoryLocation) {
	loc := NewMemoryLocation(hash)
	e := NewEngine(NewViewport(height), loc, Options{Overscan: DefaultOverscan})
	e.SetItems(items)
	return e, loc
}

func settle(e *Engine) {
	for i := 0; i < 200 && e.Animate(); i++ {
	}
}
