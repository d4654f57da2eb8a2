package timeline

// ActiveRow picks the virtual row whose center is closest to the viewport center.
// Ties go to the later row. Distances are compared in doubled units to stay integral.
func ActiveRow(rows []VirtualRow, scrollTop, clientHeight int) (VirtualRow, bool) {
	if len(rows) == 0 {
		return VirtualRow{}, false
	}
	center2 := 2*scrollTop + clientHeight
	best := -1
	bestDist := 0
	for i := range rows {
		dist := 2*rows[i].Start + rows[i].Size - center2
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist <= bestDist {
			best = i
			bestDist = dist
		}
	}
	return rows[best], true
}

// Tracker remembers the active anchor between scroll events.
type Tracker struct {
	active string
}

func (t *Tracker) Active() string { return t.active }

// Update recomputes the active anchor. A non-empty pinned anchor (an in-flight
// navigation target) wins over geometry. Reports whether the anchor changed.
func (t *Tracker) Update(rows []VirtualRow, scrollTop, clientHeight int, pinned string) (string, bool) {
	next := pinned
	if next == "" {
		if row, ok := ActiveRow(rows, scrollTop, clientHeight); ok {
			next = row.Key
		}
	}
	if next == t.active {
		return t.active, false
	}
	t.active = next
	return next, true
}

func (t *Tracker) Reset() {
	t.active = ""
}
