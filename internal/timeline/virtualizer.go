package timeline

import "sort"

// Align picks which edge of the viewport a ScrollToIndex target lines up with.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	// AlignAuto scrolls the minimum distance needed to fully show the row.
	AlignAuto
)

const DefaultOverscan = 12

// Estimates are the initial row sizes used until a row is measured.
type Estimates struct {
	Item        int
	ItemCompact int
	Header      int
}

func DefaultEstimates() Estimates {
	return Estimates{Item: 7, ItemCompact: 3, Header: 2}
}

// For returns the estimated size of row in the given mode.
func (e Estimates) For(row Row, compact bool) int {
	def := DefaultEstimates()
	switch {
	case row.Kind == RowDecadeHeader:
		return positiveOr(e.Header, def.Header)
	case compact:
		return positiveOr(e.ItemCompact, def.ItemCompact)
	default:
		return positiveOr(e.Item, def.Item)
	}
}

// VirtualRow is a materialized row: its index in the row list plus its current
// offset and size.
type VirtualRow struct {
	Index int
	Start int
	Size  int
	Key   string
}

func (r VirtualRow) End() int { return r.Start + r.Size }

type windowKey struct {
	version  uint64
	top      int
	height   int
	overscan int
}

// Virtualizer keeps per-row sizes and prefix-sum offsets for a variable-height row
// list and reports which rows intersect the container viewport.
//
// Measured sizes are keyed by anchor id, not index, so they follow a row when
// filtering shifts the index space.
type Virtualizer struct {
	container ScrollContainer
	estimates Estimates
	overscan  int
	compact   bool

	rows     []Row
	measured map[string]int
	sizes    []int
	offsets  []int
	dirty    bool
	version  uint64

	window memo[windowKey, []VirtualRow]
}

func NewVirtualizer(container ScrollContainer, estimates Estimates, overscan int) *Virtualizer {
	if overscan < 0 {
		overscan = 0
	}
	return &Virtualizer{
		container: container,
		estimates: estimates,
		overscan:  overscan,
		measured:  make(map[string]int),
	}
}

// SetRows replaces the row list. Sizes are re-seeded from measurements (by anchor)
// or estimates; nothing is computed for an empty list.
func (v *Virtualizer) SetRows(rows []Row) {
	v.rows = rows
	v.window.reset()
	if len(rows) == 0 {
		v.sizes = nil
		v.offsets = nil
		v.dirty = false
		v.version++
		v.container.SetContentHeight(0)
		return
	}
	v.sizes = make([]int, len(rows))
	for i := range rows {
		v.sizes[i] = v.sizeFor(i)
	}
	v.dirty = true
}

// SetCompact switches the estimate baseline. Measurements taken in the other mode
// no longer apply and are discarded.
func (v *Virtualizer) SetCompact(compact bool) {
	if compact == v.compact {
		return
	}
	v.compact = compact
	v.ResetMeasurements()
}

func (v *Virtualizer) Compact() bool { return v.compact }

// ResetMeasurements drops every measured size and falls back to estimates.
func (v *Virtualizer) ResetMeasurements() {
	v.measured = make(map[string]int)
	v.SetRows(v.rows)
}

// Forget drops the measured sizes of the given anchors; their rows fall back to
// estimates until measured again.
func (v *Virtualizer) Forget(anchors ...string) {
	for _, anchor := range anchors {
		delete(v.measured, anchor)
	}
}

func (v *Virtualizer) Count() int { return len(v.rows) }

func (v *Virtualizer) Overscan() int { return v.overscan }

// Measured reports the recorded size for an anchor, if any.
func (v *Virtualizer) Measured(anchor string) (int, bool) {
	size, ok := v.measured[anchor]
	return size, ok
}

// Size returns the current (measured or estimated) size of row i.
func (v *Virtualizer) Size(i int) int {
	if i < 0 || i >= len(v.sizes) {
		return 0
	}
	return v.sizes[i]
}

// Start returns the offset of row i.
func (v *Virtualizer) Start(i int) int {
	if i < 0 || i >= len(v.rows) {
		return 0
	}
	v.ensureOffsets()
	return v.offsets[i]
}

func (v *Virtualizer) TotalSize() int {
	if len(v.rows) == 0 {
		return 0
	}
	v.ensureOffsets()
	return v.offsets[len(v.rows)]
}

// Measure records the rendered size of row i. Non-positive sizes are measurement
// failures: the previous size stays. When a row above the current scroll offset
// changes size the container is shifted by the same delta so on-screen content
// does not jump. Reports whether the layout changed.
func (v *Virtualizer) Measure(i int, size int) bool {
	if i < 0 || i >= len(v.rows) || size <= 0 {
		return false
	}
	key := v.rows[i].AnchorID
	v.measured[key] = size
	prev := v.sizes[i]
	if prev == size {
		return false
	}
	v.ensureOffsets()
	start := v.offsets[i]
	top := v.container.ScrollTop()

	v.sizes[i] = size
	v.dirty = true
	v.ensureOffsets()

	if start < top {
		v.container.ScrollTo(top+size-prev, BehaviorAuto)
	}
	return true
}

// Range returns the first and last row indices intersecting the viewport, without
// overscan.
func (v *Virtualizer) Range() (first, last int, ok bool) {
	n := len(v.rows)
	if n == 0 {
		return 0, 0, false
	}
	v.ensureOffsets()
	top := v.container.ScrollTop()
	bottom := top + v.container.ClientHeight()
	first = sort.Search(n, func(i int) bool { return v.offsets[i+1] > top })
	if first >= n {
		first = n - 1
	}
	last = sort.Search(n, func(i int) bool { return v.offsets[i] >= bottom }) - 1
	if last < first {
		last = first
	}
	return first, last, true
}

// VirtualRows returns the rows to materialize: the visible range plus overscan on
// both sides. The result is memoized on layout version and viewport geometry.
func (v *Virtualizer) VirtualRows() []VirtualRow {
	if len(v.rows) == 0 {
		return nil
	}
	v.ensureOffsets()
	key := windowKey{
		version:  v.version,
		top:      v.container.ScrollTop(),
		height:   v.container.ClientHeight(),
		overscan: v.overscan,
	}
	rows, _ := v.window.get(key, func() []VirtualRow {
		first, last, _ := v.Range()
		from := maxInt(0, first-v.overscan)
		to := minInt(len(v.rows)-1, last+v.overscan)
		out := make([]VirtualRow, 0, to-from+1)
		for i := from; i <= to; i++ {
			out = append(out, VirtualRow{
				Index: i,
				Start: v.offsets[i],
				Size:  v.sizes[i],
				Key:   v.rows[i].AnchorID,
			})
		}
		return out
	})
	return rows
}

// OffsetForIndex computes the scroll offset that places row index according to align,
// clamped to the scrollable range.
func (v *Virtualizer) OffsetForIndex(index int, align Align) (int, bool) {
	if index < 0 || index >= len(v.rows) {
		return 0, false
	}
	v.ensureOffsets()
	start := v.offsets[index]
	size := v.sizes[index]
	height := v.container.ClientHeight()
	top := v.container.ScrollTop()

	var offset int
	switch align {
	case AlignCenter:
		offset = start + size/2 - height/2
	case AlignEnd:
		offset = start + size - height
	case AlignAuto:
		switch {
		case start >= top && start+size <= top+height:
			offset = top
		case start < top || size > height:
			offset = start
		default:
			offset = start + size - height
		}
	default:
		offset = start
	}
	return clampInt(offset, 0, maxInt(0, v.offsets[len(v.rows)]-height)), true
}

// ScrollToIndex moves the container so row index is aligned as requested. It is
// the only writer of the container's scroll offset besides user input.
func (v *Virtualizer) ScrollToIndex(index int, align Align, behavior Behavior) bool {
	offset, ok := v.OffsetForIndex(index, align)
	if !ok {
		return false
	}
	v.container.ScrollTo(offset, behavior)
	return true
}

func (v *Virtualizer) sizeFor(i int) int {
	row := v.rows[i]
	if size, ok := v.measured[row.AnchorID]; ok && size > 0 {
		return size
	}
	return v.estimates.For(row, v.compact)
}

func (v *Virtualizer) ensureOffsets() {
	if !v.dirty {
		return
	}
	n := len(v.rows)
	if cap(v.offsets) >= n+1 {
		v.offsets = v.offsets[:n+1]
	} else {
		v.offsets = make([]int, n+1)
	}
	v.offsets[0] = 0
	for i := 0; i < n; i++ {
		v.offsets[i+1] = v.offsets[i] + v.sizes[i]
	}
	v.dirty = false
	v.version++
	v.container.SetContentHeight(v.offsets[n])
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
