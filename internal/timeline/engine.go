package timeline

import (
	"slices"

	"github.com/rs/zerolog"
)

// Options configure an Engine.
type Options struct {
	Estimates Estimates
	Overscan  int
	Filter    FilterState
	Logger    *zerolog.Logger
}

type rowsKey struct {
	generation uint64
	search     string
	typ        ItemType
}

// Engine owns the derived timeline pipeline for one scroll container and one
// Location: filtered items, rows, the anchor index, the virtualizer, hash
// navigation and active-row tracking.
type Engine struct {
	log zerolog.Logger

	items      []Item
	generation uint64
	filter     FilterState

	planned memo[rowsKey, []Row]
	rows    []Row
	index   *AnchorIndex

	viewport *Viewport
	virt     *Virtualizer
	loc      Location
	nav      *Navigator
	tracker  Tracker

	mounted bool
	unsubs  []func()
}

func NewEngine(viewport *Viewport, loc Location, opts Options) *Engine {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	filter := opts.Filter
	if filter.Type == "" {
		filter.Type = TypeAll
	}
	e := &Engine{
		log:      logger,
		filter:   filter,
		index:    NewAnchorIndex(nil),
		viewport: viewport,
		loc:      loc,
	}
	e.virt = NewVirtualizer(viewport, opts.Estimates, opts.Overscan)
	e.virt.SetCompact(filter.Compact)
	e.nav = NewNavigator(loc, e.virt, e.index.Lookup, logger)
	e.unsubs = append(e.unsubs,
		viewport.OnScroll(e.refreshActive),
		viewport.OnResize(e.refreshActive),
	)
	return e
}

// Mount starts hash navigation. Call it once the first dataset is in place.
func (e *Engine) Mount() {
	if e.mounted {
		return
	}
	e.mounted = true
	e.nav.Mount()
	// Registered after the navigator so it observes the post-navigation state.
	e.unsubs = append(e.unsubs, e.loc.Subscribe(func(string) { e.refreshActive() }))
	e.refreshActive()
}

// Close removes every listener the engine registered.
func (e *Engine) Close() {
	for _, unsub := range e.unsubs {
		unsub()
	}
	e.unsubs = nil
	e.nav.Close()
	e.mounted = false
}

// SetItems replaces the dataset (a new page view of the data). Measurements of
// records whose content changed are dropped so their rows are measured again.
func (e *Engine) SetItems(items []Item) {
	if changed := changedAnchors(e.items, items); len(changed) > 0 {
		e.virt.Forget(changed...)
		e.log.Debug().Int("changed", len(changed)).Msg("dropped stale measurements")
	}
	e.items = items
	e.generation++
	e.recompute()
}

func (e *Engine) Items() []Item { return e.items }

// SetFilter atomically replaces the filter state.
func (e *Engine) SetFilter(f FilterState) {
	if f.Type == "" {
		f.Type = TypeAll
	}
	if f == e.filter {
		return
	}
	compactChanged := f.Compact != e.filter.Compact
	e.filter = f
	if compactChanged {
		e.virt.SetCompact(f.Compact)
	}
	e.recompute()
}

func (e *Engine) Filter() FilterState { return e.filter }

func (e *Engine) recompute() {
	key := rowsKey{generation: e.generation, search: e.filter.Search, typ: e.filter.Type}
	rows, rebuilt := e.planned.get(key, func() []Row {
		return BuildRows(Apply(e.items, e.filter))
	})
	if rebuilt {
		e.rows = rows
		if dups := e.index.Rebuild(rows); len(dups) > 0 {
			e.log.Warn().Strs("anchors", dups).Msg("duplicate anchors in rows")
		}
		e.virt.SetRows(rows)
		e.log.Debug().
			Int("items", len(e.items)).
			Int("rows", len(rows)).
			Str("search", e.filter.Search).
			Str("type", string(e.filter.Type)).
			Msg("rows planned")
	}
	e.layout()
}

// layout runs a layout pass: offsets, navigation re-targeting, active anchor.
func (e *Engine) layout() {
	if len(e.rows) > 0 {
		e.virt.TotalSize()
	}
	e.nav.Reconcile()
	e.refreshActive()
}

func (e *Engine) Rows() []Row { return e.rows }

func (e *Engine) Row(i int) (Row, bool) {
	if i < 0 || i >= len(e.rows) {
		return Row{}, false
	}
	return e.rows[i], true
}

func (e *Engine) Empty() bool { return len(e.rows) == 0 }

func (e *Engine) Index() *AnchorIndex { return e.index }

func (e *Engine) Virtualizer() *Virtualizer { return e.virt }

func (e *Engine) Viewport() *Viewport { return e.viewport }

func (e *Engine) Location() Location { return e.loc }

// VirtualRows returns the rows to render; nil when there is nothing to virtualize.
func (e *Engine) VirtualRows() []VirtualRow {
	if len(e.rows) == 0 {
		return nil
	}
	return e.virt.VirtualRows()
}

// Measure feeds a rendered row height back into the layout.
func (e *Engine) Measure(anchor string, size int) bool {
	idx, ok := e.index.Lookup(anchor)
	if !ok {
		return false
	}
	if size <= 0 {
		e.log.Debug().Str("anchor", anchor).Int("size", size).Msg("measurement failed, keeping estimate")
		return false
	}
	if !e.virt.Measure(idx, size) {
		return false
	}
	e.layout()
	return true
}

// ResetMeasurements discards measured sizes, e.g. after the pane width changed.
func (e *Engine) ResetMeasurements() {
	e.virt.ResetMeasurements()
	e.layout()
}

// ScrollBy applies user scroll input; it ends any in-flight navigation.
func (e *Engine) ScrollBy(delta int) bool {
	e.nav.Release()
	moved := e.viewport.ScrollBy(delta)
	if !moved {
		e.refreshActive()
	}
	return moved
}

// ScrollToStart and ScrollToEnd are user scrolls to either end.
func (e *Engine) ScrollToStart() bool {
	return e.ScrollBy(-e.viewport.ScrollTop())
}

func (e *Engine) ScrollToEnd() bool {
	return e.ScrollBy(e.viewport.MaxScrollTop() - e.viewport.ScrollTop())
}

// Resize changes the viewport height.
func (e *Engine) Resize(height int) {
	e.viewport.Resize(height)
}

// Animate advances a smooth scroll by one frame.
func (e *Engine) Animate() bool {
	return e.viewport.Step()
}

func (e *Engine) Animating() bool { return e.viewport.Animating() }

// JumpTo pushes anchor onto the Location and scrolls to it.
func (e *Engine) JumpTo(anchor string) bool {
	ok := e.nav.JumpTo(anchor)
	e.refreshActive()
	return ok
}

func (e *Engine) JumpToDecade(decade int) bool {
	return e.JumpTo(DecadeAnchor(decade))
}

// StepDecade jumps to the next (dir > 0) or previous decade header relative to
// the active row.
func (e *Engine) StepDecade(dir int) bool {
	decades := Decades(e.rows)
	if len(decades) == 0 || dir == 0 {
		return false
	}
	current := decades[0]
	if row, ok := e.ActiveRow(); ok {
		current = row.Decade
	}
	if dir > 0 {
		for _, d := range decades {
			if d > current {
				return e.JumpToDecade(d)
			}
		}
		return false
	}
	for i := len(decades) - 1; i >= 0; i-- {
		if decades[i] < current {
			return e.JumpToDecade(decades[i])
		}
	}
	if row, ok := e.ActiveRow(); ok && !row.IsHeader() {
		return e.JumpToDecade(current)
	}
	return false
}

// Back pops the Location history.
func (e *Engine) Back() bool {
	return e.loc.Back()
}

// Decades lists the jump targets present in the current rows.
func (e *Engine) Decades() []int {
	return Decades(e.rows)
}

func (e *Engine) Navigating() bool { return e.nav.Navigating() }

func (e *Engine) ActiveAnchor() string { return e.tracker.Active() }

func (e *Engine) ActiveRow() (Row, bool) {
	idx, ok := e.index.Lookup(e.tracker.Active())
	if !ok {
		return Row{}, false
	}
	return e.rows[idx], true
}

// RowAt hit-tests a line of the viewport (0 = top line) against the virtual rows.
func (e *Engine) RowAt(line int) (Row, bool) {
	if line < 0 || line >= e.viewport.ClientHeight() {
		return Row{}, false
	}
	abs := e.viewport.ScrollTop() + line
	for _, vr := range e.VirtualRows() {
		if abs >= vr.Start && abs < vr.End() {
			return e.rows[vr.Index], true
		}
	}
	return Row{}, false
}

func (e *Engine) refreshActive() {
	if len(e.rows) == 0 {
		e.tracker.Reset()
		return
	}
	if !e.mounted {
		return
	}
	anchor, _ := e.tracker.Update(
		e.virt.VirtualRows(),
		e.viewport.ScrollTop(),
		e.viewport.ClientHeight(),
		e.nav.Pinned(),
	)
	// A hash that names no current row (stale link, Back to a filtered-away entry)
	// is rewritten even when the active anchor itself did not move.
	e.nav.SyncHash(anchor)
}

// changedAnchors lists anchors present in both datasets whose record differs.
func changedAnchors(prev, next []Item) []string {
	if len(prev) == 0 || len(next) == 0 {
		return nil
	}
	byAnchor := make(map[string]*Item, len(prev))
	for i := range prev {
		byAnchor[prev[i].AnchorID] = &prev[i]
	}
	var out []string
	for i := range next {
		old, ok := byAnchor[next[i].AnchorID]
		if ok && !sameItem(*old, next[i]) {
			out = append(out, next[i].AnchorID)
		}
	}
	return out
}

func sameItem(a, b Item) bool {
	return a.ID == b.ID &&
		a.Type == b.Type &&
		a.Title == b.Title &&
		a.Date.Equal(b.Date) &&
		a.Decade == b.Decade &&
		a.CreatorLabel == b.CreatorLabel &&
		a.Summary == b.Summary &&
		a.Thumbnail == b.Thumbnail &&
		slices.Equal(a.Tags, b.Tags) &&
		slices.Equal(a.Links, b.Links)
}
