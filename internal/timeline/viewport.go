package timeline

// Behavior selects how a programmatic scroll reaches its target.
type Behavior int

const (
	// BehaviorAuto jumps immediately.
	BehaviorAuto Behavior = iota
	// BehaviorSmooth animates over several Step calls.
	BehaviorSmooth
)

func (b Behavior) String() string {
	if b == BehaviorSmooth {
		return "smooth"
	}
	return "auto"
}

// ScrollContainer is the scroll surface the Virtualizer drives. Only the Virtualizer
// writes to it through ScrollTo; everything else reads.
type ScrollContainer interface {
	ScrollTop() int
	ClientHeight() int
	SetContentHeight(total int)
	ScrollTo(top int, behavior Behavior)
}

type listener struct {
	id int
	fn func()
}

// Viewport is the terminal scroll container of the timeline pane, measured in lines.
type Viewport struct {
	top     int
	height  int
	content int

	target    int
	animating bool

	nextID   int
	onScroll []listener
	onResize []listener
}

var _ ScrollContainer = (*Viewport)(nil)

func NewViewport(height int) *Viewport {
	if height < 0 {
		height = 0
	}
	return &Viewport{height: height}
}

func (v *Viewport) ScrollTop() int     { return v.top }
func (v *Viewport) ClientHeight() int  { return v.height }
func (v *Viewport) ContentHeight() int { return v.content }
func (v *Viewport) Animating() bool    { return v.animating }

// MaxScrollTop is the largest reachable offset for the current content.
func (v *Viewport) MaxScrollTop() int {
	return maxInt(0, v.content-v.height)
}

func (v *Viewport) SetContentHeight(total int) {
	if total < 0 {
		total = 0
	}
	v.content = total
	if v.animating {
		v.target = clampInt(v.target, 0, v.MaxScrollTop())
	}
	v.setTop(v.top)
}

// ScrollTo moves to top, clamped to the content. Smooth scrolls only record the
// target; Step advances them.
func (v *Viewport) ScrollTo(top int, behavior Behavior) {
	top = clampInt(top, 0, v.MaxScrollTop())
	if behavior == BehaviorSmooth && top != v.top {
		v.target = top
		v.animating = true
		return
	}
	v.animating = false
	v.setTop(top)
}

// ScrollBy applies user scroll input and cancels any running animation.
func (v *Viewport) ScrollBy(delta int) bool {
	v.animating = false
	before := v.top
	v.setTop(v.top + delta)
	return v.top != before
}

// Step advances a smooth scroll by one frame and reports whether more frames remain.
func (v *Viewport) Step() bool {
	if !v.animating {
		return false
	}
	dist := v.target - v.top
	step := dist / 3
	if step == 0 {
		step = dist
	}
	v.setTop(v.top + step)
	if v.top == v.target {
		v.animating = false
	}
	return v.animating
}

func (v *Viewport) Resize(height int) {
	if height < 0 {
		height = 0
	}
	if height == v.height {
		return
	}
	v.height = height
	v.setTop(v.top)
	fire(v.onResize)
}

// OnScroll registers fn to run after every scroll offset change. The returned func
// removes it.
func (v *Viewport) OnScroll(fn func()) func() {
	return v.add(&v.onScroll, fn)
}

func (v *Viewport) OnResize(fn func()) func() {
	return v.add(&v.onResize, fn)
}

// Detach drops every registered listener.
func (v *Viewport) Detach() {
	v.onScroll = nil
	v.onResize = nil
}

func (v *Viewport) setTop(top int) {
	top = clampInt(top, 0, v.MaxScrollTop())
	if top == v.top {
		return
	}
	v.top = top
	fire(v.onScroll)
}

func (v *Viewport) add(list *[]listener, fn func()) func() {
	if fn == nil {
		return func() {}
	}
	v.nextID++
	id := v.nextID
	*list = append(*list, listener{id: id, fn: fn})
	return func() {
		for i := range *list {
			if (*list)[i].id == id {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

func fire(list []listener) {
	for _, l := range append([]listener(nil), list...) {
		l.fn()
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
