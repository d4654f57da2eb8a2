package timeline

import "github.com/rs/zerolog"

type navState int

const (
	navIdle navState = iota
	navNavigating
)

// Navigator turns hash values into scroll commands and writes the active anchor
// back to the Location without adding history.
type Navigator struct {
	loc    Location
	virt   *Virtualizer
	lookup func(anchor string) (int, bool)
	log    zerolog.Logger

	state    navState
	target   string
	behavior Behavior

	unsubscribe func()
}

func NewNavigator(loc Location, virt *Virtualizer, lookup func(string) (int, bool), logger zerolog.Logger) *Navigator {
	return &Navigator{
		loc:    loc,
		virt:   virt,
		lookup: lookup,
		log:    logger,
	}
}

// Mount performs the initial instant navigation and starts listening for hash
// changes, which navigate smoothly.
func (n *Navigator) Mount() {
	if n.unsubscribe != nil {
		return
	}
	n.Navigate(n.loc.Hash(), BehaviorAuto)
	n.unsubscribe = n.loc.Subscribe(func(hash string) {
		n.Navigate(hash, BehaviorSmooth)
	})
}

// Close stops listening for hash changes.
func (n *Navigator) Close() {
	if n.unsubscribe != nil {
		n.unsubscribe()
		n.unsubscribe = nil
	}
	n.release()
}

// Navigate scrolls to anchor. Unknown anchors are ignored.
func (n *Navigator) Navigate(anchor string, behavior Behavior) bool {
	anchor = NormalizeHash(anchor)
	if anchor == "" {
		n.release()
		return false
	}
	idx, ok := n.lookup(anchor)
	if !ok {
		n.log.Debug().Str("anchor", anchor).Msg("stale anchor ignored")
		n.release()
		return false
	}
	n.state = navNavigating
	n.target = anchor
	n.behavior = behavior
	return n.virt.ScrollToIndex(idx, AlignStart, behavior)
}

// JumpTo is a user-triggered jump (decade picker, link prompt): the hash is pushed
// and the hash-change handler scrolls smoothly.
func (n *Navigator) JumpTo(anchor string) bool {
	anchor = NormalizeHash(anchor)
	if _, ok := n.lookup(anchor); !ok {
		n.log.Debug().Str("anchor", anchor).Msg("jump target not in current rows")
		return false
	}
	changed := n.loc.Hash() != anchor
	if changed {
		n.loc.Push(anchor)
	}
	if changed && n.unsubscribe != nil {
		return true
	}
	return n.Navigate(anchor, BehaviorSmooth)
}

// Reconcile re-targets an in-flight navigation after the layout changed, or drops
// it when the target row is gone.
func (n *Navigator) Reconcile() {
	if n.state != navNavigating {
		return
	}
	idx, ok := n.lookup(n.target)
	if !ok {
		n.release()
		return
	}
	n.virt.ScrollToIndex(idx, AlignStart, n.behavior)
}

// Release returns to idle; called on user scroll input. Until then a settled
// navigation stays pinned so the hash keeps naming the jump target.
func (n *Navigator) Release() {
	n.release()
}

// Pinned returns the navigation target while navigating.
func (n *Navigator) Pinned() string {
	if n.state != navNavigating {
		return ""
	}
	return n.target
}

func (n *Navigator) Navigating() bool { return n.state == navNavigating }

// SyncHash replaces the hash with the active anchor when they differ.
func (n *Navigator) SyncHash(active string) {
	if active == "" || n.loc.Hash() == active {
		return
	}
	n.loc.Replace(active)
	n.log.Debug().Str("anchor", active).Msg("hash replaced")
}

func (n *Navigator) release() {
	n.state = navIdle
	n.target = ""
}
