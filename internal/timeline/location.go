package timeline

import (
	"net/url"
	"strings"
)

const (
	LinkScheme = "chrono"
	LinkHost   = "timeline"
)

// Location is the addressable position of the timeline: a hash with browser-like
// history semantics. Push adds a history entry and notifies subscribers; Replace is
// history-neutral and silent.
type Location interface {
	Hash() string
	Push(hash string)
	Replace(hash string)
	Back() bool
	Subscribe(fn func(hash string)) func()
}

type hashListener struct {
	id int
	fn func(string)
}

// MemoryLocation is an in-process Location.
type MemoryLocation struct {
	history   []string
	listeners []hashListener
	nextID    int
}

var _ Location = (*MemoryLocation)(nil)

func NewMemoryLocation(initial string) *MemoryLocation {
	return &MemoryLocation{history: []string{NormalizeHash(initial)}}
}

func (l *MemoryLocation) Hash() string {
	return l.history[len(l.history)-1]
}

func (l *MemoryLocation) HistoryLen() int {
	return len(l.history)
}

// Push navigates to hash. Pushing the current hash is a no-op, as in browsers.
func (l *MemoryLocation) Push(hash string) {
	hash = NormalizeHash(hash)
	if hash == l.Hash() {
		return
	}
	l.history = append(l.history, hash)
	l.notify(hash)
}

func (l *MemoryLocation) Replace(hash string) {
	l.history[len(l.history)-1] = NormalizeHash(hash)
}

func (l *MemoryLocation) Back() bool {
	if len(l.history) <= 1 {
		return false
	}
	l.history = l.history[:len(l.history)-1]
	l.notify(l.Hash())
	return true
}

func (l *MemoryLocation) Subscribe(fn func(hash string)) func() {
	if fn == nil {
		return func() {}
	}
	l.nextID++
	id := l.nextID
	l.listeners = append(l.listeners, hashListener{id: id, fn: fn})
	return func() {
		for i := range l.listeners {
			if l.listeners[i].id == id {
				l.listeners = append(l.listeners[:i:i], l.listeners[i+1:]...)
				return
			}
		}
	}
}

func (l *MemoryLocation) notify(hash string) {
	for _, ln := range append([]hashListener(nil), l.listeners...) {
		ln.fn(hash)
	}
}

// NormalizeHash strips surrounding space and a leading '#'.
func NormalizeHash(hash string) string {
	return strings.TrimPrefix(strings.TrimSpace(hash), "#")
}

// ParseLink extracts an anchor from "#anchor", "anchor" or "chrono://timeline#anchor".
func ParseLink(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme != LinkScheme || (u.Host != "" && u.Host != LinkHost) {
			return "", false
		}
		anchor := NormalizeHash(u.Fragment)
		return anchor, anchor != ""
	}
	anchor := NormalizeHash(raw)
	if anchor == "" || strings.ContainsAny(anchor, " \t\n#") {
		return "", false
	}
	return anchor, true
}

// FormatLink renders the deep link for anchor.
func FormatLink(anchor string) string {
	u := url.URL{Scheme: LinkScheme, Host: LinkHost, Fragment: NormalizeHash(anchor)}
	return u.String()
}
