package timeline

// memo caches the last result of a derivation keyed by its explicit inputs.
type memo[K comparable, V any] struct {
	key K
	val V
	ok  bool
}

// get returns the cached value for key, computing it when the key changed. The
// second result reports whether compute ran.
func (m *memo[K, V]) get(key K, compute func() V) (V, bool) {
	if m.ok && m.key == key {
		return m.val, false
	}
	m.key = key
	m.val = compute()
	m.ok = true
	return m.val, true
}

func (m *memo[K, V]) reset() {
	var zero V
	m.val = zero
	m.ok = false
}
