package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoRecomputesOnKeyChange(t *testing.T) {
	var m memo[int, string]
	calls := 0
	compute := func() string { calls++; return "v" }

	_, fresh := m.get(1, compute)
	require.True(t, fresh)
	_, fresh = m.get(1, compute)
	require.False(t, fresh)
	_, fresh = m.get(2, compute)
	require.True(t, fresh)
	require.Equal(t, 2, calls)

	m.reset()
	m.get(2, compute)
	require.Equal(t, 3, calls)
}
