package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryLocationHistory(t *testing.T) {
	loc := NewMemoryLocation("#start")
	require.Equal(t, "start", loc.Hash())

	var seen []string
	unsub := loc.Subscribe(func(h string) { seen = append(seen, h) })

	loc.Push("#one")
	loc.Push("one")
	loc.Replace("two")
	require.Equal(t, "two", loc.Hash())
	require.Equal(t, 2, loc.HistoryLen())
	require.Equal(t, []string{"one"}, seen, "replace is silent and duplicate push is a no-op")

	require.True(t, loc.Back())
	require.Equal(t, "start", loc.Hash())
	require.False(t, loc.Back())
	require.Equal(t, []string{"one", "start"}, seen)

	unsub()
	loc.Push("three")
	require.Len(t, seen, 2)
}

func TestParseLink(t *testing.T) {
	cases := []struct {
		raw    string
		anchor string
		ok     bool
	}{
		{raw: "chrono://timeline#decade-1950", anchor: "decade-1950", ok: true},
		{raw: "chrono://#moon-landing-1969", anchor: "moon-landing-1969", ok: true},
		{raw: "#moon-landing-1969", anchor: "moon-landing-1969", ok: true},
		{raw: "  moon-landing-1969 ", anchor: "moon-landing-1969", ok: true},
		{raw: "https://example.com/#x", ok: false},
		{raw: "chrono://elsewhere#x", ok: false},
		{raw: "chrono://timeline", ok: false},
		{raw: "two words", ok: false},
		{raw: "#", ok: false},
		{raw: "", ok: false},
	}
	for _, tc := range cases {
		anchor, ok := ParseLink(tc.raw)
		require.Equal(t, tc.ok, ok, tc.raw)
		if tc.ok {
			require.Equal(t, tc.anchor, anchor, tc.raw)
		}
	}
}

func TestFormatLinkRoundTrips(t *testing.T) {
	link := FormatLink("decade-1970")
	require.Equal(t, "chrono://timeline#decade-1970", link)
	anchor, ok := ParseLink(link)
	require.True(t, ok)
	require.Equal(t, "decade-1970", anchor)
}
