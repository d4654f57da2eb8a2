package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/chrono/internal/state"
	"github.com/tOgg1/chrono/internal/timeline"
)

type staticSource struct {
	items []timeline.Item
	err   error
	loads int
}

func (s *staticSource) Load(context.Context) ([]timeline.Item, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return append([]timeline.Item(nil), s.items...), nil
}

func (s *staticSource) Close() error { return nil }

// testItems spreads n records over 1950 onwards, two per year.
func testItems(n int) []timeline.Item {
	out := make([]timeline.Item, 0, n)
	for i := 0; i < n; i++ {
		year := 1950 + i/2
		date := time.Date(year, time.Month(1+(i%2)*6), 1, 0, 0, 0, 0, time.UTC)
		out = append(out, timeline.Item{
			ID:           fmt.Sprintf("id-%02d", i),
			Type:         timeline.ItemTypes[i%len(timeline.ItemTypes)],
			Title:        fmt.Sprintf("Record %02d", i),
			Date:         date,
			Decade:       timeline.DecadeOf(year),
			CreatorLabel: "Archive Desk",
			Summary:      "A **notable** entry.",
			Tags:         []string{"history"},
			AnchorID:     fmt.Sprintf("record-%02d-%d", i, year),
			Links:        []timeline.Link{{Label: "source", URL: "https://example.org"}},
		})
	}
	out[5].Title = "Moon landing broadcast"
	return out
}

func newTestModel(t *testing.T, cfg Config) *Model {
	t.Helper()
	if cfg.Source == nil {
		cfg.Source = &staticSource{items: testItems(60)}
	}
	if cfg.StatePath == "" {
		cfg.StatePath = filepath.Join(t.TempDir(), "state.json")
	}
	if cfg.Overscan == 0 {
		cfg.Overscan = timeline.DefaultOverscan
	}
	m, err := NewModel(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func loadModel(t *testing.T, m *Model) {
	t.Helper()
	m.Update(m.loadCmd()())
	require.True(t, m.loaded || m.loadErr != nil)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(m *Model, keys ...string) {
	for _, key := range keys {
		m.Update(keyMsg(key))
	}
}

func TestModelRendersTimelineAfterLoad(t *testing.T) {
	m := newTestModel(t, Config{})
	require.Contains(t, m.View(), "Loading archive")

	loadModel(t, m)
	view := m.View()
	require.Contains(t, view, "chrono")
	require.Contains(t, view, "1950s")
	require.Contains(t, view, "Record 00")
	require.Equal(t, m.height, lipgloss.Height(view))
	require.Equal(t, "decade-1950", m.loc.Hash())
	require.Equal(t, 1, m.loc.HistoryLen())
}

func TestModelMeasuresVisibleRows(t *testing.T) {
	m := newTestModel(t, Config{})
	loadModel(t, m)

	layout := m.cardLayout()
	require.True(t, layout.twoColumn)
	for _, vr := range m.engine.VirtualRows() {
		if vr.Start >= m.engine.Viewport().ClientHeight() {
			break
		}
		size, ok := m.engine.Virtualizer().Measured(vr.Key)
		require.True(t, ok, "row %s not measured", vr.Key)
		row, _ := m.engine.Row(vr.Index)
		require.Equal(t, lipgloss.Height(renderRow(row, layout, m.palette(), false)), size)
	}
}

func TestModelWidthChangeRemeasures(t *testing.T) {
	m := newTestModel(t, Config{})
	loadModel(t, m)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	layout := m.cardLayout()
	require.False(t, layout.twoColumn)

	row, ok := m.engine.Row(1)
	require.True(t, ok)
	size, ok := m.engine.Virtualizer().Measured(row.AnchorID)
	require.True(t, ok)
	require.Equal(t, lipgloss.Height(renderRow(row, layout, m.palette(), false)), size)
	require.Equal(t, 36, m.engine.Viewport().ClientHeight())
}

func TestModelTypeChipsCycle(t *testing.T) {
	m := newTestModel(t, Config{})
	loadModel(t, m)

	press(m, "tab")
	require.Equal(t, timeline.TypeBook, m.engine.Filter().Type)
	for _, row := range m.engine.Rows() {
		if !row.IsHeader() {
			require.Equal(t, timeline.TypeBook, row.Item.Type)
		}
	}

	press(m, "shift+tab", "shift+tab")
	require.Equal(t, timeline.TypeOther, m.engine.Filter().Type)

	press(m, "0")
	require.Equal(t, timeline.TypeAll, m.engine.Filter().Type)
	require.Len(t, m.engine.Items(), 60)
}

func TestModelSearchFiltersRows(t *testing.T) {
	m := newTestModel(t, Config{})
	loadModel(t, m)

	press(m, "/")
	require.True(t, m.searching)
	press(m, "moon")
	require.Equal(t, "moon", m.engine.Filter().Search)
	rows := m.engine.Rows()
	require.Len(t, rows, 2)
	require.Equal(t, "decade-1950", rows[0].AnchorID)
	require.Equal(t, "Moon landing broadcast", rows[1].Item.Title)

	press(m, "enter")
	require.False(t, m.searching)
	require.Equal(t, "moon", m.engine.Filter().Search)
	require.Contains(t, m.View(), "Moon landing broadcast")

	press(m, "esc")
	require.Empty(t, m.engine.Filter().Search)
	require.Len(t, m.engine.Rows(), 60+len(m.engine.Decades()))
}

func TestModelSearchWithoutMatchesShowsEmptyState(t *testing.T) {
	m := newTestModel(t, Config{})
	loadModel(t, m)

	press(m, "/", "zzzz", "enter")
	require.True(t, m.engine.Empty())
	require.Nil(t, m.engine.VirtualRows())
	require.Contains(t, m.View(), "No items match")
}

func TestModelCompactToggle(t *testing.T) {
	m := newTestModel(t, Config{})
	loadModel(t, m)
	rows := len(m.engine.Rows())

	press(m, "c")
	require.True(t, m.engine.Filter().Compact)
	require.False(t, m.cardLayout().twoColumn)
	require.Len(t, m.engine.Rows(), rows)

	row, _ := m.engine.Row(1)
	size, ok := m.engine.Virtualizer().Measured(row.AnchorID)
	require.True(t, ok)
	require.Equal(t, 3, size)

	press(m, "c")
	require.False(t, m.engine.Filter().Compact)
}

func TestModelDecadePickerJumps(t *testing.T) {
	m := newTestModel(t, Config{})
	loadModel(t, m)

	press(m, "d")
	require.True(t, m.picker.open)
	require.Equal(t, m.engine.Decades(), m.picker.decades)
	require.Equal(t, 20, m.picker.counts[1950])
	require.Contains(t, m.View(), "Jump to decade")

	press(m, "j", "enter")
	require.False(t, m.picker.open)
	require.Equal(t, "decade-1960", m.loc.Hash())
	require.Equal(t, 2, m.loc.HistoryLen())
	require.False(t, m.engine.Animating())
	require.Equal(t, "decade-1960", m.engine.ActiveAnchor())

	idx, ok := m.engine.Index().Lookup("decade-1960")
	require.True(t, ok)
	require.Equal(t, m.engine.Virtualizer().Start(idx), m.engine.Viewport().ScrollTop())

	press(m, "b")
	require.Equal(t, "decade-1950", m.loc.Hash())
	require.Equal(t, 0, m.engine.Viewport().ScrollTop())
}

func TestModelSmoothScrollTicks(t *testing.T) {
	m := newTestModel(t, Config{SmoothScroll: true})
	loadModel(t, m)

	_, cmd := m.Update(keyMsg("]"))
	require.NotNil(t, cmd)
	require.True(t, m.ticking)
	require.True(t, m.engine.Animating())
	require.Equal(t, "decade-1960", m.loc.Hash())

	for i := 0; i < 100 && m.engine.Animating(); i++ {
		m.Update(animateMsg{})
	}
	require.False(t, m.engine.Animating())
	require.Equal(t, "decade-1960", m.engine.ActiveAnchor())
}

func TestModelOpensDetailForActiveItem(t *testing.T) {
	items := testItems(60)
	var opened []timeline.Item
	m := newTestModel(t, Config{
		Source: &staticSource{items: items},
		Anchor: "#" + items[24].AnchorID,
		OnOpen: func(item timeline.Item) { opened = append(opened, item) },
	})
	loadModel(t, m)
	require.Equal(t, items[24].AnchorID, m.engine.ActiveAnchor())

	press(m, "enter")
	require.NotNil(t, m.detail)
	require.Len(t, opened, 1)
	require.Equal(t, items[24].ID, opened[0].ID)

	view := m.View()
	require.Contains(t, view, items[24].Title)
	require.Contains(t, view, "chrono://timeline#"+items[24].AnchorID)

	press(m, "esc")
	require.Nil(t, m.detail)
}

func TestModelMouse(t *testing.T) {
	items := testItems(60)
	var opened []timeline.Item
	m := newTestModel(t, Config{
		Source: &staticSource{items: items},
		OnOpen: func(item timeline.Item) { opened = append(opened, item) },
	})
	loadModel(t, m)

	top := headerLines + toolbarLines
	m.Update(tea.MouseMsg{X: 10, Y: top, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.Nil(t, m.detail, "clicking a decade header opens nothing")

	m.Update(tea.MouseMsg{X: 10, Y: top + 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.NotNil(t, m.detail)
	require.Equal(t, items[0].AnchorID, m.detail.AnchorID)
	require.Len(t, opened, 1)

	m.Update(tea.MouseMsg{X: 10, Y: top, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.Nil(t, m.detail)

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	require.Equal(t, wheelStep, m.engine.Viewport().ScrollTop())
	require.False(t, m.engine.Navigating())
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	require.Equal(t, 0, m.engine.Viewport().ScrollTop())
}

func TestModelUserScrollReplacesHash(t *testing.T) {
	m := newTestModel(t, Config{})
	loadModel(t, m)

	press(m, "G")
	require.Equal(t, m.engine.Viewport().MaxScrollTop(), m.engine.Viewport().ScrollTop())
	require.NotEqual(t, "decade-1950", m.loc.Hash())
	require.Equal(t, m.engine.ActiveAnchor(), m.loc.Hash())
	require.Equal(t, 1, m.loc.HistoryLen())

	press(m, "g")
	require.Equal(t, "decade-1950", m.loc.Hash())
}

func TestModelEmptyDataset(t *testing.T) {
	m := newTestModel(t, Config{Source: &staticSource{}})
	loadModel(t, m)

	require.True(t, m.loaded)
	require.True(t, m.engine.Empty())
	require.Contains(t, m.View(), "No items match")

	press(m, "d")
	require.False(t, m.picker.open)
	require.Equal(t, "no decades to jump to", m.status)
}

func TestModelLoadError(t *testing.T) {
	m := newTestModel(t, Config{Source: &staticSource{err: errors.New("disk on fire")}})
	loadModel(t, m)

	require.False(t, m.loaded)
	view := m.View()
	require.Contains(t, view, "Could not load archive")
	require.Contains(t, view, "load error: disk on fire")
}

func TestModelReloadKeepsPosition(t *testing.T) {
	items := testItems(60)
	src := &staticSource{items: items}
	m := newTestModel(t, Config{Source: src, Anchor: items[30].AnchorID})
	loadModel(t, m)
	require.Equal(t, items[30].AnchorID, m.loc.Hash())

	src.items = append(src.items[:0:0], items[:40]...)
	loadModel(t, m)
	require.Equal(t, 2, src.loads)
	require.Len(t, m.engine.Items(), 40)
	require.Equal(t, "reloaded 40 records", m.status)
	require.Equal(t, items[30].AnchorID, m.engine.ActiveAnchor())

	edited := append([]timeline.Item(nil), items[:40]...)
	edited[31].Title = strings.Repeat("A much longer retitled broadcast ", 12)
	src.items = edited
	loadModel(t, m)

	idx, ok := m.engine.Index().Lookup(edited[31].AnchorID)
	require.True(t, ok)
	row, _ := m.engine.Row(idx)
	natural := lipgloss.Height(renderRow(row, m.cardLayout(), m.palette(), false))
	require.Greater(t, natural, timeline.DefaultEstimates().Item)
	require.Equal(t, natural, m.engine.Virtualizer().Size(idx))
	require.Equal(t, items[30].AnchorID, m.engine.ActiveAnchor())
}

func TestModelPersistsLastAnchor(t *testing.T) {
	items := testItems(60)
	statePath := filepath.Join(t.TempDir(), "state.json")

	first := newTestModel(t, Config{Source: &staticSource{items: items}, StatePath: statePath, Anchor: items[12].AnchorID})
	loadModel(t, first)
	require.NoError(t, first.Close())

	saved := state.New(statePath)
	require.NoError(t, saved.Load())
	require.Equal(t, items[12].AnchorID, saved.LastAnchor())

	second := newTestModel(t, Config{Source: &staticSource{items: items}, StatePath: statePath})
	require.Equal(t, items[12].AnchorID, second.loc.Hash())
	loadModel(t, second)
	require.Equal(t, items[12].AnchorID, second.engine.ActiveAnchor())

	third := newTestModel(t, Config{Source: &staticSource{items: items}, StatePath: statePath, Anchor: items[40].AnchorID})
	require.Equal(t, items[40].AnchorID, third.loc.Hash())
}

func TestModelThemeToggleAndPrecedence(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	m := newTestModel(t, Config{StatePath: statePath})
	loadModel(t, m)

	press(m, "T")
	require.Equal(t, "high-contrast", m.themeName)
	require.Equal(t, "high-contrast", m.palette().Name)
	require.NoError(t, m.Close())

	restored := newTestModel(t, Config{StatePath: statePath, Theme: "default"})
	require.Equal(t, "high-contrast", restored.themeName)

	forced := newTestModel(t, Config{StatePath: statePath, Theme: "default", ForceTheme: true})
	require.Equal(t, "default", forced.themeName)
}

func TestModelCopyLinkStatus(t *testing.T) {
	m := newTestModel(t, Config{})
	loadModel(t, m)

	press(m, "y")
	require.Equal(t, "chrono://timeline#decade-1950", m.status)
	require.Contains(t, m.View(), "chrono://timeline#decade-1950")

	press(m, "j")
	require.Empty(t, m.status)
}

func TestNewModelValidatesConfig(t *testing.T) {
	_, err := NewModel(Config{})
	require.Error(t, err)

	_, err = NewModel(Config{Source: &staticSource{}, Theme: "neon"})
	require.ErrorContains(t, err, "invalid theme")
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, Config{})
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	require.True(t, emitsQuit(cmd()))
}

func emitsQuit(msg tea.Msg) bool {
	switch typed := msg.(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, cmd := range typed {
			if cmd != nil && emitsQuit(cmd()) {
				return true
			}
		}
	}
	return false
}

func TestModelSpinnerRunsUntilLoaded(t *testing.T) {
	m := newTestModel(t, Config{})

	_, cmd := m.Update(spinnerTickMsg{})
	require.NotNil(t, cmd)
	require.Equal(t, 1, m.spinFrame)

	loadModel(t, m)
	_, cmd = m.Update(spinnerTickMsg{})
	require.Nil(t, cmd)
	require.Equal(t, 1, m.spinFrame)
}
