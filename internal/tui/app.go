// Package tui is the interactive terminal timeline.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tOgg1/chrono/internal/archive"
	"github.com/tOgg1/chrono/internal/logging"
	"github.com/tOgg1/chrono/internal/state"
	"github.com/tOgg1/chrono/internal/timeline"
	"github.com/tOgg1/chrono/internal/tui/styles"
)

const (
	defaultTwoColumnMinWidth = 100
	frameInterval            = 16 * time.Millisecond
	spinnerInterval          = 100 * time.Millisecond
	loadTimeout              = 30 * time.Second
	wheelStep                = 3
)

type Config struct {
	Source      archive.Source
	SourceLabel string
	// WatchPath reloads the dataset when this file changes. Empty disables it.
	WatchPath string

	Theme string
	// ForceTheme makes Theme win over the theme persisted in session state.
	ForceTheme bool
	Compact    bool
	// Anchor is the initial hash (deep link). Empty restores the last session.
	Anchor    string
	StatePath string

	Estimates         timeline.Estimates
	Overscan          int
	SmoothScroll      bool
	TwoColumnMinWidth int

	// OnOpen is called when the user opens an item.
	OnOpen func(timeline.Item)
}

type Model struct {
	cfg         Config
	log         zerolog.Logger
	source      archive.Source
	sourceLabel string
	watcher     *archive.Watcher
	tuiState    *state.Manager
	themeName   string

	loc    *timeline.MemoryLocation
	engine *timeline.Engine

	width  int
	height int

	loaded    bool
	loadErr   error
	status    string
	ticking   bool
	spinFrame int
	persisted string

	search    textinput.Model
	searching bool
	picker    decadePicker
	detail    *timeline.Item
}

type datasetLoadedMsg struct {
	items []timeline.Item
	err   error
}

type datasetChangedMsg struct{}

type animateMsg struct{}

type spinnerTickMsg struct{}

func NewModel(cfg Config) (*Model, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	m := &Model{
		cfg:         cfg,
		log:         logging.Component("tui"),
		source:      cfg.Source,
		sourceLabel: cfg.SourceLabel,
		tuiState:    state.New(cfg.StatePath),
		themeName:   cfg.Theme,
	}
	// Non-fatal: fall back to in-memory defaults.
	if err := m.tuiState.Load(); err != nil {
		m.log.Warn().Err(err).Str("path", cfg.StatePath).Msg("session state unreadable")
	}
	if saved := m.tuiState.Theme(); saved != "" && !cfg.ForceTheme {
		if _, ok := styles.Themes[saved]; ok {
			m.themeName = saved
		}
	}

	initial := cfg.Anchor
	if initial == "" {
		initial = m.tuiState.LastAnchor()
	}
	m.loc = timeline.NewMemoryLocation(initial)

	engineLog := logging.Component("timeline")
	m.engine = timeline.NewEngine(timeline.NewViewport(0), m.loc, timeline.Options{
		Estimates: cfg.Estimates,
		Overscan:  cfg.Overscan,
		Filter:    timeline.DefaultFilter().WithCompact(cfg.Compact),
		Logger:    &engineLog,
	})

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "title, creator, tags"
	m.search.CharLimit = 120

	if cfg.WatchPath != "" {
		w, err := archive.NewWatcher(cfg.WatchPath)
		if err != nil {
			// Non-fatal: the dataset just won't live-reload.
			m.log.Warn().Err(err).Str("path", cfg.WatchPath).Msg("dataset watch disabled")
		} else {
			m.watcher = w
		}
	}
	return m, nil
}

func Run(cfg Config) error {
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}

// Close persists the current hash and releases listeners and the watcher.
func (m *Model) Close() error {
	if m == nil {
		return nil
	}
	var errs []error
	if m.watcher != nil {
		errs = append(errs, m.watcher.Close())
		m.watcher = nil
	}
	if m.engine != nil {
		m.engine.Close()
		m.engine.Viewport().Detach()
	}
	if m.tuiState != nil {
		if hash := m.loc.Hash(); hash != "" {
			m.tuiState.SetLastAnchor(hash)
		}
		errs = append(errs, m.tuiState.Close())
	}
	return errors.Join(errs...)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitForChangeCmd(), spinnerCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.measureVisible()
	if !m.cfg.SmoothScroll {
		m.finishScroll()
	}
	m.persistAnchor()
	return m, tea.Batch(cmd, m.animateCmd())
}

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	header := m.renderHeader()
	toolbar := m.renderToolbar()
	footer := m.renderFooter()

	height := m.paneHeight()
	var body string
	switch {
	case m.detail != nil:
		body = renderDetailOverlay(*m.detail, m.width, height, m.palette())
	case m.picker.open:
		body = m.picker.render(m.width, height, m.palette())
	default:
		body = m.renderTimeline(m.width, height)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, toolbar, body, footer)
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(typed.Width, typed.Height)
		return nil
	case datasetLoadedMsg:
		m.applyDataset(typed)
		return nil
	case datasetChangedMsg:
		return tea.Batch(m.loadCmd(), m.waitForChangeCmd())
	case animateMsg:
		m.ticking = false
		m.engine.Animate()
		return nil
	case spinnerTickMsg:
		if m.loaded || m.loadErr != nil {
			return nil
		}
		m.spinFrame++
		return spinnerCmd()
	case tea.MouseMsg:
		m.handleMouse(typed)
		return nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) resize(width, height int) {
	widthChanged := width != m.width
	m.width = width
	m.height = height
	m.search.Width = maxInt(10, width/2-4)
	if widthChanged {
		m.engine.ResetMeasurements()
	}
	m.engine.Resize(m.paneHeight())
}

func (m *Model) loadCmd() tea.Cmd {
	src := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		items, err := src.Load(ctx)
		return datasetLoadedMsg{items: items, err: err}
	}
}

func (m *Model) waitForChangeCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return datasetChangedMsg{}
	}
}

func (m *Model) applyDataset(msg datasetLoadedMsg) {
	if msg.err != nil {
		m.loadErr = msg.err
		m.log.Error().Err(msg.err).Msg("dataset load failed")
		return
	}
	reload := m.loaded
	m.loadErr = nil
	m.loaded = true
	m.engine.SetItems(msg.items)
	m.engine.Mount()
	if reload {
		m.status = fmt.Sprintf("reloaded %d records", len(msg.items))
	}
	m.log.Info().Int("items", len(msg.items)).Bool("reload", reload).Msg("dataset loaded")
}

// animateCmd schedules the next smooth-scroll frame.
func (m *Model) animateCmd() tea.Cmd {
	if !m.cfg.SmoothScroll || !m.engine.Animating() || m.ticking {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return animateMsg{}
	})
}

func spinnerCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// finishScroll completes a programmatic scroll in one update. Rows measured at
// the destination can re-target the scroll, hence the bounded loop.
func (m *Model) finishScroll() {
	for pass := 0; pass < maxMeasurePasses && m.engine.Animating(); pass++ {
		for m.engine.Animate() {
		}
		m.measureVisible()
	}
}

func (m *Model) persistAnchor() {
	hash := m.loc.Hash()
	if hash == "" || hash == m.persisted {
		return
	}
	m.persisted = hash
	m.tuiState.SetLastAnchor(hash)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.detail != nil {
		return m.handleDetailKey(msg)
	}
	if m.picker.open {
		return m.handlePickerKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	m.status = ""
	filter := m.engine.Filter()
	switch msg.String() {
	case "q":
		return tea.Quit
	case "/":
		m.searching = true
		m.search.SetValue(filter.Search)
		m.search.CursorEnd()
		return m.search.Focus()
	case "esc":
		if filter.Search != "" {
			m.engine.SetFilter(filter.WithSearch(""))
		}
	case "tab":
		m.cycleType(1)
	case "shift+tab":
		m.cycleType(-1)
	case "0":
		m.engine.SetFilter(filter.WithType(timeline.TypeAll))
	case "c":
		m.engine.SetFilter(filter.WithCompact(!filter.Compact))
	case "d":
		m.openPicker()
	case "j", "down":
		m.engine.ScrollBy(1)
	case "k", "up":
		m.engine.ScrollBy(-1)
	case "pgdown", "ctrl+d", " ":
		m.engine.ScrollBy(maxInt(1, m.paneHeight()-1))
	case "pgup", "ctrl+u":
		m.engine.ScrollBy(-maxInt(1, m.paneHeight()-1))
	case "g", "home":
		m.engine.ScrollToStart()
	case "G", "end":
		m.engine.ScrollToEnd()
	case "]":
		m.engine.StepDecade(1)
	case "[":
		m.engine.StepDecade(-1)
	case "enter":
		if row, ok := m.engine.ActiveRow(); ok && !row.IsHeader() {
			m.openItem(row.Item)
		}
	case "b", "alt+left":
		if !m.engine.Back() {
			m.status = "no earlier position"
		}
	case "y":
		m.status = timeline.FormatLink(m.loc.Hash())
	case "T":
		m.themeName = styles.Next(m.themeName)
		m.tuiState.SetTheme(m.themeName)
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.engine.SetFilter(m.engine.Filter().WithSearch(m.search.Value()))
	return cmd
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "d", "q":
		m.picker.close()
	case "j", "down":
		m.picker.move(1)
	case "k", "up":
		m.picker.move(-1)
	case "g", "home":
		m.picker.move(-len(m.picker.decades))
	case "G", "end":
		m.picker.move(len(m.picker.decades))
	case "enter":
		if decade, ok := m.picker.selected(); ok {
			m.engine.JumpToDecade(decade)
		}
		m.picker.close()
	}
	return nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "backspace", "q":
		m.detail = nil
	case "y":
		m.status = timeline.FormatLink(m.detail.AnchorID)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.detail == nil && !m.picker.open {
			m.engine.ScrollBy(-wheelStep)
		}
	case tea.MouseButtonWheelDown:
		if m.detail == nil && !m.picker.open {
			m.engine.ScrollBy(wheelStep)
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		if m.detail != nil {
			m.detail = nil
			return
		}
		if m.picker.open {
			return
		}
		row, ok := m.engine.RowAt(msg.Y - headerLines - toolbarLines)
		if ok && !row.IsHeader() {
			m.openItem(row.Item)
		}
	}
}

func (m *Model) cycleType(dir int) {
	filter := m.engine.Filter()
	idx := 0
	for i, typ := range typeCycle {
		if typ == filter.Type {
			idx = i
		}
	}
	idx = (idx + dir + len(typeCycle)) % len(typeCycle)
	m.engine.SetFilter(filter.WithType(typeCycle[idx]))
}

func (m *Model) openPicker() {
	decades := m.engine.Decades()
	if len(decades) == 0 {
		m.status = "no decades to jump to"
		return
	}
	counts := make(map[int]int, len(decades))
	for _, row := range m.engine.Rows() {
		if !row.IsHeader() {
			counts[row.Decade]++
		}
	}
	current := decades[0]
	if row, ok := m.engine.ActiveRow(); ok {
		current = row.Decade
	}
	m.picker.show(decades, counts, current)
}

func (m *Model) openItem(item timeline.Item) {
	m.detail = &item
	if m.cfg.OnOpen != nil {
		m.cfg.OnOpen(item)
	}
	m.log.Debug().Str("anchor", item.AnchorID).Msg("item opened")
}

func (m *Model) palette() styles.Theme {
	return styles.Lookup(m.themeName)
}

func (c Config) normalize() (Config, error) {
	if c.Source == nil {
		return c, errors.New("archive source is required")
	}
	c.Theme = strings.TrimSpace(c.Theme)
	if c.Theme == "" {
		c.Theme = "default"
	}
	if _, ok := styles.Themes[c.Theme]; !ok {
		return c, fmt.Errorf("invalid theme %q", c.Theme)
	}
	c.Anchor = timeline.NormalizeHash(c.Anchor)
	if c.Overscan < 0 {
		c.Overscan = timeline.DefaultOverscan
	}
	if c.TwoColumnMinWidth <= 0 {
		c.TwoColumnMinWidth = defaultTwoColumnMinWidth
	}
	return c, nil
}
