package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/chrono/internal/tui/components"
)

const maxMeasurePasses = 4

func (m *Model) cardLayout() cardLayout {
	compact := m.engine.Filter().Compact
	return cardLayout{
		width:     m.width,
		compact:   compact,
		twoColumn: !compact && m.width >= m.cfg.TwoColumnMinWidth,
	}
}

// measureVisible renders every unmeasured row in the current window and feeds
// its height back to the engine. Measuring can move the window, so it repeats
// until nothing new is measured.
func (m *Model) measureVisible() {
	if !m.loaded || m.engine.Empty() || m.width <= 0 || m.paneHeight() <= 0 {
		return
	}
	layout := m.cardLayout()
	palette := m.palette()
	virt := m.engine.Virtualizer()

	for pass := 0; pass < maxMeasurePasses; pass++ {
		measured := 0
		for _, vr := range m.engine.VirtualRows() {
			if _, ok := virt.Measured(vr.Key); ok {
				continue
			}
			row, ok := m.engine.Row(vr.Index)
			if !ok {
				continue
			}
			m.engine.Measure(vr.Key, lipgloss.Height(renderRow(row, layout, palette, false)))
			measured++
		}
		if measured == 0 {
			return
		}
	}
}

func (m *Model) paneHeight() int {
	return maxInt(0, m.height-headerLines-toolbarLines-footerLines)
}

func (m *Model) renderTimeline(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	palette := m.palette()
	box := lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height)

	if !m.loaded {
		if m.loadErr != nil {
			msg := "Could not load archive: " + m.loadErr.Error()
			return box.Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, palette.ErrorStyle().Render(truncate(msg, width))))
		}
		spinner := components.RenderSpinner(palette, m.spinFrame, "Loading archive…")
		return box.Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, spinner))
	}
	if m.engine.Empty() {
		lines := []string{
			"No items match the current filters.",
			palette.MutedStyle().Render("esc clears the search, 0 shows every type"),
		}
		return box.Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n")))
	}

	layout := m.cardLayout()
	top := m.engine.Viewport().ScrollTop()
	active := m.engine.ActiveAnchor()
	out := make([]string, height)

	for _, vr := range m.engine.VirtualRows() {
		if vr.End() <= top || vr.Start >= top+height {
			continue
		}
		row, ok := m.engine.Row(vr.Index)
		if !ok {
			continue
		}
		lines := strings.Split(renderRow(row, layout, palette, row.AnchorID == active), "\n")
		for i := 0; i < vr.Size; i++ {
			abs := vr.Start + i
			if abs < top || abs >= top+height {
				continue
			}
			if i < len(lines) {
				out[abs-top] = lines[i]
			}
		}
	}
	return box.Render(strings.Join(out, "\n"))
}
