package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/chrono/internal/tui/styles"
)

// decadePicker lists the decades present in the current rows as jump targets.
type decadePicker struct {
	open    bool
	decades []int
	counts  map[int]int
	cursor  int
}

func (p *decadePicker) show(decades []int, counts map[int]int, current int) {
	p.open = true
	p.decades = append([]int(nil), decades...)
	p.counts = counts
	p.cursor = 0
	for i, d := range p.decades {
		if d == current {
			p.cursor = i
		}
	}
}

func (p *decadePicker) close() {
	p.open = false
}

func (p *decadePicker) move(delta int) {
	if len(p.decades) == 0 {
		return
	}
	p.cursor = clampInt(p.cursor+delta, 0, len(p.decades)-1)
}

func (p *decadePicker) selected() (int, bool) {
	if len(p.decades) == 0 {
		return 0, false
	}
	return p.decades[p.cursor], true
}

func (p *decadePicker) render(width, height int, theme styles.Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	visible := maxInt(1, height-6)
	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	end := minInt(len(p.decades), start+visible)

	lines := []string{lipgloss.NewStyle().Bold(true).Render("Jump to decade"), ""}
	selected := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Base.Background)).Background(lipgloss.Color(theme.Chrome.ChipActive))
	for i := start; i < end; i++ {
		d := p.decades[i]
		line := fmt.Sprintf(" %ds  %4d ", d, p.counts[d])
		if i == p.cursor {
			line = selected.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", theme.MutedStyle().Render("j/k move  enter jump  esc close"))

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Base.Accent)).
		Padding(0, 2)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel.Render(strings.Join(lines, "\n")))
}
