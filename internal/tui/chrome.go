package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/chrono/internal/timeline"
)

const (
	headerLines  = 1
	toolbarLines = 2
	footerLines  = 1
)

func (m *Model) renderHeader() string {
	palette := m.palette()
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.Base.Background)).
		Background(lipgloss.Color(palette.Chrome.Header)).
		Bold(true).
		Padding(0, 1)

	center := ""
	if row, ok := m.engine.ActiveRow(); ok {
		if row.IsHeader() {
			center = fmt.Sprintf("%ds", row.Decade)
		} else {
			center = fmt.Sprintf("%ds · %s", row.Decade, row.Item.Title)
		}
	}
	right := m.sourceLabel
	if m.loaded {
		right = strings.TrimSpace(fmt.Sprintf("%s  %d records", m.sourceLabel, len(m.engine.Items())))
	}
	line := joinHeader("chrono", center, right, maxInt(0, m.width-2))
	return style.Width(maxInt(0, m.width)).Render(line)
}

func (m *Model) renderFooter() string {
	palette := m.palette()
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.Base.Background)).
		Background(lipgloss.Color(palette.Chrome.Footer)).
		Padding(0, 1)

	text := "/ search  tab type  c compact  d decades  [ ] prev/next  enter open  b back  y link  T theme  q quit"
	switch {
	case m.loadErr != nil:
		text = "load error: " + m.loadErr.Error()
	case m.status != "":
		text = m.status
	case m.engine.Navigating() && m.engine.Animating():
		text = "jumping to #" + m.loc.Hash()
	}
	if hash := m.loc.Hash(); hash != "" && m.status == "" && m.loadErr == nil {
		text = joinHeader(text, "", "#"+hash, maxInt(0, m.width-2))
	}
	return style.Width(maxInt(0, m.width)).Render(truncate(text, maxInt(0, m.width-2)))
}

func joinHeader(left, center, right string, width int) string {
	left = strings.TrimSpace(left)
	center = strings.TrimSpace(center)
	right = strings.TrimSpace(right)
	if width <= 0 {
		return ""
	}

	space := width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if space < 2 {
		line := left
		if right != "" {
			line = left + "  " + right
		}
		return truncate(line, width)
	}

	leftGap := space / 2
	rightGap := space - leftGap
	return truncate(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// typeCycle is the chip order: all first, then the concrete types.
var typeCycle = append([]timeline.ItemType{timeline.TypeAll}, timeline.ItemTypes...)

func (m *Model) renderToolbar() string {
	palette := m.palette()
	width := maxInt(0, m.width)
	muted := palette.MutedStyle()
	filter := m.engine.Filter()

	var search string
	if m.searching {
		search = m.search.View()
	} else if filter.Search != "" {
		search = muted.Render("/ ") + truncate(filter.Search, maxInt(1, width/2))
	} else {
		search = muted.Render("/ search title, creator, tags")
	}

	mode := "expanded"
	if filter.Compact {
		mode = "compact"
	}
	rows := m.engine.Rows()
	decades := len(m.engine.Decades())
	counts := fmt.Sprintf("%s  %d items · %d decades", mode, len(rows)-decades, decades)
	first := padRight(search, maxInt(0, width-lipgloss.Width(counts)-1)) + " " + muted.Render(counts)
	if lipgloss.Width(first) > width {
		first = search
	}

	active := lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.Base.Background)).
		Background(lipgloss.Color(palette.Chrome.ChipActive)).
		Bold(true)
	chips := make([]string, 0, len(typeCycle))
	used := 0
	for _, typ := range typeCycle {
		chip := " " + typ.Label() + " "
		used += lipgloss.Width(chip) + 1
		if used > width {
			chips = append(chips, muted.Render("…"))
			break
		}
		if typ == filter.Type {
			chip = active.Render(chip)
		} else {
			chip = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.TypeColor(typ))).Render(chip)
		}
		chips = append(chips, chip)
	}
	second := strings.Join(chips, " ")

	bar := lipgloss.NewStyle().Background(lipgloss.Color(palette.Chrome.Toolbar)).Width(width).MaxHeight(1)
	return lipgloss.JoinVertical(lipgloss.Left, bar.Render(first), bar.Render(second))
}
