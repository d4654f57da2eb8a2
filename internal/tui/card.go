package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/chrono/internal/timeline"
	"github.com/tOgg1/chrono/internal/tui/styles"
)

const (
	minCardWidth = 24
	spineGap     = 3 // " │ "
)

// cardLayout captures everything that influences row heights. A change to any
// field invalidates measured sizes.
type cardLayout struct {
	width     int
	compact   bool
	twoColumn bool
}

func (l cardLayout) cardWidth() int {
	if l.twoColumn {
		return maxInt(minCardWidth, (l.width-spineGap)/2)
	}
	return maxInt(minCardWidth, l.width)
}

// renderRow renders a timeline row at its natural height.
func renderRow(row timeline.Row, layout cardLayout, theme styles.Theme, active bool) string {
	if row.IsHeader() {
		return renderDecadeHeader(row.Decade, layout.width, theme, active)
	}
	if layout.compact {
		return renderCompactCard(row.Item, layout.width, theme, active)
	}
	card := renderCard(row.Item, layout.cardWidth(), theme, active)
	if !layout.twoColumn {
		return card
	}
	return placeInColumn(card, row.PositionIndex%2 == 1, layout, theme)
}

func renderDecadeHeader(decade, width int, theme styles.Theme, active bool) string {
	color := theme.Card.DecadeHeader
	if active {
		color = theme.Base.Accent
	}
	label := fmt.Sprintf(" %ds ", decade)
	rule := strings.Repeat("─", maxInt(0, width-lipgloss.Width(label)-2))
	line := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render("──" + label + rule)
	return line + "\n"
}

func renderCard(item timeline.Item, width int, theme styles.Theme, active bool) string {
	inner := maxInt(1, width-4)
	muted := theme.MutedStyle()

	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.TypeColor(item.Type))).
		Bold(true).
		Render("[" + item.Type.Label() + "]")
	date := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Card.Date)).Render(formatDate(item))
	lines := []string{badge + " " + date}

	// Titles wrap; everything else is clipped to one line.
	lines = append(lines, lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Card.Title)).
		Bold(true).
		Width(inner).
		Render(item.Title))
	if creator := strings.TrimSpace(item.CreatorLabel); creator != "" {
		lines = append(lines, muted.Render(truncate(creator, inner)))
	}
	if excerpt := summaryExcerpt(item.Summary); excerpt != "" {
		lines = append(lines, truncate(excerpt, inner))
	}
	if len(item.Tags) > 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Card.Tag)).
			Render(truncate(formatTags(item.Tags), inner)))
	}

	border := theme.Card.Border
	if active {
		border = theme.Card.ActiveBorder
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}

func renderCompactCard(item timeline.Item, width int, theme styles.Theme, active bool) string {
	marker := "  "
	if active {
		marker = theme.AccentStyle().Render("▌ ")
	}
	label := "[" + item.Type.Label() + "]"
	head := fmt.Sprintf("%s %s ", formatDate(item), label)
	title := truncate(item.Title, maxInt(1, width-2-lipgloss.Width(head)))
	first := marker +
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Card.Date)).Render(formatDate(item)) + " " +
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TypeColor(item.Type))).Render(label) + " " +
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Card.Title)).Bold(active).Render(title)

	var details []string
	if creator := strings.TrimSpace(item.CreatorLabel); creator != "" {
		details = append(details, creator)
	}
	if len(item.Tags) > 0 {
		details = append(details, formatTags(item.Tags))
	}
	second := "  " + theme.MutedStyle().Render(truncate(strings.Join(details, " · "), maxInt(1, width-2)))
	return first + "\n" + second + "\n"
}

// placeInColumn puts card on the left or right of a center spine.
func placeInColumn(card string, right bool, layout cardLayout, theme styles.Theme) string {
	colWidth := layout.cardWidth()
	spine := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Chrome.Spine)).Render("│")
	blank := strings.Repeat(" ", colWidth)

	lines := strings.Split(card, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		if right {
			out[i] = blank + " " + spine + " " + line
		} else {
			out[i] = padRight(line, colWidth) + " " + spine
		}
	}
	return strings.Join(out, "\n")
}

func formatDate(item timeline.Item) string {
	if item.Date.IsZero() {
		return "----------"
	}
	return item.Date.Format("2006-01-02")
}

func formatTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, "#"+tag)
		}
	}
	return strings.Join(out, " ")
}

// summaryExcerpt returns the first non-empty summary line without markdown markers.
func summaryExcerpt(summary string) string {
	for _, line := range strings.Split(summary, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#>-*"))
		line = strings.NewReplacer("**", "", "__", "", "`", "").Replace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
