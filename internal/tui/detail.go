package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/chrono/internal/timeline"
	"github.com/tOgg1/chrono/internal/tui/styles"
)

func renderDetailOverlay(item timeline.Item, width, height int, theme styles.Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	panelWidth := minInt(maxInt(40, width-10), 100)
	if panelWidth > width-2 {
		panelWidth = maxInt(10, width-2)
	}
	inner := maxInt(8, panelWidth-6)
	muted := theme.MutedStyle()

	meta := []string{item.Type.Label(), formatDate(item)}
	if creator := strings.TrimSpace(item.CreatorLabel); creator != "" {
		meta = append(meta, creator)
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Width(inner).Render(item.Title),
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TypeColor(item.Type))).Render(truncate(strings.Join(meta, " · "), inner)),
	}
	if len(item.Tags) > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Card.Tag)).Render(truncate(formatTags(item.Tags), inner)))
	}
	if summary := renderMarkdown(item.Summary, theme.Markdown, inner); summary != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(summary, "\n")...)
	}
	if len(item.Links) > 0 {
		lines = append(lines, "")
		for _, l := range item.Links {
			lines = append(lines, truncate(l.Label+"  "+l.URL, inner))
		}
	}
	if thumb := strings.TrimSpace(item.Thumbnail); thumb != "" {
		lines = append(lines, muted.Render(truncate("thumbnail: "+thumb, inner)))
	}
	lines = append(lines,
		"",
		theme.AccentStyle().Render(truncate("link: "+timeline.FormatLink(item.AnchorID), inner)),
		muted.Render("enter/esc close  y show link"),
	)

	// Border and vertical padding take four lines.
	if maxLines := height - 4; maxLines > 0 && len(lines) > maxLines {
		tail := lines[len(lines)-2:]
		lines = append(lines[:maxInt(0, maxLines-3)], muted.Render("…"))
		lines = append(lines, tail...)
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Base.Border)).
		Background(lipgloss.Color(theme.Base.Background)).
		Foreground(lipgloss.Color(theme.Base.Foreground)).
		Padding(1, 2).
		Width(panelWidth - 2)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel.Render(strings.Join(lines, "\n")))
}
