// Package styles holds the chrono TUI color themes.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/chrono/internal/timeline"
)

// BaseColors defines global UI colors.
type BaseColors struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Border     string
	Error      string
}

// ChromeColors defines non-content UI colors.
type ChromeColors struct {
	Header     string
	Footer     string
	Toolbar    string
	ChipActive string
	Spine      string
}

// CardColors defines timeline card colors.
type CardColors struct {
	Border       string
	ActiveBorder string
	Title        string
	Date         string
	Tag          string
	DecadeHeader string
}

// Theme defines the chrono TUI style/theme tokens. Colors are ANSI-256 codes.
type Theme struct {
	Name string

	Base   BaseColors
	Chrome ChromeColors
	Card   CardColors

	// Types colors card badges by item type.
	Types map[timeline.ItemType]string

	// Markdown is the glamour standard style for rendered summaries.
	Markdown string
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// ThemeNames lists theme names in cycle order.
var ThemeNames = []string{"default", "high-contrast"}

// Lookup returns the named theme, falling back to the default palette.
func Lookup(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return DefaultTheme
}

// Next returns the theme name after name in ThemeNames.
func Next(name string) string {
	for i, n := range ThemeNames {
		if n == name {
			return ThemeNames[(i+1)%len(ThemeNames)]
		}
	}
	return ThemeNames[0]
}

// TypeColor returns the badge color for typ.
func (t Theme) TypeColor(typ timeline.ItemType) string {
	if c, ok := t.Types[typ]; ok {
		return c
	}
	return t.Base.Accent
}

func (t Theme) BaseStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Foreground)).Background(lipgloss.Color(t.Base.Background))
}

func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Muted))
}

func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Accent))
}

func (t Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Error))
}
