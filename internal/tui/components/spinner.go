// Package components provides small reusable TUI pieces.
package components

import (
	"github.com/tOgg1/chrono/internal/tui/styles"
)

// SpinnerFrames contains the braille spinner animation frames.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner returns a spinner character for the given frame index.
func Spinner(frame int) string {
	if len(SpinnerFrames) == 0 {
		return "⠿"
	}
	idx := frame % len(SpinnerFrames)
	if idx < 0 {
		idx = -idx
	}
	return SpinnerFrames[idx]
}

// RenderSpinner renders a themed spinner with an optional label.
func RenderSpinner(theme styles.Theme, frame int, label string) string {
	spinner := theme.AccentStyle().Render(Spinner(frame))
	if label == "" {
		return spinner
	}
	return spinner + " " + theme.MutedStyle().Render(label)
}
