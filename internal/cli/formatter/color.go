package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Glyphs for the three activity display states.
const (
	GlyphDone    = "✔"
	GlyphCurrent = "▶"
	GlyphPending = "○"
)

// StateStyle returns the style used for an activity in the given display state.
func StateStyle(state progress.DisplayState) lipgloss.Style {
	switch state {
	case progress.StateDone:
		return StyleGreen
	case progress.StateCurrent:
		return StyleYellowBold
	default:
		return StyleDim
	}
}

// StateGlyph returns the unstyled marker for a display state.
func StateGlyph(state progress.DisplayState) string {
	switch state {
	case progress.StateDone:
		return GlyphDone
	case progress.StateCurrent:
		return GlyphCurrent
	default:
		return GlyphPending
	}
}

// StateIndicator renders the colored marker for a display state, e.g. "✔".
func StateIndicator(state progress.DisplayState) string {
	return StateStyle(state).Render(StateGlyph(state))
}

// ActivityBadge renders the activity type as a short colored label.
func ActivityBadge(t domain.ActivityType) string {
	if !t.Valid() {
		return StyleDim.Render(strings.ToLower(t.Label()))
	}
	style := domain.ByActivityType(t, StyleBlue, StyleFg, StylePurple, StyleYellow)
	return style.Render(strings.ToLower(t.Label()))
}

// RunStatusPill returns a colored run status indicator.
func RunStatusPill(status domain.RunStatus) string {
	switch status {
	case domain.RunInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.RunCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.RunPaused:
		return StyleBlue.Render("○ Paused")
	case domain.RunCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
