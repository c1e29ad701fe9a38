package formatter

import (
	"strings"

	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/charmbracelet/lipgloss"
)

// FormatNavRow renders the previous/next control spread across width. A nil
// neighbour renders as a disabled label.
func FormatNavRow(prev, next *progress.ActivityRef, width int) string {
	left := Dim("◀ start of course")
	if prev != nil {
		left = StyleBlue.Render("◀ p") + " " + StyleFg.Render(prev.Activity.Name)
	}
	right := Dim("end of course ▶")
	if next != nil {
		right = StyleFg.Render(next.Activity.Name) + " " + StyleBlue.Render("n ▶")
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

var floatingNavStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), true, false, false, false).
	BorderForeground(ColorHeader)

// FormatFloatingNav renders the pinned variant of the navigation row shown
// while the inline one is scrolled out of view.
func FormatFloatingNav(prev, next *progress.ActivityRef, width int) string {
	return floatingNavStyle.Width(width).Render(FormatNavRow(prev, next, width))
}
