package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func barCells(pct float64, width int) (float64, int, int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return pct, filled, width - filled
}

func barStyle(pct float64) func(...string) string {
	switch {
	case pct >= 1:
		return StyleGreen.Render
	case pct >= 0.5:
		return StyleYellow.Render
	default:
		return StyleBlue.Render
	}
}

// RenderProgress renders a progress bar like [████░░░░]  45%.
// A finished course is green, half way or more yellow, less than that blue.
func RenderProgress(pct float64, width int) string {
	pct, filled, empty := barCells(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	return fmt.Sprintf("[%s] %3.0f%%", barStyle(pct)(bar), pct*100)
}

// RenderCompactBar renders the bar cells only, for table columns. dim renders
// the whole bar in the muted color.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct, filled, empty := barCells(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	if dim {
		return StyleDim.Render(bar)
	}
	return barStyle(pct)(bar)
}
