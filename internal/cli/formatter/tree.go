package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Seq    int // 1-based position in the course; 0 means don't display
	Level  int
	IsLast bool
	State  progress.DisplayState // empty for group rows such as chapters
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Items with a display state get a
// state marker and detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		seq := ""
		if item.Seq > 0 {
			seq = StyleDim.Render(fmt.Sprintf("%d. ", item.Seq))
		}

		marker := ""
		switch item.State {
		case progress.StateDone:
			marker = StateIndicator(item.State) + " "
			title = Dim(title)
		case progress.StateCurrent:
			marker = StateIndicator(item.State) + " "
			title = StyleYellowBold.Render(title)
		case progress.StatePending:
			marker = StateIndicator(item.State) + " "
		}

		content := prefix + seq + marker + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = item.Detail
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := maxContentWidth - lipgloss.Width(li.content)
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}
