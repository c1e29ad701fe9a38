package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
)

// FormatActivityBody renders the player body of one activity: its chapter,
// title, type and state, followed by type-specific instructions.
func FormatActivityBody(ref progress.ActivityRef, state progress.DisplayState, url string) string {
	var b strings.Builder
	b.WriteString(Dim(ref.ChapterName) + "\n")
	b.WriteString(StyleBold.Render(ref.Activity.Name) + "\n")
	b.WriteString(ActivityBadge(ref.Activity.ActivityType) + "  " + StateIndicator(state) + " " + Dim(stateLabel(state)) + "\n\n")

	b.WriteString(activityInstructions(ref.Activity.ActivityType) + "\n\n")
	if url != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("OPEN"), url))
	}
	if state != progress.StateDone {
		b.WriteString("\n" + Dim("Press m when you are done to mark this activity complete.") + "\n")
	}
	return b.String()
}

func stateLabel(state progress.DisplayState) string {
	switch state {
	case progress.StateDone:
		return "completed"
	case progress.StateCurrent:
		return "in progress"
	default:
		return "not started"
	}
}

func activityInstructions(t domain.ActivityType) string {
	if !t.Valid() {
		return "This activity type is not supported by the terminal player. Open it in the browser."
	}
	return domain.ByActivityType(t,
		"Watch the video lesson in your browser. Take notes on anything you want to revisit.",
		"Read through the document. Follow along with any code samples on your machine.",
		"Work through the interactive page. It mixes text, embedded examples and short exercises.",
		"Complete the assignment and submit it from the course page before marking it done.",
	)
}
