package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/learntrail/internal/progress"
)

const endBarWidth = 30

// FormatCourseEnd renders the end-of-course panel. A complete course gets a
// congratulation box, with the certificate id when one was issued. Otherwise
// the learner sees how far along they are.
func FormatCourseEnd(courseName string, p progress.Progress, complete bool, certificateID string) string {
	if complete {
		var b strings.Builder
		b.WriteString("You completed " + Bold(courseName) + ".\n")
		b.WriteString(Plural(p.Total, "activity", "activities") + " finished.")
		if certificateID != "" {
			b.WriteString("\n\n" + Dim("Certificate  ") + StyleGreen.Render(certificateID))
		}
		return RenderAccentBox("Congratulations!", b.String())
	}

	return fmt.Sprintf("%s %3d%%\n%s\n",
		RenderCompactBar(p.Fraction(), endBarWidth, false),
		p.Percentage,
		ActivitiesCompleted(p))
}

// ActivitiesCompleted renders "{completed} of {total} activities completed".
func ActivitiesCompleted(p progress.Progress) string {
	return fmt.Sprintf("%d of %d activities completed", p.Completed, p.Total)
}
