package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/learntrail/internal/service"
)

// FormatCourseProgress renders a learner's view of one course: the outline
// with completion markers, the current position with its neighbours, and the
// course end panel.
func FormatCourseProgress(v *service.CourseProgressView) string {
	if v == nil || v.Course == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(FormatCourseOutline(v.Course, v.Chapters))
	b.WriteString("\n")

	if v.Run == nil {
		b.WriteString(Dim("Not started. Run `learntrail trail start "+v.Course.CleanUUID()+"` to begin.") + "\n\n")
	} else {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS "), RunStatusPill(v.Run.Status)))
	}

	if v.Position.Found() {
		cur := v.Sequence.At(v.Position.Index)
		b.WriteString(fmt.Sprintf("%s  %s %s %s\n",
			StyleDim.Render("CURRENT"),
			Dim(fmt.Sprintf("%d/%d", v.Position.Index+1, len(v.Sequence))),
			StyleYellowBold.Render(cur.Activity.Name),
			Dim("("+cur.ChapterName+")")))
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("URL    "), v.CurrentURL))
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PREV   "), orNone(v.PrevURL)))
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("NEXT   "), orNone(v.NextURL)))
		b.WriteString("\n")
	}

	b.WriteString(FormatCourseEnd(v.Course.Name, v.Progress, v.Complete, v.CertificateID))
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return Dim("none")
	}
	return s
}
