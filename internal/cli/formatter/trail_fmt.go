package formatter

import (
	"fmt"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
)

// FormatTrail renders every run on a trail with its progress.
func FormatTrail(trail *domain.Trail) string {
	if trail == nil || len(trail.Runs) == 0 {
		return Dim("Your trail is empty. Start a course with `learntrail trail start <course>`.") + "\n"
	}

	headers := []string{"COURSE", "ID", "STATUS", "PROGRESS", ""}
	rows := make([][]string, 0, len(trail.Runs))
	for _, run := range trail.Runs {
		if run.Course == nil {
			rows = append(rows, []string{
				Dim(fmt.Sprintf("course #%d", run.CourseID)), Dim("--"), RunStatusPill(run.Status), Dim("--"), "",
			})
			continue
		}
		p := progress.CourseProgress(run.Course, trail)
		rows = append(rows, []string{
			Bold(run.Course.Name),
			TruncID(run.Course.CourseUUID),
			RunStatusPill(run.Status),
			RenderCompactBar(p.Fraction(), 12, false) + fmt.Sprintf(" %3d%%", p.Percentage),
			Dim(fmt.Sprintf("%d/%d", p.Completed, p.Total)),
		})
	}
	return RenderBox("Trail", RenderTable(headers, rows))
}
