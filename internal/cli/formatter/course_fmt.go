package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
)

// FormatCourseList renders the course catalogue inside a bordered box.
func FormatCourseList(courses []*domain.Course) string {
	if len(courses) == 0 {
		return Dim("No courses yet. Import one with `learntrail course import <file>`.") + "\n"
	}
	headers := []string{"ID", "NAME", "CHAPTERS", "ACTIVITIES", "UPDATED"}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{
			TruncID(c.CourseUUID),
			Bold(c.Name),
			fmt.Sprintf("%d", len(c.Chapters)),
			fmt.Sprintf("%d", c.ActivityCount()),
			HumanDate(c.UpdatedAt),
		})
	}
	return RenderBox("Courses", RenderTable(headers, rows))
}

// FormatCourseOutline renders a course header followed by its chapter and
// activity tree. groups carries the per-activity display state; pass the
// result of progress.Indicators.
func FormatCourseOutline(course *domain.Course, groups []progress.ChapterIndicators) string {
	if course == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header(course.Name) + "\n")
	if course.Description != "" {
		b.WriteString(StyleFg.Render(course.Description) + "\n")
	}
	b.WriteString(Dim(fmt.Sprintf("%s  ·  %s  ·  %s",
		domain.CleanCourseUUID(course.CourseUUID),
		Plural(len(course.Chapters), "chapter", "chapters"),
		Plural(course.ActivityCount(), "activity", "activities"))) + "\n\n")
	b.WriteString(RenderTree(outlineItems(groups)))
	return b.String()
}

func outlineItems(groups []progress.ChapterIndicators) []TreeItem {
	var items []TreeItem
	seq := 0
	for _, g := range groups {
		items = append(items, TreeItem{Title: Bold(g.ChapterName)})
		if len(g.Indicators) == 0 {
			items = append(items, TreeItem{Title: Dim("(no activities)"), Level: 1, IsLast: true})
			continue
		}
		for i, ind := range g.Indicators {
			seq++
			items = append(items, TreeItem{
				Title:  ind.Ref.Activity.Name,
				Seq:    seq,
				Level:  1,
				IsLast: i == len(g.Indicators)-1,
				State:  ind.State,
				Detail: ActivityBadge(ind.Ref.Activity.ActivityType),
			})
		}
	}
	return items
}
