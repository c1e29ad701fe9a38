package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCourseList(t *testing.T) {
	out := stripANSI(FormatCourseList([]*domain.Course{goBasics()}))
	assert.Contains(t, out, "COURSES")
	assert.Contains(t, out, "Go Basics")
	assert.Contains(t, out, "c0ffee")
	assert.NotContains(t, out, "course_c0ffee")

	assert.Contains(t, FormatCourseList(nil), "No courses yet")
}

func TestFormatCourseOutline_MarksStates(t *testing.T) {
	c := goBasics()
	groups := progress.Indicators(c, trailWith(c, domain.RunInProgress, 101), "activity_a2")
	out := stripANSI(FormatCourseOutline(c, groups))

	assert.Contains(t, out, "GO BASICS")
	assert.Contains(t, out, "Learn the language")
	assert.Contains(t, out, "2 chapters")
	assert.Contains(t, out, "3 activities")

	lines := strings.Split(out, "\n")
	find := func(name string) string {
		for _, l := range lines {
			if strings.Contains(l, name) {
				return l
			}
		}
		t.Fatalf("no line for %s in\n%s", name, out)
		return ""
	}
	assert.Contains(t, find("Welcome"), "1. "+GlyphDone)
	assert.Contains(t, find("Setup"), "2. "+GlyphCurrent)
	assert.Contains(t, find("Quiz"), "3. "+GlyphPending)
	assert.Contains(t, find("Quiz"), "interactive")
	assert.Contains(t, find("Setup"), "└─")
	assert.Contains(t, find("Welcome"), "├─")
}

func TestFormatCourseOutline_EmptyChapter(t *testing.T) {
	c := &domain.Course{ID: 1, CourseUUID: "course_x", Name: "Empty", Chapters: []domain.Chapter{{ID: 1, Name: "Later"}}}
	out := stripANSI(FormatCourseOutline(c, progress.Indicators(c, nil, "")))
	require.Contains(t, out, "Later")
	assert.Contains(t, out, "(no activities)")
	assert.Contains(t, out, "1 chapter ")

	assert.Empty(t, FormatCourseOutline(nil, nil))
}
