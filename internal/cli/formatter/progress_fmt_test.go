package formatter

import (
	"testing"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/alexanderramin/learntrail/internal/service"
	"github.com/stretchr/testify/assert"
)

func viewFor(tr *domain.Trail, current string) *service.CourseProgressView {
	c := goBasics()
	seq := progress.Flatten(c)
	pos := progress.Locate(seq, current)
	nav := progress.NewNavigator(nil, "", c)
	v := &service.CourseProgressView{
		Course:   c,
		Run:      progress.FindRun(tr, c.ID),
		Sequence: seq,
		Progress: progress.CourseProgress(c, tr),
		Complete: progress.IsCourseComplete(c, tr),
		Position: pos,
		Chapters: progress.Indicators(c, tr, current),
		PrevURL:  nav.URL(pos.Prev),
		NextURL:  nav.URL(pos.Next),
	}
	if pos.Found() {
		v.CurrentURL = nav.URL(seq.At(pos.Index))
	}
	return v
}

func TestFormatCourseProgress_InProgress(t *testing.T) {
	c := goBasics()
	out := stripANSI(FormatCourseProgress(viewFor(trailWith(c, domain.RunInProgress, 101), "activity_a2")))

	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "2/3 Setup (Intro)")
	assert.Contains(t, out, "/course/c0ffee/activity/a2")
	assert.Contains(t, out, "/course/c0ffee/activity/a1")
	assert.Contains(t, out, "/course/c0ffee/activity/b1")
	assert.Contains(t, out, "1 of 3 activities completed")
}

func TestFormatCourseProgress_NotStarted(t *testing.T) {
	out := stripANSI(FormatCourseProgress(viewFor(&domain.Trail{}, "")))
	assert.Contains(t, out, "Not started")
	assert.Contains(t, out, "trail start c0ffee")
	assert.NotContains(t, out, "CURRENT")
	assert.Contains(t, out, "0 of 3 activities completed")
}

func TestFormatCourseProgress_FirstActivityHasNoPrev(t *testing.T) {
	c := goBasics()
	out := stripANSI(FormatCourseProgress(viewFor(trailWith(c, domain.RunInProgress), "a1")))
	assert.Contains(t, out, "PREV     none")
}

func TestFormatCourseProgress_Complete(t *testing.T) {
	c := goBasics()
	v := viewFor(trailWith(c, domain.RunCompleted, 101, 102, 201), "")
	v.CertificateID = "AB-20250615-beef-001"
	out := stripANSI(FormatCourseProgress(v))
	assert.Contains(t, out, "CONGRATULATIONS!")
	assert.Contains(t, out, "AB-20250615-beef-001")

	assert.Empty(t, FormatCourseProgress(nil))
}
