package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const courseJSON = `{
  "id": 42,
  "course_uuid": "course_c0ffee",
  "name": "Go Basics",
  "chapters": [
    {"id": 1, "name": "Intro", "activities": [
      {"id": 101, "activity_uuid": "activity_a1", "name": "Welcome", "activity_type": "TYPE_VIDEO"},
      {"id": 102, "activity_uuid": "activity_a2", "name": "Setup", "activity_type": "TYPE_DOCUMENT"}
    ]},
    {"id": 2, "name": "Practice", "activities": [
      {"id": 201, "activity_uuid": "activity_b1", "name": "Quiz", "activity_type": "TYPE_DYNAMIC"}
    ]}
  ]
}`

func validCourse() *CourseSchema {
	return &CourseSchema{
		ID:         42,
		CourseUUID: "course_c0ffee",
		Name:       "Go Basics",
		Chapters: []ChapterSchema{
			{ID: 1, Name: "Intro", Activities: []ActivitySchema{
				{ID: 101, ActivityUUID: "activity_a1", Name: "Welcome", ActivityType: "TYPE_VIDEO"},
			}},
		},
	}
}

func TestDecodeCourse(t *testing.T) {
	s, err := DecodeCourse(strings.NewReader(courseJSON))
	require.NoError(t, err)
	assert.Empty(t, ValidateCourse(s))

	c := s.ToDomain()
	assert.Equal(t, int64(42), c.ID)
	assert.Equal(t, "c0ffee", c.CleanUUID())
	require.Len(t, c.Chapters, 2)
	assert.Equal(t, int64(42), c.Chapters[0].CourseID)
	assert.Equal(t, 1, c.Chapters[1].OrderIndex)
	assert.Equal(t, domain.ActivityVideo, c.Chapters[0].Activities[0].ActivityType)
	assert.Equal(t, int64(1), c.Chapters[0].Activities[1].ChapterID)
	assert.Equal(t, 3, c.ActivityCount())
}

func TestDecodeCourse_Malformed(t *testing.T) {
	_, err := DecodeCourse(strings.NewReader(`{"id": "nope"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing course snapshot")
}

func TestDecodeTrail_MissingStepsAndRuns(t *testing.T) {
	s, err := DecodeTrail(strings.NewReader(`{"runs": [{"course_id": 42, "status": "STATUS_IN_PROGRESS", "steps": null}]}`))
	require.NoError(t, err)
	assert.Empty(t, PruneTrail(s))

	tr := s.ToDomain()
	require.Len(t, tr.Runs, 1)
	assert.NotNil(t, tr.Runs[0].Steps)
	assert.Empty(t, tr.Runs[0].Steps)

	s, err = DecodeTrail(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Empty(t, PruneTrail(s))
	assert.NotNil(t, s.ToDomain().Runs)

	s, err = DecodeTrail(strings.NewReader(`null`))
	require.NoError(t, err)
	assert.Empty(t, s.ToDomain().Runs)
}

func TestDecodeTrail_EmbeddedCourse(t *testing.T) {
	body := `{"runs": [{"id": 7, "course_id": 42, "course": ` + courseJSON + `, "status": "STATUS_COMPLETED",
	  "steps": [{"activity_id": 101, "complete": true}, {"activity_id": 102, "complete": false}]}]}`
	s, err := DecodeTrail(strings.NewReader(body))
	require.NoError(t, err)
	assert.Empty(t, PruneTrail(s))

	tr := s.ToDomain()
	run := tr.RunFor(42)
	require.NotNil(t, run)
	assert.Equal(t, domain.RunCompleted, run.Status)
	require.NotNil(t, run.Course)
	assert.Equal(t, "Go Basics", run.Course.Name)
	assert.True(t, run.HasCompletedStep(101))
	assert.False(t, run.HasCompletedStep(102))
}

func TestValidateCourse_CollectsAllProblems(t *testing.T) {
	s := &CourseSchema{
		ID:         0,
		CourseUUID: "c0ffee",
		Chapters: []ChapterSchema{
			{ID: 1, Name: "A", Activities: []ActivitySchema{
				{ID: 5, ActivityUUID: "activity_x", Name: "one", ActivityType: "TYPE_PODCAST"},
				{ID: 5, ActivityUUID: "x", Name: "", ActivityType: "VIDEO"},
			}},
			{ID: 1, Name: " "},
		},
	}
	errs := ValidateCourse(s)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	joined := strings.Join(msgs, "\n")

	assert.Contains(t, joined, "course.id must be positive")
	assert.Contains(t, joined, `must start with "course_"`)
	assert.Contains(t, joined, "chapters[0].activities[0].activity_type")
	assert.Contains(t, joined, "chapters[0].activities[1].id 5 is duplicated")
	assert.Contains(t, joined, `chapters[0].activities[1].activity_uuid "x" must start with "activity_"`)
	assert.Contains(t, joined, `activity_uuid "x" is duplicated`)
	assert.Contains(t, joined, "chapters[1].id 1 is duplicated")
	assert.NotContains(t, joined, "name is required")
	assert.NotContains(t, joined, "activities[1].activity_type")
}

func TestValidateCourse_Nil(t *testing.T) {
	assert.Len(t, ValidateCourse(nil), 1)
	assert.Len(t, ValidateCourseDraft(nil), 1)
}

func TestValidateCourseDraft_IDsOptional(t *testing.T) {
	s := &CourseSchema{
		Name: "Draft",
		Chapters: []ChapterSchema{
			{Name: "One", Activities: []ActivitySchema{
				{Name: "Watch", ActivityType: "video"},
				{Name: "Read", ActivityType: "TYPE_DOCUMENT"},
			}},
		},
	}
	assert.Empty(t, ValidateCourseDraft(s))
	assert.NotEmpty(t, ValidateCourse(s))

	s.Name = ""
	s.Chapters[0].Activities[0].ActivityType = "slides"
	assert.Len(t, ValidateCourseDraft(s), 2)
}

func TestPruneTrail_DropsUnjoinableEntries(t *testing.T) {
	s := &TrailSchema{Runs: []RunSchema{
		{CourseID: 0, Status: "STATUS_IN_PROGRESS"},
		{CourseID: 1, Status: "STATUS_DONE", Steps: []StepSchema{{ActivityID: 0}, {ActivityID: 11, Complete: true}}},
		{CourseID: 3, Course: &CourseSchema{ID: 4}},
		{CourseID: 2, Status: "STATUS_IN_PROGRESS", Steps: []StepSchema{{ActivityID: 21, Complete: true}}},
	}}
	dropped := PruneTrail(s)
	require.Len(t, dropped, 3)
	assert.Contains(t, dropped[0].Error(), "runs[0]: course_id")
	assert.Contains(t, dropped[1].Error(), "runs[1].steps[0]: activity_id")
	assert.Contains(t, dropped[2].Error(), "does not match course_id 3")

	tr := s.ToDomain()
	require.Len(t, tr.Runs, 2)
	assert.Equal(t, domain.RunStatus("STATUS_DONE"), tr.RunFor(1).Status)
	assert.True(t, tr.RunFor(1).HasCompletedStep(11))

	course := &domain.Course{ID: 2, Chapters: []domain.Chapter{{Activities: []domain.Activity{{ID: 21}}}}}
	assert.Equal(t, 100, progress.CourseProgress(course, tr).Percentage)

	assert.Nil(t, PruneTrail(nil))
}

func TestValidateCourse_AllowsEmptyNames(t *testing.T) {
	s := validCourse()
	s.Chapters[0].Name = ""
	s.Chapters[0].Activities[0].Name = " "
	assert.Empty(t, ValidateCourse(s))
	assert.Len(t, ValidateCourseDraft(s), 2)
}

func TestJoinErrors(t *testing.T) {
	assert.NoError(t, JoinErrors("course", nil))

	err := JoinErrors("course", ValidateCourse(&CourseSchema{ID: 1, CourseUUID: "course_x", Chapters: []ChapterSchema{{Name: "Intro"}}}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid course (1 problems)")
}

func TestToDomain_KeepsUnknownActivityTypeVerbatim(t *testing.T) {
	s := validCourse()
	s.Chapters[0].Activities[0].ActivityType = "TYPE_HOLOGRAM"
	c := s.ToDomain()
	at := c.Chapters[0].Activities[0].ActivityType
	assert.Equal(t, domain.ActivityType("TYPE_HOLOGRAM"), at)
	assert.False(t, at.Valid())

	var nilSchema *CourseSchema
	assert.Nil(t, nilSchema.ToDomain())
}

func TestFromCourse_RoundTripsShape(t *testing.T) {
	c := validCourse().ToDomain()
	back := FromCourse(c)
	assert.Equal(t, validCourse(), back)
	assert.Nil(t, FromCourse(nil))
}

func TestFromTrail(t *testing.T) {
	tr := &domain.Trail{Runs: []domain.Run{
		{ID: 9, CourseID: 42, Status: domain.RunInProgress, Steps: []domain.Step{{ActivityID: 101, Complete: true}}},
	}}
	s := FromTrail(tr)
	require.Len(t, s.Runs, 1)
	assert.Equal(t, "STATUS_IN_PROGRESS", s.Runs[0].Status)
	assert.Nil(t, s.Runs[0].Course)
	assert.Equal(t, []StepSchema{{ActivityID: 101, Complete: true}}, s.Runs[0].Steps)

	assert.NotNil(t, FromTrail(nil).Runs)
}

func TestConfigMapConversion(t *testing.T) {
	cfg := ConfigFromMap(map[string]any{
		"certification_name":        "Go Certified",
		"certification_description": "Finished Go Basics",
		"ignored":                   12,
	})
	assert.Equal(t, "Go Certified", cfg.Name)
	assert.Equal(t, "Finished Go Basics", cfg.Description)
	assert.Empty(t, cfg.Type)

	m := configToMap(cfg)
	assert.Equal(t, "Go Certified", m["certification_name"])
	assert.NotContains(t, m, "certification_type")

	assert.Equal(t, domain.CertificationConfig{}, ConfigFromMap(nil))
}

func TestIssuedCertificateConversion(t *testing.T) {
	issued := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	ic := &domain.IssuedCertificate{
		Certificate: domain.CertificateUser{ID: 1, UserID: 2, CertificationID: 3,
			UserCertificationUUID: "AB-20250615-beef-001", CreatedAt: issued, UpdatedAt: issued},
		Certification: domain.Certification{ID: 3, CertificationUUID: "certification_x", CourseID: 42,
			Config: domain.CertificationConfig{Name: "Go"}, CreatedAt: issued, UpdatedAt: issued},
		Course: domain.Course{ID: 42, CourseUUID: "course_c0ffee", Name: "Go Basics"},
		User:   domain.User{ID: 2, UserUUID: "user_beef", Username: "ana"},
	}
	s := FromIssued(ic)
	assert.Equal(t, "2025-06-15T10:00:00Z", s.CertificateUser.CreatedAt)
	assert.Equal(t, "Go", s.Certification.Config["certification_name"])

	back := s.ToDomain()
	assert.Equal(t, ic, back)
}

func TestLoadCourseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.json")
	require.NoError(t, os.WriteFile(path, []byte(courseJSON), 0o644))

	s, err := LoadCourseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", s.Name)

	_, err = LoadCourseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
