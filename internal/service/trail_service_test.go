package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/alexanderramin/learntrail/internal/repository"
	"github.com/alexanderramin/learntrail/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailService_StartCourse_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, env.db, "ana")
	c := testutil.SeedCourse(t, env.db, "Go Basics")

	trail, err := env.trails.StartCourse(ctx, u.ID, c.CourseUUID)
	require.NoError(t, err)
	require.Len(t, trail.Runs, 1)
	run := trail.Runs[0]
	assert.Equal(t, domain.RunInProgress, run.Status)
	assert.Empty(t, run.Steps)
	require.NotNil(t, run.Course)
	assert.Equal(t, c.ActivityCount(), run.Course.ActivityCount())

	trail, err = env.trails.StartCourse(ctx, u.ID, c.CleanUUID())
	require.NoError(t, err)
	require.Len(t, trail.Runs, 1)
	assert.Equal(t, run.ID, trail.Runs[0].ID)
}

func TestTrailService_StartCourse_UnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	u := testutil.SeedUser(t, env.db, "ana")

	_, err := env.trails.StartCourse(context.Background(), u.ID, "course_missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTrailService_MarkActivityComplete_ReturnsFreshTrail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, env.db, "ana")
	c := testutil.SeedCourse(t, env.db, "Go Basics")
	first := testutil.ActivityAt(c, 0)

	// No explicit start: marking an activity enrolls the learner.
	trail, err := env.trails.MarkActivityComplete(ctx, u.ID, c.CourseUUID, first.CleanUUID())
	require.NoError(t, err)

	p := progress.CourseProgress(c, trail)
	assert.Equal(t, progress.Progress{Completed: 1, Total: 3, Percentage: 33}, p)
	assert.True(t, progress.IsComplete(c, trail, first))
	assert.Equal(t, domain.RunInProgress, trail.RunFor(c.ID).Status)

	// Marking twice keeps a single step.
	trail, err = env.trails.MarkActivityComplete(ctx, u.ID, c.CourseUUID, first.ActivityUUID)
	require.NoError(t, err)
	assert.Len(t, trail.RunFor(c.ID).Steps, 1)
}

func TestTrailService_MarkActivityComplete_UnknownActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, env.db, "ana")
	c := testutil.SeedCourse(t, env.db, "Go Basics")
	other := testutil.SeedCourse(t, env.db, "Rust Basics")

	_, err := env.trails.MarkActivityComplete(ctx, u.ID, c.CourseUUID, testutil.ActivityAt(other, 0).ActivityUUID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	trail, err := env.trails.GetTrail(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, trail.Runs, "a rejected activity must not enroll the learner")
}

func TestTrailService_CompletingCourse_CompletesRunAndIssuesCertificate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.pinIssuer(fixedIssuer("QK", time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)))

	u := testutil.SeedUser(t, env.db, "ana", testutil.WithUserUUID("user_0000beef"))
	c := testutil.SeedCourse(t, env.db, "Go Basics")
	_, err := env.certs.Create(ctx, c.CourseUUID, domain.CertificationConfig{Name: "Go Certified"})
	require.NoError(t, err)

	trail := env.completeAll(t, u.ID, c)
	assert.True(t, progress.IsCourseComplete(c, trail))
	assert.Equal(t, domain.RunCompleted, trail.RunFor(c.ID).Status)

	list, err := env.certs.ListForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "QK-20250615-beef-001", list[0].Certificate.UserCertificationUUID)

	events := env.obs.named("mark-activity-complete")
	require.Len(t, events, 3)
	assert.Nil(t, events[0].Fields["course_complete"])
	assert.Equal(t, true, events[2].Fields["course_complete"])
	assert.Equal(t, "QK-20250615-beef-001", events[2].Fields["certificate"])
}

func TestTrailService_CompletingCourseWithoutCertification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, env.db, "ana")
	c := testutil.SeedCourse(t, env.db, "Go Basics")

	trail := env.completeAll(t, u.ID, c)
	assert.Equal(t, domain.RunCompleted, trail.RunFor(c.ID).Status)

	list, err := env.certs.ListForUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTrailService_MarkActivityComplete_RollsBackOnIssueFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, database, "ana")
	c := testutil.SeedCourse(t, database, "One", testutil.WithChapter("Only", domain.ActivityVideo))
	require.NoError(t, repository.NewSQLiteCertificationRepo(database).Create(ctx,
		&domain.Certification{CourseID: c.ID, Config: domain.CertificationConfig{Name: "One"}}))

	// Exec order: create run, insert step, touch run, complete run, issue certificate.
	errInjected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 5, Err: errInjected}
	svc := NewTrailService(repository.NewSQLiteTrailRepo(database), uow)

	_, err := svc.MarkActivityComplete(ctx, u.ID, c.CourseUUID, testutil.ActivityAt(c, 0).ActivityUUID)
	require.ErrorIs(t, err, errInjected)

	trail, err := svc.GetTrail(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, trail.Runs, "run and step must roll back with the certificate")
}

func TestTrailService_RemoveCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, env.db, "ana")
	go1 := testutil.SeedCourse(t, env.db, "Go Basics")
	rust := testutil.SeedCourse(t, env.db, "Rust Basics")

	_, err := env.trails.MarkActivityComplete(ctx, u.ID, go1.CourseUUID, testutil.ActivityAt(go1, 0).ActivityUUID)
	require.NoError(t, err)
	_, err = env.trails.StartCourse(ctx, u.ID, rust.CourseUUID)
	require.NoError(t, err)

	trail, err := env.trails.RemoveCourse(ctx, u.ID, go1.CourseUUID)
	require.NoError(t, err)
	require.Len(t, trail.Runs, 1)
	assert.Equal(t, rust.ID, trail.Runs[0].CourseID)
	assert.Zero(t, progress.CourseProgress(go1, trail).Completed)

	_, err = env.trails.RemoveCourse(ctx, u.ID, go1.CourseUUID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTrailService_QuitAll_ReportsProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, env.db, "ana")
	other := testutil.SeedUser(t, env.db, "bo")
	for _, name := range []string{"A", "B", "C"} {
		c := testutil.SeedCourse(t, env.db, name)
		_, err := env.trails.StartCourse(ctx, u.ID, c.CourseUUID)
		require.NoError(t, err)
		_, err = env.trails.StartCourse(ctx, other.ID, c.CourseUUID)
		require.NoError(t, err)
	}

	var reported []int
	require.NoError(t, env.trails.QuitAll(ctx, u.ID, func(pct int) { reported = append(reported, pct) }))
	assert.Equal(t, []int{33, 67, 100}, reported)

	trail, err := env.trails.GetTrail(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, trail.Runs)

	trail, err = env.trails.GetTrail(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, trail.Runs, 3)

	events := env.obs.named("quit-all")
	require.Len(t, events, 1)
	assert.Equal(t, 3, events[0].Fields["runs"])
}

func TestTrailService_QuitAll_EmptyTrail(t *testing.T) {
	env := newTestEnv(t)
	u := testutil.SeedUser(t, env.db, "ana")

	called := false
	require.NoError(t, env.trails.QuitAll(context.Background(), u.ID, func(int) { called = true }))
	assert.False(t, called)
}
