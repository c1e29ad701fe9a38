package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/alexanderramin/learntrail/internal/remote"
	"github.com/alexanderramin/learntrail/internal/repository"
	"github.com/alexanderramin/learntrail/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localProgress(t *testing.T, env *testEnv, userID int64) ProgressService {
	t.Helper()
	src := &LocalSource{UserID: userID, Courses: env.courses, Trails: env.trails, Certs: env.certs}
	return NewProgressService(src, "https://learn.example.com/")
}

func TestProgressService_CourseView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, env.db, "ana")
	c := testutil.SeedCourse(t, env.db, "Go Basics")
	first, second, third := testutil.ActivityAt(c, 0), testutil.ActivityAt(c, 1), testutil.ActivityAt(c, 2)

	_, err := env.trails.MarkActivityComplete(ctx, u.ID, c.CourseUUID, first.ActivityUUID)
	require.NoError(t, err)

	view, err := localProgress(t, env, u.ID).CourseView(ctx, c.CourseUUID, second.ActivityUUID)
	require.NoError(t, err)

	assert.Len(t, view.Sequence, 3)
	assert.Equal(t, progress.Progress{Completed: 1, Total: 3, Percentage: 33}, view.Progress)
	assert.False(t, view.Complete)
	require.NotNil(t, view.Run)
	assert.Equal(t, 1, view.Position.Index)

	base := "https://learn.example.com/course/" + c.CleanUUID() + "/activity/"
	assert.Equal(t, base+second.CleanUUID(), view.CurrentURL)
	assert.Equal(t, base+first.CleanUUID(), view.PrevURL)
	assert.Equal(t, base+third.CleanUUID(), view.NextURL)

	require.Len(t, view.Chapters, 2)
	states := []progress.DisplayState{}
	for _, ch := range view.Chapters {
		for _, ind := range ch.Indicators {
			states = append(states, ind.State)
		}
	}
	assert.Equal(t, []progress.DisplayState{progress.StateDone, progress.StateCurrent, progress.StatePending}, states)
	assert.Empty(t, view.CertificateID)
}

func TestProgressService_CourseView_NoRunNoCurrent(t *testing.T) {
	env := newTestEnv(t)
	u := testutil.SeedUser(t, env.db, "ana")
	c := testutil.SeedCourse(t, env.db, "Go Basics")

	view, err := localProgress(t, env, u.ID).CourseView(context.Background(), c.CourseUUID, "")
	require.NoError(t, err)
	assert.Nil(t, view.Run)
	assert.Equal(t, 0, view.Progress.Percentage)
	assert.Equal(t, -1, view.Position.Index)
	assert.Empty(t, view.CurrentURL)
	assert.Empty(t, view.PrevURL)
	assert.Empty(t, view.NextURL)
}

func TestProgressService_CourseView_CompleteWithCertificate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, env.db, "ana")
	c := testutil.SeedCourse(t, env.db, "Go Basics")
	_, err := env.certs.Create(ctx, c.CourseUUID, domain.CertificationConfig{Name: "Go"})
	require.NoError(t, err)
	env.completeAll(t, u.ID, c)

	view, err := localProgress(t, env, u.ID).CourseView(ctx, c.CourseUUID, "")
	require.NoError(t, err)
	assert.True(t, view.Complete)
	assert.Equal(t, 100, view.Progress.Percentage)
	assert.Regexp(t, `^[A-Z]{2}-\d{8}-.{4}-001$`, view.CertificateID)
}

func TestProgressService_CourseView_UnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	_, err := localProgress(t, env, 1).CourseView(context.Background(), "course_missing", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProgressService_Navigate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, env.db, "ana")
	c := testutil.SeedCourse(t, env.db, "Go Basics")
	svc := localProgress(t, env, u.ID)

	var pushed []string
	router := progress.RouterFunc(func(_ context.Context, url string) error {
		pushed = append(pushed, url)
		return nil
	})

	// Crossing the chapter boundary.
	ref, err := svc.Navigate(ctx, c.CourseUUID, testutil.ActivityAt(c, 1).ActivityUUID, Next, router)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "Practice", ref.ChapterName)

	// Boundaries push nothing.
	ref, err = svc.Navigate(ctx, c.CourseUUID, testutil.ActivityAt(c, 2).ActivityUUID, Next, router)
	require.NoError(t, err)
	assert.Nil(t, ref)
	ref, err = svc.Navigate(ctx, c.CourseUUID, testutil.ActivityAt(c, 0).ActivityUUID, Prev, router)
	require.NoError(t, err)
	assert.Nil(t, ref)
	ref, err = svc.Navigate(ctx, c.CourseUUID, "activity_unknown", Next, router)
	require.NoError(t, err)
	assert.Nil(t, ref)

	require.Len(t, pushed, 1)
	assert.Equal(t, "https://learn.example.com/course/"+c.CleanUUID()+"/activity/"+testutil.ActivityAt(c, 2).CleanUUID(), pushed[0])
}

func TestProgressService_Navigate_RouterError(t *testing.T) {
	env := newTestEnv(t)
	c := testutil.SeedCourse(t, env.db, "Go Basics")
	errRoute := errors.New("route rejected")
	router := progress.RouterFunc(func(context.Context, string) error { return errRoute })

	_, err := localProgress(t, env, 1).Navigate(context.Background(), c.CourseUUID, testutil.ActivityAt(c, 0).ActivityUUID, Next, router)
	assert.ErrorIs(t, err, errRoute)
}

func TestProgressService_RemoteSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/courses/course_c0ffee/meta":
			fmt.Fprint(w, `{"id": 42, "course_uuid": "course_c0ffee", "name": "Go", "chapters": [
			  {"id": 1, "name": "Intro", "activities": [
			    {"id": 101, "activity_uuid": "activity_a1", "name": "A", "activity_type": "TYPE_VIDEO"},
			    {"id": 102, "activity_uuid": "activity_a2", "name": "B", "activity_type": "TYPE_VIDEO"}]}]}`)
		case "/api/v1/trail/org/default/trail":
			fmt.Fprint(w, `{"runs": [{"course_id": 42, "status": "STATUS_IN_PROGRESS", "steps": [{"activity_id": 102, "complete": true}]}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := remote.DefaultConfig()
	cfg.BaseURL = srv.URL
	svc := NewProgressService(&RemoteSource{Client: remote.NewClient(cfg)}, "")

	view, err := svc.CourseView(context.Background(), "course_c0ffee", "a1")
	require.NoError(t, err)
	assert.Equal(t, 50, view.Progress.Percentage)
	assert.Equal(t, 0, view.Position.Index)
	assert.Equal(t, "/course/c0ffee/activity/a2", view.NextURL)
	assert.Equal(t, progress.StateCurrent, view.Chapters[0].Indicators[0].State)
	assert.Equal(t, progress.StateDone, view.Chapters[0].Indicators[1].State)
}
