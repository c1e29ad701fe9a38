package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCourse(t *testing.T) {
	app := testApp(t)
	c := seedCourse(t, app)
	ctx := context.Background()

	for _, input := range []string{c.CourseUUID, c.CleanUUID(), c.CleanUUID()[:6], "GO BASICS"} {
		got, err := resolveCourse(ctx, app, input)
		require.NoError(t, err, input)
		assert.Equal(t, c.ID, got.ID, input)
		assert.NotEmpty(t, got.Chapters, "resolved courses carry their tree")
	}

	_, err := resolveCourse(ctx, app, " ")
	assert.ErrorContains(t, err, "course is required")
}

func TestResolveCourseUUID_RemotePassesThrough(t *testing.T) {
	app := &App{}
	app.Config.API.URL = "http://lms.example.com"

	id, err := resolveCourseUUID(context.Background(), app, "abc123")
	require.NoError(t, err)
	assert.Equal(t, domain.QualifiedCourseUUID("abc123"), id)
}

func TestResolveActivity(t *testing.T) {
	app := testApp(t)
	c := seedCourse(t, app)
	quiz := c.Chapters[1].Activities[0]

	byPos, err := resolveActivity(c, "3")
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, byPos.ID)

	byUUID, err := resolveActivity(c, quiz.ActivityUUID)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, byUUID.ID)

	byPrefix, err := resolveActivity(c, quiz.CleanUUID()[:10])
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, byPrefix.ID)

	_, err = resolveActivity(c, "zz")
	assert.ErrorContains(t, err, "not found")
}

func TestResolveTarget_EmptyActivity(t *testing.T) {
	app := testApp(t)
	c := seedCourse(t, app)

	courseUUID, activityUUID, err := resolveTarget(context.Background(), app, "Go Basics", "")
	require.NoError(t, err)
	assert.Equal(t, c.CourseUUID, courseUUID)
	assert.Empty(t, activityUUID)
}
