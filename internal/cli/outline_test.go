package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutline(t *testing.T) {
	chapters, err := parseOutline(`
Intro
- Welcome [video]
  - Setup

Practice
- Quiz [Dynamic]
- Homework [TYPE_ASSIGNMENT]
`)
	require.NoError(t, err)
	require.Len(t, chapters, 2)

	assert.Equal(t, "Intro", chapters[0].Name)
	require.Len(t, chapters[0].Activities, 2)
	assert.Equal(t, "Welcome", chapters[0].Activities[0].Name)
	assert.Equal(t, "TYPE_VIDEO", chapters[0].Activities[0].ActivityType)
	assert.Equal(t, "Setup", chapters[0].Activities[1].Name)
	assert.Equal(t, "TYPE_DOCUMENT", chapters[0].Activities[1].ActivityType)

	assert.Equal(t, "Practice", chapters[1].Name)
	require.Len(t, chapters[1].Activities, 2)
	assert.Equal(t, "TYPE_DYNAMIC", chapters[1].Activities[0].ActivityType)
	assert.Equal(t, "TYPE_ASSIGNMENT", chapters[1].Activities[1].ActivityType)
}

func TestParseOutline_EmptyChapterKept(t *testing.T) {
	chapters, err := parseOutline("Later\nNow\n- Read\n")
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Empty(t, chapters[0].Activities)
}

func TestParseOutline_Errors(t *testing.T) {
	tests := []struct {
		name    string
		outline string
		want    string
	}{
		{"empty", "  \n\n", "at least one chapter"},
		{"activity first", "- Orphan\nIntro", "line 1: activity before the first chapter"},
		{"unknown type", "Intro\n- Talk [podcast]", "line 2"},
		{"missing name", "Intro\n- [video]", "activity name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOutline(tt.outline)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCourseDraftSchema_TrimsFields(t *testing.T) {
	d := courseDraft{Name: "  Go  ", Description: " basics ", Outline: "Intro\n- One"}
	s, err := d.schema()
	require.NoError(t, err)
	assert.Equal(t, "Go", s.Name)
	assert.Equal(t, "basics", s.Description)
	assert.Len(t, s.Chapters, 1)
}
