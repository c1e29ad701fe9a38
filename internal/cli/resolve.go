package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/repository"
)

// resolveCourse finds a local course by uuid (with or without prefix), uuid
// prefix, or case-insensitive name.
func resolveCourse(ctx context.Context, app *App, input string) (*domain.Course, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("course is required")
	}

	c, err := app.Courses.Get(ctx, input)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	courses, err := app.Courses.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range courses {
		if strings.EqualFold(c.Name, input) {
			return app.Courses.Get(ctx, c.CourseUUID)
		}
	}

	want := domain.CleanCourseUUID(input)
	var matches []*domain.Course
	for _, c := range courses {
		if strings.HasPrefix(c.CleanUUID(), want) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("course not found: %q", input)
	case 1:
		return app.Courses.Get(ctx, matches[0].CourseUUID)
	default:
		return nil, fmt.Errorf("course id prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveCourseUUID returns the full uuid for input. In remote mode the
// input is passed through untouched since the catalogue is not local.
func resolveCourseUUID(ctx context.Context, app *App, input string) (string, error) {
	if app.Config.Remote() {
		if strings.TrimSpace(input) == "" {
			return "", fmt.Errorf("course is required")
		}
		return domain.QualifiedCourseUUID(strings.TrimSpace(input)), nil
	}
	c, err := resolveCourse(ctx, app, input)
	if err != nil {
		return "", err
	}
	return c.CourseUUID, nil
}

// loadCourse fetches a course from the active source. Locally the input may
// be anything resolveCourse accepts; remotely it must be the course uuid.
func loadCourse(ctx context.Context, app *App, input string) (*domain.Course, error) {
	if !app.Config.Remote() {
		return resolveCourse(ctx, app, input)
	}
	src, err := app.source(ctx)
	if err != nil {
		return nil, err
	}
	return src.Course(ctx, strings.TrimSpace(input))
}

// resolveActivity finds an activity in course by uuid, uuid prefix, or
// 1-based position in the flattened course.
func resolveActivity(course *domain.Course, input string) (*domain.Activity, error) {
	input = strings.TrimSpace(input)
	if a, _ := course.FindActivity(input); a != nil {
		return a, nil
	}

	if pos, err := strconv.Atoi(input); err == nil && pos >= 1 && pos <= course.ActivityCount() {
		n := 0
		for i := range course.Chapters {
			for j := range course.Chapters[i].Activities {
				n++
				if n == pos {
					return &course.Chapters[i].Activities[j], nil
				}
			}
		}
	}

	want := domain.CleanActivityUUID(input)
	var match *domain.Activity
	for i := range course.Chapters {
		for j := range course.Chapters[i].Activities {
			a := &course.Chapters[i].Activities[j]
			if want != "" && strings.HasPrefix(a.CleanUUID(), want) {
				if match != nil {
					return nil, fmt.Errorf("activity id prefix %q is ambiguous", input)
				}
				match = a
			}
		}
	}
	if match == nil {
		return nil, fmt.Errorf("activity %q not found in course %q", input, course.Name)
	}
	return match, nil
}
