package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/learntrail/internal/domain"
)

var testUserCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithUserUUID(id string) UserOption {
	return func(u *domain.User) {
		u.UserUUID = id
	}
}

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

// NewTestUser builds an unsaved user. An empty username gets a unique one.
func NewTestUser(username string, opts ...UserOption) *domain.User {
	if username == "" {
		username = fmt.Sprintf("learner%02d", testUserCounter.Add(1))
	}
	u := &domain.User{Username: username}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Course options
type CourseOption func(*domain.Course)

func WithCourseUUID(id string) CourseOption {
	return func(c *domain.Course) {
		c.CourseUUID = id
	}
}

func WithDescription(d string) CourseOption {
	return func(c *domain.Course) {
		c.Description = d
	}
}

// WithChapter appends a chapter holding one activity per type given. Activity
// names are "<chapter>.<n>".
func WithChapter(name string, types ...domain.ActivityType) CourseOption {
	return func(c *domain.Course) {
		ch := domain.Chapter{Name: name, Activities: []domain.Activity{}}
		for i, t := range types {
			ch.Activities = append(ch.Activities, domain.Activity{
				Name:         fmt.Sprintf("%s.%d", name, i+1),
				ActivityType: t,
			})
		}
		c.Chapters = append(c.Chapters, ch)
	}
}

// NewTestCourse builds an unsaved course. Without options it has two
// chapters: "Intro" with a video and a document, "Practice" with an
// assignment.
func NewTestCourse(name string, opts ...CourseOption) *domain.Course {
	c := &domain.Course{Name: name}
	for _, opt := range opts {
		opt(c)
	}
	if c.Chapters == nil {
		WithChapter("Intro", domain.ActivityVideo, domain.ActivityDocument)(c)
		WithChapter("Practice", domain.ActivityAssignment)(c)
	}
	return c
}

// ActivityAt returns the activity at a flat position across chapters.
func ActivityAt(c *domain.Course, i int) domain.Activity {
	for _, ch := range c.Chapters {
		if i < len(ch.Activities) {
			return ch.Activities[i]
		}
		i -= len(ch.Activities)
	}
	panic(fmt.Sprintf("testutil: course %q has no activity %d", c.Name, i))
}
