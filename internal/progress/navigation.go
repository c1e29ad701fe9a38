package progress

import (
	"context"
	"strings"

	"github.com/alexanderramin/learntrail/internal/domain"
)

// Router performs a route transition to url. Errors are surfaced to the
// caller as-is; navigation never retries.
type Router interface {
	Push(ctx context.Context, url string) error
}

// RouterFunc adapts a function to Router.
type RouterFunc func(ctx context.Context, url string) error

func (f RouterFunc) Push(ctx context.Context, url string) error { return f(ctx, url) }

// ActivityURL builds "{base}/course/{cleanCourseUUID}/activity/{cleanActivityUUID}".
func ActivityURL(base, courseUUID, activityUUID string) string {
	return strings.TrimRight(base, "/") +
		"/course/" + domain.CleanCourseUUID(courseUUID) +
		"/activity/" + domain.CleanActivityUUID(activityUUID)
}

// Navigator turns activity refs into route transitions for one course.
type Navigator struct {
	router     Router
	base       string
	courseUUID string
}

func NewNavigator(router Router, base string, course *domain.Course) *Navigator {
	n := &Navigator{router: router, base: base}
	if course != nil {
		n.courseUUID = course.CourseUUID
	}
	return n
}

// URL returns the route target for ref, or "" when ref is nil.
func (n *Navigator) URL(ref *ActivityRef) string {
	if ref == nil {
		return ""
	}
	return ActivityURL(n.base, n.courseUUID, ref.CleanUUID)
}

// GoTo pushes the route for ref. A nil ref (sequence boundary) is a no-op.
func (n *Navigator) GoTo(ctx context.Context, ref *ActivityRef) error {
	if ref == nil || n.router == nil {
		return nil
	}
	return n.router.Push(ctx, n.URL(ref))
}

// NavMode is the display mode of the prev/next control.
type NavMode int

const (
	// NavInline shows the control in its place below the activity.
	NavInline NavMode = iota
	// NavFloating pins the control while the inline one is off-screen.
	NavFloating
)

func (m NavMode) String() string {
	if m == NavFloating {
		return "floating"
	}
	return "inline"
}

// NavDisplay toggles between inline and floating navigation based solely on
// whether the inline control is visible. The zero value starts inline.
type NavDisplay struct {
	mode NavMode
}

// Observe feeds one visibility signal and returns the resulting mode.
func (d *NavDisplay) Observe(inlineVisible bool) NavMode {
	if inlineVisible {
		d.mode = NavInline
	} else {
		d.mode = NavFloating
	}
	return d.mode
}

func (d *NavDisplay) Mode() NavMode { return d.mode }
