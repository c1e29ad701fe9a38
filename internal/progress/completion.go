package progress

import (
	"math"

	"github.com/alexanderramin/learntrail/internal/domain"
)

// Progress is the aggregate completion of one course.
type Progress struct {
	Completed  int
	Total      int
	Percentage int
}

// Fraction returns Completed/Total in [0,1], or 0 when Total is zero.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// Resolver answers completion questions for one (course, trail) pair. It
// locates the course's run once and indexes its complete steps.
type Resolver struct {
	course *domain.Course
	run    *domain.Run
	done   map[int64]bool
}

// NewResolver binds a course and trail snapshot. Either may be nil.
func NewResolver(course *domain.Course, trail *domain.Trail) *Resolver {
	r := &Resolver{course: course, done: make(map[int64]bool)}
	if course == nil {
		return r
	}
	r.run = FindRun(trail, course.ID)
	if r.run != nil {
		for _, s := range r.run.Steps {
			if s.Complete {
				r.done[s.ActivityID] = true
			}
		}
	}
	return r
}

// Run returns the run the resolver matched, or nil.
func (r *Resolver) Run() *domain.Run { return r.run }

// IsComplete reports whether the activity has a complete step in the run.
func (r *Resolver) IsComplete(activity domain.Activity) bool {
	return r.done[activity.ID]
}

// Progress counts completed activities over the flattened course.
func (r *Resolver) Progress() Progress {
	var p Progress
	for _, ref := range Flatten(r.course) {
		p.Total++
		if r.IsComplete(ref.Activity) {
			p.Completed++
		}
	}
	p.Percentage = Percent(p.Completed, p.Total)
	return p
}

// FindRun returns the first run whose CourseID equals courseID, or nil.
// Ties between duplicate runs are broken by source order.
func FindRun(trail *domain.Trail, courseID int64) *domain.Run {
	return trail.RunFor(courseID)
}

// IsComplete reports whether activity is complete for course in trail. A
// missing run, a missing step and an explicit incomplete step all yield false.
func IsComplete(course *domain.Course, trail *domain.Trail, activity domain.Activity) bool {
	if course == nil {
		return false
	}
	return FindRun(trail, course.ID).HasCompletedStep(activity.ID)
}

// CourseProgress computes completed/total/percentage for the course.
func CourseProgress(course *domain.Course, trail *domain.Trail) Progress {
	return NewResolver(course, trail).Progress()
}

// IsCourseComplete reports whether every activity is complete. An empty
// course is never complete.
func IsCourseComplete(course *domain.Course, trail *domain.Trail) bool {
	p := CourseProgress(course, trail)
	return p.Total > 0 && p.Completed == p.Total
}

// Percent rounds completed/total to the nearest whole percent, clamped to
// [0,100]. A zero total yields 0.
func Percent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}
