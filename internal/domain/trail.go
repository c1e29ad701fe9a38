package domain

import "time"

// Trail is a user's engagement record across courses.
type Trail struct {
	UserID int64
	Runs   []Run
}

// Run is one course engagement within a trail. CourseID joins against
// Course.ID, never against the course uuid.
type Run struct {
	ID        int64
	UserID    int64
	CourseID  int64
	Course    *Course
	Status    RunStatus
	Steps     []Step
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Step records completion of one activity within a run.
type Step struct {
	ActivityID int64
	Complete   bool
}

// RunFor returns the first run for the course in source order, or nil.
func (t *Trail) RunFor(courseID int64) *Run {
	if t == nil {
		return nil
	}
	for i := range t.Runs {
		if t.Runs[i].CourseID == courseID {
			return &t.Runs[i]
		}
	}
	return nil
}

// HasCompletedStep reports whether the run holds a complete step for the activity.
func (r *Run) HasCompletedStep(activityID int64) bool {
	if r == nil {
		return false
	}
	for _, s := range r.Steps {
		if s.ActivityID == activityID && s.Complete {
			return true
		}
	}
	return false
}
