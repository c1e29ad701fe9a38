package progress

import "github.com/alexanderramin/learntrail/internal/domain"

// DisplayState is the visual category of one activity.
type DisplayState string

const (
	StateDone    DisplayState = "done"
	StateCurrent DisplayState = "current"
	StatePending DisplayState = "pending"
)

// Classify maps completion and current-pointer flags to a display state.
// Done takes precedence over current.
func Classify(isDone, isCurrent bool) DisplayState {
	switch {
	case isDone:
		return StateDone
	case isCurrent:
		return StateCurrent
	default:
		return StatePending
	}
}

// Indicator pairs an activity with its display state.
type Indicator struct {
	Ref   ActivityRef
	State DisplayState
}

// ChapterIndicators groups indicators under their chapter for display.
type ChapterIndicators struct {
	ChapterID   int64
	ChapterName string
	Indicators  []Indicator
}

// Indicators classifies every activity of the course. currentActivityUUID may
// be empty, in which case no activity is current. Chapters without activities
// are kept so the grouping mirrors the course outline.
func Indicators(course *domain.Course, trail *domain.Trail, currentActivityUUID string) []ChapterIndicators {
	if course == nil {
		return nil
	}
	res := NewResolver(course, trail)
	current := domain.CleanActivityUUID(currentActivityUUID)

	groups := make([]ChapterIndicators, 0, len(course.Chapters))
	for _, ch := range course.Chapters {
		g := ChapterIndicators{ChapterID: ch.ID, ChapterName: ch.Name}
		for _, a := range ch.Activities {
			ref := ActivityRef{
				Activity:    a,
				ChapterID:   ch.ID,
				ChapterName: ch.Name,
				CleanUUID:   domain.CleanActivityUUID(a.ActivityUUID),
			}
			isCurrent := current != "" && ref.CleanUUID == current
			g.Indicators = append(g.Indicators, Indicator{
				Ref:   ref,
				State: Classify(res.IsComplete(a), isCurrent),
			})
		}
		groups = append(groups, g)
	}
	return groups
}
