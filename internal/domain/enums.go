package domain

import (
	"fmt"
	"strings"
)

type ActivityType string

const (
	ActivityVideo      ActivityType = "TYPE_VIDEO"
	ActivityDocument   ActivityType = "TYPE_DOCUMENT"
	ActivityDynamic    ActivityType = "TYPE_DYNAMIC"
	ActivityAssignment ActivityType = "TYPE_ASSIGNMENT"
)

// ActivityTypes is the closed set of activity types, in display order.
var ActivityTypes = []ActivityType{ActivityVideo, ActivityDocument, ActivityDynamic, ActivityAssignment}

// ParseActivityType accepts both the wire spelling (TYPE_VIDEO) and the bare
// spelling (VIDEO, video).
func ParseActivityType(s string) (ActivityType, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(norm, "TYPE_") {
		norm = "TYPE_" + norm
	}
	for _, t := range ActivityTypes {
		if string(t) == norm {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown activity type %q", s)
}

// ByActivityType selects one of four values by activity type. Every caller
// supplies a value per type, so adding a type breaks all call sites until
// they handle it.
func ByActivityType[T any](t ActivityType, video, document, dynamic, assignment T) T {
	switch t {
	case ActivityVideo:
		return video
	case ActivityDocument:
		return document
	case ActivityDynamic:
		return dynamic
	case ActivityAssignment:
		return assignment
	}
	panic(fmt.Sprintf("domain: unhandled activity type %q", string(t)))
}

// Label returns the human-readable name of the activity type.
func (t ActivityType) Label() string {
	if !t.Valid() {
		return "Unknown"
	}
	return ByActivityType(t, "Video", "Document", "Interactive", "Assignment")
}

func (t ActivityType) Valid() bool {
	for _, v := range ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}

type RunStatus string

const (
	RunInProgress RunStatus = "STATUS_IN_PROGRESS"
	RunCompleted  RunStatus = "STATUS_COMPLETED"
	RunPaused     RunStatus = "STATUS_PAUSED"
	RunCancelled  RunStatus = "STATUS_CANCELLED"
)
