package domain

import "time"

// Course is a read-only snapshot of a course and its chapter/activity tree.
// ID is the relational key used by trail runs; CourseUUID is the external
// identifier used in URLs.
type Course struct {
	ID          int64
	CourseUUID  string
	Name        string
	Description string
	Chapters    []Chapter
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Chapter groups activities. Slice order is navigation order.
type Chapter struct {
	ID         int64
	CourseID   int64
	Name       string
	OrderIndex int
	Activities []Activity
}

type Activity struct {
	ID           int64
	ChapterID    int64
	ActivityUUID string
	Name         string
	ActivityType ActivityType
	OrderIndex   int
}

// CleanUUID returns the course uuid without its prefix, as used in URLs.
func (c *Course) CleanUUID() string {
	return CleanCourseUUID(c.CourseUUID)
}

// ActivityCount returns the number of activities across all chapters.
func (c *Course) ActivityCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, ch := range c.Chapters {
		n += len(ch.Activities)
	}
	return n
}

// FindActivity looks up an activity by uuid (prefixed or clean) and returns it
// with its chapter. Returns nil, nil when absent.
func (c *Course) FindActivity(activityUUID string) (*Activity, *Chapter) {
	if c == nil || activityUUID == "" {
		return nil, nil
	}
	want := CleanActivityUUID(activityUUID)
	for i := range c.Chapters {
		ch := &c.Chapters[i]
		for j := range ch.Activities {
			if CleanActivityUUID(ch.Activities[j].ActivityUUID) == want {
				return &ch.Activities[j], ch
			}
		}
	}
	return nil, nil
}

// CleanUUID returns the activity uuid without its prefix.
func (a Activity) CleanUUID() string {
	return CleanActivityUUID(a.ActivityUUID)
}
