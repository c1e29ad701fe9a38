package snapshot

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/learntrail/internal/domain"
)

// ValidateCourse checks a course snapshot received from the API. Ids and
// uuids are required and must be unique; names may be empty. Returns every
// problem found.
func ValidateCourse(s *CourseSchema) []error {
	if s == nil {
		return []error{fmt.Errorf("course snapshot is empty")}
	}
	var errs []error
	if s.ID <= 0 {
		errs = append(errs, fmt.Errorf("course.id must be positive"))
	}
	if s.CourseUUID == "" {
		errs = append(errs, fmt.Errorf("course.course_uuid is required"))
	} else if !strings.HasPrefix(s.CourseUUID, domain.CoursePrefix) {
		errs = append(errs, fmt.Errorf("course.course_uuid %q must start with %q", s.CourseUUID, domain.CoursePrefix))
	}
	errs = append(errs, validateChapters(s.Chapters, true)...)
	return errs
}

// ValidateCourseDraft checks a course authored for import. Ids are assigned
// by the store and uuids are optional, but names and activity types are not.
func ValidateCourseDraft(s *CourseSchema) []error {
	if s == nil {
		return []error{fmt.Errorf("course draft is empty")}
	}
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, fmt.Errorf("course.name is required"))
	}
	if s.CourseUUID != "" && !strings.HasPrefix(s.CourseUUID, domain.CoursePrefix) {
		errs = append(errs, fmt.Errorf("course.course_uuid %q must start with %q", s.CourseUUID, domain.CoursePrefix))
	}
	errs = append(errs, validateChapters(s.Chapters, false)...)
	return errs
}

func validateChapters(chapters []ChapterSchema, fromAPI bool) []error {
	var errs []error
	chapterIDs := make(map[int64]bool)
	activityIDs := make(map[int64]bool)
	activityUUIDs := make(map[string]bool)

	for i, ch := range chapters {
		prefix := fmt.Sprintf("chapters[%d]", i)
		if fromAPI {
			if ch.ID <= 0 {
				errs = append(errs, fmt.Errorf("%s.id must be positive", prefix))
			} else if chapterIDs[ch.ID] {
				errs = append(errs, fmt.Errorf("%s.id %d is duplicated", prefix, ch.ID))
			}
			chapterIDs[ch.ID] = true
		}
		// Names are display-only in API snapshots.
		if !fromAPI && strings.TrimSpace(ch.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}

		for j, a := range ch.Activities {
			ap := fmt.Sprintf("%s.activities[%d]", prefix, j)
			if fromAPI {
				if a.ID <= 0 {
					errs = append(errs, fmt.Errorf("%s.id must be positive", ap))
				} else if activityIDs[a.ID] {
					errs = append(errs, fmt.Errorf("%s.id %d is duplicated", ap, a.ID))
				}
				activityIDs[a.ID] = true
				if a.ActivityUUID == "" {
					errs = append(errs, fmt.Errorf("%s.activity_uuid is required", ap))
				}
			}
			if a.ActivityUUID != "" {
				if !strings.HasPrefix(a.ActivityUUID, domain.ActivityPrefix) {
					errs = append(errs, fmt.Errorf("%s.activity_uuid %q must start with %q", ap, a.ActivityUUID, domain.ActivityPrefix))
				}
				clean := domain.CleanActivityUUID(a.ActivityUUID)
				if activityUUIDs[clean] {
					errs = append(errs, fmt.Errorf("%s.activity_uuid %q is duplicated", ap, a.ActivityUUID))
				}
				activityUUIDs[clean] = true
			}
			if !fromAPI && strings.TrimSpace(a.Name) == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", ap))
			}
			if _, err := domain.ParseActivityType(a.ActivityType); err != nil {
				errs = append(errs, fmt.Errorf("%s.activity_type: %w", ap, err))
			}
		}
	}
	return errs
}

// PruneTrail drops the runs and steps of a trail snapshot that cannot be
// joined to a course or activity, and returns one note per dropped entry.
// Missing runs or steps mean "nothing done". Unknown run statuses are kept
// verbatim; progress never reads them.
func PruneTrail(s *TrailSchema) []error {
	if s == nil {
		return nil
	}
	var dropped []error
	runs := s.Runs[:0]
	for i, r := range s.Runs {
		prefix := fmt.Sprintf("runs[%d]", i)
		if r.CourseID <= 0 {
			dropped = append(dropped, fmt.Errorf("%s: course_id must be positive", prefix))
			continue
		}
		if r.Course != nil && r.Course.ID != 0 && r.Course.ID != r.CourseID {
			dropped = append(dropped, fmt.Errorf("%s: course.id %d does not match course_id %d", prefix, r.Course.ID, r.CourseID))
			continue
		}
		steps := r.Steps[:0]
		for j, st := range r.Steps {
			if st.ActivityID <= 0 {
				dropped = append(dropped, fmt.Errorf("%s.steps[%d]: activity_id must be positive", prefix, j))
				continue
			}
			steps = append(steps, st)
		}
		r.Steps = steps
		runs = append(runs, r)
	}
	s.Runs = runs
	return dropped
}

// JoinErrors flattens a validation error list into a single error, or nil.
func JoinErrors(what string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("invalid %s (%d problems): %s", what, len(errs), strings.Join(msgs, "; "))
}
