// Package progress derives completion, position and navigation state from a
// course snapshot and a trail snapshot. Every function here is pure and total:
// missing data resolves to sentinel values (false, nil, -1, 0%) rather than errors.
package progress

import "github.com/alexanderramin/learntrail/internal/domain"

// ActivityRef is one entry of a flattened course, carrying back-pointers to
// its chapter and a pre-normalized uuid.
type ActivityRef struct {
	Activity    domain.Activity
	ChapterID   int64
	ChapterName string
	CleanUUID   string
}

// Sequence is the canonical navigation order of a course.
type Sequence []ActivityRef

// Flatten concatenates each chapter's activities in chapter order, then
// activity order.
func Flatten(course *domain.Course) Sequence {
	seq := make(Sequence, 0, course.ActivityCount())
	if course == nil {
		return seq
	}
	for _, ch := range course.Chapters {
		for _, a := range ch.Activities {
			seq = append(seq, ActivityRef{
				Activity:    a,
				ChapterID:   ch.ID,
				ChapterName: ch.Name,
				CleanUUID:   domain.CleanActivityUUID(a.ActivityUUID),
			})
		}
	}
	return seq
}

// At returns a pointer to the i-th entry, or nil when i is out of range.
func (s Sequence) At(i int) *ActivityRef {
	if i < 0 || i >= len(s) {
		return nil
	}
	ref := s[i]
	return &ref
}

// First returns the first entry, or nil for an empty sequence.
func (s Sequence) First() *ActivityRef { return s.At(0) }

// Last returns the last entry, or nil for an empty sequence.
func (s Sequence) Last() *ActivityRef { return s.At(len(s) - 1) }
