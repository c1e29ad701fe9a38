package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/learntrail/internal/progress"
)

type progressService struct {
	source    SnapshotSource
	routeBase string
}

// NewProgressService derives learner views from the snapshots of source.
// routeBase prefixes every activity URL.
func NewProgressService(source SnapshotSource, routeBase string) ProgressService {
	return &progressService{source: source, routeBase: routeBase}
}

func (s *progressService) CourseView(ctx context.Context, courseUUID, currentActivityUUID string) (*CourseProgressView, error) {
	course, err := s.source.Course(ctx, courseUUID)
	if err != nil {
		return nil, fmt.Errorf("loading course: %w", err)
	}
	trail, err := s.source.Trail(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading trail: %w", err)
	}

	seq := progress.Flatten(course)
	res := progress.NewResolver(course, trail)
	pos := progress.Locate(seq, currentActivityUUID)
	nav := progress.NewNavigator(nil, s.routeBase, course)

	view := &CourseProgressView{
		Course:     course,
		Run:        res.Run(),
		Sequence:   seq,
		Progress:   res.Progress(),
		Complete:   progress.IsCourseComplete(course, trail),
		Position:   pos,
		Chapters:   progress.Indicators(course, trail, currentActivityUUID),
		CurrentURL: nav.URL(seq.At(pos.Index)),
		PrevURL:    nav.URL(pos.Prev),
		NextURL:    nav.URL(pos.Next),
	}

	if lookup, ok := s.source.(CertificateLookup); ok && view.Complete {
		view.CertificateID, err = lookup.CertificateFor(ctx, course.ID)
		if err != nil {
			return nil, fmt.Errorf("loading certificate: %w", err)
		}
	}
	return view, nil
}

func (s *progressService) Navigate(
	ctx context.Context,
	courseUUID, currentActivityUUID string,
	dir Direction,
	router progress.Router,
) (*progress.ActivityRef, error) {
	course, err := s.source.Course(ctx, courseUUID)
	if err != nil {
		return nil, fmt.Errorf("loading course: %w", err)
	}
	pos := progress.Locate(progress.Flatten(course), currentActivityUUID)
	target := pos.Next
	if dir == Prev {
		target = pos.Prev
	}
	if err := progress.NewNavigator(router, s.routeBase, course).GoTo(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}
