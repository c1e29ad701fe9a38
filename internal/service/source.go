package service

import (
	"context"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/remote"
)

// SnapshotSource supplies the course and trail snapshots that progress is
// derived from, for one learner. Mutations return the refreshed trail.
type SnapshotSource interface {
	Course(ctx context.Context, courseUUID string) (*domain.Course, error)
	Trail(ctx context.Context) (*domain.Trail, error)
	MarkComplete(ctx context.Context, courseUUID, activityUUID string) (*domain.Trail, error)
	RemoveCourse(ctx context.Context, courseUUID string) (*domain.Trail, error)
}

// CertificateLookup is implemented by sources that can report the learner's
// certificate for a course.
type CertificateLookup interface {
	CertificateFor(ctx context.Context, courseID int64) (string, error)
}

// LocalSource reads snapshots from the local store on behalf of one user.
type LocalSource struct {
	UserID  int64
	Courses CourseService
	Trails  TrailService
	Certs   CertificationService
}

func (s *LocalSource) Course(ctx context.Context, courseUUID string) (*domain.Course, error) {
	return s.Courses.Get(ctx, courseUUID)
}

func (s *LocalSource) Trail(ctx context.Context) (*domain.Trail, error) {
	return s.Trails.GetTrail(ctx, s.UserID)
}

func (s *LocalSource) MarkComplete(ctx context.Context, courseUUID, activityUUID string) (*domain.Trail, error) {
	return s.Trails.MarkActivityComplete(ctx, s.UserID, courseUUID, activityUUID)
}

func (s *LocalSource) RemoveCourse(ctx context.Context, courseUUID string) (*domain.Trail, error) {
	return s.Trails.RemoveCourse(ctx, s.UserID, courseUUID)
}

// CertificateFor returns the readable id of the user's certificate for the
// course, or "" when none was issued.
func (s *LocalSource) CertificateFor(ctx context.Context, courseID int64) (string, error) {
	if s.Certs == nil {
		return "", nil
	}
	list, err := s.Certs.ListForUser(ctx, s.UserID)
	if err != nil {
		return "", err
	}
	for _, ic := range list {
		if ic.Course.ID == courseID {
			return ic.Certificate.UserCertificationUUID, nil
		}
	}
	return "", nil
}

// RemoteSource reads snapshots from the learning API.
type RemoteSource struct {
	Client *remote.Client
}

func (s *RemoteSource) Course(ctx context.Context, courseUUID string) (*domain.Course, error) {
	return s.Client.CourseMeta(ctx, courseUUID)
}

func (s *RemoteSource) Trail(ctx context.Context) (*domain.Trail, error) {
	return s.Client.Trail(ctx)
}

// MarkComplete posts the activity. The API resolves the course from the
// activity, so courseUUID is unused.
func (s *RemoteSource) MarkComplete(ctx context.Context, _ string, activityUUID string) (*domain.Trail, error) {
	return s.Client.AddActivity(ctx, activityUUID)
}

func (s *RemoteSource) RemoveCourse(ctx context.Context, courseUUID string) (*domain.Trail, error) {
	return s.Client.RemoveCourse(ctx, courseUUID)
}
