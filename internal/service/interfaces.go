package service

import (
	"context"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/alexanderramin/learntrail/internal/snapshot"
)

type UserService interface {
	Add(ctx context.Context, username, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type CourseService interface {
	Create(ctx context.Context, c *domain.Course) error
	Import(ctx context.Context, s *snapshot.CourseSchema) (*domain.Course, error)
	ImportFile(ctx context.Context, path string) (*domain.Course, error)
	Get(ctx context.Context, courseUUID string) (*domain.Course, error)
	// FindByActivity returns the course that holds the activity.
	FindByActivity(ctx context.Context, activityUUID string) (*domain.Course, error)
	List(ctx context.Context) ([]*domain.Course, error)
	Update(ctx context.Context, courseUUID, name, description string) (*domain.Course, error)
	Delete(ctx context.Context, courseUUID string) error
}

// TrailService manages a user's runs. Every mutation returns the freshly
// reloaded trail rather than a locally patched copy.
type TrailService interface {
	GetTrail(ctx context.Context, userID int64) (*domain.Trail, error)
	StartCourse(ctx context.Context, userID int64, courseUUID string) (*domain.Trail, error)
	MarkActivityComplete(ctx context.Context, userID int64, courseUUID, activityUUID string) (*domain.Trail, error)
	RemoveCourse(ctx context.Context, userID int64, courseUUID string) (*domain.Trail, error)
	QuitAll(ctx context.Context, userID int64, onProgress func(pct int)) error
}

type CertificationService interface {
	Create(ctx context.Context, courseUUID string, cfg domain.CertificationConfig) (*domain.Certification, error)
	ListByCourse(ctx context.Context, courseUUID string) ([]*domain.Certification, error)
	Get(ctx context.Context, certificationUUID string) (*domain.Certification, error)
	Update(ctx context.Context, certificationUUID string, cfg domain.CertificationConfig) (*domain.Certification, error)
	Delete(ctx context.Context, certificationUUID string) error
	IssueIfComplete(ctx context.Context, userID int64, courseUUID string) (*domain.CertificateUser, error)
	Verify(ctx context.Context, userCertificationUUID string) (*domain.IssuedCertificate, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.IssuedCertificate, error)
}

// Direction selects a navigation neighbour.
type Direction int

const (
	Next Direction = iota
	Prev
)

type ProgressService interface {
	CourseView(ctx context.Context, courseUUID, currentActivityUUID string) (*CourseProgressView, error)
	// Navigate pushes the route of the neighbour in dir through router and
	// returns it. At a sequence boundary it returns nil and pushes nothing.
	Navigate(ctx context.Context, courseUUID, currentActivityUUID string, dir Direction, router progress.Router) (*progress.ActivityRef, error)
}

// CourseProgressView is everything a learner screen shows for one course.
type CourseProgressView struct {
	Course        *domain.Course
	Run           *domain.Run
	Sequence      progress.Sequence
	Progress      progress.Progress
	Complete      bool
	Position      progress.Position
	Chapters      []progress.ChapterIndicators
	CurrentURL    string
	PrevURL       string
	NextURL       string
	CertificateID string
}
