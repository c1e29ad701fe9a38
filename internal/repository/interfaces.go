package repository

import (
	"context"

	"github.com/alexanderramin/learntrail/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// CourseRepo stores courses together with their chapter/activity tree.
// Reads always return the full tree in navigation order.
type CourseRepo interface {
	Create(ctx context.Context, c *domain.Course) error
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
	GetByUUID(ctx context.Context, courseUUID string) (*domain.Course, error)
	GetByActivityUUID(ctx context.Context, activityUUID string) (*domain.Course, error)
	List(ctx context.Context) ([]*domain.Course, error)
	Update(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, id int64) error
}

// TrailRepo stores runs and their steps. Runs are returned without their
// course; callers join courses by Run.CourseID.
type TrailRepo interface {
	CreateRun(ctx context.Context, run *domain.Run) error
	GetRun(ctx context.Context, userID, courseID int64) (*domain.Run, error)
	ListRunsByUser(ctx context.Context, userID int64) ([]domain.Run, error)
	UpdateRunStatus(ctx context.Context, runID int64, status domain.RunStatus) error
	DeleteRun(ctx context.Context, runID int64) error
	UpsertStep(ctx context.Context, runID int64, step domain.Step) error
}

type CertificationRepo interface {
	Create(ctx context.Context, c *domain.Certification) error
	GetByID(ctx context.Context, id int64) (*domain.Certification, error)
	GetByUUID(ctx context.Context, certificationUUID string) (*domain.Certification, error)
	GetByCourse(ctx context.Context, courseID int64) (*domain.Certification, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*domain.Certification, error)
	Update(ctx context.Context, c *domain.Certification) error
	Delete(ctx context.Context, certificationUUID string) error

	CreateCertificate(ctx context.Context, cu *domain.CertificateUser) error
	GetCertificate(ctx context.Context, userID, certificationID int64) (*domain.CertificateUser, error)
	GetCertificateByUUID(ctx context.Context, userCertificationUUID string) (*domain.CertificateUser, error)
	ListCertificatesByUser(ctx context.Context, userID int64) ([]*domain.CertificateUser, error)
	CountCertificatesWithPrefix(ctx context.Context, prefix string) (int, error)
}
