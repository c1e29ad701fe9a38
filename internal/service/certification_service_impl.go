package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/learntrail/internal/db"
	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/alexanderramin/learntrail/internal/repository"
)

type certificationService struct {
	certs    repository.CertificationRepo
	courses  repository.CourseRepo
	uow      db.UnitOfWork
	issuer   certificateIssuer
	observer UseCaseObserver
}

func NewCertificationService(
	certs repository.CertificationRepo,
	courses repository.CourseRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CertificationService {
	return &certificationService{
		certs:    certs,
		courses:  courses,
		uow:      uow,
		issuer:   defaultIssuer(),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create attaches a certification to a course. A course holds at most one.
func (s *certificationService) Create(ctx context.Context, courseUUID string, cfg domain.CertificationConfig) (cert *domain.Certification, err error) {
	defer observe(ctx, s.observer, "create-certification", time.Now(), map[string]any{"course_uuid": courseUUID}, &err)

	if strings.TrimSpace(cfg.Name) == "" {
		return nil, fmt.Errorf("%w: certification_name is required", ErrInvalid)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		certs := repository.NewSQLiteCertificationRepo(tx)
		course, err := repository.NewSQLiteCourseRepo(tx).GetByUUID(ctx, courseUUID)
		if err != nil {
			return err
		}
		if _, err := certs.GetByCourse(ctx, course.ID); err == nil {
			return fmt.Errorf("course %s: %w", course.CourseUUID, ErrAlreadyCertified)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		cert = &domain.Certification{CourseID: course.ID, Config: cfg}
		return certs.Create(ctx, cert)
	})
	if err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *certificationService) ListByCourse(ctx context.Context, courseUUID string) ([]*domain.Certification, error) {
	course, err := s.courses.GetByUUID(ctx, courseUUID)
	if err != nil {
		return nil, err
	}
	return s.certs.ListByCourse(ctx, course.ID)
}

func (s *certificationService) Get(ctx context.Context, certificationUUID string) (*domain.Certification, error) {
	return s.certs.GetByUUID(ctx, certificationUUID)
}

// Update replaces the non-empty fields of the certification's config.
func (s *certificationService) Update(ctx context.Context, certificationUUID string, cfg domain.CertificationConfig) (cert *domain.Certification, err error) {
	defer observe(ctx, s.observer, "update-certification", time.Now(), map[string]any{"certification_uuid": certificationUUID}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		certs := repository.NewSQLiteCertificationRepo(tx)
		var err error
		cert, err = certs.GetByUUID(ctx, certificationUUID)
		if err != nil {
			return err
		}
		if cfg.Name != "" {
			cert.Config.Name = cfg.Name
		}
		if cfg.Description != "" {
			cert.Config.Description = cfg.Description
		}
		if cfg.Type != "" {
			cert.Config.Type = cfg.Type
		}
		return certs.Update(ctx, cert)
	})
	if err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *certificationService) Delete(ctx context.Context, certificationUUID string) (err error) {
	defer observe(ctx, s.observer, "delete-certification", time.Now(), map[string]any{"certification_uuid": certificationUUID}, &err)
	return s.certs.Delete(ctx, certificationUUID)
}

// IssueIfComplete issues the course certificate once every activity has a
// complete step. Calling it again returns the same certificate.
func (s *certificationService) IssueIfComplete(ctx context.Context, userID int64, courseUUID string) (cu *domain.CertificateUser, err error) {
	fields := map[string]any{"user_id": userID, "course_uuid": courseUUID}
	defer observe(ctx, s.observer, "issue-certificate", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		course, err := repository.NewSQLiteCourseRepo(tx).GetByUUID(ctx, courseUUID)
		if err != nil {
			return err
		}
		trail := &domain.Trail{UserID: userID}
		run, err := repository.NewSQLiteTrailRepo(tx).GetRun(ctx, userID, course.ID)
		switch {
		case err == nil:
			trail.Runs = []domain.Run{*run}
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}
		if !progress.IsCourseComplete(course, trail) {
			return ErrCourseIncomplete
		}
		cu, err = s.issuer.issue(ctx, repository.NewSQLiteCertificationRepo(tx), repository.NewSQLiteUserRepo(tx), userID, course)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["certificate"] = cu.UserCertificationUUID
	return cu, nil
}

// Verify looks up an issued certificate by its readable id.
func (s *certificationService) Verify(ctx context.Context, userCertificationUUID string) (ic *domain.IssuedCertificate, err error) {
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		cu, err := repository.NewSQLiteCertificationRepo(tx).GetCertificateByUUID(ctx, userCertificationUUID)
		if err != nil {
			return err
		}
		ic, err = expandCertificate(ctx, tx, cu)
		return err
	})
	return ic, err
}

func (s *certificationService) ListForUser(ctx context.Context, userID int64) (out []*domain.IssuedCertificate, err error) {
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		list, err := repository.NewSQLiteCertificationRepo(tx).ListCertificatesByUser(ctx, userID)
		if err != nil {
			return err
		}
		out = make([]*domain.IssuedCertificate, 0, len(list))
		for _, cu := range list {
			ic, err := expandCertificate(ctx, tx, cu)
			if err != nil {
				return err
			}
			out = append(out, ic)
		}
		return nil
	})
	return out, err
}

// expandCertificate joins a certificate with its certification, course and
// holder. The course is returned without its tree.
func expandCertificate(ctx context.Context, tx db.DBTX, cu *domain.CertificateUser) (*domain.IssuedCertificate, error) {
	cert, err := repository.NewSQLiteCertificationRepo(tx).GetByID(ctx, cu.CertificationID)
	if err != nil {
		return nil, err
	}
	course, err := repository.NewSQLiteCourseRepo(tx).GetByID(ctx, cert.CourseID)
	if err != nil {
		return nil, err
	}
	user, err := repository.NewSQLiteUserRepo(tx).GetByID(ctx, cu.UserID)
	if err != nil {
		return nil, err
	}
	course.Chapters = nil
	return &domain.IssuedCertificate{
		Certificate:   *cu,
		Certification: *cert,
		Course:        *course,
		User:          *user,
	}, nil
}
