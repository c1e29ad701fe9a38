package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/learntrail/internal/db"
	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/alexanderramin/learntrail/internal/repository"
)

type trailService struct {
	trails   repository.TrailRepo
	uow      db.UnitOfWork
	issuer   certificateIssuer
	observer UseCaseObserver
}

func NewTrailService(trails repository.TrailRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TrailService {
	return &trailService{
		trails:   trails,
		uow:      uow,
		issuer:   defaultIssuer(),
		observer: useCaseObserverOrNoop(observers),
	}
}

// GetTrail loads every run of the user with its course embedded.
func (s *trailService) GetTrail(ctx context.Context, userID int64) (trail *domain.Trail, err error) {
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		runs, err := repository.NewSQLiteTrailRepo(tx).ListRunsByUser(ctx, userID)
		if err != nil {
			return err
		}
		courses := repository.NewSQLiteCourseRepo(tx)
		for i := range runs {
			c, err := courses.GetByID(ctx, runs[i].CourseID)
			if err != nil {
				return fmt.Errorf("loading course of run %d: %w", runs[i].ID, err)
			}
			runs[i].Course = c
		}
		trail = &domain.Trail{UserID: userID, Runs: runs}
		return nil
	})
	return trail, err
}

// StartCourse enrolls the user. Starting an already started course is a no-op.
func (s *trailService) StartCourse(ctx context.Context, userID int64, courseUUID string) (_ *domain.Trail, err error) {
	defer observe(ctx, s.observer, "start-course", time.Now(), map[string]any{"user_id": userID, "course_uuid": courseUUID}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		course, err := repository.NewSQLiteCourseRepo(tx).GetByUUID(ctx, courseUUID)
		if err != nil {
			return err
		}
		_, err = ensureRun(ctx, repository.NewSQLiteTrailRepo(tx), userID, course.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetTrail(ctx, userID)
}

// MarkActivityComplete records a complete step. When that completes the
// course the run is marked completed and, if the course has a
// certification, the certificate is issued in the same transaction.
func (s *trailService) MarkActivityComplete(ctx context.Context, userID int64, courseUUID, activityUUID string) (_ *domain.Trail, err error) {
	fields := map[string]any{"user_id": userID, "course_uuid": courseUUID, "activity_uuid": activityUUID}
	defer observe(ctx, s.observer, "mark-activity-complete", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		trails := repository.NewSQLiteTrailRepo(tx)
		course, err := repository.NewSQLiteCourseRepo(tx).GetByUUID(ctx, courseUUID)
		if err != nil {
			return err
		}
		activity, _ := course.FindActivity(activityUUID)
		if activity == nil {
			return fmt.Errorf("activity %s in course %s: %w", activityUUID, course.CourseUUID, repository.ErrNotFound)
		}

		run, err := ensureRun(ctx, trails, userID, course.ID)
		if err != nil {
			return err
		}
		if err := trails.UpsertStep(ctx, run.ID, domain.Step{ActivityID: activity.ID, Complete: true}); err != nil {
			return err
		}

		run, err = trails.GetRun(ctx, userID, course.ID)
		if err != nil {
			return err
		}
		trail := &domain.Trail{UserID: userID, Runs: []domain.Run{*run}}
		if !progress.IsCourseComplete(course, trail) {
			return nil
		}
		fields["course_complete"] = true
		if run.Status != domain.RunCompleted {
			if err := trails.UpdateRunStatus(ctx, run.ID, domain.RunCompleted); err != nil {
				return err
			}
		}
		cu, err := s.issuer.issue(ctx, repository.NewSQLiteCertificationRepo(tx), repository.NewSQLiteUserRepo(tx), userID, course)
		if errors.Is(err, ErrNoCertification) {
			return nil
		}
		if err != nil {
			return err
		}
		fields["certificate"] = cu.UserCertificationUUID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetTrail(ctx, userID)
}

// RemoveCourse quits a course: the run and its steps are deleted.
func (s *trailService) RemoveCourse(ctx context.Context, userID int64, courseUUID string) (_ *domain.Trail, err error) {
	defer observe(ctx, s.observer, "remove-course", time.Now(), map[string]any{"user_id": userID, "course_uuid": courseUUID}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		trails := repository.NewSQLiteTrailRepo(tx)
		course, err := repository.NewSQLiteCourseRepo(tx).GetByUUID(ctx, courseUUID)
		if err != nil {
			return err
		}
		run, err := trails.GetRun(ctx, userID, course.ID)
		if err != nil {
			return err
		}
		return trails.DeleteRun(ctx, run.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetTrail(ctx, userID)
}

// QuitAll removes every run one by one, reporting the rounded percentage of
// runs removed after each. A failure stops the loop; runs already removed
// stay removed.
func (s *trailService) QuitAll(ctx context.Context, userID int64, onProgress func(pct int)) (err error) {
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.observer, "quit-all", time.Now(), fields, &err)

	runs, err := s.trails.ListRunsByUser(ctx, userID)
	if err != nil {
		return err
	}
	fields["runs"] = len(runs)
	for i, run := range runs {
		if err := s.trails.DeleteRun(ctx, run.ID); err != nil {
			return fmt.Errorf("removing run %d: %w", run.ID, err)
		}
		if onProgress != nil {
			onProgress(progress.Percent(i+1, len(runs)))
		}
	}
	return nil
}

func ensureRun(ctx context.Context, trails repository.TrailRepo, userID, courseID int64) (*domain.Run, error) {
	run, err := trails.GetRun(ctx, userID, courseID)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	run = &domain.Run{UserID: userID, CourseID: courseID, Status: domain.RunInProgress}
	if err := trails.CreateRun(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}
