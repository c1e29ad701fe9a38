package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/learntrail/internal/db"
	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/repository"
	"github.com/alexanderramin/learntrail/internal/snapshot"
)

type courseService struct {
	courses  repository.CourseRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCourseService(courses repository.CourseRepo, uow db.UnitOfWork, observers ...UseCaseObserver) CourseService {
	return &courseService{
		courses:  courses,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create validates the course as a draft and stores it with its tree in one
// transaction. Ids and uuids are written back into c.
func (s *courseService) Create(ctx context.Context, c *domain.Course) (err error) {
	fields := map[string]any{"course": c.Name}
	defer observe(ctx, s.observer, "create-course", time.Now(), fields, &err)

	if errs := snapshot.ValidateCourseDraft(snapshot.FromCourse(c)); len(errs) > 0 {
		return formatValidationErrors("course", errs)
	}
	for i := range c.Chapters {
		for j := range c.Chapters[i].Activities {
			a := &c.Chapters[i].Activities[j]
			// Normalized spelling; validation already rejected unknown types.
			a.ActivityType, _ = domain.ParseActivityType(string(a.ActivityType))
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteCourseRepo(tx).Create(ctx, c)
	})
	if err != nil {
		return err
	}
	fields["course_uuid"] = c.CourseUUID
	fields["activities"] = c.ActivityCount()
	return nil
}

// Import stores a course received as JSON. Snapshot ids are kept when
// present so trails exported from the LMS still join.
func (s *courseService) Import(ctx context.Context, sc *snapshot.CourseSchema) (*domain.Course, error) {
	if errs := snapshot.ValidateCourseDraft(sc); len(errs) > 0 {
		return nil, formatValidationErrors("course", errs)
	}
	c := sc.ToDomain()
	if err := s.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *courseService) ImportFile(ctx context.Context, path string) (*domain.Course, error) {
	sc, err := snapshot.LoadCourseFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading course file: %w", err)
	}
	return s.Import(ctx, sc)
}

func (s *courseService) Get(ctx context.Context, courseUUID string) (*domain.Course, error) {
	return s.courses.GetByUUID(ctx, courseUUID)
}

func (s *courseService) FindByActivity(ctx context.Context, activityUUID string) (*domain.Course, error) {
	return s.courses.GetByActivityUUID(ctx, activityUUID)
}

func (s *courseService) List(ctx context.Context) ([]*domain.Course, error) {
	return s.courses.List(ctx)
}

// Update renames a course. Empty arguments keep the current value.
func (s *courseService) Update(ctx context.Context, courseUUID, name, description string) (c *domain.Course, err error) {
	defer observe(ctx, s.observer, "update-course", time.Now(), map[string]any{"course_uuid": courseUUID}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		courses := repository.NewSQLiteCourseRepo(tx)
		var err error
		c, err = courses.GetByUUID(ctx, courseUUID)
		if err != nil {
			return err
		}
		if name = strings.TrimSpace(name); name != "" {
			c.Name = name
		}
		if description != "" {
			c.Description = description
		}
		return courses.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the course; runs, steps and certifications cascade.
func (s *courseService) Delete(ctx context.Context, courseUUID string) (err error) {
	defer observe(ctx, s.observer, "delete-course", time.Now(), map[string]any{"course_uuid": courseUUID}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		courses := repository.NewSQLiteCourseRepo(tx)
		c, err := courses.GetByUUID(ctx, courseUUID)
		if err != nil {
			return err
		}
		return courses.Delete(ctx, c.ID)
	})
}
