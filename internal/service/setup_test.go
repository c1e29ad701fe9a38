package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/learntrail/internal/db"
	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/repository"
	"github.com/alexanderramin/learntrail/internal/testutil"
)

type testEnv struct {
	db  *sql.DB
	uow db.UnitOfWork
	obs *recordingObserver

	users   UserService
	courses CourseService
	trails  TrailService
	certs   CertificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}

	courseRepo := repository.NewSQLiteCourseRepo(database)
	return &testEnv{
		db:      database,
		uow:     uow,
		obs:     obs,
		users:   NewUserService(repository.NewSQLiteUserRepo(database)),
		courses: NewCourseService(courseRepo, uow, obs),
		trails:  NewTrailService(repository.NewSQLiteTrailRepo(database), uow, obs),
		certs:   NewCertificationService(repository.NewSQLiteCertificationRepo(database), courseRepo, uow, obs),
	}
}

// fixedIssuer makes certificate ids deterministic.
func fixedIssuer(letters string, day time.Time) certificateIssuer {
	return certificateIssuer{
		now:     func() time.Time { return day },
		letters: func() string { return letters },
	}
}

func (e *testEnv) pinIssuer(ci certificateIssuer) {
	e.trails.(*trailService).issuer = ci
	e.certs.(*certificationService).issuer = ci
}

func (e *testEnv) completeAll(t *testing.T, userID int64, c *domain.Course) *domain.Trail {
	t.Helper()
	var trail *domain.Trail
	for i := 0; i < c.ActivityCount(); i++ {
		var err error
		trail, err = e.trails.MarkActivityComplete(context.Background(), userID, c.CourseUUID, testutil.ActivityAt(c, i).ActivityUUID)
		if err != nil {
			t.Fatalf("completing activity %d: %v", i, err)
		}
	}
	return trail
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
