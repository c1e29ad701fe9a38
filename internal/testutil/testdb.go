package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/learntrail/internal/db"
	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// SeedUser stores a test user and returns it with its id.
func SeedUser(t *testing.T, database *sql.DB, username string, opts ...UserOption) *domain.User {
	t.Helper()
	u := NewTestUser(username, opts...)
	if err := repository.NewSQLiteUserRepo(database).Create(context.Background(), u); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u
}

// SeedCourse stores a test course with its tree; ids and uuids are written
// back into the returned value.
func SeedCourse(t *testing.T, database *sql.DB, name string, opts ...CourseOption) *domain.Course {
	t.Helper()
	c := NewTestCourse(name, opts...)
	if err := repository.NewSQLiteCourseRepo(database).Create(context.Background(), c); err != nil {
		t.Fatalf("seeding course: %v", err)
	}
	return c
}
