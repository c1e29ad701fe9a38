package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillRunStatus(db); err != nil {
		return fmt.Errorf("backfilling trail run status: %w", err)
	}
	return nil
}

// migrateBackfillRunStatus marks runs whose every activity has a complete
// step as completed. Databases created before run status existed carry the
// column default for finished courses.
func migrateBackfillRunStatus(db *sql.DB) error {
	_, err := db.Exec(`
		UPDATE trail_runs SET status = 'STATUS_COMPLETED'
		WHERE status = 'STATUS_IN_PROGRESS'
		  AND (SELECT COUNT(*) FROM activities a
		       JOIN chapters c ON c.id = a.chapter_id
		       WHERE c.course_id = trail_runs.course_id) > 0
		  AND NOT EXISTS (
		       SELECT 1 FROM activities a
		       JOIN chapters c ON c.id = a.chapter_id
		       WHERE c.course_id = trail_runs.course_id
		         AND NOT EXISTS (
		             SELECT 1 FROM trail_steps s
		             WHERE s.run_id = trail_runs.id AND s.activity_id = a.id AND s.complete = 1))`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_uuid  TEXT NOT NULL UNIQUE,
		username   TEXT NOT NULL UNIQUE,
		email      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS courses (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		course_uuid TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS chapters (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		course_id   INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chapters_course ON chapters(course_id, order_index)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		chapter_id    INTEGER NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
		activity_uuid TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		activity_type TEXT NOT NULL
		              CHECK(activity_type IN ('TYPE_VIDEO','TYPE_DOCUMENT','TYPE_DYNAMIC','TYPE_ASSIGNMENT')),
		order_index   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_chapter ON activities(chapter_id, order_index)`,

	`CREATE TABLE IF NOT EXISTS trail_runs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		course_id  INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(user_id, course_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trail_runs_user ON trail_runs(user_id)`,

	`CREATE TABLE IF NOT EXISTS trail_steps (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id      INTEGER NOT NULL REFERENCES trail_runs(id) ON DELETE CASCADE,
		activity_id INTEGER NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		complete    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(run_id, activity_id)
	)`,

	`CREATE TABLE IF NOT EXISTS certifications (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		certification_uuid TEXT NOT NULL UNIQUE,
		course_id          INTEGER NOT NULL UNIQUE REFERENCES courses(id) ON DELETE CASCADE,
		config             TEXT NOT NULL DEFAULT '{}',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS certificate_users (
		id                      INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id                 INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		certification_id        INTEGER NOT NULL REFERENCES certifications(id) ON DELETE CASCADE,
		user_certification_uuid TEXT NOT NULL UNIQUE,
		created_at              TEXT NOT NULL,
		updated_at              TEXT NOT NULL,
		UNIQUE(user_id, certification_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_certificate_users_user ON certificate_users(user_id)`,

	// Columns added after the first release.
	`ALTER TABLE courses ADD COLUMN description TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE trail_runs ADD COLUMN status TEXT NOT NULL DEFAULT 'STATUS_IN_PROGRESS'
		CHECK(status IN ('STATUS_IN_PROGRESS','STATUS_COMPLETED','STATUS_PAUSED','STATUS_CANCELLED'))`,
}
