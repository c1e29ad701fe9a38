package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/learntrail/internal/db"
	"github.com/alexanderramin/learntrail/internal/domain"
)

const runColumns = `id, user_id, course_id, status, created_at, updated_at`

type SQLiteTrailRepo struct {
	db db.DBTX
}

func NewSQLiteTrailRepo(conn db.DBTX) *SQLiteTrailRepo {
	return &SQLiteTrailRepo{db: conn}
}

func (r *SQLiteTrailRepo) CreateRun(ctx context.Context, run *domain.Run) error {
	if run.Status == "" {
		run.Status = domain.RunInProgress
	}
	timestamps(&run.CreatedAt, &run.UpdatedAt)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO trail_runs (user_id, course_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		run.UserID, run.CourseID, string(run.Status),
		run.CreatedAt.Format(time.RFC3339), run.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return wrapWriteErr("inserting trail run", err)
	}
	if run.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading trail run id: %w", err)
	}
	for _, st := range run.Steps {
		if err := r.UpsertStep(ctx, run.ID, st); err != nil {
			return err
		}
	}
	return nil
}

// GetRun returns the user's run for a course with its steps.
func (r *SQLiteTrailRepo) GetRun(ctx context.Context, userID, courseID int64) (*domain.Run, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM trail_runs WHERE user_id = ? AND course_id = ? ORDER BY id LIMIT 1`,
		userID, courseID)
	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT activity_id, complete FROM trail_steps WHERE run_id = ? ORDER BY id`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("listing trail steps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var st domain.Step
		var complete int
		if err := rows.Scan(&st.ActivityID, &complete); err != nil {
			return nil, fmt.Errorf("scanning trail step: %w", err)
		}
		st.Complete = intToBool(complete)
		run.Steps = append(run.Steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trail steps: %w", err)
	}
	return run, nil
}

// ListRunsByUser returns every run of the user in creation order, each with
// its steps. Steps are never nil.
func (r *SQLiteTrailRepo) ListRunsByUser(ctx context.Context, userID int64) ([]domain.Run, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM trail_runs WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing trail runs: %w", err)
	}
	runs := []domain.Run{}
	index := make(map[int64]int)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		index[run.ID] = len(runs)
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating trail runs: %w", err)
	}
	rows.Close()

	steps, err := r.db.QueryContext(ctx,
		`SELECT s.run_id, s.activity_id, s.complete
		FROM trail_steps s JOIN trail_runs r ON r.id = s.run_id
		WHERE r.user_id = ? ORDER BY s.run_id, s.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing trail steps: %w", err)
	}
	defer steps.Close()
	for steps.Next() {
		var runID int64
		var st domain.Step
		var complete int
		if err := steps.Scan(&runID, &st.ActivityID, &complete); err != nil {
			return nil, fmt.Errorf("scanning trail step: %w", err)
		}
		st.Complete = intToBool(complete)
		if i, ok := index[runID]; ok {
			runs[i].Steps = append(runs[i].Steps, st)
		}
	}
	if err := steps.Err(); err != nil {
		return nil, fmt.Errorf("iterating trail steps: %w", err)
	}
	return runs, nil
}

func (r *SQLiteTrailRepo) UpdateRunStatus(ctx context.Context, runID int64, status domain.RunStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE trail_runs SET status = ?, updated_at = ? WHERE id = ?`, string(status), nowUTC(), runID)
	if err != nil {
		return fmt.Errorf("updating trail run status: %w", err)
	}
	return requireAffected(res, "trail run")
}

// DeleteRun removes a run; its steps cascade.
func (r *SQLiteTrailRepo) DeleteRun(ctx context.Context, runID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trail_runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("deleting trail run: %w", err)
	}
	return requireAffected(res, "trail run")
}

// UpsertStep records the step for (run, activity), replacing its completion
// flag when one exists.
func (r *SQLiteTrailRepo) UpsertStep(ctx context.Context, runID int64, step domain.Step) error {
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trail_steps (run_id, activity_id, complete, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(run_id, activity_id) DO UPDATE SET complete = excluded.complete, updated_at = excluded.updated_at`,
		runID, step.ActivityID, boolToInt(step.Complete), now, now,
	)
	if err != nil {
		return wrapWriteErr("upserting trail step", err)
	}
	_, err = r.db.ExecContext(ctx, `UPDATE trail_runs SET updated_at = ? WHERE id = ?`, now, runID)
	if err != nil {
		return fmt.Errorf("touching trail run: %w", err)
	}
	return nil
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var status, createdStr, updatedStr string
	if err := row.Scan(&run.ID, &run.UserID, &run.CourseID, &status, &createdStr, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("trail run: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning trail run: %w", err)
	}
	run.Status = domain.RunStatus(status)
	run.Steps = []domain.Step{}
	var err error
	run.CreatedAt, run.UpdatedAt, err = parseTimes(createdStr, updatedStr)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
