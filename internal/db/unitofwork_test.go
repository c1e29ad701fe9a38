package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/learntrail/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertUser(ctx context.Context, tx db.DBTX, name string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO users (user_uuid, username, created_at, updated_at) VALUES (?, ?, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		"user_"+name, name)
	return err
}

func countUsers(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertUser(ctx, tx, "ana"); err != nil {
			return err
		}
		return insertUser(ctx, tx, "bo")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countUsers(t, database))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := newUoW(t)
	errBoom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertUser(ctx, tx, "ana"); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.Zero(t, countUsers(t, database), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnConstraintViolation(t *testing.T) {
	database, uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertUser(ctx, tx, "ana"); err != nil {
			return err
		}
		return insertUser(ctx, tx, "ana")
	})
	require.Error(t, err)
	assert.Zero(t, countUsers(t, database))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertUser(ctx, tx, "ana")
			panic("boom")
		})
	})
	assert.Zero(t, countUsers(t, database), "row should not exist after panic rollback")
}

func TestWithinReadTx_SeesCommittedRows(t *testing.T) {
	database, uow := newUoW(t)
	require.NoError(t, insertUser(context.Background(), database, "ana"))

	var name string
	err := uow.WithinReadTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT username FROM users`).Scan(&name)
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", name)
}

func TestWithinReadTx_DiscardsWrites(t *testing.T) {
	database, uow := newUoW(t)

	err := uow.WithinReadTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertUser(ctx, tx, "ghost")
	})
	require.NoError(t, err)
	assert.Zero(t, countUsers(t, database))
}
