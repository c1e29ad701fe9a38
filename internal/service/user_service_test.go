package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/learntrail/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Add(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.users.Add(ctx, "  ana ", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
	assert.Positive(t, u.ID)
	assert.Contains(t, u.UserUUID, "user_")

	got, err := env.users.GetByUsername(ctx, "ana ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "ana@example.com", got.Email)
}

func TestUserService_Add_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"empty username", "  ", ""},
		{"whitespace in username", "ana maria", ""},
		{"bad email", "ana", "not-an-address"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.users.Add(ctx, tc.username, tc.email)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	list, err := env.users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserService_Add_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Add(ctx, "ana", "")
	require.NoError(t, err)
	_, err = env.users.Add(ctx, "ana", "")
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.users.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
