package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrack/jobtrack-ui/internal/core"
	apperrors "github.com/jobtrack/jobtrack-ui/internal/errors"
	"github.com/jobtrack/jobtrack-ui/internal/testutil"
)

func createTestUser(t *testing.T, db *sql.DB, name, email string) string {
	t.Helper()
	ur := NewUserRepo(db)
	u, err := ur.Create(context.Background(), core.CreateUserParams{
		Name:         name,
		Email:        email,
		PasswordHash: testutil.TestPasswordHash,
	})
	require.NoError(t, err)
	return u.ID
}

func TestUserRepo_Create_Get(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		created, err := repo.Create(ctx, core.CreateUserParams{
			Name:         "Ada Lovelace",
			Email:        "Ada@Example.com",
			PasswordHash: testutil.TestPasswordHash,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "ada@example.com", created.Email, "email stored normalized")
		assert.False(t, created.CreatedAt.IsZero())

		byEmail, err := repo.GetByEmail(ctx, " ADA@example.com ")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)
		assert.Equal(t, testutil.TestPasswordHash, byEmail.PasswordHash)

		byID, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Email, byID.Email)
	})
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		params := core.CreateUserParams{
			Name:         "Ada Lovelace",
			Email:        "ada@example.com",
			PasswordHash: testutil.TestPasswordHash,
		}
		_, err := repo.Create(ctx, params)
		require.NoError(t, err)

		// Same address with different casing hits the unique constraint.
		params.Email = "ADA@example.com"
		_, err = repo.Create(ctx, params)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err), "duplicate email should be Conflict, got %v", err)
		assert.Equal(t, "email", apperrors.GetField(err))
	})
}

func TestUserRepo_Get_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.True(t, apperrors.IsNotFound(err))

		_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.True(t, apperrors.IsNotFound(err))
	})
}
