package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jobtrack/jobtrack-ui/internal/core"
	"github.com/jobtrack/jobtrack-ui/internal/data/pgxutil"
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
	apperrors "github.com/jobtrack/jobtrack-ui/internal/errors"
)

// SQL query constants for static queries.
const (
	userInsertQuery = `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, name, email, password_hash, created_at`

	userGetByEmailQuery = `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1`

	userGetByIDQuery = `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1`
)

// UserRepo provides database operations for user accounts.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

var _ core.UserRepository = (*UserRepo)(nil)

// Create inserts a new account. The unique constraint on email is the
// source of truth for duplicates; a violation surfaces as a Conflict error
// attributed to the email field.
func (r *UserRepo) Create(ctx context.Context, params core.CreateUserParams) (*model.User, error) {
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userInsertQuery,
			params.Name,
			model.NormalizeEmail(params.Email),
			params.PasswordHash,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByEmail retrieves an account by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByEmailQuery, model.NormalizeEmail(email))
}

// GetByID retrieves an account by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByIDQuery, id)
}

func (r *UserRepo) getByQuery(ctx context.Context, q string, arg any) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", apperrors.MapDBError(err))
	}
	return &user, nil
}
