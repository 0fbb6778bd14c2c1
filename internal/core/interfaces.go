package core

import (
	"context"

	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user account data operations.
type UserRepository interface {
	// Create inserts a new account. A duplicate email surfaces as a
	// Conflict error attributed to the email field.
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	// GetByEmail looks up an account by normalized email. Missing accounts
	// surface as NotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByID looks up an account by ID.
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// CreateUserParams groups inputs for UserRepository.Create. PasswordHash is
// already hashed; repositories never see clear-text passwords.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

// JobRepository defines the interface for job application data operations.
// Every method that touches a single row is scoped by owner: a job that
// exists but belongs to someone else is indistinguishable from one that
// does not exist.
type JobRepository interface {
	Create(ctx context.Context, ownerID string, req *model.CreateJobRequest) (*model.Job, error)
	// GetOwned retrieves one job owned by ownerID, or NotFound.
	GetOwned(ctx context.Context, ownerID, id string) (*model.Job, error)
	// ListByOwner returns ownerID's jobs, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Job, error)
	// UpdateOwned applies req to the job in a single conditional statement
	// and returns the updated row, or NotFound when no row matched.
	UpdateOwned(ctx context.Context, ownerID, id string, req model.UpdateJobRequest) (*model.Job, error)
	// DeleteOwned removes the job, reporting whether a row was deleted.
	DeleteOwned(ctx context.Context, ownerID, id string) (bool, error)
}
