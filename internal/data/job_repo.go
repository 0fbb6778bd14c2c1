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

// SQL query constants for static queries. Every single-row statement carries
// the owner in its WHERE clause, so ownership is enforced by the database in
// the same statement that reads or mutates the row.
const (
	jobInsertQuery = `
		INSERT INTO jobs (company, position, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, company, position, status, created_by, created_at, updated_at`

	jobGetOwnedQuery = `
		SELECT id, company, position, status, created_by, created_at, updated_at
		FROM jobs
		WHERE id = $1 AND created_by = $2`

	jobListByOwnerQuery = `
		SELECT id, company, position, status, created_by, created_at, updated_at
		FROM jobs
		WHERE created_by = $1
		ORDER BY created_at DESC`

	jobUpdateOwnedQuery = `
		UPDATE jobs
		SET company = $3, position = $4, status = $5, updated_at = $6
		WHERE id = $1 AND created_by = $2
		RETURNING id, company, position, status, created_by, created_at, updated_at`

	jobDeleteOwnedQuery = `
		DELETE FROM jobs
		WHERE id = $1 AND created_by = $2`
)

// JobRepo provides database operations for job applications.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

var _ core.JobRepository = (*JobRepo)(nil)

// Create inserts a new job owned by ownerID.
func (r *JobRepo) Create(ctx context.Context, ownerID string, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("create job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobInsertQuery, req.Company, req.Position, req.Status, ownerID, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetOwned retrieves one job owned by ownerID. A job belonging to another
// user yields the same NotFound as a job that does not exist.
func (r *JobRepo) GetOwned(ctx context.Context, ownerID, id string) (*model.Job, error) {
	var job model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobGetOwnedQuery, id, ownerID)
		if err != nil {
			return err
		}
		defer rows.Close()
		job, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, fmt.Errorf("get job: %w", apperrors.MapDBError(err))
	}
	return &job, nil
}

// ListByOwner returns ownerID's jobs, newest first.
func (r *JobRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.Job, error) {
	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobListByOwnerQuery, ownerID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list jobs: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateOwned applies req in a single conditional UPDATE. The owner check
// and the write happen in one statement, so a concurrent delete can never
// leave a half-applied row; when no row matches, NotFound is returned.
func (r *JobRepo) UpdateOwned(ctx context.Context, ownerID, id string, req model.UpdateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobUpdateOwnedQuery, id, ownerID, req.Company, req.Position, req.Status, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// DeleteOwned removes the job, reporting whether a row was deleted. Deleting
// a job twice reports false the second time without error.
func (r *JobRepo) DeleteOwned(ctx context.Context, ownerID, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, jobDeleteOwnedQuery, id, ownerID)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete job: %w", apperrors.MapDBError(err))
	}
	return rows > 0, nil
}
