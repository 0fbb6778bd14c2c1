package service

import (
	"context"
	"errors"

	"github.com/jobtrack/jobtrack-ui/internal/core"
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	JobRepo core.JobRepository
}

// JobService orchestrates job application CRUD. Every operation takes the
// acting owner's ID; ownership enforcement itself lives in the repository's
// compound-scoped statements.
type JobService struct {
	jobs core.JobRepository
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) *JobService {
	return &JobService{jobs: opts.JobRepo}
}

// Create creates a job owned by ownerID.
func (s *JobService) Create(ctx context.Context, ownerID string, req *model.CreateJobRequest) (*model.Job, error) {
	if ownerID == "" {
		return nil, errors.New("owner ID is required")
	}
	return s.jobs.Create(ctx, ownerID, req)
}

// GetOwned retrieves one of ownerID's jobs, or NotFound.
func (s *JobService) GetOwned(ctx context.Context, ownerID, id string) (*model.Job, error) {
	if ownerID == "" {
		return nil, errors.New("owner ID is required")
	}
	return s.jobs.GetOwned(ctx, ownerID, id)
}

// List returns ownerID's jobs, newest first.
func (s *JobService) List(ctx context.Context, ownerID string) ([]*model.Job, error) {
	if ownerID == "" {
		return nil, errors.New("owner ID is required")
	}
	return s.jobs.ListByOwner(ctx, ownerID)
}

// Update applies req to one of ownerID's jobs and returns the updated row.
func (s *JobService) Update(ctx context.Context, ownerID, id string, req model.UpdateJobRequest) (*model.Job, error) {
	if ownerID == "" {
		return nil, errors.New("owner ID is required")
	}
	return s.jobs.UpdateOwned(ctx, ownerID, id, req)
}

// Delete removes one of ownerID's jobs, reporting whether a row was deleted.
func (s *JobService) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	if ownerID == "" {
		return false, errors.New("owner ID is required")
	}
	return s.jobs.DeleteOwned(ctx, ownerID, id)
}
