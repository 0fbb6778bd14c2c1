package jobs

// Package jobs contains a hand-written in-memory job repository for tests
// that exercise full request flows without a database.

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobtrack/jobtrack-ui/internal/core"
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
	apperrors "github.com/jobtrack/jobtrack-ui/internal/errors"
)

var _ core.JobRepository = (*MemoryJobRepo)(nil)

type memoryJob struct {
	job *model.Job
	seq int
}

// MemoryJobRepo is an in-memory core.JobRepository with the same ownership
// semantics as the Postgres repository: other owners' rows are
// indistinguishable from absent ones.
type MemoryJobRepo struct {
	mu   sync.Mutex
	rows map[string]memoryJob
	seq  int
}

// NewMemoryJobRepo creates a new in-memory job repository.
func NewMemoryJobRepo() *MemoryJobRepo {
	return &MemoryJobRepo{rows: make(map[string]memoryJob)}
}

func (m *MemoryJobRepo) Create(
	_ context.Context,
	ownerID string,
	req *model.CreateJobRequest,
) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := req.Status
	if status == "" {
		status = model.JobStatusPending
	}
	now := time.Now()
	job := &model.Job{
		ID:        uuid.NewString(),
		Company:   req.Company,
		Position:  req.Position,
		Status:    status,
		CreatedBy: ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.seq++
	m.rows[job.ID] = memoryJob{job: job, seq: m.seq}
	copied := *job
	return &copied, nil
}

func (m *MemoryJobRepo) GetOwned(_ context.Context, ownerID, id string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok || row.job.CreatedBy != ownerID {
		return nil, apperrors.NotFound("job not found")
	}
	copied := *row.job
	return &copied, nil
}

func (m *MemoryJobRepo) ListByOwner(_ context.Context, ownerID string) ([]*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned := make([]memoryJob, 0)
	for _, row := range m.rows {
		if row.job.CreatedBy == ownerID {
			owned = append(owned, row)
		}
	}
	// Newest first; insertion order breaks created_at ties.
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].job.CreatedAt.Equal(owned[j].job.CreatedAt) {
			return owned[i].seq > owned[j].seq
		}
		return owned[i].job.CreatedAt.After(owned[j].job.CreatedAt)
	})

	jobs := make([]*model.Job, 0, len(owned))
	for _, row := range owned {
		copied := *row.job
		jobs = append(jobs, &copied)
	}
	return jobs, nil
}

func (m *MemoryJobRepo) UpdateOwned(
	_ context.Context,
	ownerID, id string,
	req model.UpdateJobRequest,
) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok || row.job.CreatedBy != ownerID {
		return nil, apperrors.NotFound("job not found")
	}
	row.job.Company = req.Company
	row.job.Position = req.Position
	row.job.Status = req.Status
	row.job.UpdatedAt = time.Now()
	copied := *row.job
	return &copied, nil
}

func (m *MemoryJobRepo) DeleteOwned(_ context.Context, ownerID, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok || row.job.CreatedBy != ownerID {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

// Len reports the number of stored jobs across all owners.
func (m *MemoryJobRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
