package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobtrack/jobtrack-ui/internal/devseed"
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
	apperrors "github.com/jobtrack/jobtrack-ui/internal/errors"
	"github.com/jobtrack/jobtrack-ui/internal/mocks"
	mockjobs "github.com/jobtrack/jobtrack-ui/internal/mocks/jobs"
)

func TestJobService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := NewJobService(JobServiceOptions{JobRepo: repo})
	ctx := context.Background()

	req := &model.CreateJobRequest{Company: "Acme", Position: "Engineer"}
	want := &model.Job{ID: "j1", Company: "Acme", Position: "Engineer", CreatedBy: "u1"}
	repo.EXPECT().Create(gomock.Any(), "u1", req).Return(want, nil)

	got, err := svc.Create(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJobService_RequiresOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository calls may happen without an owner.
	repo := mocks.NewMockJobRepository(ctrl)
	svc := NewJobService(JobServiceOptions{JobRepo: repo})
	ctx := context.Background()

	_, err := svc.Create(ctx, "", &model.CreateJobRequest{Company: "Acme", Position: "Eng"})
	assert.Error(t, err)
	_, err = svc.GetOwned(ctx, "", "j1")
	assert.Error(t, err)
	_, err = svc.List(ctx, "")
	assert.Error(t, err)
	_, err = svc.Update(ctx, "", "j1", model.UpdateJobRequest{})
	assert.Error(t, err)
	_, err = svc.Delete(ctx, "", "j1")
	assert.Error(t, err)
}

func TestJobService_GetOwned_NotFoundPassthrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := NewJobService(JobServiceOptions{JobRepo: repo})
	ctx := context.Background()

	repo.EXPECT().GetOwned(gomock.Any(), "u1", "someone-elses-job").
		Return(nil, apperrors.NotFound("job not found"))

	_, err := svc.GetOwned(ctx, "u1", "someone-elses-job")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestJobService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := NewJobService(JobServiceOptions{JobRepo: repo})
	ctx := context.Background()

	req := model.UpdateJobRequest{Company: "Globex", Position: "Staff Engineer", Status: model.JobStatusInterview}
	want := &model.Job{ID: "j1", Company: "Globex", Status: model.JobStatusInterview}
	repo.EXPECT().UpdateOwned(gomock.Any(), "u1", "j1", req).Return(want, nil)

	got, err := svc.Update(ctx, "u1", "j1", req)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJobService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := NewJobService(JobServiceOptions{JobRepo: repo})
	ctx := context.Background()

	repo.EXPECT().DeleteOwned(gomock.Any(), "u1", "j1").Return(true, nil)
	deleted, err := svc.Delete(ctx, "u1", "j1")
	require.NoError(t, err)
	assert.True(t, deleted)

	repo.EXPECT().DeleteOwned(gomock.Any(), "u1", "j1").Return(false, nil)
	deleted, err = svc.Delete(ctx, "u1", "j1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestJobService_ListSeededRosterNewestFirst(t *testing.T) {
	repo := mockjobs.NewMemoryJobRepo()
	svc := NewJobService(JobServiceOptions{JobRepo: repo})
	ctx := context.Background()

	roster := devseed.Roster()
	require.Len(t, roster, 20)
	for _, entry := range roster {
		_, err := svc.Create(ctx, "u1", &model.CreateJobRequest{
			Company:  entry.Company,
			Position: entry.Position,
			Status:   entry.Status,
		})
		require.NoError(t, err)
	}

	jobs, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, jobs, 20)

	// Newest first: the last roster entry leads, the first one trails.
	assert.Equal(t, roster[len(roster)-1].Company, jobs[0].Company)
	assert.Equal(t, roster[0].Company, jobs[len(jobs)-1].Company)
	for i := 1; i < len(jobs); i++ {
		assert.False(t, jobs[i].CreatedAt.After(jobs[i-1].CreatedAt),
			"job %d created after job %d", i, i-1)
	}

	// One more application lands at the top of the list.
	created, err := svc.Create(ctx, "u1", &model.CreateJobRequest{
		Company:  "Weyland-Yutani",
		Position: "Principal Engineer",
	})
	require.NoError(t, err)

	jobs, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, jobs, 21)
	assert.Equal(t, created.ID, jobs[0].ID)
	assert.Equal(t, "Weyland-Yutani", jobs[0].Company)
}
