package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jobtrack/jobtrack-ui/internal/adapters/password"
	"github.com/jobtrack/jobtrack-ui/internal/core"
	"github.com/jobtrack/jobtrack-ui/internal/data"
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
	apperrors "github.com/jobtrack/jobtrack-ui/internal/errors"
)

// Demo account credentials. Seeding is a development-only affordance; the
// password is intentionally well known.
const (
	demoName     = "Demo User"
	demoEmail    = "demo@example.com"
	demoPassword = "demo-password"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB     *sql.DB
	users  *data.UserRepo
	jobs   *data.JobRepo
	hasher password.BcryptHasher
}

// NewServices constructs the repositories used for seeding from the provided DB.
func NewServices(db *sql.DB) Services {
	return Services{
		DB:     db,
		users:  data.NewUserRepo(db),
		jobs:   data.NewJobRepo(db),
		hasher: password.NewBcryptHasher(),
	}
}

// SeedJob is one roster entry.
type SeedJob struct {
	Company  string
	Position string
	Status   model.JobStatus
}

// Roster is the fixed set of seeded applications, oldest first. Fixed data
// keeps repeated seeding stable and gives tests a known 20-job corpus.
func Roster() []SeedJob {
	return []SeedJob{
		{"Initech", "Software Engineer", model.JobStatusPending},
		{"Globex", "Backend Developer", model.JobStatusInterview},
		{"Hooli", "Site Reliability Engineer", model.JobStatusDeclined},
		{"Acme Corp", "Platform Engineer", model.JobStatusPending},
		{"Umbrella Labs", "Staff Engineer", model.JobStatusPending},
		{"Stark Industries", "Infrastructure Engineer", model.JobStatusInterview},
		{"Wayne Enterprises", "Security Engineer", model.JobStatusDeclined},
		{"Cyberdyne Systems", "Machine Learning Engineer", model.JobStatusPending},
		{"Tyrell Corp", "Data Engineer", model.JobStatusPending},
		{"Wonka Industries", "QA Engineer", model.JobStatusInterview},
		{"Soylent Corp", "DevOps Engineer", model.JobStatusDeclined},
		{"Massive Dynamic", "Full Stack Developer", model.JobStatusPending},
		{"Aperture Science", "Systems Engineer", model.JobStatusPending},
		{"Black Mesa", "Research Engineer", model.JobStatusInterview},
		{"Oscorp", "Cloud Engineer", model.JobStatusPending},
		{"Vandelay Industries", "Solutions Architect", model.JobStatusDeclined},
		{"Dunder Mifflin", "IT Administrator", model.JobStatusPending},
		{"Pied Piper", "Compression Engineer", model.JobStatusInterview},
		{"Gringotts", "Database Administrator", model.JobStatusPending},
		{"Prestige Worldwide", "Engineering Manager", model.JobStatusPending},
	}
}

// Run seeds the demo account and a roster of job applications. It is
// idempotent: the demo user is reused when present and their jobs are
// replaced on every run.
func Run(ctx context.Context, svc Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	user, err := ensureDemoUser(ctx, svc)
	if err != nil {
		return err
	}

	if err := clearJobs(ctx, svc, user.ID); err != nil {
		return err
	}

	roster := Roster()
	for i := range roster {
		req := &model.CreateJobRequest{
			Company:  roster[i].Company,
			Position: roster[i].Position,
			Status:   roster[i].Status,
		}
		if _, createErr := svc.jobs.Create(ctx, user.ID, req); createErr != nil {
			return fmt.Errorf("seed job %q: %w", roster[i].Company, createErr)
		}
	}

	logger.InfoContext(ctx, "development data seeded",
		"email", demoEmail,
		"password", demoPassword,
		"jobs", len(roster),
	)
	return nil
}

func ensureDemoUser(ctx context.Context, svc Services) (*model.User, error) {
	user, err := svc.users.GetByEmail(ctx, demoEmail)
	if err == nil {
		return user, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("look up demo user: %w", err)
	}

	hash, err := svc.hasher.Hash(demoPassword)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	user, err = svc.users.Create(ctx, core.CreateUserParams{
		Name:         demoName,
		Email:        demoEmail,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}
	return user, nil
}

func clearJobs(ctx context.Context, svc Services, ownerID string) error {
	jobs, err := svc.jobs.ListByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("list demo jobs: %w", err)
	}
	for _, job := range jobs {
		if _, delErr := svc.jobs.DeleteOwned(ctx, ownerID, job.ID); delErr != nil {
			return fmt.Errorf("delete demo job %s: %w", job.ID, delErr)
		}
	}
	return nil
}
