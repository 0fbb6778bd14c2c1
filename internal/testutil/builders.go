package testutil

import (
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
)

// TestPasswordHash is bcrypt("secret1", cost 10). Tests that need a
// credentialed account can insert this hash and log on with "secret1"
// without paying for hashing per test.
const TestPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			Company:  "Acme Corp",
			Position: "Software Engineer",
			Status:   model.JobStatusPending,
		},
	}
}

// WithCompany sets the company.
func (b *JobRequestBuilder) WithCompany(company string) *JobRequestBuilder {
	b.req.Company = company
	return b
}

// WithPosition sets the position.
func (b *JobRequestBuilder) WithPosition(position string) *JobRequestBuilder {
	b.req.Position = position
	return b
}

// WithStatus sets the status.
func (b *JobRequestBuilder) WithStatus(status model.JobStatus) *JobRequestBuilder {
	b.req.Status = status
	return b
}

// Build returns the constructed CreateJobRequest.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}

// RegisterRequestBuilder builds RegisterRequest values for testing.
type RegisterRequestBuilder struct {
	req *model.RegisterRequest
}

// NewRegisterRequest creates a RegisterRequestBuilder with sensible defaults.
func NewRegisterRequest() *RegisterRequestBuilder {
	return &RegisterRequestBuilder{
		req: &model.RegisterRequest{
			Name:            "Ada Lovelace",
			Email:           "ada@example.com",
			Password:        "secret1",
			PasswordConfirm: "secret1",
		},
	}
}

// WithEmail sets the email.
func (b *RegisterRequestBuilder) WithEmail(email string) *RegisterRequestBuilder {
	b.req.Email = email
	return b
}

// WithName sets the name.
func (b *RegisterRequestBuilder) WithName(name string) *RegisterRequestBuilder {
	b.req.Name = name
	return b
}

// WithPasswords sets the password and its confirmation independently.
func (b *RegisterRequestBuilder) WithPasswords(password, confirm string) *RegisterRequestBuilder {
	b.req.Password = password
	b.req.PasswordConfirm = confirm
	return b
}

// Build returns the constructed RegisterRequest.
func (b *RegisterRequestBuilder) Build() *model.RegisterRequest {
	return b.req
}
