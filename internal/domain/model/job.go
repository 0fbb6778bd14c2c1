//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxCompanyLen  = 100
	maxPositionLen = 100
)

// JobStatus tracks where an application stands.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusInterview JobStatus = "interview"
	JobStatusDeclined  JobStatus = "declined"
)

// Valid reports whether the status is supported.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusInterview, JobStatusDeclined:
		return true
	default:
		return false
	}
}

// JobStatuses lists the supported statuses in display order.
func JobStatuses() []JobStatus {
	return []JobStatus{JobStatusPending, JobStatusInterview, JobStatusDeclined}
}

// normalizeJobStatus trims and lowercases the input, defaulting to pending when empty.
func normalizeJobStatus(v JobStatus) JobStatus {
	normalized := JobStatus(strings.ToLower(strings.TrimSpace(string(v))))
	if normalized == "" {
		return JobStatusPending
	}
	return normalized
}

// Job is one tracked job application, owned by the user who created it.
// CreatedBy is assigned at creation and never changes.
type Job struct {
	ID        string    `json:"id"         db:"id"`
	Company   string    `json:"company"    db:"company"`
	Position  string    `json:"position"   db:"position"`
	Status    JobStatus `json:"status"     db:"status"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateJobRequest represents parameters to create a Job.
type CreateJobRequest struct {
	Company  string    `json:"company"`
	Position string    `json:"position"`
	Status   JobStatus `json:"status,omitempty"`
}

// Validate validates CreateJobRequest, normalizing the status in place.
func (r *CreateJobRequest) Validate() error {
	r.Company = strings.TrimSpace(r.Company)
	if r.Company == "" {
		return &FieldError{Field: "company", Message: "Company is required."}
	}
	if utf8.RuneCountInString(r.Company) > maxCompanyLen {
		return &FieldError{Field: "company", Message: "Company cannot exceed 100 characters."}
	}
	r.Position = strings.TrimSpace(r.Position)
	if r.Position == "" {
		return &FieldError{Field: "position", Message: "Position is required."}
	}
	if utf8.RuneCountInString(r.Position) > maxPositionLen {
		return &FieldError{Field: "position", Message: "Position cannot exceed 100 characters."}
	}
	r.Status = normalizeJobStatus(r.Status)
	if !r.Status.Valid() {
		return &FieldError{Field: "status", Message: "Status must be pending, interview, or declined."}
	}
	return nil
}

// UpdateJobRequest represents parameters to update a Job. Every field is
// submitted by the edit form, so none are optional.
type UpdateJobRequest struct {
	Company  string    `json:"company"`
	Position string    `json:"position"`
	Status   JobStatus `json:"status"`
}

// Validate validates UpdateJobRequest, normalizing the status in place.
func (r *UpdateJobRequest) Validate() error {
	c := CreateJobRequest{Company: r.Company, Position: r.Position, Status: r.Status}
	if err := c.Validate(); err != nil {
		return err
	}
	r.Company, r.Position, r.Status = c.Company, c.Position, c.Status
	return nil
}
