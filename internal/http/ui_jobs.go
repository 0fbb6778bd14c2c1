package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
	apperrors "github.com/jobtrack/jobtrack-ui/internal/errors"
	"github.com/jobtrack/jobtrack-ui/internal/service"

	domainauth "github.com/jobtrack/jobtrack-ui/internal/domain/auth"
)

// JobsService defines the job operations the UI depends on. Every call is
// scoped to the acting owner.
type JobsService interface {
	Create(ctx context.Context, ownerID string, req *model.CreateJobRequest) (*model.Job, error)
	GetOwned(ctx context.Context, ownerID, id string) (*model.Job, error)
	List(ctx context.Context, ownerID string) ([]*model.Job, error)
	Update(ctx context.Context, ownerID, id string, req model.UpdateJobRequest) (*model.Job, error)
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}

// Compile-time assertions that the concrete services satisfy their UI interfaces.
var (
	_ JobsService = (*service.JobService)(nil)
	_ AuthService = (*service.AuthService)(nil)
)

// JobHandlers serves the job application CRUD routes. All routes are behind
// RequireAuth, so a session with a UserID is always present.
type JobHandlers struct {
	Svc    JobsService
	T      *TemplateRenderer
	UI     *UIHandlers
	Logger *slog.Logger
}

func jobsPageMeta() PageMeta {
	return PageMeta{Title: "Jobs - Jobtrack", PageTitle: "Your job applications", CurrentPage: PageJobs}
}

func jobFormPageMeta(mode FormMode) PageMeta {
	if mode == FormModeEdit {
		return PageMeta{Title: "Edit job - Jobtrack", PageTitle: "Edit job", CurrentPage: PageJobForm}
	}
	return PageMeta{Title: "New job - Jobtrack", PageTitle: "Add a job", CurrentPage: PageJobForm}
}

// List shows the owner's jobs, newest first.
// GET /jobs.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	jobs, err := h.Svc.List(r.Context(), sess.UserID)
	if err != nil {
		h.UI.ServerError(w, r, err)
		return
	}

	data := NewTemplateData(r, jobsPageMeta()).
		With("Jobs", jobs).
		With("JobCount", len(jobs)).
		Build()
	if renderErr := h.T.RenderPage(w, http.StatusOK, data); renderErr != nil {
		h.UI.ServerError(w, r, renderErr)
	}
}

// NewForm renders the creation form.
// GET /jobs/new.
func (h *JobHandlers) NewForm(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, jobFormPageMeta(FormModeCreate)).
		With("Mode", FormModeCreate).
		With("Statuses", model.JobStatuses()).
		With("FormData", model.CreateJobRequest{Status: model.JobStatusPending}).
		Build()
	if err := h.T.RenderPage(w, http.StatusOK, data); err != nil {
		h.UI.ServerError(w, r, err)
	}
}

// Create adds a job owned by the session user.
// POST /jobs.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	HandleForm(FormHandlerOpts[model.CreateJobRequest]{
		W: w, R: r, Mode: FormModeCreate,
		Parser: parseCreateJobForm,
		Submit: func(ctx context.Context, _ string, data model.CreateJobRequest) error {
			_, err := h.Svc.Create(ctx, sess.UserID, &data)
			return err
		},
		Renderer:     h.renderJobForm,
		SuccessURL:   "/jobs",
		SuccessFlash: "The job was added.",
		PageMeta:     jobFormPageMeta(FormModeCreate),
		ExtraData:    map[string]any{"Statuses": model.JobStatuses()},
	})
}

// EditForm renders the edit form for one of the owner's jobs. Jobs owned by
// someone else are indistinguishable from absent ones.
// GET /jobs/edit/{id}.
func (h *JobHandlers) EditForm(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	id := r.PathValue("id")
	if uuid.Validate(id) != nil {
		h.UI.NotFound(w, r)
		return
	}

	job, err := h.Svc.GetOwned(r.Context(), sess.UserID, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.UI.NotFound(w, r)
			return
		}
		h.UI.ServerError(w, r, err)
		return
	}

	data := NewTemplateData(r, jobFormPageMeta(FormModeEdit)).
		With("Mode", FormModeEdit).
		With("Statuses", model.JobStatuses()).
		With("JobID", job.ID).
		With("FormData", model.UpdateJobRequest{
			Company:  job.Company,
			Position: job.Position,
			Status:   job.Status,
		}).
		Build()
	if renderErr := h.T.RenderPage(w, http.StatusOK, data); renderErr != nil {
		h.UI.ServerError(w, r, renderErr)
	}
}

// Update applies the submitted fields to one of the owner's jobs.
// POST /jobs/update/{id}.
func (h *JobHandlers) Update(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	id := r.PathValue("id")
	if uuid.Validate(id) != nil {
		h.UI.NotFound(w, r)
		return
	}

	HandleForm(FormHandlerOpts[model.UpdateJobRequest]{
		W: w, R: r, Mode: FormModeEdit,
		Parser: parseUpdateJobForm,
		Submit: func(ctx context.Context, jobID string, data model.UpdateJobRequest) error {
			_, err := h.Svc.Update(ctx, sess.UserID, jobID, data)
			return err
		},
		Renderer:        h.renderJobForm,
		SuccessURL:      "/jobs",
		SuccessFlash:    "The job was updated.",
		PageMeta:        jobFormPageMeta(FormModeEdit),
		ExtraData:       map[string]any{"Statuses": model.JobStatuses(), "JobID": id},
		NotFoundHandler: h.UI.NotFound,
	})
}

// Delete removes one of the owner's jobs. A second delete of the same ID is
// a clean 404, not an error.
// POST /jobs/delete/{id}.
func (h *JobHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	id := r.PathValue("id")
	if uuid.Validate(id) != nil {
		h.UI.NotFound(w, r)
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), sess.UserID, id)
	if err != nil {
		h.UI.ServerError(w, r, err)
		return
	}
	if !deleted {
		h.UI.NotFound(w, r)
		return
	}

	if s := GetSessionFromContext(r.Context()); s != nil {
		s.AddFlash(domainauth.FlashInfo, "The job was deleted.")
	}
	http.Redirect(w, r, "/jobs", http.StatusSeeOther)
}

// parseCreateJobForm reads and validates the creation form.
func parseCreateJobForm(r *http.Request) (model.CreateJobRequest, map[string]string) {
	req := model.CreateJobRequest{
		Company:  r.PostFormValue("company"),
		Position: r.PostFormValue("position"),
		Status:   model.JobStatus(r.PostFormValue("status")),
	}
	return req, fieldErrorMap(req.Validate())
}

// parseUpdateJobForm reads and validates the edit form.
func parseUpdateJobForm(r *http.Request) (model.UpdateJobRequest, map[string]string) {
	req := model.UpdateJobRequest{
		Company:  r.PostFormValue("company"),
		Position: r.PostFormValue("position"),
		Status:   model.JobStatus(r.PostFormValue("status")),
	}
	return req, fieldErrorMap(req.Validate())
}

// fieldErrorMap converts a model validation error into the renderer's
// field-error map.
func fieldErrorMap(err error) map[string]string {
	if err == nil {
		return nil
	}
	if fieldErr, ok := err.(*model.FieldError); ok { //nolint:errorlint // Validate returns the error directly
		return map[string]string{fieldErr.Field: fieldErr.Message}
	}
	return map[string]string{"form": err.Error()}
}

func (h *JobHandlers) renderJobForm(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if err := h.T.RenderPage(w, status, data); err != nil {
		h.UI.ServerError(w, r, err)
	}
}
