package httpx

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/jobtrack/jobtrack-ui/internal/domain/auth"
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
	apperrors "github.com/jobtrack/jobtrack-ui/internal/errors"
)

// FormParser parses form data from an HTTP request and returns the parsed data
// along with any field-level validation errors.
type FormParser[T any] func(r *http.Request) (T, map[string]string)

// FormRenderer renders the form template with the given status and data.
// This allows the form handler to work with different rendering strategies.
type FormRenderer func(w http.ResponseWriter, r *http.Request, status int, data map[string]any)

// ErrorHandler handles service errors and returns field errors and a general
// error message. Return nil for both if the error should be handled by the
// default handler.
type ErrorHandler func(err error) (fieldErrors map[string]string, generalError string)

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[T any] struct {
	W    http.ResponseWriter
	R    *http.Request
	Mode FormMode // "create" or "edit"
	// Parser parses and validates the submitted form.
	Parser FormParser[T]
	// Submit performs the create or update. For create mode id is empty.
	Submit func(ctx context.Context, id string, data T) error
	// Renderer re-renders the form when validation or the submit fails.
	Renderer FormRenderer
	// SuccessURL is where the browser is sent after a successful submit.
	SuccessURL string
	// SuccessFlash, when set, is queued as an info flash before the redirect.
	SuccessFlash string
	// PageMeta for re-rendering the form.
	PageMeta PageMeta
	// Optional: additional data to pass to the template on error.
	ExtraData map[string]any
	// Optional: function to extract ID from request (defaults to r.PathValue("id")).
	GetID func(r *http.Request) string
	// Optional: custom error handler for domain-specific errors.
	HandleError ErrorHandler
	// Optional: handler invoked when the submit reports NotFound (edit mode
	// racing a delete, or an ID belonging to someone else).
	NotFoundHandler http.HandlerFunc
}

// HandleForm is a generic form handler that processes Create and Update
// workflows: form parsing, validation, the service call, error translation,
// and the flash-then-redirect on success. Validation and service failures
// re-render the form with a 400 and the submitted values preserved under
// "FormData".
func HandleForm[T any](opts FormHandlerOpts[T]) {
	if !validateFormOptions(opts) {
		return
	}

	// For edit mode, check ID first before parsing.
	id, ok := checkFormID(opts)
	if !ok {
		return
	}

	data, fieldErrors := opts.Parser(opts.R)
	if len(fieldErrors) > 0 {
		opts.renderFormError(fieldErrors, "", data)
		return
	}

	if err := opts.Submit(opts.R.Context(), id, data); err != nil {
		handleFormServiceError(opts, err, data)
		return
	}

	if opts.SuccessFlash != "" {
		if sess := GetSessionFromContext(opts.R.Context()); sess != nil {
			sess.AddFlash(domainauth.FlashInfo, opts.SuccessFlash)
		}
	}
	http.Redirect(opts.W, opts.R, opts.SuccessURL, http.StatusSeeOther)
}

// validateFormOptions validates required options and mode.
func validateFormOptions[T any](opts FormHandlerOpts[T]) bool {
	if opts.Parser == nil || opts.Submit == nil || opts.Renderer == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return false
	}

	switch opts.Mode {
	case FormModeEdit, FormModeCreate:
		return true
	default:
		http.Error(opts.W, "invalid form mode", http.StatusBadRequest)
		return false
	}
}

// checkFormID checks and returns the ID for edit mode. Returns empty string and true for create mode.
func checkFormID[T any](opts FormHandlerOpts[T]) (string, bool) {
	if opts.Mode != FormModeEdit {
		return "", true
	}

	id := getFormID(opts)
	if id == "" {
		http.NotFound(opts.W, opts.R)
		return "", false
	}
	return id, true
}

// getFormID extracts the ID from the request, using custom getter if provided.
func getFormID[T any](opts FormHandlerOpts[T]) string {
	if opts.GetID != nil {
		return opts.GetID(opts.R)
	}
	return opts.R.PathValue("id")
}

// handleFormServiceError translates errors from the submit into a re-render.
func handleFormServiceError[T any](opts FormHandlerOpts[T], err error, data T) {
	// Special-case context cancellation/timeouts to avoid noisy UX.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		http.Error(opts.W, "request canceled", http.StatusRequestTimeout)
		return
	}

	if apperrors.IsNotFound(err) && opts.NotFoundHandler != nil {
		opts.NotFoundHandler(opts.W, opts.R)
		return
	}

	// Try custom error handler first if provided.
	if opts.HandleError != nil {
		fieldErrors, generalError := opts.HandleError(err)
		if fieldErrors != nil || generalError != "" {
			opts.renderFormError(fieldErrors, generalError, data)
			return
		}
	}

	if fieldErrors, generalError, ok := classifyFormError(err); ok {
		opts.renderFormError(fieldErrors, generalError, data)
		return
	}

	opts.renderFormError(nil, "Unable to save. Please try again.", data)
}

// classifyFormError maps domain validation and conflict errors onto form
// field errors.
func classifyFormError(err error) (map[string]string, string, bool) {
	var fieldErr *model.FieldError
	if errors.As(err, &fieldErr) {
		return map[string]string{fieldErr.Field: fieldErr.Message}, "", true
	}

	if apperrors.IsValidation(err) || apperrors.IsConflict(err) {
		if field := apperrors.GetField(err); field != "" {
			return map[string]string{field: userFacingMessage(err)}, "", true
		}
		return nil, userFacingMessage(err), true
	}

	return nil, "", false
}

// userFacingMessage extracts the AppError message, which is written for
// display, rather than the full wrapped chain.
func userFacingMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Unable to save. Please try again."
}

// renderFormError re-renders the form with errors and preserves form data.
func (fh FormHandlerOpts[T]) renderFormError(fieldErrors map[string]string, generalError string, data T) {
	templateData := NewTemplateData(fh.R, fh.PageMeta)

	if len(fieldErrors) > 0 {
		templateData.WithFieldErrors(fieldErrors)
	}

	if generalError != "" {
		templateData.WithError(generalError)
	} else if len(fieldErrors) > 0 {
		templateData.WithError(errMsgFixBelow)
	}

	templateData.With("Mode", fh.Mode)

	// Extra data first, so FormData can override if needed.
	for k, v := range fh.ExtraData {
		templateData.With(k, v)
	}

	// Templates read the submitted values back out of FormData.
	templateData.With("FormData", data)

	fh.Renderer(fh.W, fh.R, http.StatusBadRequest, templateData.Build())
}
