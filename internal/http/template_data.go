package httpx

import (
	"net/http"

	domainauth "github.com/jobtrack/jobtrack-ui/internal/domain/auth"
)

// PageMeta describes the identity of a rendered page.
type PageMeta struct {
	Title       string // Browser tab title
	PageTitle   string // Heading shown on the page
	CurrentPage string // One of the Page* constants
}

// basePageData assembles the fields every page render needs: page identity,
// the CSRF token for forms, the viewer's identity, and the drained flash
// queue. Flashes are consumed here, so each queued message renders exactly
// once.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	data := map[string]any{
		"Title":       meta.Title,
		"PageTitle":   meta.PageTitle,
		"CurrentPage": meta.CurrentPage,
		"CSRFToken":   GetCSRFToken(r),
		// Always present so templates can `index .Errors "field"` and
		// `range .Flashes` safely.
		"Errors":  map[string]string{},
		"Flashes": []domainauth.Flash{},
	}
	if sess := GetSessionFromContext(r.Context()); sess != nil {
		data["IsAuthenticated"] = sess.IsAuthenticated()
		data["UserName"] = sess.Name
		data["Flashes"] = sess.TakeFlashes()
	}
	return data
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{
		data: basePageData(r, meta),
		r:    r,
	}
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
