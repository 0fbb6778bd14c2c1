package httpx

import (
	"io"
	"log/slog"
	"net/http"
)

// UIHandlers serves the landing page and error pages.
type UIHandlers struct {
	T      *TemplateRenderer
	Logger *slog.Logger
	IsDev  bool
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Index renders the landing page.
// GET /.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{
		Title:       "Jobtrack",
		PageTitle:   "Track your job applications",
		CurrentPage: PageHome,
	}).Build()

	if err := h.T.RenderPage(w, http.StatusOK, data); err != nil {
		h.ServerError(w, r, err)
	}
}

// NotFound renders the custom 404 page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":           "Page not found - Jobtrack",
		"Code":            "404",
		"Message":         "The page you're looking for doesn't exist.",
		"IsAuthenticated": IsAuthenticated(r.Context()),
	}

	if h.T == nil || h.T.RenderError(w, http.StatusNotFound, data) != nil {
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}

// ServerError logs the error and renders an opaque 500 page. In dev mode the
// underlying error detail is included for debugging.
func (h *UIHandlers) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)

	data := map[string]any{
		"Title":           "Something went wrong - Jobtrack",
		"Code":            "500",
		"Message":         "Something went wrong. Please try again.",
		"IsAuthenticated": IsAuthenticated(r.Context()),
	}
	if h.IsDev && err != nil {
		data["Detail"] = err.Error()
	}

	if h.T == nil || h.T.RenderError(w, http.StatusInternalServerError, data) != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

const healthResponse = `{"status":"ok"}`

// healthHandler returns a simple 200 OK status for readiness/liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}
