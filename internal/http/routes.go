package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	jobtrack "github.com/jobtrack/jobtrack-ui"
)

// TemplatePathFromRoot is where templates live on disk, relative to the
// project root. Dev mode reads them from here for hot reloading.
const TemplatePathFromRoot = "web/templates"

const staticPathFromRoot = "web/static"

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth AuthService
	Jobs JobsService

	// Session cookie parameters.
	CookieName    string
	CookieDomain  string
	CookieSecure  bool
	SigningSecret string

	// Compression, gated by config.
	CompressionEnabled bool
	CompressionLevel   int

	IsDev  bool
	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP handler chain.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := newRendererForMode(services.IsDev, logger)
	if err != nil {
		return nil, err
	}

	cookies := SessionCookies{
		Name:          services.CookieName,
		Domain:        services.CookieDomain,
		Secure:        services.CookieSecure,
		SigningSecret: services.SigningSecret,
	}
	ui := &UIHandlers{T: renderer, Logger: logger, IsDev: services.IsDev}
	sessions := &SessionHandlers{Auth: services.Auth, Cookies: cookies, T: renderer, UI: ui, Logger: logger}
	jobs := &JobHandlers{Svc: services.Jobs, T: renderer, UI: ui, Logger: logger}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	mux.HandleFunc("GET /{$}", ui.Index)
	mux.HandleFunc("GET /sessions/register", sessions.ShowRegister)
	mux.HandleFunc("POST /sessions/register", sessions.Register)
	mux.HandleFunc("GET /sessions/logon", sessions.ShowLogon)
	mux.HandleFunc("POST /sessions/logon", sessions.Logon)

	requireAuth := RequireAuth()
	mux.Handle("POST /sessions/logoff", requireAuth(http.HandlerFunc(sessions.Logoff)))
	mux.Handle("GET /jobs", requireAuth(http.HandlerFunc(jobs.List)))
	mux.Handle("GET /jobs/new", requireAuth(http.HandlerFunc(jobs.NewForm)))
	mux.Handle("POST /jobs", requireAuth(http.HandlerFunc(jobs.Create)))
	mux.Handle("GET /jobs/edit/{id}", requireAuth(http.HandlerFunc(jobs.EditForm)))
	mux.Handle("POST /jobs/update/{id}", requireAuth(http.HandlerFunc(jobs.Update)))
	mux.Handle("POST /jobs/delete/{id}", requireAuth(http.HandlerFunc(jobs.Delete)))

	// Unmatched routes get the custom 404 page instead of the mux default.
	var handler http.Handler = &notFoundHandler{mux: mux, ui: ui}

	sessionManager := &SessionManager{Auth: services.Auth, Cookies: cookies, Logger: logger}
	handler = CSRFProtection()(handler)
	handler = sessionManager.Middleware()(handler)
	handler = SecurityHeaders()(handler)
	if services.CompressionEnabled {
		handler = Compression(CompressionConfig{Level: services.CompressionLevel, Logger: logger})(handler)
	}
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)

	return handler, nil
}

// newRendererForMode builds the template renderer, reading templates from
// disk in dev mode and from the embedded FS otherwise.
func newRendererForMode(isDev bool, logger *slog.Logger) (*TemplateRenderer, error) {
	var templateFS fs.FS
	if isDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(jobtrack.TemplateFS, TemplatePathFromRoot)
		if err != nil {
			return nil, err
		}
		templateFS = sub
	}

	return NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    isDev,
		Logger:     logger,
	})
}

// staticHandler serves /static/ assets, from disk in dev mode and from the
// embedded FS otherwise.
func staticHandler(isDev bool) http.Handler {
	var staticFS fs.FS
	if isDev {
		staticFS = os.DirFS(staticPathFromRoot)
	} else {
		sub, err := fs.Sub(jobtrack.StaticFS, staticPathFromRoot)
		if err != nil {
			return http.NotFoundHandler()
		}
		staticFS = sub
	}
	return http.StripPrefix("/static/", http.FileServerFS(staticFS))
}

// notFoundHandler routes unmatched requests to the custom 404 page.
type notFoundHandler struct {
	mux *http.ServeMux
	ui  *UIHandlers
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern == "" {
		h.ui.NotFound(w, r)
		return
	}
	h.mux.ServeHTTP(w, r)
}
