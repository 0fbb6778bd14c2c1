package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t       *template.Template
	devMode bool         // Whether to surface template/render error detail
	logger  *slog.Logger // For logging template errors
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing templates (required)
	DevMode    bool         // Surface render error detail to the client
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}

	renderer := &TemplateRenderer{
		devMode: cfg.DevMode,
		logger:  cfg.Logger,
	}

	var t *template.Template
	funcs := createTemplateFuncs(&t)
	var err error
	t, err = template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS, "*.html")
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("template parsing failed",
				slog.Any("error", err),
				slog.String("phase", "initialization"),
			)
		}
		return nil, err
	}
	renderer.t = t
	return renderer, nil
}

// RenderPage renders the full page (layout + content section) with the given status.
func (r *TemplateRenderer) RenderPage(w http.ResponseWriter, status int, data any) error {
	return r.renderTemplate(w, renderParams{Template: "layout", Status: status, Data: data})
}

// RenderError renders an error page using the error template.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, status int, data any) error {
	return r.renderTemplate(w, renderParams{Template: "error-layout", Status: status, Data: data})
}

type renderParams struct {
	Template string
	Status   int
	Data     any
}

// renderTemplate executes into a buffer first so a mid-render failure never
// leaks a half-written page to the client.
func (r *TemplateRenderer) renderTemplate(w http.ResponseWriter, p renderParams) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, p.Template, p.Data); err != nil {
		r.logTemplateError(p.Template, err)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(p.Status)
	if _, err := buf.WriteTo(w); err != nil {
		if r.logger != nil {
			r.logger.Error("failed to write rendered template",
				slog.String("template", p.Template),
				slog.Any("error", err),
			)
		}
		return err
	}

	return nil
}

// logTemplateError logs a template execution error with context.
func (r *TemplateRenderer) logTemplateError(templateName string, err error) {
	if r.logger == nil || err == nil {
		return
	}
	r.logger.Error("template execution failed",
		slog.String("template", templateName),
		slog.Any("error", err),
	)
}

// createTemplateFuncs builds the FuncMap. The template pointer is filled in
// after parsing, which lets renderContent dispatch by name from inside the
// layout.
func createTemplateFuncs(t **template.Template) template.FuncMap {
	return template.FuncMap{
		"contentTemplateFor": ContentTemplateFor,
		"renderContent": func(name string, data any) (template.HTML, error) {
			var buf bytes.Buffer
			if err := (*t).ExecuteTemplate(&buf, name, data); err != nil {
				return "", err
			}
			//nolint:gosec // output of our own trusted templates
			return template.HTML(buf.String()), nil
		},
	}
}
