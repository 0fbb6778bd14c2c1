package httpx

import (
	"io/fs"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobtrack "github.com/jobtrack/jobtrack-ui"
	domainauth "github.com/jobtrack/jobtrack-ui/internal/domain/auth"
	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
)

func newEmbeddedRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	sub, err := fs.Sub(jobtrack.TemplateFS, TemplatePathFromRoot)
	require.NoError(t, err)
	r, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: sub})
	require.NoError(t, err)
	return r
}

func TestRenderer_AllPagesRender(t *testing.T) {
	renderer := newEmbeddedRenderer(t)

	base := map[string]any{
		"Title":           "x",
		"PageTitle":       "x",
		"CSRFToken":       "token",
		"Errors":          map[string]string{},
		"Flashes":         []domainauth.Flash{{Kind: domainauth.FlashInfo, Message: "hi"}},
		"IsAuthenticated": true,
		"UserName":        "Ada",
	}

	pages := map[string]map[string]any{
		PageHome:     {},
		PageRegister: {"FormData": model.RegisterRequest{}},
		PageLogon:    {"FormData": model.LogonRequest{}},
		PageJobs: {
			"Jobs": []*model.Job{{
				ID: "1", Company: "Acme", Position: "Dev",
				Status: model.JobStatusPending, CreatedAt: time.Now(),
			}},
			"JobCount": 1,
		},
		PageJobForm: {
			"Mode":     FormModeCreate,
			"Statuses": model.JobStatuses(),
			"FormData": model.CreateJobRequest{Status: model.JobStatusPending},
		},
	}

	for page, extra := range pages {
		t.Run(page, func(t *testing.T) {
			data := map[string]any{"CurrentPage": page}
			for k, v := range base {
				data[k] = v
			}
			for k, v := range extra {
				data[k] = v
			}

			rec := httptest.NewRecorder()
			require.NoError(t, renderer.RenderPage(rec, 200, data))
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.NotEmpty(t, rec.Body.String())
		})
	}
}

func TestRenderer_EditFormRender(t *testing.T) {
	renderer := newEmbeddedRenderer(t)

	data := map[string]any{
		"Title": "x", "PageTitle": "x", "CurrentPage": PageJobForm,
		"CSRFToken": "token", "Errors": map[string]string{},
		"Flashes":  []domainauth.Flash{},
		"Mode":     FormModeEdit,
		"JobID":    "abc",
		"Statuses": model.JobStatuses(),
		"FormData": model.UpdateJobRequest{Company: "Acme", Position: "Dev", Status: model.JobStatusInterview},
	}
	rec := httptest.NewRecorder()
	require.NoError(t, renderer.RenderPage(rec, 200, data))
	assert.Contains(t, rec.Body.String(), "/jobs/update/abc")
	assert.Contains(t, rec.Body.String(), `value="interview" selected`)
}

func TestRenderer_ErrorPage(t *testing.T) {
	renderer := newEmbeddedRenderer(t)

	rec := httptest.NewRecorder()
	err := renderer.RenderError(rec, 404, map[string]any{
		"Title": "x", "Code": "404", "Message": "gone",
	})
	require.NoError(t, err)
	assert.Equal(t, 404, rec.Code)
	assert.Contains(t, rec.Body.String(), "gone")
}

func TestRenderer_RequiresTemplateFS(t *testing.T) {
	_, err := NewTemplateRenderer(TemplateRendererConfig{})
	assert.Error(t, err)
}
