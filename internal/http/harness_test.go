package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mockauth "github.com/jobtrack/jobtrack-ui/internal/mocks/auth"
	mockjobs "github.com/jobtrack/jobtrack-ui/internal/mocks/jobs"
	"github.com/jobtrack/jobtrack-ui/internal/service"
)

const testSigningSecret = "test-signing-secret-0123456789abcdef"

// testApp bundles a running router with the in-memory stores behind it so
// tests can assert on server-side state.
type testApp struct {
	Server   *httptest.Server
	Users    *mockauth.MemoryUserRepo
	Sessions *mockauth.MemorySessionStore
	Jobs     *mockjobs.MemoryJobRepo
	Auth     *service.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := mockauth.NewMemoryUserRepo()
	sessions := mockauth.NewMemorySessionStore()
	jobs := mockjobs.NewMemoryJobRepo()

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Users:      users,
		Sessions:   sessions,
		Hasher:     mockauth.FakeHasher{},
		SessionTTL: time.Hour,
	})
	jobSvc := service.NewJobService(service.JobServiceOptions{JobRepo: jobs})

	handler, err := NewRouter(RouterServices{
		Auth:          authSvc,
		Jobs:          jobSvc,
		CookieName:    "session_id",
		SigningSecret: testSigningSecret,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testApp{
		Server:   server,
		Users:    users,
		Sessions: sessions,
		Jobs:     jobs,
		Auth:     authSvc,
	}
}

// newBrowser returns a cookie-keeping client that follows redirects, like a
// real browser.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// newBrowserNoRedirect returns a cookie-keeping client that surfaces
// redirect responses instead of following them.
func newBrowserNoRedirect(t *testing.T) *http.Client {
	t.Helper()
	c := newBrowser(t)
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return c
}

var csrfFieldRe = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

// fetchPage GETs a page and returns its body.
func fetchPage(t *testing.T, client *http.Client, pageURL string) string {
	t.Helper()
	resp, err := client.Get(pageURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// fetchCSRFToken GETs a page and extracts the CSRF token from its form.
func fetchCSRFToken(t *testing.T, client *http.Client, pageURL string) string {
	t.Helper()
	body := fetchPage(t, client, pageURL)
	match := csrfFieldRe.FindStringSubmatch(body)
	require.NotNil(t, match, "no csrf_token field on %s", pageURL)
	return match[1]
}

// postForm submits a form and returns the final response body after any
// redirects.
func postForm(t *testing.T, client *http.Client, formURL string, values url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := client.PostForm(formURL, values)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// registerUser drives the real registration flow for a browser client.
func registerUser(t *testing.T, app *testApp, client *http.Client, name, email string) {
	t.Helper()
	token := fetchCSRFToken(t, client, app.Server.URL+"/sessions/register")
	resp, body := postForm(t, client, app.Server.URL+"/sessions/register", url.Values{
		"csrf_token":       {token},
		"name":             {name},
		"email":            {email},
		"password":         {"secret1"},
		"password_confirm": {"secret1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.Contains(body, "Welcome"), "expected welcome flash, got: %.200s", body)
}
