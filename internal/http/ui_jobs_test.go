package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
)

func createJob(t *testing.T, app *testApp, client *http.Client, company, position, status string) {
	t.Helper()
	token := fetchCSRFToken(t, client, app.Server.URL+"/jobs/new")
	resp, body := postForm(t, client, app.Server.URL+"/jobs", url.Values{
		"csrf_token": {token},
		"company":    {company},
		"position":   {position},
		"status":     {status},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "The job was added.")
}

// jobIDsFromList extracts job IDs from the edit links on the list page, in
// display order.
func jobIDsFromList(body string) []string {
	var ids []string
	for _, chunk := range strings.Split(body, `href="/jobs/edit/`)[1:] {
		if end := strings.IndexByte(chunk, '"'); end > 0 {
			ids = append(ids, chunk[:end])
		}
	}
	return ids
}

func TestJobs_CreateAndListRoundTrip(t *testing.T) {
	app := newTestApp(t)
	client := newBrowser(t)
	registerUser(t, app, client, "Ada Lovelace", "ada@example.com")

	createJob(t, app, client, "Acme Corp", "Software Engineer", "pending")
	createJob(t, app, client, "Globex", "SRE", "interview")

	body := fetchPage(t, client, app.Server.URL+"/jobs")
	assert.Contains(t, body, "Acme Corp")
	assert.Contains(t, body, "Globex")
	assert.Contains(t, body, "2 jobs tracked.")

	// Newest first: Globex was added last.
	globex := strings.Index(body, "Globex")
	acme := strings.Index(body, "Acme Corp")
	assert.Less(t, globex, acme)
}

func TestJobs_CreateValidationReRendersForm(t *testing.T) {
	app := newTestApp(t)
	client := newBrowser(t)
	registerUser(t, app, client, "Ada Lovelace", "ada@example.com")

	token := fetchCSRFToken(t, client, app.Server.URL+"/jobs/new")
	resp, body := postForm(t, client, app.Server.URL+"/jobs", url.Values{
		"csrf_token": {token},
		"company":    {""},
		"position":   {"Software Engineer"},
		"status":     {"pending"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, errMsgFixBelow)
	// The submitted position survives the re-render.
	assert.Contains(t, body, `value="Software Engineer"`)
	assert.Equal(t, 0, app.Jobs.Len())
}

func TestJobs_UpdateReflectsInEditForm(t *testing.T) {
	app := newTestApp(t)
	client := newBrowser(t)
	registerUser(t, app, client, "Ada Lovelace", "ada@example.com")

	createJob(t, app, client, "Acme Corp", "Software Engineer", "pending")
	ids := jobIDsFromList(fetchPage(t, client, app.Server.URL+"/jobs"))
	require.Len(t, ids, 1)
	id := ids[0]

	token := fetchCSRFToken(t, client, app.Server.URL+"/jobs/edit/"+id)
	resp, body := postForm(t, client, app.Server.URL+"/jobs/update/"+id, url.Values{
		"csrf_token": {token},
		"company":    {"Acme Corp"},
		"position":   {"Staff Engineer"},
		"status":     {"interview"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "The job was updated.")

	editBody := fetchPage(t, client, app.Server.URL+"/jobs/edit/"+id)
	assert.Contains(t, editBody, `value="Staff Engineer"`)
	assert.Contains(t, editBody, `value="interview" selected`)
}

func TestJobs_DeleteIsIdempotent(t *testing.T) {
	app := newTestApp(t)
	client := newBrowser(t)
	registerUser(t, app, client, "Ada Lovelace", "ada@example.com")

	createJob(t, app, client, "Acme Corp", "Software Engineer", "pending")
	ids := jobIDsFromList(fetchPage(t, client, app.Server.URL+"/jobs"))
	require.Len(t, ids, 1)
	id := ids[0]

	token := fetchCSRFToken(t, client, app.Server.URL+"/jobs")
	resp, body := postForm(t, client, app.Server.URL+"/jobs/delete/"+id, url.Values{
		"csrf_token": {token},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "The job was deleted.")
	assert.Equal(t, 0, app.Jobs.Len())

	// Deleting the same job again is a clean 404, not a crash.
	token = fetchCSRFToken(t, client, app.Server.URL+"/jobs")
	resp, _ = postForm(t, client, app.Server.URL+"/jobs/delete/"+id, url.Values{
		"csrf_token": {token},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJobs_CrossOwnerIsNotFound(t *testing.T) {
	app := newTestApp(t)

	owner := newBrowser(t)
	registerUser(t, app, owner, "Ada Lovelace", "ada@example.com")
	createJob(t, app, owner, "Acme Corp", "Software Engineer", "pending")
	ids := jobIDsFromList(fetchPage(t, owner, app.Server.URL+"/jobs"))
	require.Len(t, ids, 1)
	id := ids[0]

	other := newBrowser(t)
	registerUser(t, app, other, "Grace Hopper", "grace@example.com")

	// Show, update, and delete of someone else's job all come back 404, and
	// nothing changes.
	resp, err := other.Get(app.Server.URL + "/jobs/edit/" + id)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	token := fetchCSRFToken(t, other, app.Server.URL+"/jobs")
	resp, _ = postForm(t, other, app.Server.URL+"/jobs/update/"+id, url.Values{
		"csrf_token": {token},
		"company":    {"Hijacked"},
		"position":   {"Hijacked"},
		"status":     {"declined"},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	token = fetchCSRFToken(t, other, app.Server.URL+"/jobs")
	resp, _ = postForm(t, other, app.Server.URL+"/jobs/delete/"+id, url.Values{
		"csrf_token": {token},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner's job is untouched.
	body := fetchPage(t, owner, app.Server.URL+"/jobs")
	assert.Contains(t, body, "Acme Corp")
	assert.Contains(t, body, "Software Engineer")
	assert.Equal(t, 1, app.Jobs.Len())
}

func TestJobs_MalformedIDIsNotFound(t *testing.T) {
	app := newTestApp(t)
	client := newBrowser(t)
	registerUser(t, app, client, "Ada Lovelace", "ada@example.com")

	resp, err := client.Get(app.Server.URL + "/jobs/edit/not-a-uuid")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A random but valid UUID that matches nothing is also a 404.
	resp, err = client.Get(app.Server.URL + "/jobs/edit/" + uuid.NewString())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
