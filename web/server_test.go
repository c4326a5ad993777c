// ABOUTME: Tests for the JSON API routes and the Prometheus endpoint
// ABOUTME: Drives the chi router through httptest against the sample workspace
package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/seed"
	"github.com/harperreed/crmpro/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = models.MustParseDate("2025-01-17")

func setupServer(t *testing.T) (*Server, *store.Workspace, *activity.Feed) {
	t.Helper()
	ws := store.NewWorkspace(seed.Default())
	feed := activity.NewFeed(0)
	ws.Observe(feed)
	srv := NewServer(ws, feed, Options{
		Today: func() models.Date { return testToday },
		User:  "John Doe",
	})
	return srv, ws, feed
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestContactLifecycle(t *testing.T) {
	srv, _, _ := setupServer(t)

	rec := do(t, srv, http.MethodPost, "/api/contacts", `{"name":"Erin Lee","email":"erin@example.com","company":"Example"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[models.Contact](t, rec)
	assert.Equal(t, 5, created.ID)
	assert.Equal(t, models.StatusProspect, created.Status)

	rec = do(t, srv, http.MethodPut, "/api/contacts/5", `{"status":"active"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusActive, decodeBody[models.Contact](t, rec).Status)

	rec = do(t, srv, http.MethodGet, "/api/contacts?status=active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Contact](t, rec), 3)

	rec = do(t, srv, http.MethodDelete, "/api/contacts/5", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/contacts/5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "contact 5 not found")
}

func TestContactValidationErrors(t *testing.T) {
	srv, ws, _ := setupServer(t)

	rec := do(t, srv, http.MethodPost, "/api/contacts", `{"name":"No Email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email is required")

	rec = do(t, srv, http.MethodPost, "/api/contacts", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/contacts", `{"nickname":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/contacts/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 4, ws.Contacts.Len())
}

func TestCreateDealDefaults(t *testing.T) {
	srv, _, _ := setupServer(t)

	rec := do(t, srv, http.MethodPost, "/api/deals", `{"name":"Pilot","value":1000,"contact":"Bob Smith","company":"TechStart"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	d := decodeBody[models.Deal](t, rec)
	assert.Equal(t, models.StageLead, d.Stage)
	assert.Equal(t, 10, d.Probability)
	assert.Equal(t, models.MustParseDate("2025-02-16"), d.CloseDate)

	rec = do(t, srv, http.MethodPut, "/api/deals/5", `{"stage":"proposal"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, decodeBody[models.Deal](t, rec).Probability)

	rec = do(t, srv, http.MethodPost, "/api/deals", `{"name":"Neg","value":-5,"contact":"B","company":"C"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangeDealStageRoute(t *testing.T) {
	srv, _, feed := setupServer(t)

	rec := do(t, srv, http.MethodPost, "/api/deals/1/stage", `{"stage":"closed-won"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, decodeBody[models.Deal](t, rec).Probability)

	rec = do(t, srv, http.MethodPost, "/api/deals/1/stage", `{"stage":"closed-lost","probability":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decodeBody[models.Deal](t, rec).Probability)
	assert.Equal(t, 2, feed.Len())

	rec = do(t, srv, http.MethodPost, "/api/deals/1/stage", `{"stage":"won"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/deals/9/stage", `{"stage":"lead"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskRoutes(t *testing.T) {
	srv, _, _ := setupServer(t)

	rec := do(t, srv, http.MethodPost, "/api/tasks", `{"title":"Call Bob","related_contact":"Bob Smith"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "2025-01-18", created["due_date"])
	assert.Equal(t, "John Doe", created["assignee"])
	assert.Equal(t, "due-soon", created["due_state"])
	assert.Equal(t, "Bob Smith", created["related_contact"])

	rec = do(t, srv, http.MethodPut, "/api/tasks/5", `{"related_contact":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "related_contact")

	for _, want := range []string{"in-progress", "completed", "pending"} {
		rec = do(t, srv, http.MethodPost, "/api/tasks/1/toggle", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, decodeBody[map[string]any](t, rec)["status"])
	}

	rec = do(t, srv, http.MethodGet, "/api/tasks?q=acme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]map[string]any](t, rec), 1)

	rec = do(t, srv, http.MethodDelete, "/api/tasks/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsRoutes(t *testing.T) {
	srv, _, _ := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/api/metrics/pipeline", "")
	require.Equal(t, http.StatusOK, rec.Code)
	p := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "$182,000", p["total_formatted"])
	assert.InDelta(t, 182000, p["total"], 0.001)

	rec = do(t, srv, http.MethodGet, "/api/metrics/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "2025-01-17", stats["today"])
	assert.InDelta(t, 1, stats["overdue"], 0)
	assert.InDelta(t, 2, stats["due_soon"], 0)

	rec = do(t, srv, http.MethodGet, "/api/metrics/tasks?today=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/search?q=acme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 3, decodeBody[map[string]any](t, rec)["total"], 0)
}

func TestDashboardActivityAndGraph(t *testing.T) {
	srv, _, _ := setupServer(t)

	do(t, srv, http.MethodPost, "/api/tasks/2/toggle", "")

	rec := do(t, srv, http.MethodGet, "/api/activity?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody[[]activity.Entry](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, store.VerbStatusChanged, entries[0].Verb)

	rec = do(t, srv, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PIPELINE OVERVIEW")

	rec = do(t, srv, http.MethodGet, "/api/graph/pipeline", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "digraph")

	rec = do(t, srv, http.MethodGet, "/api/graph/org", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPrometheusEndpoint(t *testing.T) {
	srv, _, _ := setupServer(t)

	do(t, srv, http.MethodGet, "/healthz", "")

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "crmpro_pipeline_total 182000")
	assert.Contains(t, body, `crmpro_deals{stage="negotiation"} 2`)
	assert.Contains(t, body, `crmpro_tasks{state="overdue"} 1`)
	assert.Contains(t, body, `crmpro_http_requests_total{code="200",method="GET",route="/healthz"} 1`)
}

func TestCollector(t *testing.T) {
	ws := store.NewWorkspace(seed.Default())
	c := NewCollector(ws, func() models.Date { return testToday })

	assert.Equal(t, 3, testutil.CollectAndCount(c, "crmpro_contacts"))
	assert.Equal(t, 6, testutil.CollectAndCount(c, "crmpro_deals"))
	assert.Equal(t, 1, testutil.CollectAndCount(c, "crmpro_pipeline_weighted"))

	expected := `
# HELP crmpro_pipeline_total Sum of all deal values.
# TYPE crmpro_pipeline_total gauge
crmpro_pipeline_total 182000
`
	assert.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "crmpro_pipeline_total"))
}
