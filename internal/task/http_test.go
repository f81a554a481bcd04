package task

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pineiras-maker/mytasks/internal/i18n"
	"github.com/pineiras-maker/mytasks/internal/model"
)

func newServerForTests(t *testing.T) (*httptest.Server, *Store, *FakeClock) {
	t.Helper()

	clock := NewFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	store := NewStore(NewMemoryPersister(), clock, nil)
	h := NewHandler(store, clock, i18n.NewBundle(i18n.LocaleEnglish))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks", h.List)
	mux.HandleFunc("POST /api/tasks", h.Add)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", h.Toggle)
	mux.HandleFunc("DELETE /api/tasks/{id}", h.Delete)
	mux.HandleFunc("PUT /api/tasks/{id}", h.Edit)
	mux.HandleFunc("POST /api/rollover", h.Rollover)
	mux.HandleFunc("GET /api/export", h.Export)
	mux.HandleFunc("POST /api/import", h.Import)
	mux.HandleFunc("GET /api/summary", h.Summary)
	mux.HandleFunc("GET /api/calendar", h.Calendar)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, store, clock
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHTTP_AddAndList(t *testing.T) {
	srv, _, _ := newServerForTests(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", map[string]any{
		"date":        "2026-03-02",
		"title":       "write tests",
		"priority":    "High",
		"description": "for the api",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created model.Task
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/tasks?date=2026-03-02", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listing struct {
		Date  model.Date   `json:"date"`
		Tasks []model.Task `json:"tasks"`
	}
	decodeBody(t, resp, &listing)
	require.Len(t, listing.Tasks, 1)
	assert.Equal(t, created.ID, listing.Tasks[0].ID)
}

func TestHTTP_AddValidation(t *testing.T) {
	srv, _, _ := newServerForTests(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", map[string]any{
		"date":  "2026-03-02",
		"title": "",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/tasks", map[string]any{
		"date":  "03/02/2026",
		"title": "bad date",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestHTTP_ToggleAndDelete(t *testing.T) {
	srv, store, _ := newServerForTests(t)
	created, err := store.Add("2026-03-02", "flip me", model.PriorityLow, "")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/tasks/"+string(created.ID)+"/toggle",
		map[string]any{"date": "2026-03-02"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggled struct {
		Changed bool `json:"changed"`
	}
	decodeBody(t, resp, &toggled)
	assert.True(t, toggled.Changed)
	assert.True(t, store.ListSorted("2026-03-02")[0].Completed)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/tasks/"+string(created.ID)+"?date=2026-03-02", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, store.ListSorted("2026-03-02"))

	// Toggling the now-deleted task is benign.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/tasks/"+string(created.ID)+"/toggle",
		map[string]any{"date": "2026-03-02"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &toggled)
	assert.False(t, toggled.Changed)
}

func TestHTTP_EditMove(t *testing.T) {
	srv, store, _ := newServerForTests(t)
	created, err := store.Add("2026-03-02", "move me", model.PriorityMedium, "")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/tasks/"+string(created.ID), map[string]any{
		"old_date":    "2026-03-02",
		"new_date":    "2026-03-04",
		"title":       "moved",
		"priority":    "High",
		"description": "",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var edited model.Task
	decodeBody(t, resp, &edited)
	assert.Equal(t, created.ID, edited.ID)
	assert.Nil(t, edited.MovedFrom)

	assert.Empty(t, store.ListSorted("2026-03-02"))
	assert.Len(t, store.ListSorted("2026-03-04"), 1)
}

func TestHTTP_EditMissing(t *testing.T) {
	srv, _, _ := newServerForTests(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/tasks/ghost", map[string]any{
		"old_date": "2026-03-02",
		"title":    "x",
		"priority": "Low",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestHTTP_Rollover(t *testing.T) {
	srv, store, _ := newServerForTests(t)
	_, err := store.Add("2026-02-27", "late", model.PriorityHigh, "")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/rollover", map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Moved   int        `json:"moved"`
		AsOf    model.Date `json:"as_of"`
		Message string     `json:"message"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 1, body.Moved)
	assert.Equal(t, model.Date("2026-03-02"), body.AsOf)
	assert.Equal(t, "Moved 1 incomplete tasks to today!", body.Message)
}

func TestHTTP_ExportImport(t *testing.T) {
	srv, store, _ := newServerForTests(t)
	created, err := store.Add("2026-03-02", "round trip", model.PriorityLow, "")
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/api/export")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "tasks_backup_02_03_2026.json")
	blob := new(bytes.Buffer)
	_, err = blob.ReadFrom(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	require.True(t, store.Delete("2026-03-02", created.ID))

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/import", bytes.NewReader(blob.Bytes()))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	got := store.ListSorted("2026-03-02")
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
}

func TestHTTP_ImportRejectsBadDocuments(t *testing.T) {
	srv, _, _ := newServerForTests(t)

	for _, blob := range []string{`not json`, `{"version":"1.0"}`} {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/import", bytes.NewBufferString(blob))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	}
}

func TestHTTP_SummaryAndCalendar(t *testing.T) {
	srv, store, _ := newServerForTests(t)
	a, err := store.Add("2026-03-02", "one", model.PriorityLow, "")
	require.NoError(t, err)
	_, err = store.Add("2026-03-15", "two", model.PriorityLow, "")
	require.NoError(t, err)
	require.True(t, store.Toggle("2026-03-02", a.ID))

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sum Summary
	decodeBody(t, resp, &sum)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Completed)
	assert.Equal(t, 1, sum.TodayTotal)
	assert.Equal(t, 1, sum.TodayCompleted)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/calendar?year=2026&month=3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cal struct {
		Year  int             `json:"year"`
		Month int             `json:"month"`
		Weeks [][]calendarDay `json:"weeks"`
	}
	decodeBody(t, resp, &cal)
	assert.Equal(t, 2026, cal.Year)
	assert.Equal(t, 3, cal.Month)

	found := 0
	for _, week := range cal.Weeks {
		for _, cell := range week {
			if cell.Total > 0 {
				found++
			}
		}
	}
	assert.Equal(t, 2, found)
}
