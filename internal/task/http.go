package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pineiras-maker/mytasks/internal/calendar"
	"github.com/pineiras-maker/mytasks/internal/i18n"
	"github.com/pineiras-maker/mytasks/internal/model"
)

// Handler exposes the store over a JSON API. It is the only surface the
// presentation layer talks to besides the rendered pages.
type Handler struct {
	store  *Store
	clock  Clock
	bundle *i18n.Bundle
}

func NewHandler(store *Store, clock Clock, bundle *i18n.Bundle) *Handler {
	if clock == nil {
		clock = RealClock{}
	}
	if bundle == nil {
		bundle = i18n.NewBundle(i18n.LocaleSpanish)
	}
	return &Handler{store: store, clock: clock, bundle: bundle}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func dateParam(r *http.Request, name string) (model.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return "", fmt.Errorf("missing %s query parameter", name)
	}
	return model.ParseDate(raw)
}

// GET /api/tasks?date=YYYY-MM-DD
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, "date")
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":  date,
		"tasks": h.store.ListSorted(date),
	})
}

type addRequest struct {
	Date        string         `json:"date"`
	Title       string         `json:"title"`
	Priority    model.Priority `json:"priority"`
	Description string         `json:"description"`
}

// POST /api/tasks
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := model.ParseDate(req.Date)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.store.Add(date, req.Title, req.Priority, req.Description)
	if err != nil {
		if errors.Is(err, ErrTitleRequired) {
			writeErr(w, http.StatusBadRequest, h.bundle.T("error.title"))
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

type toggleRequest struct {
	Date string `json:"date"`
}

// POST /api/tasks/{id}/toggle
// Toggling an already-deleted task is benign; the response just reports
// whether anything changed.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := model.TaskID(r.PathValue("id"))
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := model.ParseDate(req.Date)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	changed := h.store.Toggle(date, id)
	writeJSON(w, http.StatusOK, map[string]any{"changed": changed})
}

// DELETE /api/tasks/{id}?date=YYYY-MM-DD
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.TaskID(r.PathValue("id"))
	date, err := dateParam(r, "date")
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	h.store.Delete(date, id)
	w.WriteHeader(http.StatusNoContent)
}

type editRequest struct {
	OldDate     string         `json:"old_date"`
	NewDate     string         `json:"new_date"`
	Title       string         `json:"title"`
	Priority    model.Priority `json:"priority"`
	Description string         `json:"description"`
}

// PUT /api/tasks/{id}
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id := model.TaskID(r.PathValue("id"))
	var req editRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	oldDate, err := model.ParseDate(req.OldDate)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	newDate := oldDate
	if req.NewDate != "" {
		newDate, err = model.ParseDate(req.NewDate)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	t, err := h.store.Edit(oldDate, id, newDate, req.Title, req.Priority, req.Description)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeErr(w, http.StatusNotFound, err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// POST /api/rollover
func (h *Handler) Rollover(w http.ResponseWriter, r *http.Request) {
	today := model.Today(h.clock.Now())
	moved := h.store.Rollover(today)
	resp := map[string]any{"moved": moved, "as_of": today}
	if moved > 0 {
		resp["message"] = h.bundle.Tf("rollover.moved", moved)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	blob, err := h.store.Export()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	name := h.bundle.BackupFilename(h.clock.Now())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(blob)
}

// POST /api/import
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	blob, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8<<20))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.store.Import(blob); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"restored": true})
}

// GET /api/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	today := model.Today(h.clock.Now())
	writeJSON(w, http.StatusOK, h.store.Summarize(today))
}

type calendarDay struct {
	Date      model.Date `json:"date,omitempty"`
	Day       int        `json:"day,omitempty"`
	Completed int        `json:"completed"`
	Total     int        `json:"total"`
}

// GET /api/calendar?year=YYYY&month=M
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	year, month := now.Year(), now.Month()
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			writeErr(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = time.Month(n)
	}

	grid := calendar.MonthGrid(year, month)
	weeks := make([][]calendarDay, 0, len(grid))
	for _, row := range grid {
		cells := make([]calendarDay, 7)
		for i, d := range row {
			if d == "" {
				continue
			}
			done, total := h.store.Counts(d)
			cells[i] = calendarDay{
				Date:      d,
				Day:       d.Time().Day(),
				Completed: done,
				Total:     total,
			}
		}
		weeks = append(weeks, cells)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":  year,
		"month": int(month),
		"weeks": weeks,
	})
}
