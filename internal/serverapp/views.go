package serverapp

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/pineiras-maker/mytasks/internal/calendar"
	"github.com/pineiras-maker/mytasks/internal/i18n"
	"github.com/pineiras-maker/mytasks/internal/model"
	"github.com/pineiras-maker/mytasks/internal/task"
	"github.com/pineiras-maker/mytasks/ui/page"
)

type viewHandler struct {
	store     *task.Store
	clock     task.Clock
	bundle    *i18n.Bundle
	maxPerDay int
}

func (v *viewHandler) today() model.Date {
	return model.Today(v.clock.Now())
}

func (v *viewHandler) taskViews(tasks []model.Task) []page.TaskView {
	out := make([]page.TaskView, len(tasks))
	for i, t := range tasks {
		out[i] = page.TaskView{
			Task:          t,
			PriorityLabel: v.bundle.PriorityLabel(t.Priority),
			PriorityClass: priorityClass(t.Priority),
		}
	}
	return out
}

func priorityClass(p model.Priority) string {
	if !p.Known() {
		return "unknown"
	}
	return strings.ToLower(string(p))
}

func (v *viewHandler) shell() page.Shell {
	today := v.today()
	recent := v.store.DatesWithTasks()
	if len(recent) > 5 {
		recent = recent[:5]
	}
	views := make([]page.RecentDate, len(recent))
	for i, d := range recent {
		done, total := v.store.Counts(d)
		views[i] = page.RecentDate{
			Date:      d,
			Label:     v.bundle.FormatDate(d),
			Completed: done,
			Total:     total,
		}
	}
	return page.Shell{
		L:       v.bundle,
		Today:   today,
		Summary: v.store.Summarize(today),
		Recent:  views,
	}
}

// GET /daily?date=YYYY-MM-DD[&year=&month=]
func (v *viewHandler) Daily(w http.ResponseWriter, r *http.Request) {
	selected := v.today()
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		selected = d
	}

	// Calendar widget defaults to the selected date's month; the year/month
	// query parameters page through other months without losing the
	// selection.
	selTime := selected.Time()
	calYear, calMonth := selTime.Year(), selTime.Month()
	if raw := r.URL.Query().Get("year"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			calYear = n
		}
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 12 {
			calMonth = time.Month(n)
		}
	}

	data := page.DailyData{
		Shell:    v.shell(),
		Date:     selected,
		DateLong: v.bundle.FormatDateLong(selected),
		Tasks:    v.taskViews(v.store.ListSorted(selected)),
		Calendar: v.monthView(calYear, calMonth, selected),
	}
	renderPage(w, r, page.Daily(data))
}

func (v *viewHandler) monthView(year int, month time.Month, selected model.Date) page.CalendarView {
	today := v.today()
	prevYear, prevMonth := calendar.PrevMonth(year, month)
	nextYear, nextMonth := calendar.NextMonth(year, month)

	grid := calendar.MonthGrid(year, month)
	weeks := make([][]page.CalendarCell, 0, len(grid))
	for _, row := range grid {
		cells := make([]page.CalendarCell, 7)
		for i, d := range row {
			if d == "" {
				continue
			}
			done, total := v.store.Counts(d)
			cells[i] = page.CalendarCell{
				Day:        d.Time().Day(),
				Date:       d,
				Completed:  done,
				Total:      total,
				IsToday:    d == today,
				IsSelected: d == selected,
			}
		}
		weeks = append(weeks, cells)
	}

	return page.CalendarView{
		Year:      year,
		Month:     int(month),
		MonthName: v.bundle.MonthName(month),
		PrevYear:  prevYear,
		PrevMonth: int(prevMonth),
		NextYear:  nextYear,
		NextMonth: int(nextMonth),
		DayNames:  v.bundle.DayNamesShort(),
		Weeks:     weeks,
	}
}

// GET /weekly?start=YYYY-MM-DD
func (v *viewHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	today := v.today()
	start := calendar.WeekStart(today)
	if raw := r.URL.Query().Get("start"); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		start = calendar.WeekStart(d)
	}
	end := start.AddDays(6)

	dayNames := v.bundle.DayNames()
	days := make([]page.WeekDay, 0, 7)
	for i, d := range calendar.WeekDates(start) {
		all := v.taskViews(v.store.ListSorted(d))
		more := 0
		if v.maxPerDay > 0 && len(all) > v.maxPerDay {
			more = len(all) - v.maxPerDay
			all = all[:v.maxPerDay]
		}
		days = append(days, page.WeekDay{
			Date:      d,
			Name:      dayNames[i],
			DateShort: v.bundle.FormatDate(d),
			IsToday:   d == today,
			Tasks:     all,
			More:      more,
		})
	}

	data := page.WeeklyData{
		Shell:     v.shell(),
		Heading:   v.bundle.Tf("week.of", v.bundle.FormatDate(start), v.bundle.FormatDate(end)),
		WeekStart: start,
		PrevStart: start.AddDays(-7),
		NextStart: start.AddDays(7),
		Days:      days,
	}
	renderPage(w, r, page.Weekly(data))
}

func renderPage(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
