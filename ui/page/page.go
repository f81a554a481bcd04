// Package page renders the daily and weekly calendar views. Components are
// templ.Components backed by embedded html/template documents; the server
// mounts them directly or renders them from view handlers.
package page

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/pineiras-maker/mytasks/internal/i18n"
	"github.com/pineiras-maker/mytasks/internal/model"
	"github.com/pineiras-maker/mytasks/internal/task"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(
	template.New("").
		Funcs(template.FuncMap{
			"pct": func(done, total int) int {
				if total == 0 {
					return 0
				}
				return done * 100 / total
			},
		}).
		ParseFS(templatesFS, "templates/*.html"),
)

func render(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, name, data)
	})
}

// TaskView decorates a task with its localized labels.
type TaskView struct {
	model.Task
	PriorityLabel string
	PriorityClass string
}

type CalendarCell struct {
	Day        int
	Date       model.Date
	Completed  int
	Total      int
	IsToday    bool
	IsSelected bool
}

type CalendarView struct {
	Year      int
	Month     int
	MonthName string
	PrevYear  int
	PrevMonth int
	NextYear  int
	NextMonth int
	DayNames  []string
	Weeks     [][]CalendarCell
}

type RecentDate struct {
	Date      model.Date
	Label     string
	Completed int
	Total     int
}

// Shared chrome for both views.
type Shell struct {
	L       *i18n.Bundle
	Today   model.Date
	Summary task.Summary
	Recent  []RecentDate
	Flash   string
}

type DailyData struct {
	Shell
	Date     model.Date
	DateLong string
	Tasks    []TaskView
	Calendar CalendarView
}

type WeekDay struct {
	Date      model.Date
	Name      string
	DateShort string
	IsToday   bool
	Tasks     []TaskView
	More      int
}

type WeeklyData struct {
	Shell
	Heading   string
	WeekStart model.Date
	PrevStart model.Date
	NextStart model.Date
	Days      []WeekDay
}

func Daily(data DailyData) templ.Component {
	return render("daily.html", data)
}

func Weekly(data WeeklyData) templ.Component {
	return render("weekly.html", data)
}
