// Package calendar provides the date arithmetic behind the daily and weekly
// views: Monday-first month grids and week windows.
package calendar

import (
	"time"

	"github.com/pineiras-maker/mytasks/internal/model"
)

// MonthGrid returns the weeks of a month as rows of seven dates, Monday
// first. Cells outside the month are empty ("" Date), mirroring the
// zero-padded rows of a printed calendar.
func MonthGrid(year int, month time.Month) [][]model.Date {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Monday=0 ... Sunday=6
	lead := (int(first.Weekday()) + 6) % 7

	var weeks [][]model.Date
	week := make([]model.Date, 7)
	col := lead
	for day := 1; day <= daysInMonth; day++ {
		week[col] = model.Today(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]model.Date, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// WeekStart returns the Monday of the week containing d.
func WeekStart(d model.Date) model.Date {
	sinceMonday := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-sinceMonday)
}

// WeekDates returns the seven dates starting at start.
func WeekDates(start model.Date) []model.Date {
	out := make([]model.Date, 7)
	for i := range out {
		out[i] = start.AddDays(i)
	}
	return out
}

func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
