package model

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day in canonical YYYY-MM-DD form. The canonical form
// compares lexicographically in date order, so Date values are usable
// directly as sorted map keys.
type Date string

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	// Round-trip through time.Time to reject non-canonical spellings.
	return Date(t.Format(dateLayout)), nil
}

// Today returns the Date for a wall-clock instant in its own location.
func Today(now time.Time) Date {
	return Date(now.Format(dateLayout))
}

func (d Date) String() string { return string(d) }

func (d Date) Before(other Date) bool { return d < other }

func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

func (d Date) AddDays(n int) Date {
	return Date(d.Time().AddDate(0, 0, n).Format(dateLayout))
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Priority is an open enum. Unknown values are carried verbatim and sort
// after the known levels.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

func (p Priority) Known() bool { return p.Rank() < 4 }

type TaskID string

type Task struct {
	ID          TaskID     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  *time.Time `json:"modified_at,omitempty"`

	// MovedFrom is set only when the rollover re-minted this task from a
	// past date. User-initiated moves never touch it.
	MovedFrom *Date `json:"moved_from,omitempty"`
}
