package task

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pineiras-maker/mytasks/internal/model"
)

var (
	ErrTitleRequired = errors.New("task title is required")
	ErrNotFound      = errors.New("task not found")
)

// State is the full store contents: date -> task id -> task. It is also the
// on-disk snapshot shape.
type State map[model.Date]map[model.TaskID]model.Task

// Store owns all task records grouped by calendar date. It is constructed
// once per process, loads its state from the persister at startup and writes
// it back after every mutation. A failed write is logged and swallowed: the
// in-memory state stays the source of truth for the running process.
type Store struct {
	mu        sync.RWMutex
	buckets   State
	persister Persister
	clock     Clock
	logger    *log.Logger
}

func NewStore(p Persister, clock Clock, logger *log.Logger) *Store {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		buckets:   State{},
		persister: p,
		clock:     clock,
		logger:    logger,
	}
	s.reload()
	return s
}

// reload replaces the in-memory state with the persisted snapshot. Any load
// failure yields an empty store rather than blocking startup.
func (s *Store) reload() {
	if s.persister == nil {
		return
	}
	state, ok, err := s.persister.Load()
	if err != nil {
		s.logger.Printf("task store: load snapshot: %v (starting empty)", err)
		return
	}
	if !ok {
		return
	}
	normalizeState(state)
	s.mu.Lock()
	s.buckets = state
	s.mu.Unlock()
}

// normalizeState prunes empty buckets and stamps each task with its map key,
// so snapshots written by older versions (or hand-edited ones) still satisfy
// the store invariants.
func normalizeState(state State) {
	for date, bucket := range state {
		if len(bucket) == 0 {
			delete(state, date)
			continue
		}
		for id, t := range bucket {
			if t.ID != id {
				t.ID = id
				bucket[id] = t
			}
		}
	}
}

// persistLocked writes the snapshot best-effort. Callers hold s.mu.
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.buckets); err != nil {
		s.logger.Printf("task store: save snapshot: %v", err)
	}
}

// Add creates a task under date. The bucket is created on demand.
func (s *Store) Add(date model.Date, title string, priority model.Priority, description string) (model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return model.Task{}, ErrTitleRequired
	}

	t := model.Task{
		ID:          model.TaskID(uuid.NewString()),
		Title:       title,
		Description: description,
		Priority:    priority,
		Completed:   false,
		CreatedAt:   s.clock.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.buckets[date]
	if !ok {
		bucket = map[model.TaskID]model.Task{}
		s.buckets[date] = bucket
	}
	bucket[t.ID] = t
	s.persistLocked()
	return t, nil
}

// Toggle flips the completion flag. A missing task is a benign no-op, not an
// error: UI actions can race a delete within the same render cycle.
func (s *Store) Toggle(date model.Date, id model.TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.buckets[date][id]
	if !ok {
		return false
	}
	t.Completed = !t.Completed
	s.buckets[date][id] = t
	s.persistLocked()
	return true
}

// Delete removes the task and prunes the bucket if it empties. Missing tasks
// are a benign no-op.
func (s *Store) Delete(date model.Date, id model.TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.buckets[date]
	if !ok {
		return false
	}
	if _, ok := bucket[id]; !ok {
		return false
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		delete(s.buckets, date)
	}
	s.persistLocked()
	return true
}

// Edit updates title/priority/description and stamps ModifiedAt. When newDate
// differs from oldDate the task is relocated atomically, keeping its id and
// every other field. MovedFrom is reserved for Rollover and never touched
// here.
func (s *Store) Edit(oldDate model.Date, id model.TaskID, newDate model.Date, title string, priority model.Priority, description string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.buckets[oldDate][id]
	if !ok {
		return model.Task{}, ErrNotFound
	}

	now := s.clock.Now()
	t.Title = title
	t.Priority = priority
	t.Description = description
	t.ModifiedAt = &now

	if oldDate != newDate {
		delete(s.buckets[oldDate], id)
		if len(s.buckets[oldDate]) == 0 {
			delete(s.buckets, oldDate)
		}
		bucket, ok := s.buckets[newDate]
		if !ok {
			bucket = map[model.TaskID]model.Task{}
			s.buckets[newDate] = bucket
		}
		bucket[id] = t
	} else {
		s.buckets[oldDate][id] = t
	}

	s.persistLocked()
	return t, nil
}

// Rollover re-mints every incomplete task dated strictly before asOf under
// asOf's bucket: fresh id, fields copied, MovedFrom set to the source date,
// original deleted. Completed tasks stay attached to their past dates
// indefinitely. asOf's own bucket is never scanned, so repeated calls within
// the same day move nothing. Returns the number of tasks moved.
func (s *Store) Rollover(asOf model.Date) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := 0
	for date, bucket := range s.buckets {
		if !date.Before(asOf) {
			continue
		}
		for id, t := range bucket {
			if t.Completed {
				continue
			}
			src := date
			copied := t
			copied.ID = model.TaskID(uuid.NewString())
			copied.MovedFrom = &src

			target, ok := s.buckets[asOf]
			if !ok {
				target = map[model.TaskID]model.Task{}
				s.buckets[asOf] = target
			}
			target[copied.ID] = copied
			delete(bucket, id)
			moved++
		}
		if len(bucket) == 0 {
			delete(s.buckets, date)
		}
	}

	if moved > 0 {
		s.persistLocked()
	}
	return moved
}

// ListSorted returns date's tasks ordered by completion (incomplete first),
// priority rank, title, then id. The id tail keeps the order total, so
// repeated reads over an unchanged bucket yield the same sequence even though
// buckets are maps. The order is computed fresh on every call.
func (s *Store) ListSorted(date model.Date) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.buckets[date]
	out := make([]model.Task, 0, len(bucket))
	for _, t := range bucket {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra < rb
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
	return out
}

// Counts reports completed and total task counts for one date.
func (s *Store) Counts(date model.Date) (completed, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.buckets[date] {
		total++
		if t.Completed {
			completed++
		}
	}
	return completed, total
}

// DatesWithTasks lists every date holding at least one task, newest first.
func (s *Store) DatesWithTasks() []model.Date {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Date, 0, len(s.buckets))
	for date := range s.buckets {
		out = append(out, date)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Before(out[i]) })
	return out
}

type Summary struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
	TodayTotal     int     `json:"today_total"`
	TodayCompleted int     `json:"today_completed"`
}

// Summarize computes the sidebar statistics the views render.
func (s *Store) Summarize(today model.Date) Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum Summary
	for date, bucket := range s.buckets {
		for _, t := range bucket {
			sum.Total++
			if t.Completed {
				sum.Completed++
			}
			if date == today {
				sum.TodayTotal++
				if t.Completed {
					sum.TodayCompleted++
				}
			}
		}
	}
	if sum.Total > 0 {
		sum.CompletionRate = float64(sum.Completed) / float64(sum.Total) * 100
	}
	return sum
}
