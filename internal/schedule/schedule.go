// Package schedule derives the day-based view of a todo list: today and
// overdue buckets, completion progress, and the completion-toggle rules.
//
// Every function takes the evaluation time explicitly. The caller decides
// which wall clock and timezone apply, which keeps partitioning
// deterministic and testable.
package schedule

import (
	"math"
	"sort"
	"time"

	"github.com/voicetodo/voicetodo/internal/model"
)

// Status classifies a todo relative to a given day.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// Buckets partitions a user's todos for one calendar day.
// Today holds everything created within the day window, completed or not,
// newest first. Overdue holds incomplete todos created before the window.
type Buckets struct {
	Today   []*model.Todo
	Overdue []*model.Todo
}

// DayWindow returns the inclusive bounds of now's calendar day,
// [00:00:00.000, 23:59:59.999], in now's location. The end is derived
// from the next midnight rather than a fixed 24h offset so DST
// transition days (23 or 25 hours long) keep their full window.
func DayWindow(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	loc := now.Location()
	start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	end = time.Date(y, m, d+1, 0, 0, 0, 0, loc).Add(-time.Millisecond)
	return start, end
}

// Classify returns the status of a todo at the given time. An
// incomplete todo is never reported completed: before the window it is
// overdue, anywhere else it is pending.
func Classify(todo *model.Todo, now time.Time) Status {
	if todo.Completed {
		return StatusCompleted
	}
	start, _ := DayWindow(now)
	if todo.CreatedAt.Before(start) {
		return StatusOverdue
	}
	return StatusPending
}

// Partition splits todos into today/overdue buckets for now's day.
// Both buckets are ordered newest first. Completed todos from past days
// fall out of view entirely.
func Partition(todos []*model.Todo, now time.Time) Buckets {
	sorted := make([]*model.Todo, len(todos))
	copy(sorted, todos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	start, end := DayWindow(now)

	var b Buckets
	for _, todo := range sorted {
		switch {
		case !todo.CreatedAt.Before(start) && !todo.CreatedAt.After(end):
			b.Today = append(b.Today, todo)
		case !todo.Completed && todo.CreatedAt.Before(start):
			b.Overdue = append(b.Overdue, todo)
		}
	}
	return b
}

// Progress returns the completion percentage for the today bucket,
// round(100 * completed / total). An empty bucket reports 0.
func (b Buckets) Progress() int {
	if len(b.Today) == 0 {
		return 0
	}
	completed := 0
	for _, todo := range b.Today {
		if todo.Completed {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(b.Today))))
}

// AllDone reports whether the today bucket is non-empty and fully
// completed. This is the celebration trigger.
func (b Buckets) AllDone() bool {
	if len(b.Today) == 0 {
		return false
	}
	for _, todo := range b.Today {
		if !todo.Completed {
			return false
		}
	}
	return true
}

// TogglePatch returns the update that toggling the completion control
// applies to a todo at the given time.
//
// For an overdue item the toggle re-dates it into today and forces
// completed=false: it moves back onto the active list rather than being
// marked done in the past. For everything else it flips Completed.
func TogglePatch(todo *model.Todo, now time.Time) model.TodoPatch {
	if Classify(todo, now) == StatusOverdue {
		createdAt := now
		completed := false
		return model.TodoPatch{
			CreatedAt: &createdAt,
			Completed: &completed,
		}
	}

	completed := !todo.Completed
	return model.TodoPatch{Completed: &completed}
}
