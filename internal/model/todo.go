// Package model defines domain entities for the application.
package model

import "time"

// Todo represents a single task owned by exactly one user.
//
// SortOrder defines the manual sort position among a user's todos. It is
// not guaranteed contiguous or unique; it is a display hint for drag
// reordering, not a correctness-critical index.
type Todo struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Title         string    `json:"title"`
	EstimatedTime int       `json:"estimatedTime"` // minutes
	Completed     bool      `json:"completed"`
	SortOrder     int       `json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TaskDraft is a task proposed by the extraction model before it is
// persisted as a Todo.
type TaskDraft struct {
	Title         string `json:"title"`
	EstimatedTime int    `json:"estimatedTime"` // minutes
}

// TodoPatch describes a partial update to a todo. Nil fields are left
// unchanged. UpdatedAt is always refreshed by the store.
type TodoPatch struct {
	Title         *string
	EstimatedTime *int
	Completed     *bool
	SortOrder     *int
	CreatedAt     *time.Time
}
