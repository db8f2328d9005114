// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/voicetodo/voicetodo/internal/model"
	"github.com/voicetodo/voicetodo/internal/schedule"
)

// CreateTodoRequest represents the request body for creating a todo.
type CreateTodoRequest struct {
	Title         string     `json:"title"`
	EstimatedTime int        `json:"estimatedTime"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// UpdateTodoRequest represents the request body for updating a todo.
// All fields are optional; only present fields are applied.
type UpdateTodoRequest struct {
	Title         *string    `json:"title,omitempty"`
	EstimatedTime *int       `json:"estimatedTime,omitempty"`
	Completed     *bool      `json:"completed,omitempty"`
	Order         *int       `json:"order,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// TodoResponse represents a todo in API responses.
type TodoResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	EstimatedTime int       `json:"estimatedTime"`
	Completed     bool      `json:"completed"`
	Order         int       `json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}


// SummaryResponse partitions the list into today's tasks and overdue
// tasks and reports completion progress for today.
type SummaryResponse struct {
	Today    []TodoResponse `json:"today"`
	Overdue  []TodoResponse `json:"overdue"`
	Progress int            `json:"progress"`
	AllDone  bool           `json:"allDone"`
}

// TranscribeRequest represents the request body for the voice pipeline.
// Audio is a base64 data URI ("data:audio/wav;base64,...").
type TranscribeRequest struct {
	Audio string `json:"audio"`
}

// StatusResponse acknowledges an operation with no payload.
type StatusResponse struct {
	Status string `json:"status"`
}

// UserResponse represents the authenticated user's profile.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// LoginResponse carries the session token issued after OAuth completes.
// The token is shown exactly once; only its hash is stored server-side.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToTodoResponse converts a Todo model to TodoResponse DTO.
func ToTodoResponse(todo *model.Todo) *TodoResponse {
	return &TodoResponse{
		ID:            todo.ID,
		Title:         todo.Title,
		EstimatedTime: todo.EstimatedTime,
		Completed:     todo.Completed,
		Order:         todo.SortOrder,
		CreatedAt:     todo.CreatedAt,
		UpdatedAt:     todo.UpdatedAt,
	}
}

// ToTodoResponses converts a slice of Todo models. The result is never
// nil, so an empty list serializes as [] rather than null.
func ToTodoResponses(todos []*model.Todo) []TodoResponse {
	responses := make([]TodoResponse, len(todos))
	for i, todo := range todos {
		responses[i] = *ToTodoResponse(todo)
	}
	return responses
}

// ToSummaryResponse converts schedule buckets to a SummaryResponse.
func ToSummaryResponse(buckets schedule.Buckets) *SummaryResponse {
	return &SummaryResponse{
		Today:    ToTodoResponses(buckets.Today),
		Overdue:  ToTodoResponses(buckets.Overdue),
		Progress: buckets.Progress(),
		AllDone:  buckets.AllDone(),
	}
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Image: user.Image,
	}
}
