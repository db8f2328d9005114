package service

import (
	"context"
	"errors"
	"testing"

	"github.com/voicetodo/voicetodo/internal/model"
)

func TestCreateValidationErrors(t *testing.T) {
	// Validation happens before any store access
	svc := NewTodoService(nil, nil)

	tests := []struct {
		name    string
		input   CreateTodoInput
		wantErr error
	}{
		{
			name:    "empty_title",
			input:   CreateTodoInput{OwnerID: "u1", Title: "", EstimatedTime: 10},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "whitespace_title",
			input:   CreateTodoInput{OwnerID: "u1", Title: "   \t ", EstimatedTime: 10},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "zero_estimate",
			input:   CreateTodoInput{OwnerID: "u1", Title: "Walk dog", EstimatedTime: 0},
			wantErr: ErrInvalidEstimate,
		},
		{
			name:    "negative_estimate",
			input:   CreateTodoInput{OwnerID: "u1", Title: "Walk dog", EstimatedTime: -5},
			wantErr: ErrInvalidEstimate,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestUpdateValidationErrors(t *testing.T) {
	svc := NewTodoService(nil, nil)

	blank := "   "
	zero := 0

	tests := []struct {
		name    string
		patch   model.TodoPatch
		wantErr error
	}{
		{
			name:    "blank_title",
			patch:   model.TodoPatch{Title: &blank},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "zero_estimate",
			patch:   model.TodoPatch{EstimatedTime: &zero},
			wantErr: ErrInvalidEstimate,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), "id", "u1", test.patch)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}
