package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// chatCompletion builds the upstream chat response wrapping content.
func chatCompletion(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
}

func TestExtractTasks(t *testing.T) {
	var gotRequest chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`[
			{"title": "Buy groceries", "estimatedTime": 30},
			{"title": "Call mom", "estimatedTime": 15}
		]`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithModels("whisper-1", "gpt-3.5-turbo"))

	drafts, err := client.ExtractTasks(context.Background(), "buy groceries and call mom")
	if err != nil {
		t.Fatalf("ExtractTasks failed: %v", err)
	}

	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].Title != "Buy groceries" || drafts[0].EstimatedTime != 30 {
		t.Errorf("unexpected first draft: %+v", drafts[0])
	}
	if drafts[1].Title != "Call mom" || drafts[1].EstimatedTime != 15 {
		t.Errorf("unexpected second draft: %+v", drafts[1])
	}

	if gotRequest.Model != "gpt-3.5-turbo" {
		t.Errorf("unexpected model: %s", gotRequest.Model)
	}
	if len(gotRequest.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(gotRequest.Messages))
	}
	if gotRequest.Messages[0].Role != "system" {
		t.Errorf("expected system message first, got %s", gotRequest.Messages[0].Role)
	}
	if gotRequest.Messages[1].Content != "buy groceries and call mom" {
		t.Errorf("unexpected user message: %s", gotRequest.Messages[1].Content)
	}
}

func TestExtractTasks_UpstreamAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))

	_, err := client.ExtractTasks(context.Background(), "some text")
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestExtractTasks_MalformedCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("I couldn't find any tasks, sorry!"))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := client.ExtractTasks(context.Background(), "some text")
	if !errors.Is(err, ErrBadTaskPayload) {
		t.Fatalf("expected ErrBadTaskPayload, got %v", err)
	}
}

func TestParseTaskPayload(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		wantLen int
	}{
		{
			name:    "valid_array",
			content: `[{"title": "A", "estimatedTime": 5}]`,
			wantLen: 1,
		},
		{
			name:    "valid_with_whitespace",
			content: "\n  [{\"title\": \"A\", \"estimatedTime\": 5}]  \n",
			wantLen: 1,
		},
		{
			name:    "empty_array",
			content: `[]`,
			wantLen: 0,
		},
		{
			name:    "not_an_array",
			content: `{"title": "A", "estimatedTime": 5}`,
			wantErr: true,
		},
		{
			name:    "prose",
			content: `Here are your tasks: buy milk`,
			wantErr: true,
		},
		{
			name:    "missing_title",
			content: `[{"estimatedTime": 5}]`,
			wantErr: true,
		},
		{
			name:    "blank_title",
			content: `[{"title": "   ", "estimatedTime": 5}]`,
			wantErr: true,
		},
		{
			name:    "missing_estimate",
			content: `[{"title": "A"}]`,
			wantErr: true,
		},
		{
			name:    "negative_estimate",
			content: `[{"title": "A", "estimatedTime": -5}]`,
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			drafts, err := ParseTaskPayload(test.content)
			if test.wantErr {
				if !errors.Is(err, ErrBadTaskPayload) {
					t.Fatalf("expected ErrBadTaskPayload, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(drafts) != test.wantLen {
				t.Fatalf("expected %d drafts, got %d", test.wantLen, len(drafts))
			}
		})
	}
}
