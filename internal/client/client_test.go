package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/voicetodo/voicetodo/internal/handler/dto"
)

func TestClient_ListTodos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/todos" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer vt_token" {
			t.Errorf("unexpected auth header: %s", auth)
		}
		json.NewEncoder(w).Encode([]dto.TodoResponse{
			{ID: "t1", Title: "First", EstimatedTime: 10},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "vt_token")

	todos, err := c.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("ListTodos failed: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != "t1" {
		t.Errorf("unexpected todos: %+v", todos)
	}
}

func TestClient_CreateTodo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Title != "Walk dog" || req.EstimatedTime != 20 {
			t.Errorf("unexpected request: %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(dto.TodoResponse{ID: "new", Title: req.Title, EstimatedTime: req.EstimatedTime})
	}))
	defer srv.Close()

	c := New(srv.URL, "vt_token")

	todo, err := c.CreateTodo(context.Background(), dto.CreateTodoRequest{Title: "Walk dog", EstimatedTime: 20})
	if err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}
	if todo.ID != "new" {
		t.Errorf("unexpected todo: %+v", todo)
	}
}

func TestClient_StructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "Todo not found", Code: "TODO_NOT_FOUND"})
	}))
	defer srv.Close()

	c := New(srv.URL, "vt_token")

	err := c.DeleteTodo(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "TODO_NOT_FOUND" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestClient_UnstructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream is down"))
	}))
	defer srv.Close()

	c := New(srv.URL, "vt_token")

	err := c.Logout(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "UNKNOWN" || apiErr.Message != "upstream is down" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestClient_SummaryTimezone(t *testing.T) {
	var gotTZ string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTZ = r.URL.Query().Get("tz")
		json.NewEncoder(w).Encode(dto.SummaryResponse{Progress: 100, AllDone: true})
	}))
	defer srv.Close()

	c := New(srv.URL, "vt_token")

	summary, err := c.Summary(context.Background(), "America/New_York")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if gotTZ != "America/New_York" {
		t.Errorf("unexpected tz: %s", gotTZ)
	}
	if !summary.AllDone {
		t.Error("expected allDone=true")
	}
}
