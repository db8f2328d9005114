package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"ok_logs_info", http.StatusOK, "INFO"},
		{"client_error_logs_warn", http.StatusNotFound, "WARN"},
		{"server_error_logs_error", http.StatusInternalServerError, "ERROR"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("decode log entry: %v", err)
			}
			if entry["level"] != test.wantLevel {
				t.Errorf("expected level %s, got %v", test.wantLevel, entry["level"])
			}
			if entry["method"] != "GET" || entry["path"] != "/api/todos" {
				t.Errorf("unexpected request fields: %v", entry)
			}
			if int(entry["status_code"].(float64)) != test.status {
				t.Errorf("expected status %d, got %v", test.status, entry["status_code"])
			}
		})
	}
}

func TestLogger_DefaultsTo200(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	if int(entry["status_code"].(float64)) != http.StatusOK {
		t.Errorf("expected implicit 200, got %v", entry["status_code"])
	}
}
