// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Todo store metrics
	IncTodoCreated()
	IncTodoUpdated()
	IncTodoDeleted()

	// Voice pipeline metrics
	IncTranscription(status string) // status: "success", "invalid_input", "failed"
	IncExtraction(status string)    // status: "success", "bad_payload", "failed"
	ObservePipelineDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

// Metric status labels.
const (
	StatusSuccess      = "success"
	StatusInvalidInput = "invalid_input"
	StatusBadPayload   = "bad_payload"
	StatusFailed       = "failed"
)
