package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncTodoCreated is a no-op.
func (n *NoopRecorder) IncTodoCreated() {}

// IncTodoUpdated is a no-op.
func (n *NoopRecorder) IncTodoUpdated() {}

// IncTodoDeleted is a no-op.
func (n *NoopRecorder) IncTodoDeleted() {}

// IncTranscription is a no-op.
func (n *NoopRecorder) IncTranscription(status string) {}

// IncExtraction is a no-op.
func (n *NoopRecorder) IncExtraction(status string) {}

// ObservePipelineDuration is a no-op.
func (n *NoopRecorder) ObservePipelineDuration(duration time.Duration) {}
