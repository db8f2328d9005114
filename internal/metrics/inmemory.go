package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	TodosCreated            uint64
	TodosUpdated            uint64
	TodosDeleted            uint64
	Transcriptions          map[string]uint64
	Extractions             map[string]uint64
	PipelineDurationCount   uint64
	PipelineDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	todosCreated            uint64
	todosUpdated            uint64
	todosDeleted            uint64
	pipelineDurationCount   uint64
	pipelineDurationTotalNs int64

	mu             sync.Mutex
	transcriptions map[string]uint64
	extractions    map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		transcriptions: make(map[string]uint64),
		extractions:    make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	transcriptions := make(map[string]uint64, len(m.transcriptions))
	for k, v := range m.transcriptions {
		transcriptions[k] = v
	}
	extractions := make(map[string]uint64, len(m.extractions))
	for k, v := range m.extractions {
		extractions[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		TodosCreated:            atomic.LoadUint64(&m.todosCreated),
		TodosUpdated:            atomic.LoadUint64(&m.todosUpdated),
		TodosDeleted:            atomic.LoadUint64(&m.todosDeleted),
		Transcriptions:          transcriptions,
		Extractions:             extractions,
		PipelineDurationCount:   atomic.LoadUint64(&m.pipelineDurationCount),
		PipelineDurationTotalNs: atomic.LoadInt64(&m.pipelineDurationTotalNs),
	}
}

// IncTodoCreated increments the created counter.
func (m *InMemoryRecorder) IncTodoCreated() {
	atomic.AddUint64(&m.todosCreated, 1)
}

// IncTodoUpdated increments the updated counter.
func (m *InMemoryRecorder) IncTodoUpdated() {
	atomic.AddUint64(&m.todosUpdated, 1)
}

// IncTodoDeleted increments the deleted counter.
func (m *InMemoryRecorder) IncTodoDeleted() {
	atomic.AddUint64(&m.todosDeleted, 1)
}

// IncTranscription increments the transcription counter for a status.
func (m *InMemoryRecorder) IncTranscription(status string) {
	m.mu.Lock()
	m.transcriptions[status]++
	m.mu.Unlock()
}

// IncExtraction increments the extraction counter for a status.
func (m *InMemoryRecorder) IncExtraction(status string) {
	m.mu.Lock()
	m.extractions[status]++
	m.mu.Unlock()
}

// ObservePipelineDuration records a voice pipeline duration.
func (m *InMemoryRecorder) ObservePipelineDuration(duration time.Duration) {
	atomic.AddUint64(&m.pipelineDurationCount, 1)
	atomic.AddInt64(&m.pipelineDurationTotalNs, duration.Nanoseconds())
}
