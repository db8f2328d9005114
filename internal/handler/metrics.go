package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/voicetodo/voicetodo/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "voicetodo_todos_created_total %d\n", snap.TodosCreated)
	writeMetric(w, "voicetodo_todos_updated_total %d\n", snap.TodosUpdated)
	writeMetric(w, "voicetodo_todos_deleted_total %d\n", snap.TodosDeleted)

	writeLabeledCounters(w, "voicetodo_transcriptions_total", snap.Transcriptions)
	writeLabeledCounters(w, "voicetodo_extractions_total", snap.Extractions)

	writeMetric(w, "voicetodo_pipeline_duration_seconds_count %d\n", snap.PipelineDurationCount)
	writeMetric(w, "voicetodo_pipeline_duration_seconds_sum %.6f\n", float64(snap.PipelineDurationTotalNs)/1e9)
}

// writeLabeledCounters emits one line per status label in a stable order.
func writeLabeledCounters(w http.ResponseWriter, name string, counters map[string]uint64) {
	statuses := make([]string, 0, len(counters))
	for status := range counters {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	for _, status := range statuses {
		writeMetric(w, "%s{status=%q} %d\n", name, status, counters[status])
	}
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
