package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/voicetodo/voicetodo/internal/ai"
	"github.com/voicetodo/voicetodo/internal/auth"
	"github.com/voicetodo/voicetodo/internal/handler/dto"
	"github.com/voicetodo/voicetodo/internal/model"
	"github.com/voicetodo/voicetodo/internal/service"
)

// VoicePipeline runs the audio-to-task-drafts pipeline.
type VoicePipeline interface {
	ProcessAudio(ctx context.Context, dataURI string) (string, []model.TaskDraft, error)
}

// TranscribeHandler handles the voice capture endpoint. It runs the
// pipeline and returns the extracted task drafts; clients decide which
// drafts to persist via the todos endpoint.
type TranscribeHandler struct {
	voice  VoicePipeline
	logger *slog.Logger
}

// NewTranscribeHandler creates a new TranscribeHandler.
func NewTranscribeHandler(voice VoicePipeline, logger *slog.Logger) *TranscribeHandler {
	return &TranscribeHandler{
		voice:  voice,
		logger: logger,
	}
}

// Transcribe handles POST /api/transcribe.
// The response body is a bare JSON array of {title, estimatedTime}.
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	var req dto.TranscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	text, drafts, err := h.voice.ProcessAudio(r.Context(), req.Audio)
	if err != nil {
		h.handlePipelineError(w, err)
		return
	}
	if drafts == nil {
		drafts = []model.TaskDraft{}
	}

	h.logger.Info("voice_capture_completed",
		"user_id", identity.UserID,
		"transcript_chars", len(text),
		"task_count", len(drafts),
	)

	writeJSON(w, http.StatusOK, drafts)
}

// handlePipelineError maps pipeline errors to HTTP responses.
func (h *TranscribeHandler) handlePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAudio):
		writeError(w, http.StatusBadRequest, "INVALID_AUDIO", "Invalid audio format. Expected base64 audio data.")
	case errors.Is(err, ai.ErrAuth):
		h.logger.Error("upstream model rejected credentials", "error", err)
		writeError(w, http.StatusUnauthorized, "UPSTREAM_AUTH", "OpenAI API key is invalid or missing")
	case errors.Is(err, ai.ErrEmptyTranscript):
		writeError(w, http.StatusInternalServerError, "EMPTY_TRANSCRIPT", "No transcription received")
	case errors.Is(err, ai.ErrBadTaskPayload):
		h.logger.Error("extraction returned malformed payload", "error", err)
		writeError(w, http.StatusInternalServerError, "BAD_TASK_PAYLOAD", "Failed to parse task data")
	default:
		h.logger.Error("voice pipeline failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process audio")
	}
}
