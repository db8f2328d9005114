package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/voicetodo/voicetodo/internal/ai"
	"github.com/voicetodo/voicetodo/internal/audio"
	"github.com/voicetodo/voicetodo/internal/metrics"
	"github.com/voicetodo/voicetodo/internal/model"
)

// ErrInvalidAudio indicates the request payload is not a usable base64
// audio data URI.
var ErrInvalidAudio = errors.New("invalid audio format. Expected base64 audio data")

// VoiceService runs the voice pipeline: decode the uploaded audio, hand
// it to the transcription model, then hand the transcript to the
// extraction model. The only resource it manages is the transient audio
// file, which is removed on every exit path.
type VoiceService struct {
	transcriber ai.Transcriber
	extractor   ai.Extractor
	scratchDir  string
	metrics     metrics.Recorder
}

// NewVoiceService creates a VoiceService. An empty scratchDir falls back
// to the system temp directory.
func NewVoiceService(transcriber ai.Transcriber, extractor ai.Extractor, scratchDir string, recorder metrics.Recorder) *VoiceService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &VoiceService{
		transcriber: transcriber,
		extractor:   extractor,
		scratchDir:  scratchDir,
		metrics:     recorder,
	}
}

// ProcessAudio turns an uploaded audio data URI into a transcript and
// task drafts.
//
// The MIME prefix check happens before any decoding; rejected payloads
// never reach the upstream models.
func (s *VoiceService) ProcessAudio(ctx context.Context, dataURI string) (string, []model.TaskDraft, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObservePipelineDuration(time.Since(start))
	}()

	data, err := audio.DecodeDataURI(dataURI)
	if err != nil {
		s.metrics.IncTranscription(metrics.StatusInvalidInput)
		return "", nil, ErrInvalidAudio
	}

	audioPath, cleanup, err := s.writeScratchFile(data)
	if err != nil {
		s.metrics.IncTranscription(metrics.StatusFailed)
		return "", nil, err
	}
	defer cleanup()

	text, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		s.metrics.IncTranscription(metrics.StatusFailed)
		return "", nil, fmt.Errorf("transcription failed: %w", err)
	}
	s.metrics.IncTranscription(metrics.StatusSuccess)

	drafts, err := s.extractor.ExtractTasks(ctx, text)
	if err != nil {
		if errors.Is(err, ai.ErrBadTaskPayload) {
			s.metrics.IncExtraction(metrics.StatusBadPayload)
		} else {
			s.metrics.IncExtraction(metrics.StatusFailed)
		}
		return "", nil, fmt.Errorf("task extraction failed: %w", err)
	}
	s.metrics.IncExtraction(metrics.StatusSuccess)

	return text, drafts, nil
}

// writeScratchFile persists the decoded audio to a temp file and returns
// its path plus a cleanup func that always removes it.
func (s *VoiceService) writeScratchFile(data []byte) (string, func(), error) {
	f, err := os.CreateTemp(s.scratchDir, "audio-*.wav")
	if err != nil {
		return "", nil, fmt.Errorf("create scratch file: %w", err)
	}

	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close scratch file: %w", err)
	}

	return path, cleanup, nil
}
