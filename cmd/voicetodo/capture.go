package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voicetodo/voicetodo/internal/audio"
	"github.com/voicetodo/voicetodo/internal/handler/dto"
)

var captureCmd = &cobra.Command{
	Use:   "capture <audio-file>",
	Short: "Turn a voice recording into todos",
	Long: `Turn a voice recording into todos.

Accepts a WAV file, or raw little-endian 32-bit float PCM samples
(any other extension) which are wrapped in a WAV container using the
--rate and --channels flags. The recording is sent through the server's
transcription pipeline and one todo is created per task it hears.`,
	Args: cobra.ExactArgs(1),
	RunE: runCapture,
}

var (
	captureRate     int
	captureChannels int
)

func init() {
	captureCmd.Flags().IntVar(&captureRate, "rate", 44100, "sample rate for raw PCM input")
	captureCmd.Flags().IntVar(&captureChannels, "channels", 1, "channel count for raw PCM input")
}

func runCapture(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	wav, err := loadRecording(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Transcribing...")

	ctx := context.Background()
	drafts, err := api.Transcribe(ctx, audio.EncodeDataURI(wav))
	if err != nil {
		return err
	}

	if len(drafts) == 0 {
		fmt.Println("No tasks found in the recording.")
		return nil
	}

	fmt.Printf("Created %d todo(s):\n", len(drafts))
	for _, draft := range drafts {
		todo, err := api.CreateTodo(ctx, dto.CreateTodoRequest{
			Title:         draft.Title,
			EstimatedTime: draft.EstimatedTime,
		})
		if err != nil {
			return fmt.Errorf("save %q: %w", draft.Title, err)
		}
		fmt.Printf("  %s  %s (%dm)\n", shortID(todo.ID), todo.Title, todo.EstimatedTime)
	}

	return nil
}

// loadRecording reads the audio file, wrapping raw PCM in a WAV
// container when needed.
func loadRecording(path string) ([]byte, error) {
	if strings.HasSuffix(strings.ToLower(path), ".wav") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read recording: %w", err)
		}
		return data, nil
	}

	samples, err := audio.ReadPCMFile(path)
	if err != nil {
		return nil, fmt.Errorf("read raw samples: %w", err)
	}

	wav, err := audio.EncodeWAV(samples, captureRate, captureChannels)
	if err != nil {
		return nil, fmt.Errorf("encode recording: %w", err)
	}
	return wav, nil
}
