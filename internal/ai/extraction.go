package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/voicetodo/voicetodo/internal/model"
)

// Extractor turns free-form transcribed text into discrete task drafts.
type Extractor interface {
	ExtractTasks(ctx context.Context, text string) ([]model.TaskDraft, error)
}

// extractionSystemPrompt is the fixed instruction for the extraction model.
// The model is the sole source of truth for segmentation and estimates;
// the contract is only the shape of its JSON reply.
const extractionSystemPrompt = `You are a task extraction assistant. When given text input in any language, first translate it to English if needed, then identify and separate distinct tasks and estimate time for each.
Return a JSON array of tasks in English, where each task has a title and estimatedTime in minutes.
Example input: "Buy groceries, call mom, and finish report"
Example output: [
  {"title": "Buy groceries", "estimatedTime": 30},
  {"title": "Call mom", "estimatedTime": 15},
  {"title": "Finish report", "estimatedTime": 60}
]`

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ExtractTasks sends the transcribed text to the extraction model and
// parses its reply into task drafts.
//
// The reply must be a JSON array where every element carries a non-empty
// title and a positive estimatedTime; anything else fails with
// ErrBadTaskPayload. There is deliberately no fallback parser.
func (c *Client) ExtractTasks(ctx context.Context, text string) ([]model.TaskDraft, error) {
	reqBody := chatRequest{
		Model: c.extractionModel,
		Messages: []chatMessage{
			{Role: "system", Content: extractionSystemPrompt},
			{Role: "user", Content: text},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrBadTaskPayload)
	}

	return ParseTaskPayload(parsed.Choices[0].Message.Content)
}

// ParseTaskPayload validates and decodes the extraction model's reply.
func ParseTaskPayload(content string) ([]model.TaskDraft, error) {
	var drafts []model.TaskDraft
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &drafts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTaskPayload, err)
	}

	for i, draft := range drafts {
		if strings.TrimSpace(draft.Title) == "" {
			return nil, fmt.Errorf("%w: task %d has no title", ErrBadTaskPayload, i)
		}
		if draft.EstimatedTime <= 0 {
			return nil, fmt.Errorf("%w: task %d has no time estimate", ErrBadTaskPayload, i)
		}
	}

	return drafts, nil
}
