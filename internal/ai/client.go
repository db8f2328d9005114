// Package ai provides the clients for the two external model calls in the
// voice pipeline: speech-to-text transcription and task extraction.
//
// Both calls hide behind narrow interfaces so the rest of the system can
// swap in deterministic fakes; Client is the real network implementation
// against an OpenAI-compatible API.
package ai

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

// HTTP client timeouts for upstream model calls. Transcription uploads
// are large and model latency is high, so the totals are generous but
// bounded: a dead upstream must not hang a request forever.
const (
	clientTimeout         = 120 * time.Second
	dialTimeout           = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 90 * time.Second
)

// Sentinel errors for upstream failures.
var (
	// ErrAuth indicates the upstream rejected our API credentials.
	ErrAuth = errors.New("ai: upstream rejected API credentials")
	// ErrEmptyTranscript indicates the transcription returned no text.
	ErrEmptyTranscript = errors.New("ai: no transcription received")
	// ErrBadTaskPayload indicates the extraction model's response does not
	// match the required JSON array of {title, estimatedTime} objects.
	ErrBadTaskPayload = errors.New("ai: invalid task data format")
)

// Client calls an OpenAI-compatible API over HTTP.
type Client struct {
	httpClient         *http.Client
	apiKey             string
	baseURL            string
	transcriptionModel string
	extractionModel    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at a different API root,
// e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithModels overrides the transcription and extraction model names.
func WithModels(transcription, extraction string) Option {
	return func(c *Client) {
		if transcription != "" {
			c.transcriptionModel = transcription
		}
		if extraction != "" {
			c.extractionModel = extraction
		}
	}
}

// NewClient creates a Client authenticated with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:         newHTTPClient(),
		apiKey:             apiKey,
		baseURL:            "https://api.openai.com/v1",
		transcriptionModel: "whisper-1",
		extractionModel:    "gpt-3.5-turbo",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newHTTPClient creates an HTTP client configured for model API calls.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: clientTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}
