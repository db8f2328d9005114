// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Cache / session store (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Public base URL of this server (OAuth redirect target)
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Speech and language model upstream (OpenAI-compatible)
	OpenAIAPIKey       string `env:"OPENAI_API_KEY,required"`
	OpenAIBaseURL      string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	TranscriptionModel string `env:"TRANSCRIPTION_MODEL" envDefault:"whisper-1"`
	ExtractionModel    string `env:"EXTRACTION_MODEL" envDefault:"gpt-3.5-turbo"`

	// Scratch directory for transient audio files; empty means os.TempDir.
	AudioScratchDir string `env:"AUDIO_SCRATCH_DIR" envDefault:""`

	// OAuth (Google OIDC)
	GoogleClientID     string        `env:"GOOGLE_CLIENT_ID,required"`
	GoogleClientSecret string        `env:"GOOGLE_CLIENT_SECRET,required"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting for the transcription pipeline (per user)
	RateLimitTranscribeEnabled bool `env:"RATE_LIMIT_TRANSCRIBE_ENABLED" envDefault:"true"`
	RateLimitTranscribeRPM     int  `env:"RATE_LIMIT_TRANSCRIBE_RPM" envDefault:"10"`
	RateLimitTranscribeBurst   int  `env:"RATE_LIMIT_TRANSCRIBE_BURST" envDefault:"3"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 16MB; audio uploads are large)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"16777216"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// OAuthRedirectURL returns the callback URL registered with the provider.
func (c *Config) OAuthRedirectURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/auth/callback"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
