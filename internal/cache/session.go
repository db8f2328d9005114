package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voicetodo/voicetodo/internal/model"
)

const (
	// sessionPrefix is the Redis key prefix for session records.
	sessionPrefix = "session:"
	// oauthStatePrefix is the Redis key prefix for pending OAuth states.
	oauthStatePrefix = "oauth:state:"
	// oauthStateTTL bounds how long a login redirect stays valid.
	oauthStateTTL = 10 * time.Minute
)

// SetSession stores a session under the hashed token with the given TTL.
// Sessions live only in Redis; expiry is handled entirely by the TTL.
func (c *Cache) SetSession(ctx context.Context, tokenHash string, session *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return c.client.Set(ctx, sessionPrefix+tokenHash, data, ttl).Err()
}

// GetSession retrieves a session by hashed token.
// Returns (nil, nil) if not found (expired or never issued). A Redis
// failure is returned as an error so callers can tell an outage apart
// from an invalid token.
func (c *Cache) GetSession(ctx context.Context, tokenHash string) (*model.Session, error) {
	data, err := c.client.Get(ctx, sessionPrefix+tokenHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		// Corrupted entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &session, nil
}

// DeleteSession removes a session. Used on logout.
func (c *Cache) DeleteSession(ctx context.Context, tokenHash string) error {
	return c.client.Del(ctx, sessionPrefix+tokenHash).Err()
}

// SetOAuthState records a pending OAuth state parameter.
func (c *Cache) SetOAuthState(ctx context.Context, state string) error {
	return c.client.Set(ctx, oauthStatePrefix+state, "1", oauthStateTTL).Err()
}

// ConsumeOAuthState checks and deletes an OAuth state in one step so each
// state is usable exactly once.
func (c *Cache) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	n, err := c.client.Del(ctx, oauthStatePrefix+state).Result()
	if err != nil {
		return false, fmt.Errorf("consume oauth state: %w", err)
	}
	return n > 0, nil
}
