package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careerpath/advisor/internal/config"
)

// connectionTimeout is the timeout for verifying the Redis connection.
const connectionTimeout = 5 * time.Second

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// Store persists per-session history in Redis. Histories are small JSON
// blobs written whole; the TTL makes abandoned sessions disappear on
// their own.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a history store with the given TTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func historyKey(sessionID string) string {
	return "conversation:" + sessionID
}

// History loads the stored history for a session. An unknown session has
// an empty history, not an error.
func (s *Store) History(ctx context.Context, sessionID string) ([]Message, error) {
	raw, err := s.client.Get(ctx, historyKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load history for session %s: %w", sessionID, err)
	}

	var history []Message
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("failed to decode history for session %s: %w", sessionID, err)
	}
	return history, nil
}

// Save replaces the stored history for a session and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, history []Message) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode history for session %s: %w", sessionID, err)
	}

	if err := s.client.Set(ctx, historyKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save history for session %s: %w", sessionID, err)
	}
	return nil
}
