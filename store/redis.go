package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-service/models"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses redisURL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisStore keeps visitor state as JSON under storefront:visitor:<id>.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) getKey(visitorID string) string {
	return fmt.Sprintf("storefront:visitor:%s", visitorID)
}

func (r *RedisStore) Load(ctx context.Context, visitorID string) (*models.VisitorState, error) {
	if visitorID == "" {
		return nil, ErrInvalidVisitorID
	}
	data, err := r.client.Get(ctx, r.getKey(visitorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &models.VisitorState{}, nil
	}
	if err != nil {
		return nil, err
	}

	var state models.VisitorState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode visitor state: %w", err)
	}
	return &state, nil
}

// Save writes state and refreshes the TTL.
func (r *RedisStore) Save(ctx context.Context, visitorID string, state *models.VisitorState) error {
	if visitorID == "" {
		return ErrInvalidVisitorID
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.getKey(visitorID), data, r.ttl).Err()
}
