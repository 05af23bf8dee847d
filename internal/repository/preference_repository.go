package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/noah-isme/planify-web/pkg/errors"
)

// PreferenceRepository keeps per-user UI preferences in a Redis hash.
type PreferenceRepository struct {
	client *redis.Client
}

// NewPreferenceRepository constructs the repository; a nil client stores nothing.
func NewPreferenceRepository(client *redis.Client) *PreferenceRepository {
	return &PreferenceRepository{client: client}
}

func preferenceKey(userID int64) string {
	return fmt.Sprintf("%sprefs:%d", keyPrefix, userID)
}

// Get returns one preference or ErrCacheMiss.
func (r *PreferenceRepository) Get(ctx context.Context, userID int64, name string) (string, error) {
	if r.client == nil {
		return "", appErrors.ErrCacheMiss
	}
	value, err := r.client.HGet(ctx, preferenceKey(userID), name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", appErrors.ErrCacheMiss
		}
		return "", fmt.Errorf("redis hget %s: %w", name, err)
	}
	return value, nil
}

// Set stores one preference.
func (r *PreferenceRepository) Set(ctx context.Context, userID int64, name, value string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.HSet(ctx, preferenceKey(userID), name, value).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", name, err)
	}
	return nil
}
