package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/go-redis/redis/v8"
)

const (
	settingsKey        = "settings:current"
	revokedTokenPrefix = "auth:revoked:"
)

var ErrCacheMiss = errors.New("cache miss")

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Settings cache

func (c *Client) CacheSettings(ctx context.Context, setting *models.Setting, ttl time.Duration) error {
	data, err := json.Marshal(setting)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return c.rdb.Set(ctx, settingsKey, data, ttl).Err()
}

func (c *Client) GetCachedSettings(ctx context.Context) (*models.Setting, error) {
	val, err := c.rdb.Get(ctx, settingsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached settings: %w", err)
	}

	var setting models.Setting
	if err := json.Unmarshal([]byte(val), &setting); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached settings: %w", err)
	}
	return &setting, nil
}

func (c *Client) InvalidateSettings(ctx context.Context) error {
	return c.rdb.Del(ctx, settingsKey).Err()
}

// Revoked token store. A logged-out token's id is held until its natural
// expiry, after which redis drops it.

func (c *Client) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err()
}

func (c *Client) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, err := c.rdb.Get(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}
