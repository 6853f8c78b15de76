// Package redis persists cart state in a Redis instance, keyed per shopper
// device, for deployments where the storefront process has no durable disk.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cfshr/aur/internal/domain"
	"github.com/cfshr/aur/internal/storage"
	apperrors "github.com/cfshr/aur/pkg/errors"
)

// Storage implements storage.Storage using Redis.
type Storage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// New creates a Redis-backed cart storage scoped to the given device ID.
// Carts expire after ttl of inactivity; every Save refreshes the deadline.
func New(client *redis.Client, deviceID string, ttl time.Duration) *Storage {
	return &Storage{
		client: client,
		key:    storage.Key + ":" + deviceID,
		ttl:    ttl,
	}
}

// Load retrieves the cart state from Redis.
func (s *Storage) Load(ctx context.Context) (domain.Cart, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return domain.Cart{}, apperrors.NotFound("cart state", s.key)
		}
		return domain.Cart{}, fmt.Errorf("redis get cart state: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, apperrors.Corrupted("cart state in redis does not parse", err)
	}

	return cart, nil
}

// Save persists the cart state to Redis with the configured TTL.
func (s *Storage) Save(ctx context.Context, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart state: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart state: %w", err)
	}

	return nil
}

// Delete removes the cart state from Redis.
func (s *Storage) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del cart state: %w", err)
	}
	return nil
}
