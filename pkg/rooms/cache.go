package rooms

import (
	"context"
	"encoding/json"
	"time"

	"github.com/caremesh/hospital/pkg/common/logger"
	"github.com/redis/go-redis/v9"
)

const availableRoomsKey = "rooms:available"

// Cache keeps the available-room listing in Redis. The room board on the
// front end polls it constantly; every claim, release or status change
// invalidates the key. A nil Cache (or nil client) disables caching.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) GetAvailable(ctx context.Context) ([]Room, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, availableRoomsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var rooms []Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, false
	}
	return rooms, true
}

func (c *Cache) SetAvailable(ctx context.Context, rooms []Room) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(rooms)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, availableRoomsKey, data, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).Warn("failed to cache available rooms")
	}
}

func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, availableRoomsKey).Err(); err != nil {
		logger.Log.WithError(err).Warn("failed to invalidate room cache")
	}
}
