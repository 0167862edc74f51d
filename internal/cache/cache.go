// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package cache implements the single-slot weather cache. The slot holds the raw payload
// of the last current-conditions response together with the time it was stored.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/weather-dashboard/internal/kvstore"
	"github.com/wneessen/weather-dashboard/internal/logger"
)

const (
	// Key is the store key of the cache slot.
	Key = "weatherCache"

	// DefaultTTL is the time after which a cached payload is no longer returned.
	DefaultTTL = time.Minute * 10

	// storeGrace lets the backing store keep the entry a little longer than the TTL, so
	// the timestamp check below decides about expiry.
	storeGrace = time.Second
)

var ErrInvalidPayload = errors.New("cache payload must be valid JSON")

type entry struct {
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

type Cache struct {
	store  kvstore.Store
	ttl    time.Duration
	logger *logger.Logger
}

func New(store kvstore.Store, ttl time.Duration, log *logger.Logger) (*Cache, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: store, ttl: ttl, logger: log}, nil
}

// TTL returns the configured time-to-live of the cache slot.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Save stores payload with the current timestamp, replacing any previous entry.
func (c *Cache) Save(ctx context.Context, payload []byte) error {
	if !json.Valid(payload) {
		return ErrInvalidPayload
	}
	raw, err := json.Marshal(entry{Timestamp: time.Now().UnixMilli(), Data: payload})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err = c.store.Set(ctx, Key, string(raw), c.ttl+storeGrace); err != nil {
		return fmt.Errorf("failed to save cache entry: %w", err)
	}
	return nil
}

// Load returns the cached payload if it is not older than the TTL. Expired or
// unreadable entries are evicted and reported as a miss.
func (c *Cache) Load(ctx context.Context) ([]byte, bool) {
	raw, ok, err := c.store.Get(ctx, Key)
	if err != nil {
		c.logger.Warn("failed to read weather cache", logger.Err(err), slog.String("store", c.store.Name()))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var cached entry
	if err = json.Unmarshal([]byte(raw), &cached); err != nil || len(cached.Data) == 0 {
		c.logger.Debug("evicting malformed weather cache entry")
		c.evict(ctx)
		return nil, false
	}

	age := time.Since(time.UnixMilli(cached.Timestamp))
	if age > c.ttl {
		c.logger.Debug("evicting expired weather cache entry", slog.Duration("age", age))
		c.evict(ctx)
		return nil, false
	}
	return cached.Data, true
}

func (c *Cache) evict(ctx context.Context) {
	if err := c.store.Delete(ctx, Key); err != nil {
		c.logger.Warn("failed to evict weather cache entry", logger.Err(err))
	}
}
