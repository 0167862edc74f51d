// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/wneessen/weather-dashboard/internal/fault"
)

type cacheKey struct {
	Provider string
	Query    string
}

type cacheEntry struct {
	Location Location
	Found    bool
	Expiry   time.Time
}

// CachedGeocoder memoizes the results of another Geocoder. Matches are kept for ttlHit,
// queries without a match for ttlMiss. Other errors are never cached.
type CachedGeocoder struct {
	coder   Geocoder
	ttlHit  time.Duration
	ttlMiss time.Duration

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

func NewCachedGeocoder(coder Geocoder, ttlHit, ttlMiss time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		coder:   coder,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		cache:   make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedGeocoder) Name() string {
	return "geocoder cache using " + c.coder.Name()
}

func (c *CachedGeocoder) Search(ctx context.Context, query string) (Location, error) {
	key := newKey(c.coder.Name(), query)

	c.mu.RLock()
	entry, ok := c.cache[key]
	if ok && time.Now().Before(entry.Expiry) {
		c.mu.RUnlock()
		if !entry.Found {
			return Location{}, fault.ErrNotFound
		}
		loc := entry.Location
		loc.CacheHit = true
		return loc, nil
	}
	c.mu.RUnlock()

	loc, err := c.coder.Search(ctx, query)
	found := err == nil
	if err != nil && !errors.Is(err, fault.ErrNotFound) {
		return loc, err
	}

	c.mu.Lock()
	ttl := c.ttlHit
	if !found {
		ttl = c.ttlMiss
	}
	c.cache[key] = cacheEntry{
		Location: loc,
		Found:    found,
		Expiry:   time.Now().Add(ttl),
	}
	c.mu.Unlock()

	return loc, err
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func newKey(provider, query string) cacheKey {
	return cacheKey{
		Provider: provider,
		Query:    normalizeQuery(query),
	}
}
