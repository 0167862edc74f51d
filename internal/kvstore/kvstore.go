// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package kvstore provides the small string key-value stores that back the weather
// cache and the persisted user preferences.
package kvstore

import (
	"context"
	"time"
)

// Store is a string key-value store. A ttl of zero means the value does not expire.
type Store interface {
	Name() string
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type entry struct {
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitzero"`
}

func newEntry(value string, ttl time.Duration) entry {
	e := entry{Value: value}
	if ttl > 0 {
		e.Expires = time.Now().Add(ttl)
	}
	return e
}

func (e entry) expired() bool {
	return !e.Expires.IsZero() && !time.Now().Before(e.Expires)
}
