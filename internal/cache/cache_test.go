// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"testing/synctest"
	"time"

	"github.com/wneessen/weather-dashboard/internal/kvstore"
	"github.com/wneessen/weather-dashboard/internal/logger"
)

const testPayload = `{"coord":{"lon":13.4105,"lat":52.5244},"main":{"temp":21.3}}`

func testCache(t *testing.T, store kvstore.Store) *Cache {
	t.Helper()
	c, err := New(store, DefaultTTL, logger.NewLogger(slog.LevelDebug, io.Discard))
	if err != nil {
		t.Fatalf("failed to create cache: %s", err)
	}
	return c
}

func TestNew(t *testing.T) {
	t.Run("new cache without store fails", func(t *testing.T) {
		if _, err := New(nil, DefaultTTL, logger.New(slog.LevelInfo)); err == nil {
			t.Error("expected cache creation to fail")
		}
	})
	t.Run("new cache without logger fails", func(t *testing.T) {
		if _, err := New(kvstore.NewMemory(), DefaultTTL, nil); err == nil {
			t.Error("expected cache creation to fail")
		}
	})
	t.Run("non-positive ttl falls back to the default", func(t *testing.T) {
		c, err := New(kvstore.NewMemory(), 0, logger.New(slog.LevelInfo))
		if err != nil {
			t.Fatalf("failed to create cache: %s", err)
		}
		if c.TTL() != DefaultTTL {
			t.Errorf("expected ttl to be %s, got %s", DefaultTTL, c.TTL())
		}
	})
}

func TestCache_SaveLoad(t *testing.T) {
	t.Run("saved payload is returned within the ttl", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			c := testCache(t, kvstore.NewMemory())
			if err := c.Save(t.Context(), []byte(testPayload)); err != nil {
				t.Fatalf("failed to save payload: %s", err)
			}
			time.Sleep(DefaultTTL - time.Second)
			data, ok := c.Load(t.Context())
			if !ok {
				t.Fatal("expected cached payload to be present")
			}
			if string(data) != testPayload {
				t.Errorf("expected payload %s, got %s", testPayload, data)
			}
		})
	})
	t.Run("payload is still returned exactly at the ttl", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			c := testCache(t, kvstore.NewMemory())
			if err := c.Save(t.Context(), []byte(testPayload)); err != nil {
				t.Fatalf("failed to save payload: %s", err)
			}
			time.Sleep(DefaultTTL)
			if _, ok := c.Load(t.Context()); !ok {
				t.Error("expected cached payload to be present at the ttl boundary")
			}
		})
	})
	t.Run("expired payload is absent and evicted", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			store := kvstore.NewMemory()
			c := testCache(t, store)
			if err := c.Save(t.Context(), []byte(testPayload)); err != nil {
				t.Fatalf("failed to save payload: %s", err)
			}
			time.Sleep(DefaultTTL + time.Millisecond*500)
			if _, ok := c.Load(t.Context()); ok {
				t.Error("expected expired payload to be absent")
			}
			if _, ok, _ := store.Get(t.Context(), Key); ok {
				t.Error("expected expired entry to be evicted")
			}
		})
	})
	t.Run("save overwrites the previous entry", func(t *testing.T) {
		c := testCache(t, kvstore.NewMemory())
		if err := c.Save(t.Context(), []byte(`{"first":true}`)); err != nil {
			t.Fatalf("failed to save payload: %s", err)
		}
		if err := c.Save(t.Context(), []byte(`{"second":true}`)); err != nil {
			t.Fatalf("failed to save payload: %s", err)
		}
		data, ok := c.Load(t.Context())
		if !ok {
			t.Fatal("expected cached payload to be present")
		}
		if string(data) != `{"second":true}` {
			t.Errorf("expected the second payload, got %s", data)
		}
	})
	t.Run("an empty cache is a miss", func(t *testing.T) {
		c := testCache(t, kvstore.NewMemory())
		if _, ok := c.Load(t.Context()); ok {
			t.Error("expected empty cache to be a miss")
		}
	})
	t.Run("invalid payloads are rejected", func(t *testing.T) {
		c := testCache(t, kvstore.NewMemory())
		if err := c.Save(t.Context(), []byte("{broken")); !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("expected error to be %s, got %v", ErrInvalidPayload, err)
		}
	})
}

func TestCache_MalformedEntries(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "definitely not json"},
		{"missing data", `{"timestamp":1700000000000}`},
		{"wrong types", `{"timestamp":"yesterday","data":{}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := kvstore.NewMemory()
			if err := store.Set(t.Context(), Key, tc.raw, 0); err != nil {
				t.Fatalf("failed to seed store: %s", err)
			}
			c := testCache(t, store)
			if _, ok := c.Load(t.Context()); ok {
				t.Error("expected malformed entry to be a miss")
			}
			if _, ok, _ := store.Get(t.Context(), Key); ok {
				t.Error("expected malformed entry to be evicted")
			}
		})
	}
}

type failingStore struct {
	kvstore.Memory
}

func (f *failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("intentionally failing")
}

func (f *failingStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("intentionally failing")
}

func TestCache_StoreErrors(t *testing.T) {
	c := testCache(t, &failingStore{})
	if err := c.Save(t.Context(), []byte(testPayload)); err == nil {
		t.Error("expected save to fail")
	}
	if _, ok := c.Load(t.Context()); ok {
		t.Error("expected failing store to be a miss")
	}
}
