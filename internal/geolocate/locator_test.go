// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geolocate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"testing/synctest"
	"time"

	"github.com/wneessen/weather-dashboard/internal/logger"
)

type mockProvider struct {
	name  string
	delay time.Duration
	coord Coordinate
	err   error
	panic bool
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Locate(ctx context.Context) (Coordinate, error) {
	if m.panic {
		panic("intentionally panicking")
	}
	select {
	case <-ctx.Done():
		return Coordinate{}, ctx.Err()
	case <-time.After(m.delay):
	}
	return m.coord, m.err
}

func testLocator(t *testing.T, timeout time.Duration, providers ...Provider) *Locator {
	t.Helper()
	locator, err := NewLocator(providers, timeout, logger.NewLogger(slog.LevelDebug, io.Discard))
	if err != nil {
		t.Fatalf("failed to create locator: %s", err)
	}
	return locator
}

func TestNewLocator(t *testing.T) {
	t.Run("a locator without providers fails", func(t *testing.T) {
		_, err := NewLocator(nil, time.Second, logger.New(slog.LevelInfo))
		if !errors.Is(err, ErrNoProviders) {
			t.Errorf("expected error to be %s, got %v", ErrNoProviders, err)
		}
	})
	t.Run("a locator without logger fails", func(t *testing.T) {
		if _, err := NewLocator([]Provider{&mockProvider{name: "a"}}, time.Second, nil); err == nil {
			t.Error("expected locator creation to fail")
		}
	})
	t.Run("a non-positive timeout falls back to the default", func(t *testing.T) {
		locator := testLocator(t, 0, &mockProvider{name: "a"})
		if locator.timeout != DefaultTimeout {
			t.Errorf("expected timeout to be %s, got %s", DefaultTimeout, locator.timeout)
		}
		if names := locator.Providers(); len(names) != 1 || names[0] != "a" {
			t.Errorf("unexpected provider names: %v", names)
		}
	})
}

func TestLocator_Locate(t *testing.T) {
	t.Run("the most accurate result wins", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			locator := testLocator(t, time.Second*10,
				&mockProvider{name: "geoip", delay: time.Second, coord: Coordinate{Lat: 52, Lon: 13, Acc: AccuracyCity}},
				&mockProvider{name: "ichnaea", delay: time.Second * 2, coord: Coordinate{Lat: 52.52, Lon: 13.40, Acc: 120}},
				&mockProvider{name: "file", delay: time.Millisecond, err: errors.New("no file")},
			)
			coord, err := locator.Locate(t.Context())
			if err != nil {
				t.Fatalf("failed to locate device: %s", err)
			}
			if coord.Source != "ichnaea" {
				t.Errorf("expected source to be ichnaea, got %s", coord.Source)
			}
			if coord.Acc != 120 {
				t.Errorf("expected accuracy to be 120, got %f", coord.Acc)
			}
		})
	})
	t.Run("a precise result returns early", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			locator := testLocator(t, time.Second*10,
				&mockProvider{name: "gpsd", delay: time.Second, coord: Coordinate{Lat: 52.52, Lon: 13.40, Acc: 5}},
				&mockProvider{name: "slow", delay: time.Second * 8, coord: Coordinate{Lat: 1, Lon: 1, Acc: 1}},
			)
			start := time.Now()
			coord, err := locator.Locate(t.Context())
			if err != nil {
				t.Fatalf("failed to locate device: %s", err)
			}
			if coord.Source != "gpsd" {
				t.Errorf("expected source to be gpsd, got %s", coord.Source)
			}
			if elapsed := time.Since(start); elapsed != time.Second {
				t.Errorf("expected lookup to return after 1s, took %s", elapsed)
			}
		})
	})
	t.Run("results after the timeout are ignored", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			locator := testLocator(t, time.Second*10,
				&mockProvider{name: "geoip", delay: time.Second, coord: Coordinate{Lat: 52, Lon: 13, Acc: AccuracyCity}},
				&mockProvider{name: "slow", delay: time.Second * 20, coord: Coordinate{Lat: 1, Lon: 1, Acc: 1}},
			)
			coord, err := locator.Locate(t.Context())
			if err != nil {
				t.Fatalf("failed to locate device: %s", err)
			}
			if coord.Source != "geoip" {
				t.Errorf("expected source to be geoip, got %s", coord.Source)
			}
		})
	})
	t.Run("failing providers yield an error", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			locator := testLocator(t, time.Second*10,
				&mockProvider{name: "a", err: errors.New("intentionally failing")},
				&mockProvider{name: "b", coord: Coordinate{Lat: 100, Lon: 0}},
				&mockProvider{name: "c", panic: true},
			)
			_, err := locator.Locate(t.Context())
			if !errors.Is(err, ErrNoLocation) {
				t.Errorf("expected error to be %s, got %v", ErrNoLocation, err)
			}
		})
	})
	t.Run("a timeout without results yields an error", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			locator := testLocator(t, time.Second,
				&mockProvider{name: "slow", delay: time.Minute, coord: Coordinate{Lat: 1, Lon: 1}},
			)
			_, err := locator.Locate(t.Context())
			if !errors.Is(err, ErrNoLocation) {
				t.Errorf("expected error to be %s, got %v", ErrNoLocation, err)
			}
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("expected error to wrap %s, got %v", context.DeadlineExceeded, err)
			}
		})
	})
	t.Run("results without accuracy are treated as unknown", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			locator := testLocator(t, time.Second,
				&mockProvider{name: "a", coord: Coordinate{Lat: 10, Lon: 10}},
			)
			coord, err := locator.Locate(t.Context())
			if err != nil {
				t.Fatalf("failed to locate device: %s", err)
			}
			if coord.Acc != AccuracyUnknown {
				t.Errorf("expected accuracy to be %d, got %f", AccuracyUnknown, coord.Acc)
			}
		})
	})
}

func TestCoordinate(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		if !(Coordinate{Lat: 52.5, Lon: 13.4}).Valid() {
			t.Error("expected coordinate to be valid")
		}
		if (Coordinate{Lat: 91, Lon: 0}).Valid() {
			t.Error("expected coordinate to be invalid")
		}
		if (Coordinate{Lat: 0, Lon: -181}).Valid() {
			t.Error("expected coordinate to be invalid")
		}
	})
	t.Run("better than", func(t *testing.T) {
		a := Coordinate{Acc: 100, Source: "a"}
		b := Coordinate{Acc: 10, Source: "b"}
		if !b.BetterThan(a) {
			t.Error("expected more accurate coordinate to be better")
		}
		if a.BetterThan(b) {
			t.Error("did not expect less accurate coordinate to be better")
		}
		if !a.BetterThan(Coordinate{}) {
			t.Error("expected any coordinate to be better than none")
		}
	})
	t.Run("truncate", func(t *testing.T) {
		if got := Truncate(52.123456, TruncPrecision); got != 52.1234 {
			t.Errorf("expected 52.1234, got %f", got)
		}
	})
}
