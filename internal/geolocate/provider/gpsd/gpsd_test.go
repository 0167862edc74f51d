// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package gpsd

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stratoberry/go-gpsd"
)

func TestNewGeolocationGPSDProvider(t *testing.T) {
	provider := NewGeolocationGPSDProvider()
	if provider.Name() != name {
		t.Errorf("expected provider name to be %s, got %s", name, provider.Name())
	}
	if provider.addr != "localhost:2947" {
		t.Errorf("expected address to be localhost:2947, got %s", provider.addr)
	}
}

func TestGeolocationGPSDProvider_Locate(t *testing.T) {
	t.Run("a 3D fix is returned", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			done := make(chan bool)
			defer close(done)
			provider := NewGeolocationGPSDProvider()
			provider.watchFn = func(_ string, onFix func(*gpsd.TPVReport)) (<-chan bool, error) {
				go func() {
					time.Sleep(time.Second)
					onFix(&gpsd.TPVReport{Mode: gpsd.NoFix, Lat: 1, Lon: 1})
					onFix(&gpsd.TPVReport{Mode: gpsd.Mode3D, Lat: 52.520012, Lon: 13.405034, Epx: 8, Epy: 12})
				}()
				return done, nil
			}

			coord, err := provider.Locate(t.Context())
			if err != nil {
				t.Fatalf("failed to locate: %s", err)
			}
			if coord.Lat != 52.52 || coord.Lon != 13.405 {
				t.Errorf("expected coordinates 52.52,13.405, got %f,%f", coord.Lat, coord.Lon)
			}
			if coord.Acc != 12 {
				t.Errorf("expected accuracy to be 12, got %f", coord.Acc)
			}
		})
	})
	t.Run("missing error estimates use the default accuracy", func(t *testing.T) {
		provider := NewGeolocationGPSDProvider()
		provider.update(&gpsd.TPVReport{Mode: gpsd.Mode2D, Lat: 1, Lon: 2})
		coord, ok := provider.latest()
		if !ok {
			t.Fatal("expected a fix")
		}
		if coord.Acc != defaultAccuracy {
			t.Errorf("expected accuracy to be %d, got %f", defaultAccuracy, coord.Acc)
		}
	})
	t.Run("lookup times out without a fix", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			done := make(chan bool)
			defer close(done)
			provider := NewGeolocationGPSDProvider()
			provider.watchFn = func(string, func(*gpsd.TPVReport)) (<-chan bool, error) {
				return done, nil
			}
			ctx, cancel := context.WithTimeout(t.Context(), time.Second*5)
			defer cancel()
			_, err := provider.Locate(ctx)
			if !errors.Is(err, ErrNoFix) {
				t.Errorf("expected error to be %s, got %v", ErrNoFix, err)
			}
		})
	})
	t.Run("stale fixes are ignored", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			provider := NewGeolocationGPSDProvider()
			provider.update(&gpsd.TPVReport{Mode: gpsd.Mode2D, Lat: 1, Lon: 2})
			time.Sleep(maxFixAge + time.Second)
			if _, ok := provider.latest(); ok {
				t.Error("expected stale fix to be ignored")
			}
		})
	})
	t.Run("connection failures are returned", func(t *testing.T) {
		provider := NewGeolocationGPSDProvider()
		provider.watchFn = func(string, func(*gpsd.TPVReport)) (<-chan bool, error) {
			return nil, errors.New("connection refused")
		}
		if _, err := provider.Locate(t.Context()); err == nil {
			t.Error("expected lookup to fail")
		}
	})
	t.Run("the watch is restarted after the connection ended", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			calls := 0
			provider := NewGeolocationGPSDProvider()
			provider.watchFn = func(string, func(*gpsd.TPVReport)) (<-chan bool, error) {
				calls++
				done := make(chan bool)
				close(done)
				return done, nil
			}
			if err := provider.ensureWatching(); err != nil {
				t.Fatal(err)
			}
			synctest.Wait()
			if err := provider.ensureWatching(); err != nil {
				t.Fatal(err)
			}
			synctest.Wait()
			if calls != 2 {
				t.Errorf("expected 2 watch calls, got %d", calls)
			}
		})
	})
}
