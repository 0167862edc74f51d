// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geoip

import (
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"testing"

	"github.com/wneessen/weather-dashboard/internal/geolocate"
	"github.com/wneessen/weather-dashboard/internal/http"
	"github.com/wneessen/weather-dashboard/internal/logger"
	"github.com/wneessen/weather-dashboard/internal/testhelper"
)

const (
	zipFile     = "../../../../testdata/geoip.json"
	countryFile = "../../../../testdata/geoip_country.json"
)

func testProvider(t *testing.T, fn func(*stdhttp.Request) (*stdhttp.Response, error)) *GeolocationGeoIPProvider {
	t.Helper()
	client := http.New(logger.NewLogger(slog.LevelDebug, io.Discard))
	client.Transport = testhelper.MockRoundTripper{Fn: fn}
	provider, err := NewGeolocationGeoIPProvider(client)
	if err != nil {
		t.Fatalf("failed to create provider: %s", err)
	}
	return provider
}

func TestNewGeolocationGeoIPProvider(t *testing.T) {
	t.Run("new provider succeeds", func(t *testing.T) {
		provider := testProvider(t, nil)
		if provider.Name() != name {
			t.Errorf("expected provider name to be %s, got %s", name, provider.Name())
		}
	})
	t.Run("new provider without http client fails", func(t *testing.T) {
		if _, err := NewGeolocationGeoIPProvider(nil); err == nil {
			t.Error("expected provider creation to fail")
		}
	})
}

func TestGeolocationGeoIPProvider_Locate(t *testing.T) {
	tests := []struct {
		name string
		file string
		lat  float64
		lon  float64
		acc  float64
	}{
		{"zip code accuracy", zipFile, 52.5196, 13.4069, geolocate.AccuracyZip},
		{"country accuracy", countryFile, 51.2993, 9.491, geolocate.AccuracyCountry},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			provider := testProvider(t, testhelper.FileResponder(t, 200, tc.file))
			coord, err := provider.Locate(t.Context())
			if err != nil {
				t.Fatalf("failed to locate: %s", err)
			}
			if coord.Lat != tc.lat || coord.Lon != tc.lon {
				t.Errorf("expected coordinates %f,%f, got %f,%f", tc.lat, tc.lon, coord.Lat, coord.Lon)
			}
			if coord.Acc != tc.acc {
				t.Errorf("expected accuracy to be %f, got %f", tc.acc, coord.Acc)
			}
			if coord.Source != name {
				t.Errorf("expected source to be %s, got %s", name, coord.Source)
			}
		})
	}
	t.Run("lookup fails", func(t *testing.T) {
		provider := testProvider(t, func(*stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		})
		if _, err := provider.Locate(t.Context()); err == nil {
			t.Error("expected lookup to fail")
		}
	})
}
