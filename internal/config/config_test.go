// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	testConfigPath = "../../etc"
	testConfigFile = "config.toml"
)

func TestNew(t *testing.T) {
	const (
		expectDefaultUnits     = "metric"
		expectLogLevel         = slog.LevelInfo
		expectCacheTTL         = time.Minute * 10
		expectCacheBackend     = "file"
		expectIntervalRefresh  = time.Minute * 10
		expectIntervalClock    = time.Minute
		expectGeocoderProvider = "openweathermap"
		expectGeoBaseURL       = "https://api.openweathermap.org/geo/1.0"
		expectWeatherBaseURL   = "https://api.openweathermap.org/data/2.5"
		expectGeoTimeout       = time.Second * 10
	)
	t.Run("new config with all defaults set", func(t *testing.T) {
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.Units != expectDefaultUnits {
			t.Errorf("expected units to be: %s, got %s", expectDefaultUnits, conf.Units)
		}
		if conf.IsImperial() {
			t.Error("expected default config not to be imperial")
		}
		if conf.LogLevel != expectLogLevel {
			t.Errorf("expected log level to be: %s, got %s", expectLogLevel, conf.LogLevel)
		}
		if conf.Cache.TTL != expectCacheTTL {
			t.Errorf("expected cache TTL to be: %s, got %s", expectCacheTTL, conf.Cache.TTL)
		}
		if conf.Cache.Backend != expectCacheBackend {
			t.Errorf("expected cache backend to be: %s, got %s", expectCacheBackend, conf.Cache.Backend)
		}
		if !strings.HasSuffix(conf.Cache.File, filepath.Join(AppName, "state.json")) {
			t.Errorf("expected cache file to be placed in the config dir, got %s", conf.Cache.File)
		}
		if conf.Intervals.Refresh != expectIntervalRefresh {
			t.Errorf("expected refresh interval to be: %s, got %s", expectIntervalRefresh, conf.Intervals.Refresh)
		}
		if conf.Intervals.Clock != expectIntervalClock {
			t.Errorf("expected clock interval to be: %s, got %s", expectIntervalClock, conf.Intervals.Clock)
		}
		if conf.GeoCoder.Provider != expectGeocoderProvider {
			t.Errorf("expected geocoder provider to be: %s, got %s", expectGeocoderProvider,
				conf.GeoCoder.Provider)
		}
		if conf.API.GeoBaseURL != expectGeoBaseURL {
			t.Errorf("expected geo base URL to be: %s, got %s", expectGeoBaseURL, conf.API.GeoBaseURL)
		}
		if conf.API.WeatherBaseURL != expectWeatherBaseURL {
			t.Errorf("expected weather base URL to be: %s, got %s", expectWeatherBaseURL, conf.API.WeatherBaseURL)
		}
		if conf.GeoLocation.Timeout != expectGeoTimeout {
			t.Errorf("expected geolocation timeout to be: %s, got %s", expectGeoTimeout, conf.GeoLocation.Timeout)
		}
	})
	t.Run("api key is read from env", func(t *testing.T) {
		t.Setenv("WEATHERDASHBOARD_API_KEY", "secret")
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.API.Key != "secret" {
			t.Errorf("expected API key to be: %s, got %s", "secret", conf.API.Key)
		}
	})
	t.Run("api key falls back to the OpenWeatherMap env variable", func(t *testing.T) {
		t.Setenv("WEATHERDASHBOARD_API_KEY", "")
		t.Setenv("OPENWEATHERMAP_API_KEY", "fallback")
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.API.Key != "fallback" {
			t.Errorf("expected API key to be: %s, got %s", "fallback", conf.API.Key)
		}
	})
	t.Run("units are normalized", func(t *testing.T) {
		t.Setenv("WEATHERDASHBOARD_UNITS", "Imperial")
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if !conf.IsImperial() {
			t.Errorf("expected units to be imperial, got %s", conf.Units)
		}
	})
	t.Run("new config with invalid values from env", func(t *testing.T) {
		t.Setenv("WEATHERDASHBOARD_LOGLEVEL", "invalid")
		_, err := New()
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
	t.Run("config validation fails", func(t *testing.T) {
		tests := []struct {
			name  string
			env   string
			value string
		}{
			{"invalid units", "WEATHERDASHBOARD_UNITS", "kelvin"},
			{"invalid geocoder", "WEATHERDASHBOARD_GEOCODER_PROVIDER", "opencage"},
			{"invalid cache backend", "WEATHERDASHBOARD_CACHE_BACKEND", "sqlite"},
			{"invalid cache ttl", "WEATHERDASHBOARD_CACHE_TTL", "-1m"},
			{"refresh interval too short", "WEATHERDASHBOARD_INTERVALS_REFRESH", "10s"},
			{"clock interval too short", "WEATHERDASHBOARD_INTERVALS_CLOCK", "1ms"},
			{"invalid geolocation timeout", "WEATHERDASHBOARD_GEOLOCATION_TIMEOUT", "-1s"},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				t.Setenv(tc.env, tc.value)
				if _, err := New(); err == nil {
					t.Error("expected config to fail, but didn't")
				}
			})
		}
	})
}

func TestNewFromFile(t *testing.T) {
	t.Run("config from file overrides defaults", func(t *testing.T) {
		conf, err := NewFromFile(testConfigPath, testConfigFile)
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if !conf.IsImperial() {
			t.Errorf("expected units to be imperial, got %s", conf.Units)
		}
		if conf.Locale != "de" {
			t.Errorf("expected locale to be de, got %s", conf.Locale)
		}
		if conf.API.Key != "0123456789abcdef" {
			t.Errorf("expected API key to be set from file, got %s", conf.API.Key)
		}
		if conf.GeoCoder.Provider != "nominatim" {
			t.Errorf("expected geocoder provider to be nominatim, got %s", conf.GeoCoder.Provider)
		}
		if conf.Cache.TTL != time.Minute*5 {
			t.Errorf("expected cache TTL to be 5m, got %s", conf.Cache.TTL)
		}
		if conf.Cache.Backend != "redis" {
			t.Errorf("expected cache backend to be redis, got %s", conf.Cache.Backend)
		}
		if conf.Cache.RedisAddr != "redis.example.com:6379" {
			t.Errorf("expected redis address to be set from file, got %s", conf.Cache.RedisAddr)
		}
		if conf.Cache.RedisDB != 2 {
			t.Errorf("expected redis DB to be 2, got %d", conf.Cache.RedisDB)
		}
		if conf.Intervals.Refresh != time.Minute*15 {
			t.Errorf("expected refresh interval to be 15m, got %s", conf.Intervals.Refresh)
		}
		if conf.Server.Address != "0.0.0.0:8081" {
			t.Errorf("expected server address to be set from file, got %s", conf.Server.Address)
		}
		if len(conf.Server.AllowedOrigins) != 1 || conf.Server.AllowedOrigins[0] != "https://dashboard.example.com" {
			t.Errorf("expected allowed origins to be set from file, got %v", conf.Server.AllowedOrigins)
		}
		if conf.GeoLocation.File != "/tmp/geolocation" {
			t.Errorf("expected geolocation file to be set from file, got %s", conf.GeoLocation.File)
		}
		if !conf.GeoLocation.DisableGeoIP || !conf.GeoLocation.DisableGPSD {
			t.Error("expected GeoIP and gpsd providers to be disabled")
		}
		if conf.GeoLocation.DisableICHNAEA {
			t.Error("expected ICHNAEA provider to be enabled")
		}
	})
	t.Run("config from non-existing file fails", func(t *testing.T) {
		_, err := NewFromFile(testConfigPath, "nonexisting.toml")
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
}
