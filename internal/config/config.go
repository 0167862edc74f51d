// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kkyr/fig"
)

const (
	configEnv = "WEATHERDASHBOARD"
	AppName   = "weather-dashboard"

	// apiKeyFallbackEnv is honored when no API key was configured explicitly.
	apiKeyFallbackEnv = "OPENWEATHERMAP_API_KEY"
)

// Config represents the application's configuration structure.
type Config struct {
	// Allowed values: metric, imperial
	Units    string     `fig:"units" default:"metric"`
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	API struct {
		Key            string `fig:"key"`
		GeoBaseURL     string `fig:"geo_base_url" default:"https://api.openweathermap.org/geo/1.0"`
		WeatherBaseURL string `fig:"weather_base_url" default:"https://api.openweathermap.org/data/2.5"`
	} `fig:"api"`

	GeoCoder struct {
		// Allowed values: openweathermap, nominatim
		Provider string `fig:"provider" default:"openweathermap"`
	} `fig:"geocoder"`

	Cache struct {
		TTL time.Duration `fig:"ttl" default:"10m"`
		// Allowed values: memory, file, redis
		Backend       string `fig:"backend" default:"file"`
		File          string `fig:"file"`
		RedisAddr     string `fig:"redis_addr" default:"localhost:6379"`
		RedisPassword string `fig:"redis_password"`
		RedisDB       int    `fig:"redis_db" default:"0"`
	} `fig:"cache"`

	Intervals struct {
		Refresh time.Duration `fig:"refresh" default:"10m"`
		Clock   time.Duration `fig:"clock" default:"1m"`
		// Refresh after the system resumed from sleep
		DisableResumeRefresh bool `fig:"disable_resume_refresh"`
	} `fig:"intervals"`

	Templates struct {
		Current  string `fig:"current"`
		Forecast string `fig:"forecast"`
	} `fig:"templates"`

	Server struct {
		Address        string   `fig:"address" default:"127.0.0.1:8080"`
		AllowedOrigins []string `fig:"allowed_origins" default:"[*]"`
	} `fig:"server"`

	GeoLocation struct {
		File                   string        `fig:"file"`
		Timeout                time.Duration `fig:"timeout" default:"10s"`
		DisableGeoIP           bool          `fig:"disable_geoip"`
		DisableGeoClue         bool          `fig:"disable_geoclue"`
		DisableGeolocationFile bool          `fig:"disable_geolocation_file"`
		DisableGPSD            bool          `fig:"disable_gpsd"`
		DisableICHNAEA         bool          `fig:"disable_ichnaea"`
	} `fig:"geolocation"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = loadDotEnv(); err != nil {
		return conf, err
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := loadDotEnv(); err != nil {
		return conf, err
	}
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	c.Units = strings.ToLower(c.Units)
	if c.Units != "metric" && c.Units != "imperial" {
		return fmt.Errorf("invalid units: %s", c.Units)
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if c.API.Key == "" {
		c.API.Key = os.Getenv(apiKeyFallbackEnv)
	}
	c.API.GeoBaseURL = strings.TrimSuffix(c.API.GeoBaseURL, "/")
	c.API.WeatherBaseURL = strings.TrimSuffix(c.API.WeatherBaseURL, "/")

	c.GeoCoder.Provider = strings.ToLower(c.GeoCoder.Provider)
	switch c.GeoCoder.Provider {
	case "openweathermap", "nominatim":
	default:
		return fmt.Errorf("invalid geocoder provider: %s", c.GeoCoder.Provider)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("invalid cache TTL: %s", c.Cache.TTL)
	}
	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	switch c.Cache.Backend {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("invalid cache backend: %s", c.Cache.Backend)
	}
	if c.Cache.File == "" {
		c.Cache.File = filepath.Join(configDir(), "state.json")
	}

	if c.Intervals.Refresh < time.Minute {
		return fmt.Errorf("invalid refresh interval: %s", c.Intervals.Refresh)
	}
	if c.Intervals.Clock < time.Second {
		return fmt.Errorf("invalid clock interval: %s", c.Intervals.Clock)
	}

	if c.GeoLocation.Timeout <= 0 {
		return fmt.Errorf("invalid geolocation timeout: %s", c.GeoLocation.Timeout)
	}
	if c.GeoLocation.File == "" {
		c.GeoLocation.File = filepath.Join(configDir(), "geolocation")
	}

	return nil
}

// IsImperial reports whether the configured default unit system is imperial.
func (c *Config) IsImperial() bool {
	return c.Units == "imperial"
}

// loadDotEnv reads a .env file from the working directory into the environment,
// if one exists. Variables already set take precedence.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

func configDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", AppName)
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
