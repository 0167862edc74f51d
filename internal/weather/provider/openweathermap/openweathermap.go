// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wneessen/weather-dashboard/internal/cache"
	"github.com/wneessen/weather-dashboard/internal/fault"
	"github.com/wneessen/weather-dashboard/internal/http"
	"github.com/wneessen/weather-dashboard/internal/logger"
	"github.com/wneessen/weather-dashboard/internal/vartype"
	"github.com/wneessen/weather-dashboard/internal/weather"
)

const (
	name             = "openweathermap"
	DefaultBaseURL   = "https://api.openweathermap.org/data/2.5"
	currentEndpoint  = "/weather"
	forecastEndpoint = "/forecast"
	apiTimeout       = time.Second * 10
)

type OpenWeatherMap struct {
	apiKey  string
	baseURL string
	cache   *cache.Cache
	http    *http.Client
	log     *logger.Logger
}

type condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentResponse struct {
	Coord *struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	Weather []condition `json:"weather"`
	Main    *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Visibility vartype.VarFloat64 `json:"visibility"`
	Wind       struct {
		Speed vartype.VarFloat64 `json:"speed"`
	} `json:"wind"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

type forecastResponse struct {
	List *[]forecastItem `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

type forecastItem struct {
	Dt   int64 `json:"dt"`
	Main *struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Pop float64 `json:"pop"`
}

func New(http *http.Client, log *logger.Logger, store *cache.Cache, apiKey, baseURL string) (*OpenWeatherMap, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenWeatherMap API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &OpenWeatherMap{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   store,
		http:    http,
		log:     log,
	}, nil
}

func (o *OpenWeatherMap) Name() string {
	return name
}

// GetWeather fetches the current conditions and the forecast concurrently. Both requests
// must succeed. The raw current payload is stored in the cache afterwards.
func (o *OpenWeatherMap) GetWeather(ctx context.Context, coords weather.Coordinates, units weather.UnitSystem) (*weather.Data, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	query.Set("appid", o.apiKey)
	query.Set("units", units.String())

	var currentRaw, forecastRaw json.RawMessage
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return o.fetch(groupCtx, currentEndpoint, fault.RequestCurrent, query, &currentRaw)
	})
	group.Go(func() error {
		return o.fetch(groupCtx, forecastEndpoint, fault.RequestForecast, query, &forecastRaw)
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	current, err := ParseCurrent(currentRaw)
	if err != nil {
		return nil, err
	}
	forecast, err := parseForecast(forecastRaw)
	if err != nil {
		return nil, err
	}

	if err = o.cache.Save(ctx, currentRaw); err != nil {
		o.log.Warn("failed to cache current weather data", logger.Err(err))
	}
	o.log.Debug("weather data fetched", slog.String("provider", name), slog.String("location", current.LocationName),
		slog.Int("forecast_entries", len(forecast.Entries)))

	return &weather.Data{
		GeneratedAt: time.Now(),
		Units:       units,
		Current:     current,
		Forecast:    forecast,
	}, nil
}

// CachedCurrent returns the cached current conditions. Entries without coordinates
// are reported as absent since they cannot be refetched.
func (o *OpenWeatherMap) CachedCurrent(ctx context.Context) (weather.Snapshot, bool) {
	raw, ok := o.cache.Load(ctx)
	if !ok {
		return weather.Snapshot{}, false
	}
	var head struct {
		Coord json.RawMessage `json:"coord"`
	}
	if err := json.Unmarshal(raw, &head); err != nil || len(head.Coord) == 0 || string(head.Coord) == "null" {
		return weather.Snapshot{}, false
	}
	snapshot, err := ParseCurrent(raw)
	if err != nil {
		o.log.Debug("ignoring unusable cached weather data", logger.Err(err))
		return weather.Snapshot{}, false
	}
	return snapshot, true
}

func (o *OpenWeatherMap) fetch(ctx context.Context, endpoint, request string, query url.Values, target *json.RawMessage) error {
	status, err := o.http.GetWithTimeout(ctx, o.baseURL+endpoint, target, query, nil, apiTimeout)
	if err != nil {
		if errors.Is(err, http.ErrUnexpectedStatus) {
			return fault.NewServiceError(request, status)
		}
		if status != 0 {
			return fmt.Errorf("%w: %s response: %w", fault.ErrMalformedData, request, err)
		}
		return fmt.Errorf("failed to fetch %s weather data from OpenWeatherMap API: %w", request, err)
	}
	return nil
}

// ParseCurrent converts a raw current conditions payload into a weather.Snapshot.
func ParseCurrent(raw []byte) (weather.Snapshot, error) {
	var res currentResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return weather.Snapshot{}, fmt.Errorf("%w: %w", fault.ErrMalformedData, err)
	}
	if res.Main == nil {
		return weather.Snapshot{}, fault.Malformed("main")
	}
	if len(res.Weather) == 0 {
		return weather.Snapshot{}, fault.Malformed("weather")
	}

	snapshot := weather.Snapshot{
		ObservedAt:     time.Unix(res.Dt, 0),
		LocationName:   res.Name,
		Country:        res.Sys.Country,
		TimezoneOffset: res.Timezone,
		Temperature:    res.Main.Temp,
		FeelsLike:      res.Main.FeelsLike,
		Humidity:       res.Main.Humidity,
		Pressure:       res.Main.Pressure,
		WindSpeed:      res.Wind.Speed,
		Visibility:     res.Visibility,
		ConditionCode:  res.Weather[0].ID,
		ConditionMain:  res.Weather[0].Main,
		Description:    res.Weather[0].Description,
		IconID:         res.Weather[0].Icon,
	}
	if res.Coord != nil {
		snapshot.Coordinates = weather.Coordinates{Lat: res.Coord.Lat, Lon: res.Coord.Lon}
	}
	return snapshot, nil
}

func parseForecast(raw []byte) (weather.Forecast, error) {
	var res forecastResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return weather.Forecast{}, fmt.Errorf("%w: %w", fault.ErrMalformedData, err)
	}
	if res.List == nil {
		return weather.Forecast{}, fault.Malformed("list")
	}

	forecast := weather.Forecast{
		City:           res.City.Name,
		Country:        res.City.Country,
		TimezoneOffset: res.City.Timezone,
		Entries:        make([]weather.ForecastEntry, 0, len(*res.List)),
	}
	for i, item := range *res.List {
		if item.Main == nil {
			return weather.Forecast{}, fault.Malformed(fmt.Sprintf("main in forecast entry %d", i))
		}
		if len(item.Weather) == 0 {
			return weather.Forecast{}, fault.Malformed(fmt.Sprintf("weather in forecast entry %d", i))
		}
		forecast.Entries = append(forecast.Entries, weather.ForecastEntry{
			Time:                     time.Unix(item.Dt, 0),
			Temperature:              item.Main.Temp,
			TempMin:                  item.Main.TempMin,
			TempMax:                  item.Main.TempMax,
			Humidity:                 item.Main.Humidity,
			WindSpeed:                item.Wind.Speed,
			PrecipitationProbability: item.Pop,
			ConditionCode:            item.Weather[0].ID,
			ConditionMain:            item.Weather[0].Main,
			Description:              item.Weather[0].Description,
			IconID:                   item.Weather[0].Icon,
		})
	}
	return forecast, nil
}
