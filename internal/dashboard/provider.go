// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-dashboard/internal/cache"
	"github.com/wneessen/weather-dashboard/internal/config"
	"github.com/wneessen/weather-dashboard/internal/geocode"
	geocodeowm "github.com/wneessen/weather-dashboard/internal/geocode/provider/openweathermap"
	nominatim "github.com/wneessen/weather-dashboard/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/weather-dashboard/internal/geolocate"
	"github.com/wneessen/weather-dashboard/internal/geolocate/provider/geoclue"
	"github.com/wneessen/weather-dashboard/internal/geolocate/provider/geoip"
	"github.com/wneessen/weather-dashboard/internal/geolocate/provider/geolocation_file"
	"github.com/wneessen/weather-dashboard/internal/geolocate/provider/gpsd"
	"github.com/wneessen/weather-dashboard/internal/geolocate/provider/ichnaea"
	"github.com/wneessen/weather-dashboard/internal/http"
	"github.com/wneessen/weather-dashboard/internal/i18n"
	"github.com/wneessen/weather-dashboard/internal/kvstore"
	"github.com/wneessen/weather-dashboard/internal/logger"
	"github.com/wneessen/weather-dashboard/internal/prefs"
	"github.com/wneessen/weather-dashboard/internal/presenter"
	"github.com/wneessen/weather-dashboard/internal/view"
	"github.com/wneessen/weather-dashboard/internal/weather"
	"github.com/wneessen/weather-dashboard/internal/weather/provider/openweathermap"
)

const (
	cacheHitTTL  = time.Hour
	cacheMissTTL = time.Minute * 10
)

// Closer releases the resources opened by NewFromConfig.
type Closer func() error

// NewFromConfig wires a Service with the providers selected in conf.
func NewFromConfig(ctx context.Context, conf *config.Config, log *logger.Logger, pres *presenter.Presenter,
	binder view.Binder,
) (*Service, Closer, error) {
	store, err := selectStore(ctx, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create key-value store: %w", err)
	}
	closer := func() error { return store.Close() }
	log.Debug("key-value store initialized", slog.String("backend", store.Name()))

	units, err := weather.ParseUnitSystem(conf.Units)
	if err != nil {
		return nil, nil, errors.Join(err, closer())
	}
	preferences, err := prefs.New(store, units, log)
	if err != nil {
		return nil, nil, errors.Join(err, closer())
	}
	weatherCache, err := cache.New(store, conf.Cache.TTL, log)
	if err != nil {
		return nil, nil, errors.Join(err, closer())
	}

	httpClient := http.New(log)
	provider, err := openweathermap.New(httpClient, log, weatherCache, conf.API.Key, conf.API.WeatherBaseURL)
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("failed to create weather provider: %w", err), closer())
	}
	coder, err := selectGeocodeProvider(conf, httpClient, i18n.Tag(conf.Locale))
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("failed to create geocode provider: %w", err), closer())
	}
	resolver, err := geocode.NewResolver(coder, preferences, log)
	if err != nil {
		return nil, nil, errors.Join(err, closer())
	}

	opts := Options{
		Resolver:  resolver,
		Weather:   provider,
		Prefs:     preferences,
		Presenter: pres,
		Binder:    binder,
	}
	locator, err := selectLocator(conf, httpClient, log)
	switch {
	case errors.Is(err, geolocate.ErrNoProviders):
		log.Debug("device geolocation disabled")
	case err != nil:
		return nil, nil, errors.Join(fmt.Errorf("failed to create geolocation providers: %w", err), closer())
	default:
		log.Debug("device geolocation enabled", slog.Any("providers", locator.Providers()))
		opts.Locator = locator
	}

	service, err := New(conf, log, opts)
	if err != nil {
		return nil, nil, errors.Join(err, closer())
	}
	service.Restore(ctx)
	return service, closer, nil
}

func selectStore(ctx context.Context, conf *config.Config) (kvstore.Store, error) {
	switch conf.Cache.Backend {
	case "memory":
		return kvstore.NewMemory(), nil
	case "file":
		return kvstore.NewFile(conf.Cache.File)
	case "redis":
		return kvstore.NewRedis(ctx, kvstore.RedisOptions{
			Addr:     conf.Cache.RedisAddr,
			Password: conf.Cache.RedisPassword,
			DB:       conf.Cache.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", conf.Cache.Backend)
	}
}

func selectGeocodeProvider(conf *config.Config, client *http.Client, lang language.Tag) (geocode.Geocoder, error) {
	switch conf.GeoCoder.Provider {
	case "openweathermap":
		coder, err := geocodeowm.New(client, lang, conf.API.Key, conf.API.GeoBaseURL)
		if err != nil {
			return nil, err
		}
		return geocode.NewCachedGeocoder(coder, cacheHitTTL, cacheMissTTL), nil
	case "nominatim":
		return geocode.NewCachedGeocoder(nominatim.New(client, lang), cacheHitTTL, cacheMissTTL), nil
	default:
		return nil, fmt.Errorf("unsupported geocoder type: %s", conf.GeoCoder.Provider)
	}
}

func selectLocator(conf *config.Config, client *http.Client, log *logger.Logger) (*geolocate.Locator, error) {
	var providers []geolocate.Provider

	if !conf.GeoLocation.DisableGeolocationFile {
		providers = append(providers, geolocation_file.NewGeolocationFileProvider(conf.GeoLocation.File))
	}
	if !conf.GeoLocation.DisableGeoClue {
		providers = append(providers, geoclue.NewGeolocationGeoClueProvider(DesktopID))
	}
	if !conf.GeoLocation.DisableGPSD {
		providers = append(providers, gpsd.NewGeolocationGPSDProvider())
	}
	if !conf.GeoLocation.DisableGeoIP {
		gip, err := geoip.NewGeolocationGeoIPProvider(client)
		if err != nil {
			return nil, fmt.Errorf("failed to create GeoIP provider: %w", err)
		}
		providers = append(providers, gip)
	}
	if !conf.GeoLocation.DisableICHNAEA {
		mls, err := ichnaea.NewGeolocationICHNAEAProvider(client)
		if err != nil {
			return nil, fmt.Errorf("failed to create ICHNAEA provider: %w", err)
		}
		providers = append(providers, mls)
	}

	return geolocate.NewLocator(providers, conf.GeoLocation.Timeout, log)
}
