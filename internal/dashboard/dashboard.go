// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/weather-dashboard/internal/config"
	"github.com/wneessen/weather-dashboard/internal/fault"
	"github.com/wneessen/weather-dashboard/internal/geocode"
	"github.com/wneessen/weather-dashboard/internal/geolocate"
	"github.com/wneessen/weather-dashboard/internal/logger"
	"github.com/wneessen/weather-dashboard/internal/prefs"
	"github.com/wneessen/weather-dashboard/internal/presenter"
	"github.com/wneessen/weather-dashboard/internal/view"
	"github.com/wneessen/weather-dashboard/internal/weather"
)

const DesktopID = "weather-dashboard"

var ErrGeolocationUnavailable = errors.New("geolocation is not available")

// Resolver turns user input into a location.
type Resolver interface {
	Resolve(ctx context.Context, input string) (geocode.Location, error)
}

// Locator returns the position of the device.
type Locator interface {
	Locate(ctx context.Context) (geolocate.Coordinate, error)
}

// Options holds the collaborators of a Service. Locator is optional.
type Options struct {
	Resolver  Resolver
	Weather   weather.Provider
	Prefs     *prefs.Preferences
	Presenter *presenter.Presenter
	Binder    view.Binder
	Locator   Locator
}

// Service implements the dashboard operations. Every operation reports its progress and
// failures through the binder and leaves the input enabled when it returns.
type Service struct {
	config    *config.Config
	logger    *logger.Logger
	resolver  Resolver
	weather   weather.Provider
	prefs     *prefs.Preferences
	presenter *presenter.Presenter
	binder    view.Binder
	locator   Locator
	state     *State

	SignalSrc signalSource
	now       func() time.Time
}

func New(conf *config.Config, log *logger.Logger, opts Options) (*Service, error) {
	switch {
	case conf == nil:
		return nil, errors.New("config is required")
	case log == nil:
		return nil, errors.New("logger is required")
	case opts.Resolver == nil:
		return nil, errors.New("resolver is required")
	case opts.Weather == nil:
		return nil, errors.New("weather provider is required")
	case opts.Prefs == nil:
		return nil, errors.New("preferences are required")
	case opts.Presenter == nil:
		return nil, errors.New("presenter is required")
	case opts.Binder == nil:
		return nil, errors.New("view binder is required")
	}

	units, err := weather.ParseUnitSystem(conf.Units)
	if err != nil {
		return nil, err
	}
	return &Service{
		config:    conf,
		logger:    log,
		resolver:  opts.Resolver,
		weather:   opts.Weather,
		prefs:     opts.Prefs,
		presenter: opts.Presenter,
		binder:    opts.Binder,
		locator:   opts.Locator,
		state:     NewState(units),
		SignalSrc: stdLibSignalSource{},
		now:       time.Now,
	}, nil
}

// State returns the application state.
func (s *Service) State() *State {
	return s.state
}

// Units returns the active unit system.
func (s *Service) Units() weather.UnitSystem {
	return s.state.Units()
}

// Search resolves city and binds its weather.
func (s *Service) Search(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		s.status(msgEmptyCity)
		return fault.Validation("city name is empty")
	}

	s.binder.SetInputEnabled(false)
	defer s.binder.SetInputEnabled(true)
	s.status(msgSearching)

	s.status(msgFindingCity)
	loc, err := s.resolver.Resolve(ctx, city)
	if err != nil {
		return s.fail(err, slog.String("city", city))
	}

	coords := weather.Coordinates{Lat: loc.Latitude, Lon: loc.Longitude}
	if err = s.fetchAndBind(ctx, coords, loc.DisplayName); err != nil {
		return err
	}
	s.logger.Debug("weather data bound", slog.String("location", loc.DisplayName),
		slog.Bool("geocode_cache_hit", loc.CacheHit))
	return nil
}

// Locate binds the weather at the given coordinates.
func (s *Service) Locate(ctx context.Context, lat, lon float64) error {
	if !(geolocate.Coordinate{Lat: lat, Lon: lon}).Valid() {
		s.status(msgBadCoordinates)
		return fault.Validation(fmt.Sprintf("coordinates %f,%f out of range", lat, lon))
	}

	s.binder.SetInputEnabled(false)
	defer s.binder.SetInputEnabled(true)
	return s.fetchAndBind(ctx, weather.Coordinates{Lat: lat, Lon: lon}, "")
}

// LocateDevice asks the geolocation providers for the device position and binds the
// weather there.
func (s *Service) LocateDevice(ctx context.Context) error {
	if s.locator == nil {
		s.status(msgNoGeolocation)
		return ErrGeolocationUnavailable
	}

	s.status(msgRequestLocation)
	timeout := s.config.GeoLocation.Timeout
	if timeout <= 0 {
		timeout = geolocate.DefaultTimeout
	}
	locateCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	coord, err := s.locator.Locate(locateCtx)
	if err != nil {
		s.logger.Error("failed to locate device", logger.Err(err))
		s.status(msgLocationFailed, err.Error())
		return err
	}
	s.logger.Debug("device located", slog.String("source", coord.Source),
		slog.Float64("latitude", coord.Lat), slog.Float64("longitude", coord.Lon),
		slog.Float64("accuracy", coord.Acc))
	return s.Locate(ctx, coord.Lat, coord.Lon)
}

// SetUnits switches the unit system. Cached current conditions are refetched in the new
// units; refetch failures only show up in the status line.
func (s *Service) SetUnits(ctx context.Context, units weather.UnitSystem) error {
	if err := s.SelectUnits(ctx, units); err != nil {
		return err
	}

	cached, ok := s.weather.CachedCurrent(ctx)
	if !ok {
		return nil
	}
	s.binder.SetInputEnabled(false)
	defer s.binder.SetInputEnabled(true)
	if err := s.fetchAndBind(ctx, cached.Coordinates, s.state.DisplayName()); err != nil {
		s.logger.Debug("failed to refetch weather data in new unit system", logger.Err(err),
			slog.String("units", units.String()))
	}
	return nil
}

// SelectUnits persists and activates the unit system without refetching anything.
func (s *Service) SelectUnits(ctx context.Context, units weather.UnitSystem) error {
	if units != weather.Metric && units != weather.Imperial {
		return fault.Validation(fmt.Sprintf("unsupported unit system %q", units))
	}
	if err := s.prefs.SetUnits(ctx, units); err != nil {
		s.logger.Error("failed to persist unit system", logger.Err(err))
	}
	s.state.SetUnits(units)
	return nil
}

// Restore activates the persisted unit system.
func (s *Service) Restore(ctx context.Context) {
	s.state.SetUnits(s.prefs.Units(ctx))
}

// ToggleUnits flips between metric and imperial.
func (s *Service) ToggleUnits(ctx context.Context) error {
	return s.SetUnits(ctx, s.state.Units().Toggle())
}

// InitialLoad restores the persisted preferences and searches the last city, if any.
func (s *Service) InitialLoad(ctx context.Context) error {
	s.Restore(ctx)
	s.binder.DisplayClock(s.presenter.Clock(s.now()))
	s.status(msgInitial)

	city, ok := s.prefs.LastCity(ctx)
	if !ok {
		return nil
	}
	if err := s.Search(ctx, city); err != nil {
		s.status(msgInitial)
		return err
	}
	return nil
}

// fetchAndBind fetches the weather at coords and binds it. An empty displayName keeps
// the name the weather API returned.
func (s *Service) fetchAndBind(ctx context.Context, coords weather.Coordinates, displayName string) error {
	units := s.state.Units()
	s.status(msgFetching)
	data, err := s.weather.GetWeather(ctx, coords, units)
	if err != nil {
		return s.fail(err, slog.Float64("latitude", coords.Lat), slog.Float64("longitude", coords.Lon))
	}
	if data.Units != "" {
		units = data.Units
	}

	current := s.presenter.Current(data.Current, units, displayName)
	s.binder.DisplayCurrent(current)
	s.binder.DisplayForecast(s.presenter.Forecast(data.Forecast, units))
	s.state.setLocation(current.Location, coords)
	s.status("")
	return nil
}

// fail shows the status message for err and returns it.
func (s *Service) fail(err error, attrs ...any) error {
	msg, args := statusFor(err)
	s.logger.Error("dashboard operation failed", append(attrs, logger.Err(err))...)
	s.status(msg, args...)
	return err
}

func (s *Service) status(msg string, args ...any) {
	s.binder.DisplayStatus(s.presenter.Status(msg, args...))
}
