// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geolocate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/weather-dashboard/internal/logger"
)

// DefaultTimeout bounds a device location lookup.
const DefaultTimeout = time.Second * 10

var (
	ErrNoProviders = errors.New("no geolocation providers enabled")
	ErrNoLocation  = errors.New("no provider returned a location")
)

// Provider is implemented by each device location source.
type Provider interface {
	Name() string
	Locate(ctx context.Context) (Coordinate, error)
}

// Locator asks all providers concurrently and keeps the most accurate answer.
type Locator struct {
	providers []Provider
	timeout   time.Duration
	logger    *logger.Logger
}

type outcome struct {
	provider string
	coord    Coordinate
	err      error
}

func NewLocator(providers []Provider, timeout time.Duration, log *logger.Logger) (*Locator, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Locator{providers: providers, timeout: timeout, logger: log}, nil
}

// Providers returns the names of the configured providers.
func (l *Locator) Providers() []string {
	names := make([]string, 0, len(l.providers))
	for _, p := range l.providers {
		names = append(names, p.Name())
	}
	return names
}

// Locate returns the most accurate coordinate any provider reported before the timeout
// expired. It returns early once a precise result arrives.
func (l *Locator) Locate(ctx context.Context) (Coordinate, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	results := make(chan outcome, len(l.providers))
	for _, p := range l.providers {
		go func(p Provider) {
			coord, err := safeLocate(ctx, p)
			results <- outcome{provider: p.Name(), coord: coord, err: err}
		}(p)
	}

	var best Coordinate
	var errs []error
	for range l.providers {
		select {
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
			return l.pick(best, errs)
		case res := <-results:
			if res.err != nil {
				l.logger.Debug("geolocation provider failed", slog.String("provider", res.provider),
					logger.Err(res.err))
				errs = append(errs, fmt.Errorf("%s: %w", res.provider, res.err))
				continue
			}
			if !res.coord.Valid() {
				errs = append(errs, fmt.Errorf("%s: invalid coordinates %f,%f", res.provider,
					res.coord.Lat, res.coord.Lon))
				continue
			}
			if res.coord.Source == "" {
				res.coord.Source = res.provider
			}
			if res.coord.Acc <= 0 {
				res.coord.Acc = AccuracyUnknown
			}
			if res.coord.BetterThan(best) {
				best = res.coord
			}
			if best.Acc <= AccuracyPrecise {
				return l.pick(best, nil)
			}
		}
	}
	return l.pick(best, errs)
}

func (l *Locator) pick(best Coordinate, errs []error) (Coordinate, error) {
	if best.Source == "" {
		return Coordinate{}, fmt.Errorf("%w: %w", ErrNoLocation, errors.Join(errs...))
	}
	l.logger.Debug("device location resolved", slog.String("source", best.Source),
		slog.Float64("lat", best.Lat), slog.Float64("lon", best.Lon), slog.Float64("accuracy", best.Acc))
	return best, nil
}

// safeLocate invokes the provider and turns a panic into an error.
func safeLocate(ctx context.Context, p Provider) (coord Coordinate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()
	return p.Locate(ctx)
}
