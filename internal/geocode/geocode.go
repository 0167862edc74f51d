// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/weather-dashboard/internal/fault"
	"github.com/wneessen/weather-dashboard/internal/logger"
)

// Location is the best match of a free-text place search.
type Location struct {
	Latitude    float64
	Longitude   float64
	City        string
	State       string
	Country     string
	DisplayName string

	CacheHit bool
}

type Geocoder interface {
	Name() string
	// Search returns the single best match for query. It returns an error wrapping
	// fault.ErrNotFound if nothing matched.
	Search(ctx context.Context, query string) (Location, error)
}

// LastCityStore persists the display name of the last resolved city.
type LastCityStore interface {
	SetLastCity(ctx context.Context, city string) error
}

// Resolver turns user input into a Location and remembers the last searched city.
type Resolver struct {
	coder  Geocoder
	store  LastCityStore
	logger *logger.Logger
}

func NewResolver(coder Geocoder, store LastCityStore, log *logger.Logger) (*Resolver, error) {
	if coder == nil {
		return nil, errors.New("geocoder is required")
	}
	if store == nil {
		return nil, errors.New("last city store is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	return &Resolver{coder: coder, store: store, logger: log}, nil
}

// Resolve looks up the given city name. Empty input fails without a lookup.
func (r *Resolver) Resolve(ctx context.Context, input string) (Location, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return Location{}, fault.Validation("city name must not be empty")
	}

	loc, err := r.coder.Search(ctx, query)
	if err != nil {
		return Location{}, fmt.Errorf("failed to resolve city %q using %s: %w", query, r.coder.Name(), err)
	}
	loc.DisplayName = DisplayName(loc.City, loc.Country)
	r.logger.Debug("city resolved", slog.String("query", query), slog.String("location", loc.DisplayName),
		slog.Bool("cache_hit", loc.CacheHit))

	if err = r.store.SetLastCity(ctx, loc.DisplayName); err != nil {
		r.logger.Warn("failed to persist last searched city", logger.Err(err))
	}
	return loc, nil
}

// DisplayName formats a location as "city, country", or just the city if the country
// is unknown.
func DisplayName(city, country string) string {
	if country == "" {
		return city
	}
	return city + ", " + country
}
