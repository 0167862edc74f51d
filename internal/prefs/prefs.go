// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package prefs persists the user's unit system and the last searched city.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/weather-dashboard/internal/kvstore"
	"github.com/wneessen/weather-dashboard/internal/logger"
	"github.com/wneessen/weather-dashboard/internal/weather"
)

const (
	keyUnits    = "units"
	keyLastCity = "lastSearchedCity"
)

type Preferences struct {
	store        kvstore.Store
	defaultUnits weather.UnitSystem
	logger       *logger.Logger
}

func New(store kvstore.Store, defaultUnits weather.UnitSystem, log *logger.Logger) (*Preferences, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	return &Preferences{store: store, defaultUnits: defaultUnits, logger: log}, nil
}

// Units returns the persisted unit system, or the default if none or an unknown
// value is stored.
func (p *Preferences) Units(ctx context.Context) weather.UnitSystem {
	val, ok, err := p.store.Get(ctx, keyUnits)
	if err != nil {
		p.logger.Warn("failed to read unit preference", logger.Err(err))
		return p.defaultUnits
	}
	if !ok {
		return p.defaultUnits
	}
	units, err := weather.ParseUnitSystem(val)
	if err != nil {
		p.logger.Debug("ignoring unknown unit preference", slog.String("value", val))
		return p.defaultUnits
	}
	return units
}

func (p *Preferences) SetUnits(ctx context.Context, units weather.UnitSystem) error {
	if err := p.store.Set(ctx, keyUnits, units.String(), 0); err != nil {
		return fmt.Errorf("failed to persist unit preference: %w", err)
	}
	return nil
}

// LastCity returns the display name of the last successfully resolved city.
func (p *Preferences) LastCity(ctx context.Context) (string, bool) {
	val, ok, err := p.store.Get(ctx, keyLastCity)
	if err != nil {
		p.logger.Warn("failed to read last searched city", logger.Err(err))
		return "", false
	}
	val = strings.TrimSpace(val)
	return val, ok && val != ""
}

func (p *Preferences) SetLastCity(ctx context.Context, city string) error {
	if err := p.store.Set(ctx, keyLastCity, city, 0); err != nil {
		return fmt.Errorf("failed to persist last searched city: %w", err)
	}
	return nil
}
