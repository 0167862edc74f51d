// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/weather-dashboard/internal/vartype"
)

// UnitSystem selects the measurement system used for API requests and display.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	GetWeather(ctx context.Context, coords Coordinates, units UnitSystem) (*Data, error)
	// CachedCurrent returns the current conditions stored by the last successful GetWeather
	// call, as long as they did not expire yet.
	CachedCurrent(ctx context.Context) (Snapshot, bool)
}

type Coordinates struct {
	Lat float64
	Lon float64
}

type Data struct {
	GeneratedAt time.Time
	Units       UnitSystem

	Current  Snapshot
	Forecast Forecast
}

// Snapshot holds the current conditions at a location. Wind speed is in m/s for metric
// and mph for imperial, visibility is always in meters.
type Snapshot struct {
	ObservedAt     time.Time
	Coordinates    Coordinates
	LocationName   string
	Country        string
	TimezoneOffset int

	Temperature   float64
	FeelsLike     float64
	Humidity      float64
	Pressure      float64
	WindSpeed     vartype.VarFloat64
	Visibility    vartype.VarFloat64
	ConditionCode int
	ConditionMain string
	Description   string
	IconID        string
}

// Location returns the fixed time zone of the observed location.
func (s Snapshot) Location() *time.Location {
	return time.FixedZone("", s.TimezoneOffset)
}

// IsNightIcon reports whether the provider marked the icon as a night variant.
func (s Snapshot) IsNightIcon() bool {
	return strings.Contains(s.IconID, "n")
}

// Forecast is a series of three-hour buckets in chronological order.
type Forecast struct {
	City           string
	Country        string
	TimezoneOffset int
	Entries        []ForecastEntry
}

// Location returns the fixed time zone of the forecast city.
func (f Forecast) Location() *time.Location {
	return time.FixedZone("", f.TimezoneOffset)
}

type ForecastEntry struct {
	Time                     time.Time
	Temperature              float64
	TempMin                  float64
	TempMax                  float64
	Humidity                 float64
	WindSpeed                float64
	PrecipitationProbability float64
	ConditionCode            int
	ConditionMain            string
	Description              string
	IconID                   string
}

// Units holds the display suffixes of a unit system.
type Units struct {
	Temperature string
	WindSpeed   string
	Visibility  string
}

// ParseUnitSystem parses a unit system name case-insensitively.
func ParseUnitSystem(val string) (UnitSystem, error) {
	switch UnitSystem(strings.ToLower(strings.TrimSpace(val))) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("unsupported unit system: %q", val)
	}
}

func (u UnitSystem) String() string {
	return string(u)
}

// Toggle returns the other unit system.
func (u UnitSystem) Toggle() UnitSystem {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

// Units returns the display suffixes for the unit system.
func (u UnitSystem) Units() Units {
	if u == Imperial {
		return Units{Temperature: "°F", WindSpeed: "mph", Visibility: "km"}
	}
	return Units{Temperature: "°C", WindSpeed: "km/h", Visibility: "km"}
}
