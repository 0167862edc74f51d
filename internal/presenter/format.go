// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wneessen/weather-dashboard/internal/weather"
)

const (
	iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"
	msToKmh       = 3.6

	// The forecast API reports three-hour buckets, so every 8th bucket starts a new day.
	bucketsPerDay = 8
	maxCards      = 5
	chartPoints   = 8
)

// Round rounds half-way values up, towards positive infinity.
func Round(val float64) int {
	return int(math.Floor(val + 0.5))
}

// FormatTemperature returns the rounded temperature with its unit suffix.
func FormatTemperature(val float64, units weather.UnitSystem) string {
	return fmt.Sprintf("%d%s", Round(val), units.Units().Temperature)
}

// FormatWind converts m/s to km/h for metric. Imperial values are already in mph.
func FormatWind(speed float64, units weather.UnitSystem) string {
	if units == weather.Imperial {
		return fmt.Sprintf("%d %s", Round(speed), units.Units().WindSpeed)
	}
	return fmt.Sprintf("%d %s", Round(speed*msToKmh), units.Units().WindSpeed)
}

// FormatVisibility formats a distance in meters as kilometers.
func FormatVisibility(meters float64) string {
	return fmt.Sprintf("%.1f km", meters/1000)
}

func FormatHumidity(val float64) string {
	return fmt.Sprintf("%d%%", Round(val))
}

func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%d%%", Round(fraction*100))
}

// Capitalize upper-cases the first letter only.
func Capitalize(val string) string {
	r, size := utf8.DecodeRuneInString(val)
	if r == utf8.RuneError {
		return val
	}
	return string(unicode.ToUpper(r)) + val[size:]
}

func IconURL(icon string) string {
	if strings.TrimSpace(icon) == "" {
		return ""
	}
	return fmt.Sprintf(iconURLFormat, icon)
}

// DailyEntries picks the first bucket of each day, up to five days.
func DailyEntries(entries []weather.ForecastEntry) []weather.ForecastEntry {
	daily := make([]weather.ForecastEntry, 0, maxCards)
	for i := 0; i < len(entries) && len(daily) < maxCards; i += bucketsPerDay {
		daily = append(daily, entries[i])
	}
	return daily
}

// ChartEntries returns the buckets of the next 24 hours.
func ChartEntries(entries []weather.ForecastEntry) []weather.ForecastEntry {
	if len(entries) > chartPoints {
		return entries[:chartPoints]
	}
	return entries
}
