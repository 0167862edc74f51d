// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geolocate

import (
	"math"
	"time"
)

// Accuracy estimates in meters for results that carry no accuracy of their own.
const (
	AccuracyCountry = 300000
	AccuracyRegion  = 100000
	AccuracyCity    = 15000
	AccuracyZip     = 3000
	AccuracyUnknown = 1000000

	// AccuracyPrecise is good enough to stop waiting for other providers.
	AccuracyPrecise = 50

	TruncPrecision  = 4
	accuracyEpsilon = 0.5
)

// Coordinate is a device position reported by a Provider.
type Coordinate struct {
	Lat    float64
	Lon    float64
	Acc    float64
	Source string
	At     time.Time
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// BetterThan reports whether c is meaningfully more accurate than prev. Any coordinate
// is better than a zero one.
func (c Coordinate) BetterThan(prev Coordinate) bool {
	if prev.Source == "" {
		return true
	}
	return c.Acc < prev.Acc-accuracyEpsilon
}

// Truncate cuts x to the given number of decimal places.
func Truncate(x float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Trunc(x*p) / p
}
