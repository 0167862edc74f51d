// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geolocation_file

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/weather-dashboard/internal/geolocate"
)

const (
	name = "geolocation_file"

	// fileAccuracy is reported for coordinates the user configured by hand.
	fileAccuracy = 5
)

var ErrNoCoordinates = fmt.Errorf("no valid coordinates found in geolocation file")

// GeolocationFileProvider reads a fixed position from a file. The first line in the
// form "lat,lon" that parses is used; lines starting with # are ignored.
type GeolocationFileProvider struct {
	name     string
	path     string
	locateFn func() (lat, lon float64, err error)
}

// NewGeolocationFileProvider initializes a GeolocationFileProvider with a file path.
func NewGeolocationFileProvider(path string) *GeolocationFileProvider {
	provider := &GeolocationFileProvider{
		name: name,
		path: path,
	}
	provider.locateFn = provider.readFile
	return provider
}

// Name returns the name of the GeolocationFileProvider instance.
func (p *GeolocationFileProvider) Name() string {
	return p.name
}

func (p *GeolocationFileProvider) Locate(_ context.Context) (geolocate.Coordinate, error) {
	lat, lon, err := p.locateFn()
	if err != nil {
		return geolocate.Coordinate{}, err
	}
	return geolocate.Coordinate{
		Lat:    lat,
		Lon:    lon,
		Acc:    fileAccuracy,
		Source: p.name,
		At:     time.Now(),
	}, nil
}

// readFile reads geolocation data from the file at the configured path.
func (p *GeolocationFileProvider) readFile() (lat, lon float64, err error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read geolocation file %q: %w", p.path, err)
	}
	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		coords := strings.Split(line, ",")
		if len(coords) != 2 {
			continue
		}
		lat, err = strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		if err != nil {
			continue
		}
		lon, err = strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		if err != nil {
			continue
		}
		return lat, lon, nil
	}
	return 0, 0, ErrNoCoordinates
}
