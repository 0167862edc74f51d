// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geoip

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/weather-dashboard/internal/geolocate"
	"github.com/wneessen/weather-dashboard/internal/http"
)

const (
	APIEndpoint   = "https://reallyfreegeoip.org/json/"
	LookupTimeout = time.Second * 5
	name          = "geoip"
)

type GeolocationGeoIPProvider struct {
	name     string
	endpoint string
	http     *http.Client
}

type APIResult struct {
	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country_name"`
	RegionCode  string  `json:"region_code,omitempty"`
	Region      string  `json:"region_name,omitempty"`
	City        string  `json:"city,omitempty"`
	ZipCode     string  `json:"zip_code,omitempty"`
	TimeZone    string  `json:"time_zone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	MetroCode   int     `json:"metro_code"`
}

func NewGeolocationGeoIPProvider(http *http.Client) (*GeolocationGeoIPProvider, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	return &GeolocationGeoIPProvider{
		name:     name,
		endpoint: APIEndpoint,
		http:     http,
	}, nil
}

func (p *GeolocationGeoIPProvider) Name() string {
	return p.name
}

// Locate looks up the position of the public IP address. The accuracy is estimated from
// the most specific field the API returned.
func (p *GeolocationGeoIPProvider) Locate(ctx context.Context) (geolocate.Coordinate, error) {
	result := new(APIResult)
	if _, err := p.http.GetWithTimeout(ctx, p.endpoint, result, nil, nil, LookupTimeout); err != nil {
		return geolocate.Coordinate{}, fmt.Errorf("failed to get geolocation data from API: %w", err)
	}

	acc := float64(geolocate.AccuracyUnknown)
	if result.CountryCode != "" {
		acc = geolocate.AccuracyCountry
	}
	if result.RegionCode != "" {
		acc = geolocate.AccuracyRegion
	}
	if result.City != "" {
		acc = geolocate.AccuracyCity
	}
	if result.ZipCode != "" {
		acc = geolocate.AccuracyZip
	}

	return geolocate.Coordinate{
		Lat:    geolocate.Truncate(result.Latitude, geolocate.TruncPrecision),
		Lon:    geolocate.Truncate(result.Longitude, geolocate.TruncPrecision),
		Acc:    acc,
		Source: p.name,
		At:     time.Now(),
	}, nil
}
