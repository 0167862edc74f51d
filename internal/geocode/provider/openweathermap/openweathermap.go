// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-dashboard/internal/fault"
	"github.com/wneessen/weather-dashboard/internal/geocode"
	"github.com/wneessen/weather-dashboard/internal/http"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/geo/1.0"
	directEndpoint = "/direct"
	APITimeout     = time.Second * 10
	name           = "openweathermap"
)

type OpenWeatherMap struct {
	apiKey  string
	baseURL string
	http    *http.Client
	lang    language.Tag
}

type SearchResult struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Country    string            `json:"country"`
	State      string            `json:"state"`
}

func New(client *http.Client, lang language.Tag, apiKey, baseURL string) (*OpenWeatherMap, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenWeatherMap API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenWeatherMap{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    client,
		lang:    lang,
	}, nil
}

func (o *OpenWeatherMap) Name() string {
	return name
}

// Search asks the direct geocoding endpoint for the single best match of query.
func (o *OpenWeatherMap) Search(ctx context.Context, query string) (geocode.Location, error) {
	var result []SearchResult

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")
	params.Set("appid", o.apiKey)

	status, err := o.http.GetWithTimeout(ctx, o.baseURL+directEndpoint, &result, params, nil, APITimeout)
	if err != nil {
		if errors.Is(err, http.ErrUnexpectedStatus) {
			return geocode.Location{}, fault.NewServiceError(fault.RequestGeocoding, status)
		}
		return geocode.Location{}, fmt.Errorf("failed to fetch city data from OpenWeatherMap API: %w", err)
	}
	if len(result) < 1 {
		return geocode.Location{}, fmt.Errorf("no coordinates found for city %q: %w", query, fault.ErrNotFound)
	}

	match := result[0]
	return geocode.Location{
		Latitude:  match.Lat,
		Longitude: match.Lon,
		City:      o.localName(match),
		State:     match.State,
		Country:   match.Country,
	}, nil
}

// localName prefers the city name in the configured language if the API knows it.
func (o *OpenWeatherMap) localName(match SearchResult) string {
	base, _ := o.lang.Base()
	if local, ok := match.LocalNames[base.String()]; ok && local != "" {
		return local
	}
	return match.Name
}
