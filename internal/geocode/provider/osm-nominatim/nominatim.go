// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-dashboard/internal/fault"
	"github.com/wneessen/weather-dashboard/internal/geocode"
	"github.com/wneessen/weather-dashboard/internal/http"
)

const (
	APISearchEndpoint = "https://nominatim.openstreetmap.org/search"
	APITimeout        = time.Second * 10
	name              = "osm-nominatim"
)

type Nominatim struct {
	endpoint string
	http     *http.Client
	lang     language.Tag
}

type SearchResult struct {
	APILat      string  `json:"lat"`
	APILon      string  `json:"lon"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
}

type Address struct {
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	State       string `json:"state"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

func New(client *http.Client, lang language.Tag) *Nominatim {
	return &Nominatim{
		endpoint: APISearchEndpoint,
		lang:     lang,
		http:     client,
	}
}

func (n *Nominatim) Name() string {
	return name
}

func (n *Nominatim) Search(ctx context.Context, query string) (geocode.Location, error) {
	var result []SearchResult

	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("q", query)
	params.Set("limit", "1")
	params.Set("addressdetails", "1")
	params.Set("accept-language", n.lang.String())

	status, err := n.http.GetWithTimeout(ctx, n.endpoint, &result, params, nil, APITimeout)
	if err != nil {
		if errors.Is(err, http.ErrUnexpectedStatus) {
			return geocode.Location{}, fault.NewServiceError(fault.RequestGeocoding, status)
		}
		return geocode.Location{}, fmt.Errorf("failed to fetch address details from Nominatim API: %w", err)
	}
	if len(result) < 1 {
		return geocode.Location{}, fmt.Errorf("no coordinates found for address %q: %w", query, fault.ErrNotFound)
	}

	match := result[0]
	loc := geocode.Location{
		City:    match.Address.City,
		State:   match.Address.State,
		Country: strings.ToUpper(match.Address.CountryCode),
	}
	if loc.City == "" && match.Address.Town != "" {
		loc.City = match.Address.Town
	}
	if loc.City == "" && match.Address.Village != "" {
		loc.City = match.Address.Village
	}
	if loc.City == "" {
		loc.City = match.Name
	}
	if loc.Country == "" {
		loc.Country = match.Address.Country
	}

	loc.Latitude, err = strconv.ParseFloat(match.APILat, 64)
	if err != nil {
		return geocode.Location{}, fmt.Errorf("%w: failed to parse latitude from Nominatim API response: %w",
			fault.ErrMalformedData, err)
	}
	loc.Longitude, err = strconv.ParseFloat(match.APILon, 64)
	if err != nil {
		return geocode.Location{}, fmt.Errorf("%w: failed to parse longitude from Nominatim API response: %w",
			fault.ErrMalformedData, err)
	}

	return loc, nil
}
