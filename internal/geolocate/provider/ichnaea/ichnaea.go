// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package ichnaea

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mdlayher/wifi"

	"github.com/wneessen/weather-dashboard/internal/geolocate"
	"github.com/wneessen/weather-dashboard/internal/http"
)

const (
	APIEndpoint   = "https://api.beacondb.net/v1/geolocate"
	LookupTimeout = time.Second * 5
	name          = "ichnaea"
)

type GeolocationICHNAEAProvider struct {
	name     string
	endpoint string
	http     *http.Client
	scanFn   func() ([]WirelessNetwork, error)
}

type APIResult struct {
	Location struct {
		Latitude  float64 `json:"lat"`
		Longitude float64 `json:"lng"`
	} `json:"location"`
	Accuracy float64 `json:"accuracy"`
}

type WirelessNetwork struct {
	LastSeen       int64  `json:"age"`
	MACAddress     string `json:"macAddress"`
	SignalStrength int32  `json:"signalStrength"`
}

type request struct {
	ConsiderIP   bool              `json:"considerIp"`
	Accesspoints []WirelessNetwork `json:"wifiAccessPoints,omitempty"`
}

func NewGeolocationICHNAEAProvider(http *http.Client) (*GeolocationICHNAEAProvider, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	return &GeolocationICHNAEAProvider{
		name:     name,
		endpoint: APIEndpoint,
		http:     http,
		scanFn:   wifiAccessPoints,
	}, nil
}

func (p *GeolocationICHNAEAProvider) Name() string {
	return p.name
}

// Locate sends the visible wifi access points to the ICHNAEA compatible API. If no
// access points can be scanned, the lookup falls back to the public IP address.
func (p *GeolocationICHNAEAProvider) Locate(ctx context.Context) (geolocate.Coordinate, error) {
	aps, err := p.scanFn()
	if err != nil {
		aps = nil
	}

	body := bytes.NewBuffer(nil)
	if err = json.NewEncoder(body).Encode(request{ConsiderIP: true, Accesspoints: aps}); err != nil {
		return geolocate.Coordinate{}, fmt.Errorf("failed to encode wifi list to JSON: %w", err)
	}

	result := new(APIResult)
	if _, err = p.http.PostWithTimeout(ctx, p.endpoint, result, body,
		map[string]string{"Content-Type": "application/json"}, LookupTimeout); err != nil {
		return geolocate.Coordinate{}, fmt.Errorf("failed to get geolocation data from API: %w", err)
	}

	return geolocate.Coordinate{
		Lat:    geolocate.Truncate(result.Location.Latitude, geolocate.TruncPrecision),
		Lon:    geolocate.Truncate(result.Location.Longitude, geolocate.TruncPrecision),
		Acc:    geolocate.Truncate(result.Accuracy, geolocate.TruncPrecision),
		Source: p.name,
		At:     time.Now(),
	}, nil
}

// wifiAccessPoints scans all station interfaces. Hidden networks and networks that
// opted out of location services via the _nomap suffix are skipped.
func wifiAccessPoints() (list []WirelessNetwork, err error) {
	wlan, err := wifi.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create wifi client: %w", err)
	}
	defer func() {
		if closeErr := wlan.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	ifaces, err := wlan.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if iface.Type != wifi.InterfaceTypeStation {
			continue
		}
		aps, err := wlan.AccessPoints(iface)
		if err != nil {
			continue
		}
		for _, ap := range aps {
			if skipSSID(ap.SSID) {
				continue
			}
			list = append(list, WirelessNetwork{
				SignalStrength: ap.Signal / 100,
				MACAddress:     ap.BSSID.String(),
				LastSeen:       ap.LastSeen.Milliseconds(),
			})
		}
	}
	return list, nil
}

func skipSSID(ssid string) bool {
	return ssid == "" || ssid[0] == '\x00' || strings.HasSuffix(ssid, "_nomap")
}
