// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geoclue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/wneessen/weather-dashboard/internal/geolocate"
)

const (
	name = "geoclue"

	busName       = "org.freedesktop.GeoClue2"
	managerPath   = dbus.ObjectPath("/org/freedesktop/GeoClue2/Manager")
	managerIface  = "org.freedesktop.GeoClue2.Manager"
	clientIface   = "org.freedesktop.GeoClue2.Client"
	locationIface = "org.freedesktop.GeoClue2.Location"

	// accuracyLevelExact is GCLUE_ACCURACY_LEVEL_EXACT.
	accuracyLevelExact = uint32(8)
	pollInterval       = time.Millisecond * 500
)

var ErrNoLocation = errors.New("geoclue did not provide a location")

// GeolocationGeoClueProvider asks the GeoClue2 system service for the device position.
type GeolocationGeoClueProvider struct {
	name      string
	desktopID string
	locateFn  func(ctx context.Context) (lat, lon, acc float64, err error)
}

func NewGeolocationGeoClueProvider(desktopID string) *GeolocationGeoClueProvider {
	provider := &GeolocationGeoClueProvider{
		name:      name,
		desktopID: desktopID,
	}
	provider.locateFn = provider.locate
	return provider
}

func (p *GeolocationGeoClueProvider) Name() string {
	return p.name
}

func (p *GeolocationGeoClueProvider) Locate(ctx context.Context) (geolocate.Coordinate, error) {
	lat, lon, acc, err := p.locateFn(ctx)
	if err != nil {
		return geolocate.Coordinate{}, err
	}
	return geolocate.Coordinate{
		Lat:    geolocate.Truncate(lat, geolocate.TruncPrecision),
		Lon:    geolocate.Truncate(lon, geolocate.TruncPrecision),
		Acc:    acc,
		Source: p.name,
		At:     time.Now(),
	}, nil
}

func (p *GeolocationGeoClueProvider) locate(ctx context.Context) (lat, lon, acc float64, err error) {
	conn, err := dbus.ConnectSystemBus(dbus.WithContext(ctx))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	var clientPath dbus.ObjectPath
	manager := conn.Object(busName, managerPath)
	if err = manager.CallWithContext(ctx, managerIface+".GetClient", 0).Store(&clientPath); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get geoclue client: %w", err)
	}

	client := conn.Object(busName, clientPath)
	if err = client.SetProperty(clientIface+".DesktopId", dbus.MakeVariant(p.desktopID)); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to set desktop id: %w", err)
	}
	if err = client.SetProperty(clientIface+".RequestedAccuracyLevel", dbus.MakeVariant(accuracyLevelExact)); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to set accuracy level: %w", err)
	}
	if err = client.CallWithContext(ctx, clientIface+".Start", 0).Err; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to start geoclue client: %w", err)
	}
	defer func() {
		if stopErr := client.Call(clientIface+".Stop", 0).Err; stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()

	locationPath, err := waitForLocation(ctx, client)
	if err != nil {
		return 0, 0, 0, err
	}
	location := conn.Object(busName, locationPath)
	if lat, err = floatProperty(location, locationIface+".Latitude"); err != nil {
		return 0, 0, 0, err
	}
	if lon, err = floatProperty(location, locationIface+".Longitude"); err != nil {
		return 0, 0, 0, err
	}
	if acc, err = floatProperty(location, locationIface+".Accuracy"); err != nil {
		return 0, 0, 0, err
	}
	return lat, lon, acc, nil
}

// waitForLocation polls the client until GeoClue published a location object.
func waitForLocation(ctx context.Context, client dbus.BusObject) (dbus.ObjectPath, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		variant, err := client.GetProperty(clientIface + ".Location")
		if err != nil {
			return "", fmt.Errorf("failed to read location property: %w", err)
		}
		if path, ok := variant.Value().(dbus.ObjectPath); ok && path != "/" {
			return path, nil
		}
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", ErrNoLocation, ctx.Err())
		case <-ticker.C:
		}
	}
}

func floatProperty(obj dbus.BusObject, property string) (float64, error) {
	variant, err := obj.GetProperty(property)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", property, err)
	}
	value, ok := variant.Value().(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected type %T for %s", variant.Value(), property)
	}
	return value, nil
}
