// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package gpsd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"sync"
	"time"

	"github.com/stratoberry/go-gpsd"

	"github.com/wneessen/weather-dashboard/internal/geolocate"
)

const (
	host = "localhost"
	port = "2947"
	name = "gpsd"

	// defaultAccuracy is used when gpsd does not report an error estimate.
	defaultAccuracy = 25
	pollInterval    = time.Millisecond * 250
	maxFixAge       = time.Minute * 2
)

var ErrNoFix = errors.New("no GPS fix available")

type watchFunc func(addr string, onFix func(*gpsd.TPVReport)) (<-chan bool, error)

// GeolocationGPSDProvider keeps a watch on the gpsd TPV stream and answers lookups with
// the latest fix.
type GeolocationGPSDProvider struct {
	name    string
	addr    string
	watchFn watchFunc

	mu       sync.Mutex
	watching bool
	fix      geolocate.Coordinate
}

func NewGeolocationGPSDProvider() *GeolocationGPSDProvider {
	return &GeolocationGPSDProvider{
		name:    name,
		addr:    net.JoinHostPort(host, port),
		watchFn: watch,
	}
}

func (p *GeolocationGPSDProvider) Name() string {
	return p.name
}

// Locate waits for a recent fix until the context is done.
func (p *GeolocationGPSDProvider) Locate(ctx context.Context) (geolocate.Coordinate, error) {
	if err := p.ensureWatching(); err != nil {
		return geolocate.Coordinate{}, err
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if fix, ok := p.latest(); ok {
			return fix, nil
		}
		select {
		case <-ctx.Done():
			return geolocate.Coordinate{}, fmt.Errorf("%w: %w", ErrNoFix, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (p *GeolocationGPSDProvider) latest() (geolocate.Coordinate, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fix.Source == "" || time.Since(p.fix.At) > maxFixAge {
		return geolocate.Coordinate{}, false
	}
	return p.fix, true
}

// ensureWatching connects to gpsd unless a watch is already running. The watch is
// restarted on the next lookup once the connection ended.
func (p *GeolocationGPSDProvider) ensureWatching() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watching {
		return nil
	}

	done, err := p.watchFn(p.addr, p.update)
	if err != nil {
		return fmt.Errorf("failed to connect to gpsd at %q: %w", p.addr, err)
	}
	p.watching = true
	go func() {
		<-done
		p.mu.Lock()
		p.watching = false
		p.mu.Unlock()
	}()
	return nil
}

func (p *GeolocationGPSDProvider) update(tpv *gpsd.TPVReport) {
	// Need at least 2D fix
	if tpv == nil || tpv.Mode < gpsd.Mode2D {
		return
	}
	acc := math.Max(tpv.Epx, tpv.Epy)
	if acc <= 0 {
		acc = defaultAccuracy
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.fix = geolocate.Coordinate{
		Lat:    geolocate.Truncate(tpv.Lat, geolocate.TruncPrecision),
		Lon:    geolocate.Truncate(tpv.Lon, geolocate.TruncPrecision),
		Acc:    geolocate.Truncate(acc, geolocate.TruncPrecision),
		Source: p.name,
		At:     time.Now(),
	}
}

func watch(addr string, onFix func(*gpsd.TPVReport)) (<-chan bool, error) {
	session, err := gpsd.Dial(addr)
	if err != nil {
		return nil, err
	}
	session.AddFilter("TPV", func(r interface{}) {
		if tpv, ok := r.(*gpsd.TPVReport); ok {
			onFix(tpv)
		}
	})
	return session.Watch(), nil
}
