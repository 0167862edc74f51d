// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package dashboard

import (
	"sync"

	"github.com/wneessen/weather-dashboard/internal/weather"
)

// State is the application state shared by all operations.
type State struct {
	mu          sync.RWMutex
	units       weather.UnitSystem
	displayName string
	coords      weather.Coordinates
	hasCoords   bool
}

func NewState(units weather.UnitSystem) *State {
	return &State{units: units}
}

func (s *State) Units() weather.UnitSystem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units
}

func (s *State) SetUnits(units weather.UnitSystem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units = units
}

// DisplayName returns the name of the location that was bound last.
func (s *State) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayName
}

// Coordinates returns the coordinates of the location that was bound last.
func (s *State) Coordinates() (weather.Coordinates, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coords, s.hasCoords
}

func (s *State) setLocation(displayName string, coords weather.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayName = displayName
	s.coords = coords
	s.hasCoords = true
}
