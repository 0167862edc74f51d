// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package view

import (
	"sync"

	"github.com/wneessen/weather-dashboard/internal/presenter"
)

// Snapshot is a copy of everything bound so far.
type Snapshot struct {
	Status       string                  `json:"status"`
	InputEnabled bool                    `json:"input_enabled"`
	Current      *presenter.CurrentView  `json:"current,omitempty"`
	Forecast     *presenter.ForecastView `json:"forecast,omitempty"`
	Clock        presenter.ClockView     `json:"clock"`
}

// State records the bound values so they can be served over HTTP.
type State struct {
	mu    sync.RWMutex
	state Snapshot
}

func NewState() *State {
	return &State{state: Snapshot{InputEnabled: true}}
}

func (s *State) DisplayCurrent(v presenter.CurrentView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Current = &v
}

func (s *State) DisplayForecast(v presenter.ForecastView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Forecast = &v
}

func (s *State) DisplayStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = msg
}

func (s *State) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.InputEnabled = enabled
}

func (s *State) DisplayClock(v presenter.ClockView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Clock = v
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.state
	if s.state.Current != nil {
		current := *s.state.Current
		snap.Current = &current
	}
	if s.state.Forecast != nil {
		forecast := *s.state.Forecast
		snap.Forecast = &forecast
	}
	return snap
}
