// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package view

import "github.com/wneessen/weather-dashboard/internal/presenter"

// Binder is the output side of the dashboard. Implementations must be safe for
// concurrent use.
type Binder interface {
	DisplayCurrent(presenter.CurrentView)
	DisplayForecast(presenter.ForecastView)
	DisplayStatus(string)
	SetInputEnabled(bool)
	DisplayClock(presenter.ClockView)
}

type multi []Binder

// Multi returns a Binder that forwards every call to all binders in order.
func Multi(binders ...Binder) Binder {
	return multi(binders)
}

func (m multi) DisplayCurrent(v presenter.CurrentView) {
	for _, b := range m {
		b.DisplayCurrent(v)
	}
}

func (m multi) DisplayForecast(v presenter.ForecastView) {
	for _, b := range m {
		b.DisplayForecast(v)
	}
}

func (m multi) DisplayStatus(msg string) {
	for _, b := range m {
		b.DisplayStatus(msg)
	}
}

func (m multi) SetInputEnabled(enabled bool) {
	for _, b := range m {
		b.SetInputEnabled(enabled)
	}
}

func (m multi) DisplayClock(v presenter.ClockView) {
	for _, b := range m {
		b.DisplayClock(v)
	}
}
