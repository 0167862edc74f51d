// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/wneessen/weather-dashboard/internal/weather"

// BackgroundKey selects the dashboard background and its animated effects.
type BackgroundKey string

const (
	ClearDay     BackgroundKey = "clear-day"
	ClearNight   BackgroundKey = "clear-night"
	Clouds       BackgroundKey = "clouds"
	Smoke        BackgroundKey = "smoke"
	Rain         BackgroundKey = "rain"
	Snow         BackgroundKey = "snow"
	Fog          BackgroundKey = "fog"
	Thunderstorm BackgroundKey = "thunderstorm"
	Hot          BackgroundKey = "hot"
	Warm         BackgroundKey = "warm"
	Mild         BackgroundKey = "mild"
	Cool         BackgroundKey = "cool"
	Cold         BackgroundKey = "cold"

	conditionClear = 800
)

// Gradients holds the CSS background for each key.
var Gradients = map[BackgroundKey]string{
	ClearDay:     "linear-gradient(120deg,#89f7fe 0%, #66a6ff 100%)",
	ClearNight:   "linear-gradient(180deg,#0f2027 0%, #203a43 50%, #2c5364 100%)",
	Clouds:       "linear-gradient(120deg,#d7d2cc 0%, #304352 100%)",
	Smoke:        "linear-gradient(120deg,#6b6b6b 0%, #2b2b2b 100%)",
	Rain:         "linear-gradient(120deg,#2b5876 0%, #4e4376 100%)",
	Snow:         "linear-gradient(120deg,#e6dada 0%, #274046 100%)",
	Fog:          "linear-gradient(120deg,#bdc3c7 0%, #2c3e50 100%)",
	Thunderstorm: "linear-gradient(120deg,#000428 0%, #004e92 100%)",
	Hot:          "linear-gradient(120deg, #ff512f 0%, #dd2476 100%)",
	Warm:         "linear-gradient(120deg, #f6d365 0%, #fda085 100%)",
	Mild:         "linear-gradient(120deg, #89f7fe 0%, #66a6ff 100%)",
	Cool:         "linear-gradient(120deg, #4facfe 0%, #00f2fe 100%)",
	Cold:         "linear-gradient(120deg, #e6dada 0%, #274046 100%)",
}

// EffectKind names a particle animation.
type EffectKind string

const (
	EffectClouds EffectKind = "clouds"
	EffectRain   EffectKind = "rain"
	EffectSnow   EffectKind = "snow"
)

// Effect describes an ambient animation layer. Rendering it is up to the view.
type Effect struct {
	Kind    EffectKind `json:"kind"`
	Density int        `json:"density"`
}

type threshold struct {
	min float64
	key BackgroundKey
}

var tiers = map[weather.UnitSystem][]threshold{
	weather.Metric:   {{30, Hot}, {25, Warm}, {15, Mild}, {5, Cool}},
	weather.Imperial: {{86, Hot}, {77, Warm}, {59, Mild}, {41, Cool}},
}

// Classify derives the background key for the current conditions.
//
// The temperature tier comes first. Severe conditions replace it unless the tier is hot.
// A clear sky with a night icon always yields ClearNight; cloudy nights keep their key.
func Classify(snap weather.Snapshot, units weather.UnitSystem) BackgroundKey {
	key := temperatureTier(snap.Temperature, units)

	if key != Hot {
		code := snap.ConditionCode
		switch {
		case code >= 200 && code < 300:
			key = Thunderstorm
		case code >= 500 && code < 600:
			key = Rain
		case code >= 600 && code < 700:
			key = Snow
		case code >= 700 && code < 800:
			key = Fog
		}
	}

	if snap.ConditionCode == conditionClear && snap.IsNightIcon() {
		key = ClearNight
	}
	return key
}

func temperatureTier(temp float64, units weather.UnitSystem) BackgroundKey {
	list, ok := tiers[units]
	if !ok {
		list = tiers[weather.Metric]
	}
	for _, tier := range list {
		if temp >= tier.min {
			return tier.key
		}
	}
	return Cold
}

// Gradient returns the CSS gradient for key. Unknown keys use the clouds gradient.
func Gradient(key BackgroundKey) string {
	if gradient, ok := Gradients[key]; ok {
		return gradient
	}
	return Gradients[Clouds]
}

// Effects returns the animation layers for key.
func Effects(key BackgroundKey) []Effect {
	switch key {
	case Clouds:
		return []Effect{{Kind: EffectClouds, Density: 5}}
	case Rain:
		return []Effect{{Kind: EffectRain, Density: 50}}
	case Snow:
		return []Effect{{Kind: EffectSnow, Density: 30}}
	case Thunderstorm:
		return []Effect{{Kind: EffectClouds, Density: 3}, {Kind: EffectRain, Density: 80}}
	default:
		return nil
	}
}
