// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/vorlif/spreak/localize"

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// ConditionNames maps the OpenWeatherMap condition groups to translatable names
var ConditionNames = map[string]localize.MsgID{
	"Thunderstorm": "Thunderstorm",
	"Drizzle":      "Drizzle",
	"Rain":         "Rain",
	"Snow":         "Snow",
	"Mist":         "Mist",
	"Smoke":        "Smoke",
	"Haze":         "Haze",
	"Dust":         "Dust",
	"Fog":          "Fog",
	"Sand":         "Sand",
	"Ash":          "Ash",
	"Squall":       "Squall",
	"Tornado":      "Tornado",
	"Clear":        "Clear",
	"Clouds":       "Clouds",
}

var i18nVars = map[string]localize.MsgID{
	"temp":            "Temperature",
	"humidity":        "Humidity",
	"wind":            "Wind",
	"visibility":      "Visibility",
	"apparent":        "Feels like",
	"rain":            "rain",
	"forecast":        "Forecast",
	"sunrise":         "Sunrise",
	"sunset":          "Sunset",
	"moonphase":       "Moonphase",
	"updated":         "Updated",
	"new moon":        "New moon",
	"waxing crescent": "Waxing crescent",
	"first quarter":   "First quarter",
	"waxing gibbous":  "Waxing gibbous",
	"full moon":       "Full moon",
	"waning gibbous":  "Waning gibbous",
	"third quarter":   "Third quarter",
	"waning crescent": "Waning crescent",
}
