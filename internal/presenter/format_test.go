// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"testing"

	"github.com/wneessen/weather-dashboard/internal/weather"
)

func TestRound(t *testing.T) {
	tests := []struct {
		val  float64
		want int
	}{
		{2.5, 3},
		{2.49, 2},
		{-2.5, -2},
		{-2.51, -3},
		{0, 0},
	}
	for _, tc := range tests {
		if got := Round(tc.val); got != tc.want {
			t.Errorf("Round(%f): expected %d, got %d", tc.val, tc.want, got)
		}
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"metric temperature", FormatTemperature(18.64, weather.Metric), "19°C"},
		{"imperial temperature", FormatTemperature(-0.4, weather.Imperial), "0°F"},
		{"metric wind converts to km/h", FormatWind(4.63, weather.Metric), "17 km/h"},
		{"imperial wind stays in mph", FormatWind(10.4, weather.Imperial), "10 mph"},
		{"visibility in km", FormatVisibility(10000), "10.0 km"},
		{"partial visibility in km", FormatVisibility(2500), "2.5 km"},
		{"humidity", FormatHumidity(67), "67%"},
		{"precipitation", FormatPercent(0.64), "64%"},
		{"description is capitalized", Capitalize("broken clouds"), "Broken clouds"},
		{"unicode description is capitalized", Capitalize("überwiegend bewölkt"), "Überwiegend bewölkt"},
		{"empty description", Capitalize(""), ""},
		{"icon URL", IconURL("10n"), "https://openweathermap.org/img/wn/10n@2x.png"},
		{"empty icon", IconURL(""), ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, tc.got)
			}
		})
	}
}

func TestDailyEntries(t *testing.T) {
	entries := func(n int) []weather.ForecastEntry {
		list := make([]weather.ForecastEntry, n)
		for i := range list {
			list[i].ConditionCode = i
		}
		return list
	}
	t.Run("every 8th entry is used", func(t *testing.T) {
		daily := DailyEntries(entries(40))
		if len(daily) != 5 {
			t.Fatalf("expected 5 entries, got %d", len(daily))
		}
		for i, entry := range daily {
			if entry.ConditionCode != i*8 {
				t.Errorf("expected entry %d, got %d", i*8, entry.ConditionCode)
			}
		}
	})
	t.Run("at most five entries are used", func(t *testing.T) {
		if daily := DailyEntries(entries(48)); len(daily) != 5 {
			t.Errorf("expected 5 entries, got %d", len(daily))
		}
	})
	t.Run("short forecasts yield fewer entries", func(t *testing.T) {
		if daily := DailyEntries(entries(10)); len(daily) != 2 {
			t.Errorf("expected 2 entries, got %d", len(daily))
		}
	})
	t.Run("the chart uses the first eight entries", func(t *testing.T) {
		if chart := ChartEntries(entries(40)); len(chart) != 8 {
			t.Errorf("expected 8 entries, got %d", len(chart))
		}
		if chart := ChartEntries(entries(3)); len(chart) != 3 {
			t.Errorf("expected 3 entries, got %d", len(chart))
		}
	})
}
