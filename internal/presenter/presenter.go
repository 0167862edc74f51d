// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/weather-dashboard/internal/weather"
)

const (
	weekdayFormat = "D"
	chartFormat   = "15:04"
)

// CurrentView is the bindable form of the current conditions.
type CurrentView struct {
	Location      string        `json:"location"`
	Condition     string        `json:"condition"`
	Description   string        `json:"description"`
	Temperature   string        `json:"temperature"`
	FeelsLike     string        `json:"feels_like"`
	Humidity      string        `json:"humidity"`
	Wind          string        `json:"wind,omitempty"`
	Visibility    string        `json:"visibility,omitempty"`
	IconURL       string        `json:"icon_url"`
	Background    BackgroundKey `json:"background"`
	Gradient      string        `json:"gradient"`
	Effects       []Effect      `json:"effects"`
	ObservedAt    string        `json:"observed_at"`
	Sunrise       string        `json:"sunrise,omitempty"`
	Sunset        string        `json:"sunset,omitempty"`
	MoonPhase     string        `json:"moon_phase"`
	MoonPhaseIcon string        `json:"moon_phase_icon"`
}

// ForecastCard summarizes one forecast day.
type ForecastCard struct {
	Weekday       string `json:"weekday"`
	IconURL       string `json:"icon_url"`
	Description   string `json:"description"`
	Max           string `json:"max"`
	Min           string `json:"min"`
	Precipitation string `json:"precipitation"`
}

type ChartPoint struct {
	Label       string `json:"label"`
	Temperature int    `json:"temperature"`
}

// Chart is the temperature line of the next 24 hours.
type Chart struct {
	Title  string       `json:"title"`
	Points []ChartPoint `json:"points"`
}

type ForecastView struct {
	Cards []ForecastCard `json:"cards"`
	Chart Chart          `json:"chart"`
}

type ClockView struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Presenter turns weather data into localized view models.
type Presenter struct {
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	now       func() time.Time
}

func New(localizer *spreak.Localizer) (*Presenter, error) {
	if localizer == nil {
		return nil, errors.New("localizer is required")
	}
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}
	return &Presenter{
		localizer: localizer,
		humanizer: collection.CreateHumanizer(localizer.Language()),
		now:       time.Now,
	}, nil
}

// Current builds the view of the current conditions. The display name of a geocoded
// location is preferred over the name the weather API returned.
func (p *Presenter) Current(snap weather.Snapshot, units weather.UnitSystem, displayName string) CurrentView {
	key := Classify(snap, units)
	loc := snap.Location()
	view := CurrentView{
		Location:    displayName,
		Condition:   p.condition(snap.ConditionMain),
		Description: Capitalize(snap.Description),
		Temperature: FormatTemperature(snap.Temperature, units),
		FeelsLike:   FormatTemperature(snap.FeelsLike, units),
		Humidity:    FormatHumidity(snap.Humidity),
		IconURL:     IconURL(snap.IconID),
		Background:  key,
		Gradient:    Gradient(key),
		Effects:     Effects(key),
	}
	if view.Location == "" {
		view.Location = snap.LocationName
	}
	if snap.WindSpeed.IsSet() {
		view.Wind = FormatWind(snap.WindSpeed.Value(), units)
	}
	if snap.Visibility.IsSet() && snap.Visibility.Value() > 0 {
		view.Visibility = FormatVisibility(snap.Visibility.Value())
	}
	if !snap.ObservedAt.IsZero() {
		view.ObservedAt = p.clockTime(snap.ObservedAt.In(loc))
	}

	day := snap.ObservedAt
	if day.IsZero() {
		day = p.now()
	}
	day = day.In(loc)
	rise, set := sunrise.SunriseSunset(snap.Coordinates.Lat, snap.Coordinates.Lon, day.Year(), day.Month(), day.Day())
	if !rise.IsZero() && !set.IsZero() {
		view.Sunrise = p.clockTime(rise.In(loc))
		view.Sunset = p.clockTime(set.In(loc))
	}

	moon := moonphase.New(day)
	view.MoonPhase = p.loc(moon.PhaseName())
	view.MoonPhaseIcon = MoonPhaseIcon[moon.PhaseName()]
	return view
}

// Forecast builds the daily cards and the temperature chart.
func (p *Presenter) Forecast(forecast weather.Forecast, units weather.UnitSystem) ForecastView {
	loc := forecast.Location()
	daily := DailyEntries(forecast.Entries)
	view := ForecastView{
		Cards: make([]ForecastCard, 0, len(daily)),
		Chart: Chart{
			Title: p.localizer.Getf("Temperature (%s)", units.Units().Temperature),
		},
	}
	for _, entry := range daily {
		view.Cards = append(view.Cards, ForecastCard{
			Weekday:       p.humanizer.FormatTime(entry.Time.In(loc), weekdayFormat),
			IconURL:       IconURL(entry.IconID),
			Description:   entry.Description,
			Max:           FormatTemperature(entry.TempMax, units),
			Min:           FormatTemperature(entry.TempMin, units),
			Precipitation: FormatPercent(entry.PrecipitationProbability),
		})
	}

	hourly := ChartEntries(forecast.Entries)
	view.Chart.Points = make([]ChartPoint, 0, len(hourly))
	for _, entry := range hourly {
		view.Chart.Points = append(view.Chart.Points, ChartPoint{
			Label:       entry.Time.In(loc).Format(chartFormat),
			Temperature: Round(entry.Temperature),
		})
	}
	return view
}

// Clock returns the localized date and time of now.
func (p *Presenter) Clock(now time.Time) ClockView {
	return ClockView{
		Date: p.humanizer.FormatTime(now, humanize.DateFormat),
		Time: p.clockTime(now),
	}
}

// Status translates a status message.
func (p *Presenter) Status(msg string, args ...any) string {
	if msg == "" {
		return ""
	}
	if len(args) == 0 {
		return p.localizer.Get(msg)
	}
	return p.localizer.Getf(msg, args...)
}

// FuncMap returns the template functions of the terminal view.
func (p *Presenter) FuncMap() template.FuncMap {
	return template.FuncMap{
		"loc": p.loc,
		"uc":  strings.ToUpper,
	}
}

func (p *Presenter) loc(val string) string {
	val = strings.ToLower(val)
	if raw, ok := i18nVars[val]; ok {
		return p.localizer.Get(raw)
	}
	return val
}

func (p *Presenter) condition(main string) string {
	if raw, ok := ConditionNames[main]; ok {
		return p.localizer.Get(raw)
	}
	return main
}

func (p *Presenter) clockTime(val time.Time) string {
	return p.humanizer.FormatTime(val, humanize.TimeFormat)
}
