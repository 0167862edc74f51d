// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package dashboard

import (
	"errors"

	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/weather-dashboard/internal/fault"
)

const (
	msgInitial         localize.MsgID = "Enter a city name to get weather information"
	msgEmptyCity       localize.MsgID = "Please enter a city name"
	msgSearching       localize.MsgID = "Searching..."
	msgFindingCity     localize.MsgID = "Finding city..."
	msgFetching        localize.MsgID = "Fetching weather data..."
	msgNotFound        localize.MsgID = "City not found. Please check the spelling and try again."
	msgGeocodingError  localize.MsgID = "Failed to fetch city data (%d). Please try again."
	msgWeatherError    localize.MsgID = "Weather API error (%d)"
	msgForecastError   localize.MsgID = "Forecast API error (%d)"
	msgMalformed       localize.MsgID = "Error: Invalid weather data received"
	msgGenericError    localize.MsgID = "Failed to get weather data. Please try again."
	msgRequestLocation localize.MsgID = "Requesting location..."
	msgLocationFailed  localize.MsgID = "Geolocation denied or failed: %s"
	msgNoGeolocation   localize.MsgID = "Geolocation not available"
	msgBadCoordinates  localize.MsgID = "Invalid coordinates"
)

// statusFor maps an operation error to its status message and format arguments.
func statusFor(err error) (localize.MsgID, []any) {
	if serr, ok := fault.AsServiceError(err); ok {
		switch serr.Request {
		case fault.RequestGeocoding:
			return msgGeocodingError, []any{serr.StatusCode}
		case fault.RequestForecast:
			return msgForecastError, []any{serr.StatusCode}
		default:
			return msgWeatherError, []any{serr.StatusCode}
		}
	}
	switch {
	case errors.Is(err, fault.ErrValidation):
		return msgEmptyCity, nil
	case errors.Is(err, fault.ErrNotFound):
		return msgNotFound, nil
	case errors.Is(err, fault.ErrMalformedData):
		return msgMalformed, nil
	default:
		return msgGenericError, nil
	}
}
