// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package fault defines the error kinds shared by the dashboard operations.
package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates invalid user input, such as an empty city name.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates that the geocoding lookup returned no match.
	ErrNotFound = errors.New("location not found")

	// ErrMalformedData indicates that an API response lacked required fields.
	ErrMalformedData = errors.New("malformed data received")

	// ErrService indicates that a remote API returned a non-success status.
	ErrService = errors.New("service error")
)

// Sub-request names carried by ServiceError.
const (
	RequestGeocoding = "geocoding"
	RequestCurrent   = "current"
	RequestForecast  = "forecast"
)

// ServiceError reports a non-success HTTP status of a named sub-request.
type ServiceError struct {
	Request    string
	StatusCode int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s request failed with status %d", e.Request, e.StatusCode)
}

// Is reports ServiceError as an ErrService so callers can use errors.Is.
func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

// NewServiceError returns a ServiceError for the given sub-request and status code.
func NewServiceError(request string, status int) error {
	return &ServiceError{Request: request, StatusCode: status}
}

// Validation wraps ErrValidation with a reason.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// Malformed wraps ErrMalformedData with the name of the missing field.
func Malformed(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedData, field)
}

// AsServiceError returns the ServiceError in err's chain, if any.
func AsServiceError(err error) (*ServiceError, bool) {
	var serr *ServiceError
	if errors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}
