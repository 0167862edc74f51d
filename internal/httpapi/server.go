// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package httpapi exposes the dashboard operations as a JSON API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/wneessen/weather-dashboard/internal/dashboard"
	"github.com/wneessen/weather-dashboard/internal/fault"
	"github.com/wneessen/weather-dashboard/internal/logger"
	"github.com/wneessen/weather-dashboard/internal/view"
	"github.com/wneessen/weather-dashboard/internal/weather"
)

const corsMaxAge = 300

// Dashboard is the set of operations served by the API.
type Dashboard interface {
	Search(ctx context.Context, city string) error
	Locate(ctx context.Context, lat, lon float64) error
	LocateDevice(ctx context.Context) error
	SetUnits(ctx context.Context, units weather.UnitSystem) error
	ToggleUnits(ctx context.Context) error
	Units() weather.UnitSystem
}

// Snapshotter returns the bound view state.
type Snapshotter interface {
	Snapshot() view.Snapshot
}

// Response is returned by every dashboard endpoint.
type Response struct {
	Units     weather.UnitSystem `json:"units"`
	Dashboard view.Snapshot      `json:"dashboard"`
	Error     string             `json:"error,omitempty"`
}

type Server struct {
	dash   Dashboard
	state  Snapshotter
	logger *logger.Logger
}

func NewServer(dash Dashboard, state Snapshotter, log *logger.Logger) (*Server, error) {
	if dash == nil {
		return nil, errors.New("dashboard is required")
	}
	if state == nil {
		return nil, errors.New("view state is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	return &Server{dash: dash, state: state, logger: log}, nil
}

// Handler returns the router serving the API. Cross-origin requests are accepted from
// allowedOrigins.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         corsMaxAge,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", s.RegisterRoutes)
	return r
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", s.handleDashboard)
	r.Post("/search", s.handleSearch)
	r.Post("/locate", s.handleLocate)
	r.Post("/locate/device", s.handleLocateDevice)
	r.Put("/units", s.handleSetUnits)
	r.Post("/units/toggle", s.handleToggleUnits)
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, nil)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	s.respond(w, s.dash.Search(r.Context(), city))
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lat parameter"})
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lon parameter"})
		return
	}
	s.respond(w, s.dash.Locate(r.Context(), lat, lon))
}

func (s *Server) handleLocateDevice(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.dash.LocateDevice(r.Context()))
}

func (s *Server) handleSetUnits(w http.ResponseWriter, r *http.Request) {
	units, err := weather.ParseUnitSystem(r.URL.Query().Get("units"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.respond(w, s.dash.SetUnits(r.Context(), units))
}

func (s *Server) handleToggleUnits(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.dash.ToggleUnits(r.Context()))
}

// respond writes the current dashboard state. On failure the status line of the
// dashboard doubles as the error message.
func (s *Server) respond(w http.ResponseWriter, err error) {
	resp := Response{
		Units:     s.dash.Units(),
		Dashboard: s.state.Snapshot(),
	}
	if err == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.Error = resp.Dashboard.Status
	if resp.Error == "" {
		resp.Error = err.Error()
	}
	writeJSON(w, StatusCode(err), resp)
}

// StatusCode maps an operation error to an HTTP status code.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, fault.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, fault.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, fault.ErrService), errors.Is(err, fault.ErrMalformedData):
		return http.StatusBadGateway
	case errors.Is(err, dashboard.ErrGeolocationUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request served", slog.String("method", r.Method), slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()), slog.Duration("duration", time.Since(start)))
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
