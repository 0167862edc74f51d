// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build linux

// Package main implements the weather-dashboard command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/wneessen/weather-dashboard/internal/config"
	"github.com/wneessen/weather-dashboard/internal/dashboard"
	"github.com/wneessen/weather-dashboard/internal/fault"
	"github.com/wneessen/weather-dashboard/internal/httpapi"
	"github.com/wneessen/weather-dashboard/internal/i18n"
	"github.com/wneessen/weather-dashboard/internal/logger"
	"github.com/wneessen/weather-dashboard/internal/presenter"
	"github.com/wneessen/weather-dashboard/internal/view"
	"github.com/wneessen/weather-dashboard/internal/weather"
)

const (
	shutdownTimeout = time.Second * 5
	readTimeout     = time.Second * 15
	writeTimeout    = time.Second * 30
	idleTimeout     = time.Second * 60
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type flags struct {
	config string
	city   string
	lat    string
	lon    string
	units  string
	locate bool
	serve  bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	opts := flags{}
	flag.StringVar(&opts.config, "config", "", "path to the config file")
	flag.StringVar(&opts.city, "city", "", "show the weather for this city")
	flag.StringVar(&opts.lat, "lat", "", "latitude to show the weather for (requires -lon)")
	flag.StringVar(&opts.lon, "lon", "", "longitude to show the weather for (requires -lat)")
	flag.StringVar(&opts.units, "units", "", "unit system to use (metric or imperial)")
	flag.BoolVar(&opts.locate, "locate", false, "show the weather at the device position")
	flag.BoolVar(&opts.serve, "serve", false, "keep running and serve the JSON API")
	flag.Parse()

	conf, err := loadConfig(opts.config)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	log = logger.New(conf.LogLevel)
	localizer, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}
	pres, err := presenter.New(localizer)
	if err != nil {
		log.Error("failed to initialize presenter", logger.Err(err))
		os.Exit(1)
	}
	terminal, err := view.NewTerminal(os.Stdout, pres.FuncMap(), conf.Templates.Current, conf.Templates.Forecast)
	if err != nil {
		log.Error("failed to initialize terminal view", logger.Err(err))
		os.Exit(1)
	}
	state := view.NewState()

	serv, closer, err := dashboard.NewFromConfig(ctx, conf, log, pres, view.Multi(terminal, state))
	if err != nil {
		log.Error("failed to initialize weather-dashboard", logger.Err(err))
		os.Exit(1)
	}
	defer func() {
		if err := closer(); err != nil {
			log.Error("failed to release resources", logger.Err(err))
		}
	}()

	log.Debug("starting weather-dashboard", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = loadWeather(ctx, serv, opts); err != nil {
		log.Debug("initial weather lookup failed", logger.Err(err))
		if !opts.serve {
			cancel()
			os.Exit(1)
		}
	}
	if !opts.serve {
		return
	}

	if err = serve(ctx, conf, serv, state, log); err != nil {
		log.Error("failed to run weather-dashboard", logger.Err(err))
	}
	log.Info("shutting down weather-dashboard")
}

// loadConfig reads the config file given on the command line or the one in the default
// location. Without a file the environment and the defaults are used.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

// loadWeather runs the operation selected by the command line flags. The dashboard
// already reported failures in its status line.
func loadWeather(ctx context.Context, serv *dashboard.Service, opts flags) error {
	if opts.units != "" {
		units, err := weather.ParseUnitSystem(opts.units)
		if err != nil {
			return err
		}
		if err = serv.SelectUnits(ctx, units); err != nil {
			return err
		}
	}

	switch {
	case opts.city != "":
		return serv.Search(ctx, opts.city)
	case opts.lat != "" || opts.lon != "":
		lat, latErr := strconv.ParseFloat(opts.lat, 64)
		lon, lonErr := strconv.ParseFloat(opts.lon, 64)
		if err := errors.Join(latErr, lonErr); err != nil {
			return fault.Validation(fmt.Sprintf("invalid coordinates: %s", err))
		}
		return serv.Locate(ctx, lat, lon)
	case opts.locate:
		return serv.LocateDevice(ctx)
	default:
		return serv.InitialLoad(ctx)
	}
}

// serve runs the scheduled jobs and the JSON API until ctx is cancelled.
func serve(ctx context.Context, conf *config.Config, serv *dashboard.Service, state *view.State,
	log *logger.Logger,
) error {
	api, err := httpapi.NewServer(serv, state, log)
	if err != nil {
		return err
	}
	httpSrv := &http.Server{
		Addr:         conf.Server.Address,
		Handler:      api.Handler(conf.Server.AllowedOrigins),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	go func() {
		log.Info("serving weather-dashboard API", slog.String("address", conf.Server.Address))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("API server failed", logger.Err(err))
		}
	}()

	runErr := serv.Run(ctx)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(runErr, httpSrv.Shutdown(shutdownCtx))
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "weather-dashboard", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
