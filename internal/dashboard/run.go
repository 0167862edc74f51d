// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/wneessen/weather-dashboard/internal/logger"
)

// Run starts the clock and refresh jobs and the signal handlers. It blocks until ctx
// is cancelled.
func (s *Service) Run(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err = s.createScheduledJob(ctx, scheduler, s.config.Intervals.Clock, s.tick, "clock_job"); err != nil {
		return errors.Join(err, scheduler.Shutdown())
	}
	if err = s.createScheduledJob(ctx, scheduler, s.config.Intervals.Refresh, s.refresh,
		"weather_refresh_job"); err != nil {
		return errors.Join(err, scheduler.Shutdown())
	}
	scheduler.Start()
	s.tick(ctx)

	sigChan := make(chan os.Signal, 1)
	s.SignalSrc.Notify(sigChan, syscall.SIGUSR1)
	go func() {
		defer s.SignalSrc.Stop(sigChan)
		s.HandleSignals(ctx, sigChan)
	}()

	if !s.config.Intervals.DisableResumeRefresh {
		go s.monitorSleepResume(ctx)
	}

	<-ctx.Done()
	return scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, scheduler gocron.Scheduler, interval time.Duration,
	task func(context.Context), jobName string,
) error {
	job, err := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	s.logger.Debug("scheduled job created", slog.String("job", job.Name()), slog.Duration("interval", interval))
	return nil
}

// tick updates the clock.
func (s *Service) tick(context.Context) {
	s.binder.DisplayClock(s.presenter.Clock(s.now()))
}

// refresh refetches the weather of the location bound last. Before anything was bound,
// the last searched city is looked up again.
func (s *Service) refresh(ctx context.Context) {
	if coords, ok := s.state.Coordinates(); ok {
		s.binder.SetInputEnabled(false)
		defer s.binder.SetInputEnabled(true)
		if err := s.fetchAndBind(ctx, coords, s.state.DisplayName()); err != nil {
			s.logger.Error("failed to refresh weather data", logger.Err(err))
		}
		return
	}
	if city, ok := s.prefs.LastCity(ctx); ok {
		if err := s.Search(ctx, city); err != nil {
			s.logger.Error("failed to refresh weather data", logger.Err(err))
		}
	}
}
