// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package dashboard

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/wneessen/weather-dashboard/internal/logger"
)

type signalSource interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type stdLibSignalSource struct{}

func (stdLibSignalSource) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (stdLibSignalSource) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// HandleSignals toggles the unit system whenever a signal is received.
func (s *Service) HandleSignals(ctx context.Context, sigChan chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sigChan:
			if err := s.ToggleUnits(ctx); err != nil {
				s.logger.Error("failed to toggle unit system", logger.Err(err))
				continue
			}
			s.logger.Debug("unit system toggled", slog.String("units", s.state.Units().String()))
		}
	}
}
