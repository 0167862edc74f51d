// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/wneessen/weather-dashboard/internal/logger"
)

const (
	logindInterface = "org.freedesktop.login1.Manager"
	logindMember    = "PrepareForSleep"

	resumeDebounce    = time.Second * 2
	resumeSettleDelay = time.Second * 10
	busRetryDelay     = time.Second * 5
	signalBufferSize  = 8
)

// monitorSleepResume refreshes the weather after the system woke up. The system bus is
// reconnected until ctx is cancelled.
func (s *Service) monitorSleepResume(ctx context.Context) {
	var lastResume time.Time
	for {
		err := s.watchResume(ctx, func() { s.resumed(ctx, &lastResume) })
		if ctx.Err() != nil {
			return
		}
		s.logger.Debug("sleep monitoring interrupted", logger.Err(err))
		select {
		case <-ctx.Done():
			return
		case <-time.After(busRetryDelay):
		}
	}
}

func (s *Service) watchResume(ctx context.Context, onResume func()) error {
	conn, err := dbus.ConnectSystemBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Error("failed to close system bus connection", logger.Err(err))
		}
	}()

	if err = conn.AddMatchSignal(dbus.WithMatchInterface(logindInterface),
		dbus.WithMatchMember(logindMember)); err != nil {
		return fmt.Errorf("failed to subscribe to %s.%s: %w", logindInterface, logindMember, err)
	}
	signals := make(chan *dbus.Signal, signalBufferSize)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return errors.New("system bus connection closed")
			}
			if isResume(sig) {
				onResume()
			}
		}
	}
}

// isResume reports whether sig is a PrepareForSleep(false) signal.
func isResume(sig *dbus.Signal) bool {
	if sig == nil || len(sig.Body) != 1 {
		return false
	}
	sleeping, ok := sig.Body[0].(bool)
	return ok && !sleeping
}

// resumed debounces resume events and waits for the network before refreshing.
func (s *Service) resumed(ctx context.Context, lastResume *time.Time) {
	now := s.now()
	if now.Sub(*lastResume) < resumeDebounce {
		return
	}
	*lastResume = now

	select {
	case <-ctx.Done():
		return
	case <-time.After(resumeSettleDelay):
	}
	s.logger.Debug("resumed from sleep, refreshing weather data")
	s.refresh(ctx)
}
