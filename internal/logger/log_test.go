// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("a stderr logger is created", func(t *testing.T) {
		if New(slog.LevelWarn) == nil {
			t.Fatal("expected logger to be non-nil")
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("records below the level are dropped", func(t *testing.T) {
		levels := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
		for _, level := range levels {
			t.Run(level.String(), func(t *testing.T) {
				buf := bytes.NewBuffer(nil)
				l := NewLogger(level, buf)
				l.Debug("msg-debug")
				l.Info("msg-info")
				l.Warn("msg-warn")
				l.Error("msg-error")

				for _, logged := range levels {
					msg := "msg-" + strings.ToLower(logged.String())
					got := strings.Contains(buf.String(), msg)
					if want := logged >= level; got != want {
						t.Errorf("level %s: expected %q logged to be %t", level, msg, want)
					}
				}
			})
		}
	})
	t.Run("records are written as text", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		NewLogger(slog.LevelInfo, buf).Info("city resolved", slog.String("location", "Berlin, DE"))
		if !strings.Contains(buf.String(), `level=INFO msg="city resolved" location="Berlin, DE"`) {
			t.Errorf("unexpected log record: %q", buf.String())
		}
	})
}

func TestErr(t *testing.T) {
	t.Run("errors are logged under the error key", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		l := NewLogger(slog.LevelDebug, buf)
		l.Error("weather fetch failed", Err(errors.New("intentionally failing")))
		if !strings.Contains(buf.String(), `error="intentionally failing"`) {
			t.Errorf("expected error attribute, got: %q", buf.String())
		}
	})
}
