// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newCapturedSlog(level zerolog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(level)
	return slog.New(NewSlogHandler(zl)), &buf
}

func TestSlogHandler_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		log   func(*slog.Logger)
		level string
	}{
		{"info", func(l *slog.Logger) { l.Info("m") }, `"level":"info"`},
		{"warn", func(l *slog.Logger) { l.Warn("m") }, `"level":"warn"`},
		{"error", func(l *slog.Logger) { l.Error("m") }, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, buf := newCapturedSlog(zerolog.TraceLevel)
			tt.log(l)
			if !strings.Contains(buf.String(), tt.level) {
				t.Errorf("output %s missing %s", buf.String(), tt.level)
			}
		})
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.New(nil).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled on a warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled on a warn logger")
	}
}

func TestSlogHandler_Attrs(t *testing.T) {
	t.Parallel()

	l, buf := newCapturedSlog(zerolog.TraceLevel)
	l.With("service", "http").
		WithGroup("restart").
		Info("service restarted",
			"count", 3,
			"backoff", 2*time.Second,
			"failed", true,
			"err", errors.New("listener closed"),
			slog.Group("limits", "max", 5),
		)

	out := buf.String()
	for _, want := range []string{
		`"service":"http"`,
		`"restart.count":3`,
		`"restart.failed":true`,
		`"restart.err":"listener closed"`,
		`"restart.limits.max":5`,
		`"message":"service restarted"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestSlogHandler_EmptyGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewSlogHandler(zerolog.New(&buf))
	if h.WithGroup("") != slog.Handler(h) {
		t.Error("empty group should return the same handler")
	}
}

func TestNewSlogLogger(t *testing.T) {
	buf := captureGlobal(t, Config{})

	NewSlogLogger().Warn("supervisor event")

	out := buf.String()
	if !strings.Contains(out, `"component":"supervisor"`) || !strings.Contains(out, "supervisor event") {
		t.Errorf("unexpected output: %s", out)
	}
}
