// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// captureGlobal points the global logger at a buffer for the duration of a test.
func captureGlobal(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	cfg.Output = &buf
	Init(cfg)
	t.Cleanup(func() { Init(Config{}) })
	return &buf
}

func TestInit_JSON(t *testing.T) {
	buf := captureGlobal(t, Config{Level: "debug", Format: "json"})

	Info().Str("catalog", "universities.xlsx").Msg("catalog imported")

	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"message":"catalog imported"`, `"catalog":"universities.xlsx"`, `"time":`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestInit_LevelFilters(t *testing.T) {
	buf := captureGlobal(t, Config{Level: "warn"})

	Info().Msg("hidden")
	Debug().Msg("hidden too")
	Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn were written: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestInit_Console(t *testing.T) {
	buf := captureGlobal(t, Config{Format: "console"})

	Info().Msg("console line")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console format produced JSON: %s", out)
	}
	if !strings.Contains(out, "console line") {
		t.Errorf("message missing: %s", out)
	}
}

func TestInit_Caller(t *testing.T) {
	buf := captureGlobal(t, Config{Caller: true})

	Info().Msg("with caller")

	if !strings.Contains(buf.String(), "logger_test.go") {
		t.Errorf("caller missing: %s", buf.String())
	}
}

func TestErr(t *testing.T) {
	buf := captureGlobal(t, Config{})

	Err(errors.New("duckdb closed")).Msg("query failed")

	out := buf.String()
	if !strings.Contains(out, `"error":"duckdb closed"`) || !strings.Contains(out, `"level":"error"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	buf := captureGlobal(t, Config{})

	l := WithComponent("catalog-import")
	l.Info().Msg("started")

	if !strings.Contains(buf.String(), `"component":"catalog-import"`) {
		t.Errorf("component missing: %s", buf.String())
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(Config{}) })

	Error().Msg("through custom logger")

	if !strings.Contains(buf.String(), "through custom logger") {
		t.Errorf("custom logger not used: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"verbose", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
