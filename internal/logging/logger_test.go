// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(Config{Timestamp: true})

	Info().Str("component", "lifecycle").Msg("server running")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\nraw: %s", err, buf.String())
	}
	if entry["level"] != "info" {
		t.Errorf("expected level info, got %v", entry["level"])
	}
	if entry["component"] != "lifecycle" {
		t.Errorf("expected component field, got %v", entry["component"])
	}
	if entry["message"] != "server running" {
		t.Errorf("expected message, got %v", entry["message"])
	}
}

func TestInitLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	defer Init(Config{Timestamp: true})

	Debug().Msg("dropped")
	Info().Msg("dropped too")
	Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("below-threshold events leaked: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn event missing: %s", out)
	}
}

func TestInitConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Format: "console", Output: &buf})
	defer Init(Config{Timestamp: true})

	Info().Msg("console line")

	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Errorf("console format should not emit JSON: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "console line") {
		t.Errorf("message missing from console output: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewTestLoggerIsIndependent(t *testing.T) {
	var global, local bytes.Buffer
	Init(Config{Output: &global})
	defer Init(Config{Timestamp: true})

	logger := NewTestLogger(&local)
	logger.Info().Str("k", "v").Msg("captured")

	if global.Len() != 0 {
		t.Errorf("test logger leaked into the process-wide stream: %s", global.String())
	}
	if !strings.Contains(local.String(), `"k":"v"`) {
		t.Errorf("structured field missing: %s", local.String())
	}
}

func TestNewConsoleTestLoggerNoColor(t *testing.T) {
	var buf bytes.Buffer
	consoleLogger := NewConsoleTestLogger(&buf)
	consoleLogger.Info().Msg("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("console test logger emitted color codes: %q", buf.String())
	}
}
