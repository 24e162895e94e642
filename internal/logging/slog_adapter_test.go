// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newSlog(buf *bytes.Buffer, level zerolog.Level) *slog.Logger {
	return slog.New(NewSlogHandlerWithLogger(zerolog.New(buf).Level(level)))
}

func TestSlogHandler_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(*slog.Logger)
		level string
	}{
		{"info", func(l *slog.Logger) { l.Info("m") }, "info"},
		{"warn", func(l *slog.Logger) { l.Warn("m") }, "warn"},
		{"error", func(l *slog.Logger) { l.Error("m") }, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newSlog(&buf, zerolog.InfoLevel))
			entry := decodeLine(t, strings.TrimSpace(buf.String()))
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
		})
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandlerWithLogger(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("info enabled on warn logger")
	}
	if !h.Enabled(ctx, slog.LevelWarn) || !h.Enabled(ctx, slog.LevelError) {
		t.Error("warn/error disabled on warn logger")
	}
}

func TestSlogHandler_AttrTypes(t *testing.T) {
	var buf bytes.Buffer
	newSlog(&buf, zerolog.InfoLevel).Info("service event",
		slog.String("service", "feature-refresh"),
		slog.Int("restarts", 3),
		slog.Uint64("rows", 42),
		slog.Float64("score", 0.5),
		slog.Bool("failed", true),
		slog.Duration("backoff", time.Second),
		slog.Any("ids", []int{1, 2}),
	)

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["message"] != "service event" || entry["service"] != "feature-refresh" {
		t.Errorf("unexpected entry %v", entry)
	}
	for key, want := range map[string]float64{"restarts": 3, "rows": 42, "score": 0.5} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %v", key, entry[key], want)
		}
	}
	if entry["failed"] != true {
		t.Errorf("failed = %v", entry["failed"])
	}
	if _, ok := entry["backoff"]; !ok {
		t.Error("duration attribute missing")
	}
	if ids, ok := entry["ids"].([]any); !ok || len(ids) != 2 {
		t.Errorf("ids = %v", entry["ids"])
	}
}

func TestSlogHandler_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	l := newSlog(&buf, zerolog.InfoLevel).
		With("supervisor", "paperwise").
		WithGroup("svc").
		WithGroup("http")

	l.Info("terminated", slog.String("name", "api"), slog.Group("err", slog.String("msg", "boom")))

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["supervisor"] != "paperwise" {
		t.Errorf("attrs added before WithGroup were prefixed: %v", entry)
	}
	if entry["svc.http.name"] != "api" {
		t.Errorf("group prefix wrong: %v", entry)
	}
	if entry["svc.http.err.msg"] != "boom" {
		t.Errorf("nested group attr wrong: %v", entry)
	}
}

func TestSlogHandler_EmptyInputsReturnSameHandler(t *testing.T) {
	h := NewSlogHandler()
	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") returned a new handler")
	}
	if h.WithAttrs(nil) != h {
		t.Error("WithAttrs(nil) returned a new handler")
	}
}

func TestNewSlogLogger(t *testing.T) {
	restoreLogger(t)
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	NewSlogLogger().Warn("from slog")
	if !strings.Contains(buf.String(), "from slog") {
		t.Errorf("slog output missing: %q", buf.String())
	}
}
