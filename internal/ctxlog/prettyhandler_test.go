// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func newRecord(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC), level, msg, 0)
	r.AddAttrs(attrs...)

	return r
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		record   slog.Record
		contains []string
		absent   []string
	}{
		{
			name:     "message and level",
			record:   newRecord(slog.LevelInfo, "running job"),
			contains: []string{"[03:04:05.006]", "INFO:", "running job"},
			absent:   []string{"{"},
		},
		{
			name:     "attributes rendered as json",
			record:   newRecord(slog.LevelWarn, "job failed", slog.String("job", "api"), slog.Int("exitCode", 2)),
			contains: []string{"WARN:", "job failed", `"job": "api"`, `"exitCode": 2`},
		},
		{
			name:     "empty attributes when requested",
			opts:     []Option{WithOutputEmptyAttrs()},
			record:   newRecord(slog.LevelError, "boom"),
			contains: []string{"ERROR:", "boom", "{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			h := NewPrettyHandler(nil, append(tt.opts, WithDestinationWriter(&buf))...)
			require.NoError(t, h.Handle(context.Background(), tt.record))

			out := buf.String()
			assert.True(t, strings.HasSuffix(out, "\n"))

			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}

			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(nil, WithDestinationWriter(&buf))
	logger := slog.New(h).With("runID", "abc").WithGroup("job")
	logger.Info("settled", "name", "api")

	out := buf.String()
	assert.Contains(t, out, `"runID": "abc"`)
	assert.Contains(t, out, `"job": {`)
	assert.Contains(t, out, `"name": "api"`)
}

func TestPrettyHandler_ReplaceAttrRemovesTime(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(&slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}, WithDestinationWriter(&buf))

	require.NoError(t, h.Handle(context.Background(), newRecord(slog.LevelInfo, "no clock")))
	assert.Equal(t, "INFO: no clock\n", buf.String())
}

func TestPrettyHandler_WriteError(t *testing.T) {
	h := NewPrettyHandler(nil, WithDestinationWriter(failingWriter{}))

	err := h.Handle(context.Background(), newRecord(slog.LevelInfo, "lost"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoWrite)
}

func TestPrettyHandler_Colour(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(nil, WithDestinationWriter(&buf))
	require.NoError(t, h.Handle(context.Background(), newRecord(slog.LevelInfo, "plain")))
	assert.NotContains(t, buf.String(), "\033[")
}
