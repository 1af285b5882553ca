package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogLogger_WritesLevelsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, slog.LevelDebug)

	ctx := context.Background()
	log.Debug(ctx, "dbg", "k", "v")
	log.Info(ctx, "inf")
	log.Warn(ctx, "wrn")
	log.Error(ctx, "err")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=dbg")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, slog.LevelInfo).With("bucket", "drive")

	log.Info(context.Background(), "listing")
	assert.Contains(t, buf.String(), "bucket=drive")
}

func TestNopLogger_DoesNothing(t *testing.T) {
	var log Logger = NopLogger{}
	log.Info(context.Background(), "ignored")
	assert.Equal(t, log, log.With("a", 1).(NopLogger))
}
