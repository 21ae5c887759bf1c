// zapcore_test.go: Tests for the zap core adapter
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFromZapLevel(t *testing.T) {
	tests := []struct {
		in   zapcore.Level
		want Level
	}{
		{zapcore.DebugLevel - 1, LevelTrace},
		{zapcore.DebugLevel, LevelDebug},
		{zapcore.InfoLevel, LevelInformation},
		{zapcore.WarnLevel, LevelWarning},
		{zapcore.ErrorLevel, LevelError},
		{zapcore.DPanicLevel, LevelCritical},
		{zapcore.PanicLevel, LevelCritical},
		{zapcore.FatalLevel, LevelCritical},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FromZapLevel(tt.in))
		})
	}
}

func TestZapCore_WritesFields(t *testing.T) {
	s := newTestSink(t, Config{})
	logger := zap.New(NewZapCore(s, "svc"))

	logger.Info("hello", zap.Int("b", 2), zap.String("a", "x y"), zap.Error(errors.New("boom")))
	logger.With(zap.String("req", "r1")).Warn("slow")
	logger.Named("worker").Error("failed", zap.Bool("retry", false))
	require.NoError(t, logger.Sync())
	require.NoError(t, s.Close())

	want := fixedStamp + `|INFO|svc|hello a="x y" b=2 [boom]` + "\n" +
		fixedStamp + "|WARN|svc|slow req=r1\n" +
		fixedStamp + "|ERRR|worker|failed retry=false\n"
	assert.Equal(t, want, readSlot(t, s, 0))
}

func TestZapCore_ErrorOnly(t *testing.T) {
	s := newTestSink(t, Config{})
	zap.New(NewZapCore(s, "svc")).Error("", zap.Error(errors.New("connection reset")))
	require.NoError(t, s.Close())

	assert.Equal(t, fixedStamp+"|ERRR|svc|connection reset\n", readSlot(t, s, 0))
}

func TestZapCore_Enabled(t *testing.T) {
	s := newTestSink(t, Config{MinLevel: LevelWarning})
	core := NewZapCore(s, "svc")

	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.WarnLevel))

	logger := zap.New(core)
	logger.Debug("dropped")
	logger.Info("dropped")
	require.NoError(t, logger.Sync())
	assert.Zero(t, s.Stats().Enqueued)
}

func TestZapCore_SyncAfterClose(t *testing.T) {
	s := newTestSink(t, Config{})
	core := NewZapCore(s, "svc")
	require.NoError(t, s.Close())
	assert.NoError(t, core.Sync())
}
