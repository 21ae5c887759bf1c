// zapcore.go: zapcore.Core writing through a Sink
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

type zapCore struct {
	sink   *Sink
	logger *Logger
	fields []zapcore.Field
}

// NewZapCore returns a zapcore.Core writing entries under category. A named
// zap logger writes under its name instead. Fields are appended to the
// message as sorted key=value pairs; the first error field becomes the
// record error.
//
//	logger := zap.New(filelog.NewZapCore(sink, "worker"))
//	logger.Info("job done", zap.Int("id", 42))
func NewZapCore(sink *Sink, category string) zapcore.Core {
	return &zapCore{sink: sink, logger: sink.Logger(category)}
}

// FromZapLevel maps a zap level onto the sink levels. zap has no trace
// level; DPanic, Panic and Fatal map to LevelCritical.
func FromZapLevel(l zapcore.Level) Level {
	switch {
	case l < zapcore.DebugLevel:
		return LevelTrace
	case l == zapcore.DebugLevel:
		return LevelDebug
	case l == zapcore.InfoLevel:
		return LevelInformation
	case l == zapcore.WarnLevel:
		return LevelWarning
	case l == zapcore.ErrorLevel:
		return LevelError
	default:
		return LevelCritical
	}
}

func (c *zapCore) Enabled(l zapcore.Level) bool {
	return c.sink.Enabled(FromZapLevel(l))
}

func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	logger := c.logger
	if ent.LoggerName != "" {
		logger = c.sink.Logger(ent.LoggerName)
	}

	all := fields
	if len(c.fields) > 0 {
		all = make([]zapcore.Field, 0, len(c.fields)+len(fields))
		all = append(all, c.fields...)
		all = append(all, fields...)
	}
	msg, err := renderZapFields(ent.Message, all)
	logger.emit(FromZapLevel(ent.Level), 0, exceptionPayload(err, msg))

	// Entries that end the process must reach the file first.
	if ent.Level > zapcore.ErrorLevel {
		return c.Sync()
	}
	return nil
}

// Sync waits for the writer to catch up. A closed sink has nothing left to flush.
func (c *zapCore) Sync() error {
	err := c.sink.Sync(context.Background())
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

func renderZapFields(msg string, fields []zapcore.Field) (string, error) {
	if len(fields) == 0 {
		return msg, nil
	}

	var recErr error
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		if recErr == nil && f.Type == zapcore.ErrorType {
			if err, ok := f.Interface.(error); ok {
				recErr = err
				continue
			}
		}
		f.AddTo(enc)
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(msg)
	for _, k := range keys {
		appendPair(&b, k, fmt.Sprint(enc.Fields[k]))
	}
	return b.String(), recErr
}
