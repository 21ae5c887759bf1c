// slog.go: log/slog handler writing through a Sink
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

// slogHandler implements slog.Handler on top of a Logger handle.
type slogHandler struct {
	logger *Logger
	prefix string // open groups, "a.b."
	attrs  string // pre-rendered " k=v" pairs from WithAttrs
}

// NewSlogHandler returns a slog.Handler writing records under category.
// Attributes are appended to the message as key=value pairs, groups prefix
// their keys with "group.", and the first error-valued attribute becomes the
// record error.
//
//	logger := slog.New(filelog.NewSlogHandler(sink, "api"))
//	logger.Warn("slow request", "path", "/orders", "ms", 812)
func NewSlogHandler(sink *Sink, category string) slog.Handler {
	return &slogHandler{logger: sink.Logger(category)}
}

// FromSlogLevel maps a slog level onto the sink levels. Levels below
// slog.LevelDebug map to LevelTrace and levels above slog.LevelError to
// LevelCritical.
func FromSlogLevel(l slog.Level) Level {
	switch {
	case l < slog.LevelDebug:
		return LevelTrace
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInformation
	case l < slog.LevelError:
		return LevelWarning
	case l < slog.LevelError+4:
		return LevelError
	default:
		return LevelCritical
	}
}

func (h *slogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return h.logger.Enabled(FromSlogLevel(l))
}

func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(h.attrs)

	var recErr error
	r.Attrs(func(a slog.Attr) bool {
		if recErr == nil && a.Value.Kind() == slog.KindAny {
			if err, ok := a.Value.Any().(error); ok {
				recErr = err
				return true
			}
		}
		appendAttr(&b, h.prefix, a)
		return true
	})

	h.logger.emit(FromSlogLevel(r.Level), 0, exceptionPayload(recErr, b.String()))
	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	clone := *h
	clone.attrs = b.String()
	return &clone
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(b, groupPrefix, ga)
		}
		return
	}
	appendPair(b, prefix+a.Key, a.Value.String())
}

// appendPair writes " key=value", quoting values that would be ambiguous.
func appendPair(b *strings.Builder, key, value string) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	if value == "" || strings.ContainsAny(value, " =\"\t\r\n") {
		b.WriteString(strconv.Quote(value))
		return
	}
	b.WriteString(value)
}
