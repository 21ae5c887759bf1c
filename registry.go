// registry.go: Per-category logger handles
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"fmt"
	"strings"
)

// Logger is a lightweight per-category handle onto a Sink. Handles are
// cached by the sink and safe for concurrent use.
type Logger struct {
	sink     *Sink
	category string
}

// Logger returns the handle for category. Lookups are case-insensitive: the
// first call fixes the spelling written to the files. A blank category maps
// to the log name.
func (s *Sink) Logger(category string) *Logger {
	name := strings.TrimSpace(category)
	if name == "" {
		name = s.cfg.Name
	}
	key := strings.ToLower(name)
	if l, ok := s.loggers.Load(key); ok {
		return l.(*Logger)
	}
	l, _ := s.loggers.LoadOrStore(key, &Logger{sink: s, category: name})
	return l.(*Logger)
}

// Default returns the handle whose category is the log name.
func (s *Sink) Default() *Logger {
	return s.Logger(s.cfg.Name)
}

// Category returns the category written in every record of this handle.
func (l *Logger) Category() string { return l.category }

// Sink returns the sink the handle writes to.
func (l *Logger) Sink() *Sink { return l.sink }

// Enabled reports whether records at level would be written.
func (l *Logger) Enabled(level Level) bool { return l.sink.Enabled(level) }

// emit is the single record-construction path. Disabled levels return before
// the payload is resolved, so no formatting work happens for them.
func (l *Logger) emit(level Level, eventID EventID, p payload) {
	if !l.sink.Enabled(level) {
		return
	}
	msg, err := p.resolve()
	r := newRecord(l.sink.now(), level, l.category, eventID, msg, err, l.sink.render)
	if r == nil {
		return
	}
	l.sink.submit(r)
}

func (l *Logger) Trace(msg string)    { l.emit(LevelTrace, 0, textPayload(msg)) }
func (l *Logger) Debug(msg string)    { l.emit(LevelDebug, 0, textPayload(msg)) }
func (l *Logger) Info(msg string)     { l.emit(LevelInformation, 0, textPayload(msg)) }
func (l *Logger) Warn(msg string)     { l.emit(LevelWarning, 0, textPayload(msg)) }
func (l *Logger) Error(msg string)    { l.emit(LevelError, 0, textPayload(msg)) }
func (l *Logger) Critical(msg string) { l.emit(LevelCritical, 0, textPayload(msg)) }

// Log writes msg at level.
func (l *Logger) Log(level Level, msg string) {
	l.emit(level, 0, textPayload(msg))
}

// Logf formats and writes a message at level. Arguments are only formatted
// when the level is enabled.
func (l *Logger) Logf(level Level, format string, args ...any) {
	if !l.sink.Enabled(level) {
		return
	}
	l.emit(level, 0, textPayload(fmt.Sprintf(format, args...)))
}

// LogEvent writes msg at level tagged with an event id.
func (l *Logger) LogEvent(level Level, eventID EventID, msg string) {
	l.emit(level, eventID, textPayload(msg))
}

// Exception writes err at error level. A blank msg is replaced by the error
// text; otherwise the error text is appended in brackets.
func (l *Logger) Exception(err error, msg string) {
	l.emit(LevelError, 0, exceptionPayload(err, msg))
}

// LogException is Exception at an arbitrary level with an event id.
func (l *Logger) LogException(level Level, eventID EventID, err error, msg string) {
	l.emit(level, eventID, exceptionPayload(err, msg))
}

// LogState writes structured state rendered by format. format only runs for
// enabled levels. A nil format is rejected with ErrNilFormatter whatever the level.
func (l *Logger) LogState(level Level, eventID EventID, state any, err error, format StateFormatter) error {
	if format == nil {
		return ErrNilFormatter
	}
	l.emit(level, eventID, statePayload(state, err, format))
	return nil
}
