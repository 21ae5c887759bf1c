// record.go: Immutable log records and the record-construction path
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"strconv"
	"strings"
	"time"
)

// EventID identifies a class of event. Zero means unset.
type EventID int

// StateFormatter turns structured state and an optional error into message text.
type StateFormatter func(state any, err error) string

// Record is one log entry. It is built once by a Logger handle, fully
// rendered at construction, and never modified afterwards.
type Record struct {
	time      time.Time
	level     Level
	category  string
	message   string
	err       error
	eventID   EventID
	timestamp string
	header    string
	body      string

	singleLine string
	multiLine  string
	custom     string
	hasCustom  bool
}

// Time returns the record timestamp.
func (r *Record) Time() time.Time { return r.time }

// Level returns the record severity.
func (r *Record) Level() Level { return r.level }

// Category returns the logical source of the record.
func (r *Record) Category() string { return r.category }

// Message returns the raw message as produced by the caller.
func (r *Record) Message() string { return r.message }

// Err returns the error attached to the record, if any.
func (r *Record) Err() error { return r.err }

// EventID returns the event identifier, zero when unset.
func (r *Record) EventID() EventID { return r.eventID }

// Timestamp returns the formatted timestamp.
func (r *Record) Timestamp() string { return r.timestamp }

// Header returns "{timestamp}|{levelCode}|{category}|".
func (r *Record) Header() string { return r.header }

// Body returns the message merged with event id and error text.
func (r *Record) Body() string { return r.body }

// text returns the precomputed file form of the record, newline terminated.
func (r *Record) text(multiline bool) string {
	switch {
	case r.hasCustom:
		return r.custom
	case multiline:
		return r.multiLine
	default:
		return r.singleLine
	}
}

// renderOptions are the sink settings that affect record construction.
type renderOptions struct {
	useUTC    bool
	indent    bool
	formatter func(r *Record) string
}

// payloadKind tags the shape of a log call.
type payloadKind uint8

const (
	payloadText payloadKind = iota
	payloadException
	payloadState
)

// payload is the single input shape of record construction: a plain
// message, an error with a message, or structured state with its formatter.
type payload struct {
	kind   payloadKind
	text   string
	err    error
	state  any
	format StateFormatter
}

func textPayload(msg string) payload {
	return payload{kind: payloadText, text: msg}
}

func exceptionPayload(err error, msg string) payload {
	return payload{kind: payloadException, text: msg, err: err}
}

func statePayload(state any, err error, format StateFormatter) payload {
	return payload{kind: payloadState, state: state, err: err, format: format}
}

// resolve produces the message text and error carried by the payload.
// The state formatter runs here, so it is only ever invoked for enabled levels.
func (p payload) resolve() (string, error) {
	switch p.kind {
	case payloadException:
		return p.text, p.err
	case payloadState:
		return p.format(p.state, p.err), p.err
	default:
		return p.text, nil
	}
}

// mergeBody applies the event/error merge policy. An empty message is
// replaced by the error text; a non-empty one gets " [error]" appended.
// The event suffix " [id]" sits between the message and the error.
// ok is false when there is nothing to log.
func mergeBody(message string, eventID EventID, err error) (body string, ok bool) {
	body = message
	errConsumed := false
	if strings.TrimSpace(body) == "" && err != nil {
		body = err.Error()
		errConsumed = true
	}
	if strings.TrimSpace(body) == "" {
		return "", false
	}
	if eventID != 0 {
		body += " [" + strconv.Itoa(int(eventID)) + "]"
	}
	if err != nil && !errConsumed {
		body += " [" + err.Error() + "]"
	}
	return body, true
}

// newRecord builds and renders a record. It returns nil when the merged
// body is empty or whitespace only.
func newRecord(now time.Time, level Level, category string, eventID EventID, message string, err error, opts renderOptions) *Record {
	body, ok := mergeBody(message, eventID, err)
	if !ok {
		return nil
	}

	if opts.useUTC {
		now = now.UTC()
	} else {
		now = now.Local()
	}

	r := &Record{
		time:     now,
		level:    level,
		category: category,
		message:  message,
		err:      err,
		eventID:  eventID,
	}
	r.timestamp = formatTimestamp(now)
	r.header = formatHeader(r.timestamp, level, category)
	r.body = body

	if opts.formatter != nil {
		r.custom = terminate(opts.formatter(r))
		r.hasCustom = true
		return r
	}

	r.singleLine = renderSingleLine(r.header, body, opts.indent)
	r.multiLine = renderMultiLine(r.timestamp, level, category, body)
	return r
}
