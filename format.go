// format.go: Line rendering for file and console output
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"bytes"
	"strings"
	"time"
	"unicode/utf8"
)

// TimestampLayout is the layout of the timestamp field in every header.
const TimestampLayout = "2006-01-02--15.04.05"

func formatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// formatHeader returns "{timestamp}|{levelCode}|{category}|".
func formatHeader(ts string, level Level, category string) string {
	return ts + "|" + level.Code() + "|" + category + "|"
}

// splitLines splits a message on line feeds, dropping the carriage return of CRLF endings.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// padBody joins the message lines, prefixing every continuation line with
// pad spaces when pad > 0.
func padBody(body string, pad int) string {
	if !strings.Contains(body, "\n") {
		return body
	}
	lines := splitLines(body)
	if pad <= 0 {
		return strings.Join(lines, "\n")
	}
	prefix := strings.Repeat(" ", pad)
	var b strings.Builder
	b.Grow(len(body) + pad*(len(lines)-1))
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
			b.WriteString(prefix)
		}
		b.WriteString(line)
	}
	return b.String()
}

// renderSingleLine renders header+body terminated by a newline. With indent
// set, continuation lines are aligned under the first character of the message.
func renderSingleLine(header, body string, indent bool) string {
	pad := 0
	if indent {
		pad = utf8.RuneCountInString(header)
	}
	return header + padBody(body, pad) + "\n"
}

// renderMultiLine renders the bracketed header line, the body verbatim and a
// blank separator line.
func renderMultiLine(ts string, level Level, category, body string) string {
	var b strings.Builder
	b.Grow(len(ts) + len(category) + len(body) + 16)
	b.WriteByte('[')
	b.WriteString(ts)
	b.WriteByte('|')
	b.WriteString(level.Code())
	b.WriteByte('|')
	b.WriteString(category)
	b.WriteString("]\n")
	b.WriteString(padBody(body, 0))
	b.WriteString("\n\n")
	return b.String()
}

func terminate(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// consoleStyle holds the console settings resolved from the configuration.
type consoleStyle struct {
	colors    bool
	multiline bool
	indent    bool
	palette   map[Level]Color
}

// render appends the console form of r to buf. The structure matches the
// file line; with colors on, the level token and the body are wrapped in the
// level color and followed by a reset.
func (s consoleStyle) render(buf *bytes.Buffer, r *Record) {
	if r.hasCustom {
		buf.WriteString(r.custom)
		return
	}
	if !s.colors {
		buf.WriteString(r.text(s.multiline))
		return
	}

	color := s.palette[r.level].sequence()
	if s.multiline {
		buf.WriteByte('[')
		buf.WriteString(r.timestamp)
		buf.WriteByte('|')
		writeColored(buf, color, r.level.Code())
		buf.WriteByte('|')
		buf.WriteString(r.category)
		buf.WriteString("]\n")
		writeColored(buf, color, padBody(r.body, 0))
		buf.WriteString("\n\n")
		return
	}

	buf.WriteString(r.timestamp)
	buf.WriteByte('|')
	writeColored(buf, color, r.level.Code())
	buf.WriteByte('|')
	buf.WriteString(r.category)
	buf.WriteByte('|')
	pad := 0
	if s.indent {
		pad = utf8.RuneCountInString(r.header)
	}
	writeColored(buf, color, padBody(r.body, pad))
	buf.WriteByte('\n')
}

func writeColored(buf *bytes.Buffer, seq, text string) {
	buf.WriteString(seq)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}
