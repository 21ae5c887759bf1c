// level.go: Severity levels, level codes and console colors
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is the severity of a record. Levels are ordered: a sink configured
// with a minimum level accepts that level and every level above it.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInformation
	LevelWarning
	LevelError
	LevelCritical
	LevelNone
)

// levelCodes are the fixed 4-character tokens used in file headers and on the console.
var levelCodes = [...]string{
	LevelTrace:       "TRCE",
	LevelDebug:       "DBUG",
	LevelInformation: "INFO",
	LevelWarning:     "WARN",
	LevelError:       "ERRR",
	LevelCritical:    "CRIT",
	LevelNone:        "    ",
}

var levelNames = [...]string{
	LevelTrace:       "Trace",
	LevelDebug:       "Debug",
	LevelInformation: "Information",
	LevelWarning:     "Warning",
	LevelError:       "Error",
	LevelCritical:    "Critical",
	LevelNone:        "None",
}

// Code returns the 4-character token for the level.
// Out-of-range levels render as four spaces, like LevelNone.
func (l Level) Code() string {
	if l < LevelTrace || l > LevelNone {
		return levelCodes[LevelNone]
	}
	return levelCodes[l]
}

// String returns the level name.
func (l Level) String() string {
	if l < LevelTrace || l > LevelNone {
		return "Unknown"
	}
	return levelNames[l]
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive and
// accepts the common short forms (info, warn, crit, ...).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "trce":
		return LevelTrace, nil
	case "debug", "dbug":
		return LevelDebug, nil
	case "information", "info":
		return LevelInformation, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error", "errr":
		return LevelError, nil
	case "critical", "crit":
		return LevelCritical, nil
	case "none":
		return LevelNone, nil
	}
	return LevelTrace, errors.Wrapf(ErrInvalidLevel, "%q", s)
}

// Color is a console foreground color.
type Color int

const (
	ColorDefault Color = iota
	ColorBlack
	ColorDarkRed
	ColorDarkGreen
	ColorDarkYellow
	ColorDarkBlue
	ColorDarkMagenta
	ColorDarkCyan
	ColorGray
	ColorDarkGray
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// colorSequences maps a Color to its ANSI SGR foreground escape.
var colorSequences = [...]string{
	ColorDefault:     "\033[39m",
	ColorBlack:       "\033[30m",
	ColorDarkRed:     "\033[31m",
	ColorDarkGreen:   "\033[32m",
	ColorDarkYellow:  "\033[33m",
	ColorDarkBlue:    "\033[34m",
	ColorDarkMagenta: "\033[35m",
	ColorDarkCyan:    "\033[36m",
	ColorGray:        "\033[37m",
	ColorDarkGray:    "\033[90m",
	ColorRed:         "\033[91m",
	ColorGreen:       "\033[92m",
	ColorYellow:      "\033[93m",
	ColorBlue:        "\033[94m",
	ColorMagenta:     "\033[95m",
	ColorCyan:        "\033[96m",
	ColorWhite:       "\033[97m",
}

var colorNames = map[string]Color{
	"default":     ColorDefault,
	"black":       ColorBlack,
	"darkred":     ColorDarkRed,
	"darkgreen":   ColorDarkGreen,
	"darkyellow":  ColorDarkYellow,
	"darkblue":    ColorDarkBlue,
	"darkmagenta": ColorDarkMagenta,
	"darkcyan":    ColorDarkCyan,
	"gray":        ColorGray,
	"grey":        ColorGray,
	"darkgray":    ColorDarkGray,
	"darkgrey":    ColorDarkGray,
	"red":         ColorRed,
	"green":       ColorGreen,
	"yellow":      ColorYellow,
	"blue":        ColorBlue,
	"magenta":     ColorMagenta,
	"cyan":        ColorCyan,
	"white":       ColorWhite,
}

// colorReset restores the terminal's default attributes.
const colorReset = "\033[0m"

// sequence returns the ANSI escape for the color.
func (c Color) sequence() string {
	if c < ColorDefault || c > ColorWhite {
		return colorSequences[ColorDefault]
	}
	return colorSequences[c]
}

// ParseColor converts a color name ("Yellow", "dark_red", "dark-red") to a Color.
func ParseColor(s string) (Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	if c, ok := colorNames[key]; ok {
		return c, nil
	}
	return ColorDefault, errors.Wrapf(ErrInvalidColor, "%q", s)
}

// DefaultColors returns a fresh copy of the default per-level color mapping.
func DefaultColors() map[Level]Color {
	return map[Level]Color{
		LevelTrace:       ColorCyan,
		LevelDebug:       ColorBlue,
		LevelInformation: ColorGreen,
		LevelWarning:     ColorYellow,
		LevelError:       ColorRed,
		LevelCritical:    ColorDarkRed,
		LevelNone:        ColorWhite,
	}
}
