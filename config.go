// config.go: Sink configuration, defaults and parsing utilities
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Configuration defaults
const (
	DefaultFolder     = "log"
	DefaultMaxBytes   = 50 * 1024 * 1024
	DefaultMaxCount   = 10
	DefaultQueueSize  = 1024
	DefaultRetryCount = 3
	DefaultRetryDelay = 10 * time.Millisecond
	DefaultFileMode   = os.FileMode(0644)
)

// Config holds the options of a Sink. It is resolved once by New and is
// immutable for the lifetime of the sink.
//
// Only Name is required; every other zero value falls back to a default.
type Config struct {
	// Name is the log family name. Files are written as {Folder}/{Name}_{index}.log.
	Name string `json:"name"`

	// Folder is the directory holding the log files (default: ./log).
	// It is created if missing.
	Folder string `json:"folder"`

	// MaxBytes is the size at which the active file is rolled (default: 50 MiB).
	MaxBytes int64 `json:"max_bytes"`

	// MaxCount is the number of file slots in the rotation ring (default: 10).
	MaxCount int `json:"max_count"`

	// MinLevel filters out every record below it (default: LevelTrace).
	MinLevel Level `json:"min_level"`

	// UseUTC stamps records in UTC instead of local time.
	UseUTC bool `json:"use_utc"`

	// Multiline renders the header on its own bracketed line, followed by the
	// message and a blank separator line.
	Multiline bool `json:"multiline"`

	// IndentMultiline aligns continuation lines of a single-line record under
	// the first character of the message. Ignored in multiline mode.
	IndentMultiline bool `json:"indent_multiline"`

	// Console mirrors every record to ConsoleWriter.
	Console bool `json:"console"`

	// ConsoleColors colors the level token and message on the console.
	ConsoleColors bool `json:"console_colors"`

	// Colors overrides the per-level console colors. Missing levels keep
	// their DefaultColors entry.
	Colors map[Level]Color `json:"-"`

	// Formatter, when set, renders the full record text for both file and
	// console. No header, padding or coloring is applied to its output.
	Formatter func(r *Record) string `json:"-"`

	// ConsoleWriter receives console output (default: os.Stdout).
	ConsoleWriter io.Writer `json:"-"`

	// ErrorCallback is called when the background writer hits an error.
	// It runs on the writer goroutine and must not log to, or close, the same sink.
	ErrorCallback func(operation string, err error) `json:"-"`

	// FileMode is used when creating log files (default: 0644).
	FileMode os.FileMode `json:"file_mode"`

	// RetryCount and RetryDelay control retries of directory and file creation.
	RetryCount int           `json:"retry_count"`
	RetryDelay time.Duration `json:"retry_delay"`

	// QueueSize is the capacity of the dispatch queue (default: 1024).
	QueueSize int `json:"queue_size"`

	// FileSystem replaces the os-backed file operations (default: DefaultFileSystem).
	FileSystem FileSystem `json:"-"`
}

// withDefaults returns a copy of the configuration with every unset field defaulted.
func (c Config) withDefaults() (Config, error) {
	out := c
	out.Name = strings.TrimSpace(c.Name)
	out.MaxBytes = getConfigValue(int64(DefaultMaxBytes), c.MaxBytes)
	out.MaxCount = getConfigValue(DefaultMaxCount, c.MaxCount)
	out.QueueSize = getConfigValue(DefaultQueueSize, c.QueueSize)
	out.RetryCount = getConfigValue(DefaultRetryCount, c.RetryCount)
	out.RetryDelay = getConfigValue(DefaultRetryDelay, c.RetryDelay)
	out.FileMode = getConfigValue(GetDefaultFileMode(), c.FileMode)

	folder := strings.TrimSpace(c.Folder)
	if folder == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, errors.Wrap(err, "resolve working directory")
		}
		folder = filepath.Join(wd, DefaultFolder)
	}
	out.Folder = filepath.Clean(folder)

	out.Colors = DefaultColors()
	for level, color := range c.Colors {
		out.Colors[level] = color
	}

	if out.ConsoleWriter == nil {
		out.ConsoleWriter = os.Stdout
	}
	return out, nil
}

// validate checks a defaulted configuration.
func (c Config) validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if c.MaxBytes < 0 {
		return errors.Wrapf(ErrInvalidMaxBytes, "got %d", c.MaxBytes)
	}
	if c.MaxCount < 0 {
		return errors.Wrapf(ErrInvalidMaxCount, "got %d", c.MaxCount)
	}
	if c.MinLevel < LevelTrace || c.MinLevel > LevelNone {
		return errors.Wrapf(ErrInvalidLevel, "got %d", c.MinLevel)
	}
	if c.QueueSize < 0 {
		return errors.Errorf("invalid queue size %d", c.QueueSize)
	}
	for level, color := range c.Colors {
		if color < ColorDefault || color > ColorWhite {
			return errors.Wrapf(ErrInvalidColor, "level %s", level)
		}
	}
	if err := ValidatePathLength(filepath.Join(c.Folder, c.Name+"_0.log")); err != nil {
		return errors.Wrap(err, "invalid log folder")
	}
	return nil
}

// getConfigValue returns defaultVal if cfgVal equals the zero value for T,
// otherwise cfgVal.
func getConfigValue[T comparable](defaultVal, cfgVal T) T {
	var zero T
	if cfgVal == zero {
		return defaultVal
	}
	return cfgVal
}

// ParseSize converts size strings like "100MB", "1GB" to bytes
// Supports case-insensitive input and single-letter units (K, M, G, T)
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty size string")
	}

	// Handle plain numbers (bytes)
	if val, err := strconv.ParseInt(s, 10, 64); err == nil {
		return val, nil
	}

	s = strings.ToUpper(s)

	var multiplier int64
	var numStr string

	switch {
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		numStr = s[:len(s)-2]
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		numStr = s[:len(s)-2]
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		numStr = s[:len(s)-2]
	case strings.HasSuffix(s, "TB"):
		multiplier = 1024 * 1024 * 1024 * 1024
		numStr = s[:len(s)-2]
	case strings.HasSuffix(s, "K"):
		multiplier = 1024
		numStr = s[:len(s)-1]
	case strings.HasSuffix(s, "M"):
		multiplier = 1024 * 1024
		numStr = s[:len(s)-1]
	case strings.HasSuffix(s, "G"):
		multiplier = 1024 * 1024 * 1024
		numStr = s[:len(s)-1]
	case strings.HasSuffix(s, "T"):
		multiplier = 1024 * 1024 * 1024 * 1024
		numStr = s[:len(s)-1]
	case strings.HasSuffix(s, "B"):
		multiplier = 1
		numStr = s[:len(s)-1]
	default:
		return 0, errors.Errorf("unknown size suffix in %q (supported: B, KB/K, MB/M, GB/G, TB/T)", s)
	}

	val, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid size number in %q", s)
	}

	result := val * multiplier
	if result < 0 || (val != 0 && result/val != multiplier) { // Overflow check
		return 0, errors.Errorf("size %q too large", s)
	}

	return result, nil
}

// ParseDuration converts duration strings like "7d", "24h" to time.Duration
// Supports Go durations plus day and week suffixes
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("empty duration string")
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	s = strings.ToLower(s)

	var multiplier time.Duration
	var numStr string

	switch {
	case strings.HasSuffix(s, "d"):
		multiplier = 24 * time.Hour
		numStr = s[:len(s)-1]
	case strings.HasSuffix(s, "w"):
		multiplier = 7 * 24 * time.Hour
		numStr = s[:len(s)-1]
	default:
		return 0, errors.Errorf("unknown duration suffix in %q", s)
	}

	val, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration number in %q", s)
	}

	return time.Duration(val) * multiplier, nil
}

// SanitizeName makes a log family name safe to embed in a file name.
// Path separators and characters invalid on Windows are replaced with '_'.
func SanitizeName(name string) string {
	var sanitized strings.Builder
	for _, r := range name {
		switch {
		case r < 32, r == '/', r == '\\':
			sanitized.WriteRune('_')
		case runtime.GOOS == "windows" && strings.ContainsRune(`<>:"|?*`, r):
			sanitized.WriteRune('_')
		default:
			sanitized.WriteRune(r)
		}
	}
	return sanitized.String()
}

// ValidatePathLength checks if the path length is within OS limits
func ValidatePathLength(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "invalid path")
	}

	pathLen := len(absPath)

	switch runtime.GOOS {
	case "windows":
		if pathLen > 260 {
			return errors.Errorf("path too long for Windows: %d characters (limit: 260)", pathLen)
		}
	default:
		if pathLen > 4096 {
			return errors.Errorf("path too long: %d characters (limit: 4096)", pathLen)
		}
	}

	return nil
}

// GetDefaultFileMode returns the default mode for new log files
func GetDefaultFileMode() os.FileMode {
	return DefaultFileMode
}

// RetryFileOperation executes a file operation with retry logic.
// Antivirus scanners, network shares and overlay filesystems can fail an
// open or mkdir transiently; the last error is returned once retries run out.
func RetryFileOperation(operation func() error, retryCount int, retryDelay time.Duration) error {
	if retryCount <= 0 {
		retryCount = DefaultRetryCount
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	var lastErr error
	for i := 0; i < retryCount; i++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		// On the last attempt, don't wait - fail fast
		if i < retryCount-1 {
			time.Sleep(retryDelay)
		}
	}

	return errors.Wrapf(lastErr, "operation failed after %d retries", retryCount)
}
