// loader.go: Configuration loading from YAML/JSON and the environment
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Format is a configuration file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ConfigSection is the key holding the sink options in a configuration file.
const ConfigSection = "filelogger"

// EnvPrefix prefixes environment overrides, e.g. FILELOGGER_MAX_BYTES.
const EnvPrefix = "FILELOGGER_"

// fileConfig mirrors the serializable part of Config. Sizes, levels and
// durations are strings so they can be written the human way ("50MB", "warn", "25ms").
type fileConfig struct {
	Name            string            `koanf:"name"`
	Folder          string            `koanf:"folder"`
	MaxBytes        string            `koanf:"max_bytes"`
	MaxCount        int               `koanf:"max_count"`
	MinLevel        string            `koanf:"min_level"`
	UseUTC          bool              `koanf:"use_utc"`
	Multiline       bool              `koanf:"multiline"`
	IndentMultiline bool              `koanf:"indent_multiline"`
	Console         bool              `koanf:"console"`
	ConsoleColors   bool              `koanf:"console_colors"`
	Colors          map[string]string `koanf:"colors"`
	FileMode        string            `koanf:"file_mode"`
	RetryCount      int               `koanf:"retry_count"`
	RetryDelay      string            `koanf:"retry_delay"`
	QueueSize       int               `koanf:"queue_size"`
}

// LoadConfig parses the "filelogger" section of data, then applies
// FILELOGGER_* environment overrides. Programmatic-only fields (Formatter,
// ErrorCallback, ConsoleWriter, FileSystem) are left for the caller to set.
//
// Example YAML:
//
//	filelogger:
//	  name: orders
//	  folder: /var/log/orders
//	  max_bytes: 20MB
//	  max_count: 5
//	  min_level: info
//	  console: true
//	  colors:
//	    warning: dark_yellow
func LoadConfig(data []byte, format Format) (Config, error) {
	k := koanf.New(".")
	if len(data) > 0 {
		parser, err := parserFor(format)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return Config{}, errors.Wrapf(err, "parse %s configuration", format)
		}
	}
	return loadFrom(k)
}

// LoadConfigFile reads a .yaml, .yml or .json file and calls LoadConfig.
func LoadConfigFile(path string) (Config, error) {
	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return Config{}, errors.Wrapf(err, "read configuration %q", path)
	}
	return LoadConfig(data, format)
}

// LoadEnvFiles loads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
// With no arguments it loads ".env.local" then ".env".
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env.local", ".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "load env file %q", p)
		}
	}
	return nil
}

func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.Errorf("unsupported configuration file %q (want .yaml, .yml or .json)", path)
	}
}

func parserFor(format Format) (koanf.Parser, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatYAML, "yml":
		return yaml.Parser(), nil
	case FormatJSON:
		return json.Parser(), nil
	default:
		return nil, errors.Errorf("unsupported configuration format %q", format)
	}
}

// envKey maps FILELOGGER_MAX_BYTES to filelogger.max_bytes.
func envKey(s string) string {
	return ConfigSection + "." + strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func loadFrom(k *koanf.Koanf) (Config, error) {
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, errors.Wrap(err, "load environment overrides")
	}

	var fc fileConfig
	if err := k.Unmarshal(ConfigSection, &fc); err != nil {
		return Config{}, errors.Wrap(err, "decode configuration")
	}
	return fc.toConfig()
}

func (fc fileConfig) toConfig() (Config, error) {
	cfg := Config{
		Name:            strings.TrimSpace(fc.Name),
		Folder:          fc.Folder,
		MaxCount:        fc.MaxCount,
		UseUTC:          fc.UseUTC,
		Multiline:       fc.Multiline,
		IndentMultiline: fc.IndentMultiline,
		Console:         fc.Console,
		ConsoleColors:   fc.ConsoleColors,
		RetryCount:      fc.RetryCount,
		QueueSize:       fc.QueueSize,
	}
	if cfg.Name == "" {
		return Config{}, ErrMissingName
	}

	if fc.MaxBytes != "" {
		size, err := ParseSize(fc.MaxBytes)
		if err != nil {
			return Config{}, errors.Wrap(err, "max_bytes")
		}
		cfg.MaxBytes = size
	}
	if fc.MinLevel != "" {
		level, err := ParseLevel(fc.MinLevel)
		if err != nil {
			return Config{}, errors.Wrap(err, "min_level")
		}
		cfg.MinLevel = level
	}
	if fc.RetryDelay != "" {
		d, err := ParseDuration(fc.RetryDelay)
		if err != nil {
			return Config{}, errors.Wrap(err, "retry_delay")
		}
		cfg.RetryDelay = d
	}
	if fc.FileMode != "" {
		mode, err := strconv.ParseUint(fc.FileMode, 8, 32)
		if err != nil {
			return Config{}, errors.Wrapf(err, "file_mode %q", fc.FileMode)
		}
		cfg.FileMode = os.FileMode(mode)
	}
	if len(fc.Colors) > 0 {
		cfg.Colors = make(map[Level]Color, len(fc.Colors))
		for name, colorName := range fc.Colors {
			level, err := ParseLevel(name)
			if err != nil {
				return Config{}, errors.Wrap(err, "colors")
			}
			color, err := ParseColor(colorName)
			if err != nil {
				return Config{}, errors.Wrapf(err, "colors.%s", name)
			}
			cfg.Colors[level] = color
		}
	}
	return cfg, nil
}
