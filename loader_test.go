// loader_test.go: Tests for YAML/JSON/environment configuration loading
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
filelogger:
  name: orders
  folder: /var/log/orders
  max_bytes: 20MB
  max_count: 5
  min_level: warn
  use_utc: true
  multiline: true
  indent_multiline: true
  console: true
  console_colors: true
  file_mode: "0640"
  retry_count: 4
  retry_delay: 25ms
  queue_size: 256
  colors:
    warning: dark_yellow
    Critical: magenta
`

func TestLoadConfig_YAML(t *testing.T) {
	cfg, err := LoadConfig([]byte(yamlConfig), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "orders", cfg.Name)
	assert.Equal(t, "/var/log/orders", cfg.Folder)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxBytes)
	assert.Equal(t, 5, cfg.MaxCount)
	assert.Equal(t, LevelWarning, cfg.MinLevel)
	assert.True(t, cfg.UseUTC)
	assert.True(t, cfg.Multiline)
	assert.True(t, cfg.IndentMultiline)
	assert.True(t, cfg.Console)
	assert.True(t, cfg.ConsoleColors)
	assert.Equal(t, os.FileMode(0640), cfg.FileMode)
	assert.Equal(t, 4, cfg.RetryCount)
	assert.Equal(t, 25*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 256, cfg.QueueSize)
	assert.Equal(t, map[Level]Color{
		LevelWarning:  ColorDarkYellow,
		LevelCritical: ColorMagenta,
	}, cfg.Colors)
}

func TestLoadConfig_JSON(t *testing.T) {
	data := []byte(`{"filelogger": {"name": "api", "max_bytes": 1024, "max_count": 3, "min_level": "Debug"}}`)
	cfg, err := LoadConfig(data, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "api", cfg.Name)
	assert.Equal(t, int64(1024), cfg.MaxBytes)
	assert.Equal(t, 3, cfg.MaxCount)
	assert.Equal(t, LevelDebug, cfg.MinLevel)
	assert.Empty(t, cfg.Folder, "unset folder is left for New to default")
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("FILELOGGER_MAX_COUNT", "7")
	t.Setenv("FILELOGGER_MIN_LEVEL", "error")
	t.Setenv("FILELOGGER_CONSOLE", "true")

	cfg, err := LoadConfig([]byte(yamlConfig), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxCount)
	assert.Equal(t, LevelError, cfg.MinLevel)
	assert.True(t, cfg.Console)
	assert.Equal(t, "orders", cfg.Name, "values without overrides come from the file")
}

func TestLoadConfig_EnvironmentOnly(t *testing.T) {
	t.Setenv("FILELOGGER_NAME", "from-env")
	t.Setenv("FILELOGGER_MAX_BYTES", "1KB")

	cfg, err := LoadConfig(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, int64(1024), cfg.MaxBytes)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		target error
	}{
		{"MissingName", "filelogger:\n  max_count: 2\n", FormatYAML, ErrMissingName},
		{"BadLevel", "filelogger:\n  name: x\n  min_level: loud\n", FormatYAML, ErrInvalidLevel},
		{"BadColor", "filelogger:\n  name: x\n  colors:\n    error: plaid\n", FormatYAML, ErrInvalidColor},
		{"BadColorLevel", "filelogger:\n  name: x\n  colors:\n    loud: red\n", FormatYAML, ErrInvalidLevel},
		{"BadSize", "filelogger:\n  name: x\n  max_bytes: huge\n", FormatYAML, nil},
		{"BadYAML", "filelogger: [unclosed", FormatYAML, nil},
		{"UnknownFormat", "name = \"x\"", Format("toml"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig([]byte(tt.data), tt.format)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "filelog.yml")
	require.NoError(t, os.WriteFile(yml, []byte(yamlConfig), 0600))
	cfg, err := LoadConfigFile(yml)
	require.NoError(t, err)
	assert.Equal(t, "orders", cfg.Name)

	js := filepath.Join(dir, "filelog.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"filelogger":{"name":"j"}}`), 0600))
	cfg, err = LoadConfigFile(js)
	require.NoError(t, err)
	assert.Equal(t, "j", cfg.Name)

	_, err = LoadConfigFile(filepath.Join(dir, "filelog.toml"))
	assert.Error(t, err)

	_, err = LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvFiles(t *testing.T) {
	// Registers restoration of the original (unset) value.
	t.Setenv("FILELOGGER_NAME", "placeholder")
	require.NoError(t, os.Unsetenv("FILELOGGER_NAME"))

	dir := t.TempDir()
	envFile := filepath.Join(dir, "filelog.env")
	require.NoError(t, os.WriteFile(envFile, []byte("FILELOGGER_NAME=from-dotenv\n"), 0600))

	require.NoError(t, LoadEnvFiles(filepath.Join(dir, "missing.env"), envFile))

	cfg, err := LoadConfig([]byte("filelogger:\n  max_count: 3\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Name)
	assert.Equal(t, 3, cfg.MaxCount)
}

func TestLoadConfig_BuildsSink(t *testing.T) {
	data := []byte("filelogger:\n  name: loaded\n  folder: " + filepath.ToSlash(t.TempDir()) + "\n  max_bytes: 1KB\n  max_count: 2\n")
	cfg, err := LoadConfig(data, FormatYAML)
	require.NoError(t, err)

	s, err := New(cfg)
	require.NoError(t, err)
	s.Default().Info("hello")
	require.NoError(t, s.Close())
	assert.Contains(t, readSlot(t, s, 0), "|INFO|loaded|hello\n")
}
