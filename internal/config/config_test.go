package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/usersrc2xml/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv(DirEnv, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_WithConfigFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "indent: \"\\t\"\nescape: false\nformat: toml\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "\t", cfg.Indent)
	assert.False(t, cfg.Escape)
	assert.Equal(t, "toml", cfg.Format)
}

func TestLoad_SearchesConfigDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "indent: \"    \"\n")
	t.Setenv(DirEnv, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "    ", cfg.Indent)
	assert.True(t, cfg.Escape, "unset keys keep their defaults")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(DirEnv, t.TempDir())
	t.Setenv("USERSRC2XML_ESCAPE", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Escape)
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "indent with letters",
			content: "indent: \"xx\"\n",
			wantErr: ErrInvalidIndent,
		},
		{
			name:    "unknown format",
			content: "format: ini\n",
			wantErr: ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)

			_, err := Load(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantLen int
	}{
		{"nil config", nil, 1},
		{"defaults", Default(), 0},
		{"empty indent", &Config{Indent: ""}, 0},
		{"every format", &Config{Format: "yaml"}, 0},
		{"two problems", &Config{Indent: "-", Format: "xml"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.cfg); len(got) != tt.wantLen {
				t.Errorf("Validate() = %v, want %d errors", got, tt.wantLen)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: "format", Value: "ini", Err: ErrInvalidFormat}
	assert.Equal(t, `format: invalid source format: "ini"`, err.Error())
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}
