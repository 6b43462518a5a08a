package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/heep/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := config.FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.InDelta(t, 1.0/60, cfg.TickSeconds(), 1e-12)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := config.FromEnv(env(map[string]string{
		config.EnvWidth:       "800",
		config.EnvHeight:      "600",
		config.EnvTPS:         "120",
		config.EnvLogLevel:    "debug",
		config.EnvMetricsAddr: " :9100 ",
		config.EnvDebugUI:     "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, config.Config{
		Width:       800,
		Height:      600,
		TPS:         120,
		LogLevel:    slog.LevelDebug,
		MetricsAddr: ":9100",
		DebugUI:     true,
	}, cfg)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"width not a number", config.EnvWidth, "wide"},
		{"height zero", config.EnvHeight, "0"},
		{"tps negative", config.EnvTPS, "-5"},
		{"bad level", config.EnvLogLevel, "loud"},
		{"bad bool", config.EnvDebugUI, "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.FromEnv(env(map[string]string{tt.key: tt.val}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HEEP_TPS=30\n"), 0o600))
	t.Chdir(dir)
	t.Setenv(config.EnvTPS, "")
	os.Unsetenv(config.EnvTPS)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TPS)
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := config.Load()
	assert.NoError(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogLevel = slog.LevelWarn

	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=1")
}
