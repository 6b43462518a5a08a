// Package config holds the settings shared by the simulation hosts. Values
// start from Default and are overridden by HEEP_* environment variables, which
// may come from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvWidth       = "HEEP_WIDTH"
	EnvHeight      = "HEEP_HEIGHT"
	EnvTPS         = "HEEP_TPS"
	EnvLogLevel    = "HEEP_LOG_LEVEL"
	EnvMetricsAddr = "HEEP_METRICS_ADDR"
	EnvDebugUI     = "HEEP_DEBUG_UI"
)

type Config struct {
	// Width and Height are the window size in pixels.
	Width  int
	Height int

	// TPS is the number of simulation ticks per second.
	TPS int

	LogLevel slog.Level

	// MetricsAddr is the listen address for /metrics. Empty disables it.
	MetricsAddr string

	// DebugUI enables the imgui overlay.
	DebugUI bool
}

func Default() Config {
	return Config{
		Width:    1280,
		Height:   720,
		TPS:      60,
		LogLevel: slog.LevelInfo,
	}
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv applies the HEEP_* variables found through getenv on top of
// Default.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	for _, v := range []struct {
		key string
		dst *int
	}{
		{EnvWidth, &cfg.Width},
		{EnvHeight, &cfg.Height},
		{EnvTPS, &cfg.TPS},
	} {
		raw := getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", v.key, err)
		}
		if n <= 0 {
			return Config{}, fmt.Errorf("parse %s: must be positive, got %d", v.key, n)
		}
		*v.dst = n
	}

	if raw := getenv(EnvLogLevel); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvLogLevel, err)
		}
	}

	cfg.MetricsAddr = strings.TrimSpace(getenv(EnvMetricsAddr))

	if raw := getenv(EnvDebugUI); raw != "" {
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvDebugUI, err)
		}
		cfg.DebugUI = on
	}

	return cfg, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

// TickSeconds is the fixed frame time implied by TPS.
func (c Config) TickSeconds() float64 {
	if c.TPS <= 0 {
		return 0
	}
	return 1 / float64(c.TPS)
}
