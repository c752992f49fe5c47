package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saeidalz13/battleship-solo/controller"
	"github.com/saeidalz13/battleship-solo/internal/config"
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	"github.com/saeidalz13/battleship-solo/internal/logger"
)

var configKeys = []string{"STAGE", "PORT", "DATABASE_URL", "BOARD_SIZE", "START_DELAY", "THINK_DELAY", "LOG_LEVEL", "VERBOSE"}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, logger.StageDev, cfg.Stage)
	assert.Equal(t, config.DefaultPort, cfg.Port)
	assert.Equal(t, 10, cfg.BoardSize)
	assert.Equal(t, controller.DefaultStartDelay, cfg.StartDelay)
	assert.Equal(t, controller.DefaultThinkDelay, cfg.ThinkDelay)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.DatabaseUrl)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STAGE", "prod")
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://localhost/battleship")
	t.Setenv("BOARD_SIZE", "12")
	t.Setenv("START_DELAY", "0s")
	t.Setenv("THINK_DELAY", "250ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("VERBOSE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, logger.StageProd, cfg.Stage)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://localhost/battleship", cfg.DatabaseUrl)
	assert.Equal(t, 12, cfg.BoardSize)
	assert.Equal(t, time.Duration(0), cfg.StartDelay)
	assert.Equal(t, time.Millisecond*250, cfg.ThinkDelay)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.True(t, cfg.Verbose)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("BOARD_SIZE"))
	t.Cleanup(func() { _ = os.Unsetenv("BOARD_SIZE") })

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BOARD_SIZE=8\n"), 0o600))

	cfg, err := config.Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.BoardSize)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown stage", key: "STAGE", value: "staging"},
		{name: "port not a number", key: "PORT", value: "ninety"},
		{name: "port out of range", key: "PORT", value: "70000"},
		{name: "board too small for fleet", key: "BOARD_SIZE", value: "4"},
		{name: "board too wide", key: "BOARD_SIZE", value: "27"},
		{name: "negative delay", key: "START_DELAY", value: "-1s"},
		{name: "delay without unit", key: "THINK_DELAY", value: "500"},
		{name: "unknown log level", key: "LOG_LEVEL", value: "loud"},
		{name: "verbose not a bool", key: "VERBOSE", value: "very"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(test.key, test.value)

			_, err := config.Load(missingEnvFile(t))
			require.Error(t, err)
			if test.key == "BOARD_SIZE" {
				assert.ErrorIs(t, err, cerr.ErrInvalidBoardConfiguration)
			} else {
				assert.ErrorIs(t, err, cerr.ErrInvalidConfig)
			}
		})
	}
}

func TestMustLoadPanics(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "0")
	assert.Panics(t, func() { config.MustLoad(missingEnvFile(t)) })
}
