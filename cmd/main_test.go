package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"screenlog/internal/app"
	"screenlog/internal/app/cli"
	"screenlog/internal/config"
	"screenlog/internal/config/logger"
)

func Test_CreateApp(t *testing.T) {
	tests := []struct {
		name  string
		level string
		opts  *cli.Options
	}{
		{name: "run with info logging", level: logger.InfoLevel, opts: &cli.Options{Type: cli.CommandRun, ConfigPath: config.ConfigFile}},
		{name: "console with debug logging", level: logger.DebugLevel, opts: &cli.Options{Type: cli.CommandConsole, ConfigPath: config.ConfigFile}},
		{name: "stored with error logging", level: logger.ErrorLevel, opts: &cli.Options{Type: cli.CommandStored, ConfigPath: config.ConfigFile}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Logging.Level = tt.level

			application := createApp(cfg, tt.opts)

			require.NotNil(t, application)
			assert.NoError(t, application.Err())
		})
	}
}

func Test_CreateApp_ValidatesGraph(t *testing.T) {
	cfg := config.DefaultConfig()
	opts := &cli.Options{Type: cli.CommandVersion, ConfigPath: config.ConfigFile}

	err := fx.ValidateApp(
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg, opts),
		app.Module,
	)

	assert.NoError(t, err)
}

func Test_CreateFxLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected fxevent.Logger
	}{
		{name: "info level returns nop logger", level: logger.InfoLevel, expected: fxevent.NopLogger},
		{name: "warn level returns nop logger", level: logger.WarnLevel, expected: fxevent.NopLogger},
		{name: "error level returns nop logger", level: logger.ErrorLevel, expected: fxevent.NopLogger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Logging.Level = tt.level

			assert.Equal(t, tt.expected, createFxLogger(cfg)())
		})
	}
}

func Test_CreateFxLogger_Debug(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = logger.DebugLevel

	assert.IsType(t, &fxevent.ConsoleLogger{}, createFxLogger(cfg)())
}
