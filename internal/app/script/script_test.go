package script

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/lifecycle"
	"screenlog/internal/app/worker"
	"screenlog/internal/config"
	"screenlog/internal/config/logger"
)

func newTestRunner(cfg *config.Config) Runner {
	log := logger.NewNopLogger()

	return NewRunner(cfg, worker.NewWorkerPool(cfg), lifecycle.NewLifecycle(log), log)
}

func enabledConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scripts.Enabled = true

	return cfg
}

func Test_Run_Disabled(t *testing.T) {
	r := newTestRunner(config.DefaultConfig())

	out, err := r.Run(context.Background(), "echo hi")

	assert.False(t, r.Enabled())
	assert.ErrorIs(t, err, errors.ErrScriptsDisabled)
	assert.Empty(t, out)
}

func Test_Run(t *testing.T) {
	tests := []struct {
		name   string
		script string
		output string
		failed bool
	}{
		{name: "Stdout", script: "echo hello", output: "hello"},
		{name: "Stderr is captured", script: "echo oops >&2", output: "oops"},
		{name: "No output", script: "true", output: ""},
		{name: "Non-zero exit", script: "echo partial; exit 3", output: "partial", failed: true},
	}

	r := newTestRunner(enabledConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Run(context.Background(), tt.script)

			assert.Equal(t, tt.output, out)

			if tt.failed {
				assert.ErrorIs(t, err, errors.ErrScriptFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Run_Timeout(t *testing.T) {
	cfg := enabledConfig()
	cfg.Scripts.Timeout = 100 * time.Millisecond

	r := newTestRunner(cfg)

	start := time.Now()
	_, err := r.Run(context.Background(), "sleep 30")

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrScriptFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
}
