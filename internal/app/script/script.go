//go:generate mockgen -source=script.go -destination=script_mock.go -package=script
package script

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/lifecycle"
	"screenlog/internal/app/worker"
	"screenlog/internal/config"
	"screenlog/internal/config/logger"
)

// Runner executes operator supplied scripts on the host shell
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
	Enabled() bool
}

type runner struct {
	enabled   bool
	shell     string
	timeout   time.Duration
	grace     time.Duration
	pool      worker.Pool
	lifecycle lifecycle.Lifecycle
	log       logger.Logger
}

// NewRunner creates a script runner; scripts only run when the scripts section enables them
func NewRunner(cfg *config.Config, pool worker.Pool, lc lifecycle.Lifecycle, log logger.Logger) Runner {
	return &runner{
		enabled:   cfg.Scripts.Enabled,
		shell:     cfg.Scripts.Shell,
		timeout:   cfg.Scripts.Timeout,
		grace:     config.ScriptGracePeriod,
		pool:      pool,
		lifecycle: lc,
		log:       log.WithComponent("SCRIPT"),
	}
}

// Enabled reports whether scripts may run
func (r *runner) Enabled() bool {
	return r.enabled
}

// Run executes script with "<shell> -c" and returns its combined output.
// The process group is terminated when the timeout or ctx expires.
func (r *runner) Run(ctx context.Context, script string) (string, error) {
	if !r.enabled {
		r.log.Warn().Msg("Rejected remote script, scripts are disabled")
		return "", errors.ErrScriptsDisabled
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := r.pool.Acquire(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrScriptFailed, err)
	}
	defer r.pool.Release()

	var output bytes.Buffer

	cmd := exec.Command(r.shell, "-c", script)
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.WaitDelay = r.grace
	r.lifecycle.Configure(cmd)

	r.log.Warn().Msgf("Executing remote script (%d bytes)", len(script))

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrScriptFailed, err)
	}

	done := make(chan struct{})

	var waitErr error

	go func() {
		waitErr = cmd.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		if err := r.lifecycle.Terminate(cmd, done, r.grace); err != nil {
			r.log.Error().Err(err).Msg("Failed to stop script")
			return "", fmt.Errorf("%w: %w", errors.ErrScriptFailed, err)
		}

		return trim(output.String()), fmt.Errorf("%w: %w", errors.ErrScriptFailed, ctx.Err())
	}

	if waitErr != nil {
		return trim(output.String()), fmt.Errorf("%w: %w", errors.ErrScriptFailed, waitErr)
	}

	return trim(output.String()), nil
}

func trim(s string) string {
	return strings.TrimRight(s, "\r\n")
}
