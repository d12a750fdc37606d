package lifecycle

import (
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"screenlog/internal/app/errors"
	"screenlog/internal/config/logger"
)

// Lifecycle puts script processes in their own group and tears the group down
type Lifecycle interface {
	Configure(cmd *exec.Cmd)
	Terminate(cmd *exec.Cmd, done <-chan struct{}, grace time.Duration) error
}

type lifecycle struct {
	log logger.Logger
}

// NewLifecycle creates a new Lifecycle instance
func NewLifecycle(log logger.Logger) Lifecycle {
	return &lifecycle{log: log.WithComponent("LIFECYCLE")}
}

// Configure starts the command in a new process group
func (l *lifecycle) Configure(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// Terminate sends SIGTERM to the group of cmd and SIGKILL once grace elapses.
// done must close when the process has been waited for.
func (l *lifecycle) Terminate(cmd *exec.Cmd, done <-chan struct{}, grace time.Duration) error {
	if cmd.Process == nil {
		return nil
	}

	pid := cmd.Process.Pid
	l.log.Info().Msgf("Stopping script (PID: %d)", pid)

	if err := syscall.Kill(-pid, syscall.SIGTERM); err != nil {
		l.log.Warn().Err(err).Msg("Failed to send SIGTERM to process group, trying direct signal")

		if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
			return l.forceKill(cmd, done, pid)
		}
	}

	select {
	case <-done:
		return nil
	case <-time.After(grace):
		l.log.Warn().Msgf("Script (PID: %d) did not stop gracefully, forcing kill", pid)
		return l.forceKill(cmd, done, pid)
	}
}

func (l *lifecycle) forceKill(cmd *exec.Cmd, done <-chan struct{}, pid int) error {
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		l.log.Warn().Err(err).Msg("Failed to SIGKILL process group, trying direct kill")

		if err := cmd.Process.Kill(); err != nil {
			return fmt.Errorf("%w: %w", errors.ErrFailedToTerminateScript, err)
		}
	}

	<-done

	return nil
}
