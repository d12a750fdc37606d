package e2e

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
)

// lockedBuffer is a thread-safe bytes.Buffer for capturing process output
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer with mutex protection
func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

// String returns the buffer contents with mutex protection
func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// binary returns the screenlog executable under test, skipping the test when none is installed
func binary(t *testing.T) string {
	t.Helper()

	bin := os.Getenv("SCREENLOG_BIN")
	if bin == "" {
		bin = "screenlog"
	}

	path, err := exec.LookPath(bin)
	if err != nil {
		t.Skipf("screenlog binary not found (%s), set SCREENLOG_BIN to run e2e tests", bin)
	}

	return path
}

// freePort returns a local TCP port that was free a moment ago
func freePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find a free port: %v", err)
	}
	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port
}

// Runner manages one screenlog process for e2e tests
type Runner struct {
	t       *testing.T
	bin     string
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  *lockedBuffer
	stderr  *lockedBuffer
	workDir string
	done    chan error
}

// NewRunner creates a runner working in dir
func NewRunner(t *testing.T, dir string) *Runner {
	t.Helper()

	workDir, err := filepath.Abs(dir)
	if err != nil {
		t.Fatalf("failed to get absolute path: %v", err)
	}

	return &Runner{
		t:       t,
		bin:     binary(t),
		workDir: workDir,
		stdout:  &lockedBuffer{},
		stderr:  &lockedBuffer{},
	}
}

// Start launches screenlog with args and an open standard input
func (r *Runner) Start(args ...string) error {
	r.cmd = exec.Command(r.bin, args...)
	r.cmd.Dir = r.workDir
	r.cmd.Stdout = r.stdout
	r.cmd.Stderr = r.stderr

	stdin, err := r.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdin: %w", err)
	}

	r.stdin = stdin

	if err := r.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start screenlog: %w", err)
	}

	r.done = make(chan error, 1)

	go func() {
		r.done <- r.cmd.Wait()
	}()

	return nil
}

// Send writes one line to standard input
func (r *Runner) Send(line string) error {
	_, err := io.WriteString(r.stdin, line+"\n")
	return err
}

// CloseInput ends standard input
func (r *Runner) CloseInput() error {
	return r.stdin.Close()
}

// Wait blocks until the process exits on its own
func (r *Runner) Wait(timeout time.Duration) error {
	if r.done == nil {
		return nil
	}

	select {
	case <-r.done:
		r.done = nil
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("process did not exit within %s\nOutput:\n%s", timeout, r.Output())
	}
}

// Stop sends SIGTERM and waits for graceful shutdown
func (r *Runner) Stop() error {
	if r.cmd == nil || r.cmd.Process == nil || r.done == nil {
		return nil
	}

	if err := r.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM: %w", err)
	}

	select {
	case <-r.done:
		r.done = nil
		return nil
	case <-time.After(10 * time.Second):
		r.cmd.Process.Kill()
		<-r.done
		r.done = nil

		return fmt.Errorf("process did not exit gracefully, killed")
	}
}

// WaitForLog blocks until pattern appears in stdout or timeout
func (r *Runner) WaitForLog(pattern string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for log pattern %q\nOutput:\n%s\nStderr:\n%s", pattern, r.Output(), r.Stderr())
		case <-ticker.C:
			if strings.Contains(r.Output(), pattern) {
				return nil
			}
		}
	}
}

// WriteFile writes a file in the working directory
func (r *Runner) WriteFile(name, content string) error {
	return os.WriteFile(filepath.Join(r.workDir, name), []byte(content), 0644)
}

// Output returns current stdout content
func (r *Runner) Output() string {
	return r.stdout.String()
}

// Stderr returns current stderr content
func (r *Runner) Stderr() string {
	return r.stderr.String()
}

// ExitCode returns process exit code (after Stop or Wait)
func (r *Runner) ExitCode() int {
	if r.cmd == nil || r.cmd.ProcessState == nil {
		return -1
	}

	return r.cmd.ProcessState.ExitCode()
}

// indexOf returns the index of substr in s, or -1 if not found
func indexOf(s, substr string) int {
	return strings.Index(s, substr)
}
