package e2e

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Run_RendersInput(t *testing.T) {
	runner := NewRunner(t, t.TempDir())
	defer runner.Stop()

	require.NoError(t, runner.Start("run", "--no-watch"))
	require.NoError(t, runner.WaitForLog("enabled. Limit: 50", 10*time.Second))

	require.NoError(t, runner.Send("hello"))
	require.NoError(t, runner.Send("warn: careful"))
	require.NoError(t, runner.Send(`{"user":"ada"}`))
	require.NoError(t, runner.WaitForLog(`{"user":"ada"}`, 5*time.Second))

	require.NoError(t, runner.CloseInput())
	require.NoError(t, runner.Wait(10*time.Second))

	output := runner.Output()

	assert.Contains(t, output, "2) [LOG]")
	assert.Contains(t, output, "]: hello")
	assert.Contains(t, output, "3) [WARN]")
	assert.Less(t, indexOf(output, "]: hello"), indexOf(output, "]: careful"))
	assert.Equal(t, 0, runner.ExitCode())
}

func Test_Run_PauseKeepsEntries(t *testing.T) {
	runner := NewRunner(t, t.TempDir())
	defer runner.Stop()

	require.NoError(t, runner.Start("run", "--no-watch"))
	require.NoError(t, runner.WaitForLog("enabled.", 10*time.Second))

	require.NoError(t, runner.Send("::pause"))
	require.NoError(t, runner.Send("while paused"))
	require.NoError(t, runner.Send("::timeEnd missing"))
	require.NoError(t, runner.WaitForLog("Logger output paused.", 5*time.Second))

	require.NoError(t, runner.CloseInput())
	require.NoError(t, runner.Wait(10*time.Second))

	assert.NotContains(t, runner.Output(), "while paused")
}

func Test_Run_ReloadsOnConfigChange(t *testing.T) {
	runner := NewRunner(t, t.TempDir())
	defer runner.Stop()

	require.NoError(t, runner.WriteFile("screenlog.yaml", "buffer:\n  limit: 10\n"))
	require.NoError(t, runner.Start("run"))
	require.NoError(t, runner.WaitForLog("Limit: 10", 10*time.Second))

	require.NoError(t, runner.WriteFile("screenlog.yaml", "buffer:\n  limit: 5\n"))
	require.NoError(t, runner.WaitForLog("Configuration changed: ", 10*time.Second))

	require.NoError(t, runner.Stop())
}

func Test_Run_InvalidConfig(t *testing.T) {
	runner := NewRunner(t, t.TempDir())

	require.NoError(t, runner.WriteFile("screenlog.yaml", "buffer:\n  limit: -1\n"))
	require.NoError(t, runner.Start("run", "--no-watch"))
	require.NoError(t, runner.Wait(10*time.Second))

	assert.Equal(t, 1, runner.ExitCode())
	assert.Contains(t, runner.Stderr(), "invalid configuration")
}

func Test_Stored_ListsPersistedEntries(t *testing.T) {
	dir := t.TempDir()
	config := "storage:\n  enabled: true\n  type: local\n  path: store\n"

	writer := NewRunner(t, dir)
	defer writer.Stop()

	require.NoError(t, writer.WriteFile("screenlog.yaml", config))
	require.NoError(t, writer.Start("run", "--no-watch"))
	require.NoError(t, writer.WaitForLog("enabled.", 10*time.Second))
	require.NoError(t, writer.Send("persist me"))
	require.NoError(t, writer.WaitForLog("persist me", 5*time.Second))
	require.NoError(t, writer.CloseInput())
	require.NoError(t, writer.Wait(10*time.Second))

	reader := NewRunner(t, dir)
	require.NoError(t, reader.Start("stored"))
	require.NoError(t, reader.Wait(10*time.Second))

	assert.Contains(t, reader.Output(), "]: persist me")

	reset := NewRunner(t, dir)
	require.NoError(t, reset.Start("stored", "--reset"))
	require.NoError(t, reset.Wait(10*time.Second))
	assert.Contains(t, reset.Output(), "Stored entries deleted.")

	empty := NewRunner(t, dir)
	require.NoError(t, empty.Start("stored"))
	require.NoError(t, empty.Wait(10*time.Second))
	assert.Contains(t, empty.Output(), "No stored entries.")
}

func Test_Console_ControlsDevice(t *testing.T) {
	dir := t.TempDir()
	port := freePort(t)
	config := fmt.Sprintf(
		"console:\n  host: 127.0.0.1\n  port: %d\nsocket:\n  enabled: true\n  host: 127.0.0.1\n  port: %d\n  reconnect: 200ms\n",
		port, port,
	)

	operator := NewRunner(t, dir)
	defer operator.Stop()

	require.NoError(t, operator.WriteFile("screenlog.yaml", config))
	require.NoError(t, operator.Start("console"))
	require.NoError(t, operator.WaitForLog("Waiting for devices", 10*time.Second))

	device := NewRunner(t, dir)
	defer device.Stop()

	require.NoError(t, device.Start("run", "--no-watch"))
	require.NoError(t, operator.WaitForLog("device-1 connected", 10*time.Second))

	require.NoError(t, operator.Send("ping"))
	require.NoError(t, operator.WaitForLog("pong: ", 5*time.Second))

	require.NoError(t, device.Send("from device"))
	require.NoError(t, operator.WaitForLog("[device-1] ", 5*time.Second))
	require.NoError(t, operator.WaitForLog("from device", 5*time.Second))

	require.NoError(t, operator.Send("setLogLimit 5"))
	require.NoError(t, operator.WaitForLog("Sent to 1 device(s)", 5*time.Second))

	require.NoError(t, operator.Send("disable"))
	require.NoError(t, operator.WaitForLog("device-1 disconnected (code 1000)", 5*time.Second))
}
