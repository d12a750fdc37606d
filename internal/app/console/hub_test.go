package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenlog/internal/app/errors"
)

func startHub(t *testing.T) (Hub, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()

	go h.Run(ctx)

	return h, cancel
}

func Test_NewDevice(t *testing.T) {
	d := NewDevice("device-1", "127.0.0.1:5000", 8)

	assert.Equal(t, "device-1", d.ID)
	assert.Equal(t, "127.0.0.1:5000", d.Remote)
	assert.Equal(t, 8, cap(d.Send))
}

func Test_Hub_BroadcastWithoutDevices(t *testing.T) {
	h, cancel := startHub(t)
	defer cancel()

	sent, err := h.Broadcast([]byte(`{"command":"ping"}`))

	assert.Zero(t, sent)
	assert.ErrorIs(t, err, errors.ErrNoDevicesConnected)
}

func Test_Hub_Broadcast(t *testing.T) {
	h, cancel := startHub(t)
	defer cancel()

	a := NewDevice("device-1", "a", 4)
	b := NewDevice("device-2", "b", 4)

	h.Register(a)
	h.Register(b)

	frame := []byte(`{"command":"clearLogs"}`)

	sent, err := h.Broadcast(frame)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	assert.Equal(t, frame, <-a.Send)
	assert.Equal(t, frame, <-b.Send)
	assert.Equal(t, []string{"device-1", "device-2"}, h.Devices())
}

func Test_Hub_FullQueueMissesFrame(t *testing.T) {
	h, cancel := startHub(t)
	defer cancel()

	slow := NewDevice("device-1", "a", 1)
	fast := NewDevice("device-2", "b", 4)

	h.Register(slow)
	h.Register(fast)

	_, err := h.Broadcast([]byte("1"))
	require.NoError(t, err)

	sent, err := h.Broadcast([]byte("2"))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func Test_Hub_Unregister(t *testing.T) {
	h, cancel := startHub(t)
	defer cancel()

	d := NewDevice("device-1", "a", 1)

	h.Register(d)
	h.Unregister(d)
	h.Unregister(d)

	_, ok := <-d.Send
	assert.False(t, ok)

	_, err := h.Broadcast([]byte("x"))
	assert.ErrorIs(t, err, errors.ErrNoDevicesConnected)
}

func Test_Hub_RunStopClosesDevices(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()

	done := make(chan struct{})

	go func() {
		h.Run(ctx)
		close(done)
	}()

	d := NewDevice("device-1", "a", 1)
	h.Register(d)

	cancel()
	<-done

	_, ok := <-d.Send
	assert.False(t, ok)

	h.Register(NewDevice("device-2", "b", 1))

	_, err := h.Broadcast([]byte("x"))
	assert.ErrorIs(t, err, errors.ErrNoDevicesConnected)
}
