package console

import (
	"context"
	"slices"
	"sync"

	"screenlog/internal/app/errors"
)

// Device is one connected screenlog instance
type Device struct {
	ID     string
	Remote string
	Send   chan []byte
}

// NewDevice creates a device with an outbound frame queue of bufferSize
func NewDevice(id, remote string, bufferSize int) *Device {
	return &Device{
		ID:     id,
		Remote: remote,
		Send:   make(chan []byte, bufferSize),
	}
}

// Hub tracks connected devices and fans command frames out to them
type Hub interface {
	Register(device *Device)
	Unregister(device *Device)
	Broadcast(frame []byte) (int, error)
	Devices() []string
	Run(ctx context.Context)
}

type broadcast struct {
	frame []byte
	sent  chan int
}

type hub struct {
	devices    map[*Device]bool
	register   chan *Device
	unregister chan *Device
	broadcast  chan broadcast
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() Hub {
	return &hub{
		devices:    make(map[*Device]bool),
		register:   make(chan *Device),
		unregister: make(chan *Device),
		broadcast:  make(chan broadcast),
		done:       make(chan struct{}),
	}
}

// Register adds a device; it returns once the device is visible to Broadcast
func (h *hub) Register(device *Device) {
	select {
	case h.register <- device:
	case <-h.done:
	}
}

// Unregister removes a device and closes its queue
func (h *hub) Unregister(device *Device) {
	select {
	case h.unregister <- device:
	case <-h.done:
	}
}

// Broadcast queues frame for every device and returns how many received it.
// Devices whose queue is full miss the frame.
func (h *hub) Broadcast(frame []byte) (int, error) {
	b := broadcast{frame: frame, sent: make(chan int, 1)}

	select {
	case h.broadcast <- b:
	case <-h.done:
		return 0, errors.ErrNoDevicesConnected
	}

	if sent := <-b.sent; sent > 0 {
		return sent, nil
	}

	return 0, errors.ErrNoDevicesConnected
}

// Devices returns the sorted IDs of connected devices
func (h *hub) Devices() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.devices))
	for device := range h.devices {
		ids = append(ids, device.ID)
	}

	slices.Sort(ids)

	return ids
}

// Run owns the device set until ctx is done
func (h *hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()

			for device := range h.devices {
				close(device.Send)
				delete(h.devices, device)
			}

			h.mu.Unlock()

			return
		case device := <-h.register:
			h.mu.Lock()
			h.devices[device] = true
			h.mu.Unlock()
		case device := <-h.unregister:
			h.mu.Lock()

			if _, ok := h.devices[device]; ok {
				close(device.Send)
				delete(h.devices, device)
			}

			h.mu.Unlock()
		case b := <-h.broadcast:
			sent := 0

			h.mu.RLock()

			for device := range h.devices {
				select {
				case device.Send <- b.frame:
					sent++
				default:
				}
			}

			h.mu.RUnlock()

			b.sent <- sent
		}
	}
}
