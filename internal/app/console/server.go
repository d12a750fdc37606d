package console

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/remote"
	"screenlog/internal/config"
	"screenlog/internal/config/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
	goingAwayReason   = "Console shutting down"
)

// Server accepts device control channels over websocket
type Server interface {
	Start(ctx context.Context, display Display) error
	Stop() error
	Send(frame []byte) (int, error)
	Devices() []string
	Addr() string
}

type server struct {
	addr       string
	token      string
	bufferSize int
	hub        Hub
	display    Display
	upgrader   websocket.Upgrader
	httpServer *http.Server
	listener   net.Listener
	mu         sync.Mutex
	running    atomic.Bool
	wg         sync.WaitGroup
	connID     atomic.Int64
	ctx        context.Context
	cancel     context.CancelFunc
	log        logger.Logger
}

// NewServer creates a console server listening on the configured console address
func NewServer(cfg *config.Config, log logger.Logger) Server {
	return &server{
		addr:       cfg.ConsoleAddr(),
		token:      cfg.Socket.Token,
		bufferSize: cfg.Console.Buffer,
		hub:        NewHub(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log.WithComponent("CONSOLE"),
	}
}

// Addr returns the bound listen address once started, otherwise the configured one
func (s *server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.addr
}

// Start listens for devices and reports their frames to display
func (s *server) Start(ctx context.Context, display Display) error {
	if s.running.Load() {
		return errors.ErrServerRunning
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w %s: %w", errors.ErrFailedToListenSocket, s.addr, err)
	}

	s.listener = listener
	s.display = display
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.httpServer = &http.Server{
		Handler:           http.HandlerFunc(s.handleDevice),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.running.Store(true)
	s.log.Info().Msgf("Console listening on %s", listener.Addr())

	s.wg.Add(2)

	go func() {
		defer s.wg.Done()

		s.hub.Run(s.ctx)
	}()

	go func() {
		defer s.wg.Done()

		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("Console server failed")
		}
	}()

	return nil
}

// Stop disconnects every device and stops listening
func (s *server) Stop() error {
	s.mu.Lock()
	stopping := s.running.Swap(false)
	s.mu.Unlock()

	if !stopping {
		return nil
	}

	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)

	s.wg.Wait()
	s.log.Info().Msg("Console stopped")

	return err
}

// Send delivers a command frame to every connected device
func (s *server) Send(frame []byte) (int, error) {
	if !s.running.Load() {
		return 0, errors.ErrNoDevicesConnected
	}

	return s.hub.Broadcast(frame)
}

// Devices returns the IDs of connected devices
func (s *server) Devices() []string {
	return s.hub.Devices()
}

func (s *server) handleDevice(w http.ResponseWriter, r *http.Request) {
	if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
		s.log.Warn().Msgf("Rejected device from %s: bad token", r.RemoteAddr)
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)

		return
	}

	if !s.track() {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.wg.Done()
		s.log.Warn().Err(err).Msgf("Failed to upgrade connection from %s", r.RemoteAddr)

		return
	}

	conn := remote.NewConn(ws, config.SocketWriteWait)
	device := NewDevice(fmt.Sprintf("device-%d", s.connID.Add(1)), r.RemoteAddr, s.bufferSize)

	s.hub.Register(device)
	s.display.Connected(device.ID, device.Remote)
	s.log.Debug().Msgf("Device %s connected from %s", device.ID, device.Remote)

	go func() {
		defer s.wg.Done()

		s.writeFrames(device, conn)
	}()

	for {
		data, err := conn.ReadMessage()
		if err != nil {
			s.hub.Unregister(device)
			s.display.Disconnected(device.ID, remote.CloseCode(err))
			s.log.Debug().Err(err).Msgf("Device %s disconnected", device.ID)

			return
		}

		s.display.Show(device.ID, data)
	}
}

// track reserves a device writer in wg; it reports false once Stop has begun
func (s *server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running.Load() {
		return false
	}

	s.wg.Add(1)

	return true
}

// writeFrames is the only writer of conn; it closes conn when the device queue or the server ends
func (s *server) writeFrames(device *Device, conn remote.Conn) {
	defer conn.Close(websocket.CloseGoingAway, goingAwayReason)

	for {
		select {
		case <-s.ctx.Done():
			return
		case frame, ok := <-device.Send:
			if !ok {
				return
			}

			if err := conn.WriteMessage(frame); err != nil {
				s.log.Warn().Err(err).Msgf("Failed to send frame to %s", device.ID)
				return
			}
		}
	}
}
