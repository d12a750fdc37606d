//go:generate mockgen -source=channel.go -destination=channel_mock.go -package=remote -exclude_interfaces=stopper
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/looplab/fsm"

	"screenlog/internal/app/errors"
	"screenlog/internal/app/logs"
	"screenlog/internal/app/monitor"
	"screenlog/internal/config"
	"screenlog/internal/config/logger"
)

// FSM states
const (
	Disconnected = "disconnected"
	Connecting   = "connecting"
	Open         = "open"
	Reconnecting = "reconnecting"
)

// FSM events
const (
	Connect       = "connect"
	Retry         = "retry"
	Opened        = "opened"
	ClosedClean   = "closed_clean"
	ClosedUnclean = "closed_unclean"
	Disable       = "disable"
)

const disableReason = "Logger disabled"

// Channel is the reconnecting control socket between the pipeline and an operator console
type Channel interface {
	Start(ctx context.Context, controller Controller)
	Connect()
	Enable()
	Disable()
	Enabled() bool
	IsOpen() bool
	State() string
	Send(entry logs.Entry) error
}

type stopper interface {
	Stop() bool
}

type scheduler func(d time.Duration, f func()) stopper

func afterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

type channel struct {
	url        string
	token      string
	interval   time.Duration
	dialer     Dialer
	monitor    monitor.Monitor
	log        logger.Logger
	schedule   scheduler
	ctx        context.Context
	controller Controller
	fsm        *fsm.FSM
	conn       Conn
	timer      stopper
	generation uint64
	enabled    bool
	mu         sync.Mutex
}

// NewChannel creates a control channel for the configured socket endpoint
func NewChannel(cfg *config.Config, dialer Dialer, mon monitor.Monitor, log logger.Logger) Channel {
	return newChannel(cfg, dialer, mon, log, afterFunc)
}

func newChannel(cfg *config.Config, dialer Dialer, mon monitor.Monitor, log logger.Logger, schedule scheduler) *channel {
	c := &channel{
		url:      cfg.SocketURL(),
		token:    cfg.Socket.Token,
		interval: cfg.Socket.Reconnect,
		dialer:   dialer,
		monitor:  mon,
		log:      log.WithComponent("CHANNEL"),
		schedule: schedule,
		ctx:      context.Background(),
		enabled:  cfg.Socket.Enabled,
	}

	c.fsm = fsm.NewFSM(
		Disconnected,
		fsm.Events{
			{Name: Connect, Src: []string{Disconnected}, Dst: Connecting},
			{Name: Retry, Src: []string{Reconnecting}, Dst: Connecting},
			{Name: Opened, Src: []string{Connecting}, Dst: Open},
			{Name: ClosedClean, Src: []string{Connecting, Open}, Dst: Disconnected},
			{Name: ClosedUnclean, Src: []string{Connecting, Open}, Dst: Reconnecting},
			{Name: Disable, Src: []string{Disconnected, Connecting, Open, Reconnecting}, Dst: Disconnected},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				c.log.Debug().Msgf("STATE %s → %s (trigger: %s)", e.Src, e.Dst, e.Event)
			},
		},
	)

	return c
}

// Start binds the controller that receives commands and connects when the channel is enabled
func (c *channel) Start(ctx context.Context, controller Controller) {
	c.mu.Lock()
	c.ctx = ctx
	c.controller = controller
	c.mu.Unlock()

	c.Connect()
}

// Connect dials the endpoint unless a socket is already connecting or open
func (c *channel) Connect() {
	c.mu.Lock()

	if !c.enabled || c.controller == nil {
		c.mu.Unlock()
		return
	}

	event := Connect

	switch c.fsm.Current() {
	case Connecting, Open:
		c.mu.Unlock()
		return
	case Reconnecting:
		event = Retry

		c.stopTimer()
	}

	c.transition(event)
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	c.report(logs.LevelInfo, fmt.Sprintf("Attempting control channel connection to %s", c.url))

	go c.dial(gen)
}

// Enable allows the channel to connect and connects immediately
func (c *channel) Enable() {
	c.mu.Lock()
	c.enabled = true
	c.mu.Unlock()

	c.Connect()
}

// Disable closes any open socket with a normal closure and cancels pending reconnects
func (c *channel) Disable() {
	c.mu.Lock()
	c.enabled = false
	c.stopTimer()
	conn := c.conn
	c.conn = nil
	c.generation++
	c.transition(Disable)
	c.mu.Unlock()

	if conn != nil {
		if err := conn.Close(websocket.CloseNormalClosure, disableReason); err != nil {
			c.log.Debug().Err(err).Msg("Failed to close socket")
		}
	}
}

// Enabled reports whether the channel may hold a socket
func (c *channel) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.enabled
}

// IsOpen reports whether a socket is open
func (c *channel) IsOpen() bool {
	return c.State() == Open
}

// State returns the current connection state
func (c *channel) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fsm.Current()
}

// Send writes one entry to the open socket in wire format
func (c *channel) Send(entry logs.Entry) error {
	return c.sendFrame(logs.NewLogMessage(entry))
}

func (c *channel) sendFrame(frame any) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToMarshalFrame, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.fsm.Current() != Open {
		return errors.ErrChannelNotOpen
	}

	if err := c.conn.WriteMessage(data); err != nil {
		c.log.Warn().Err(err).Msg("Failed to send frame")
		return err
	}

	return nil
}

func (c *channel) dial(gen uint64) {
	conn, err := c.dialer.Dial(c.context(), c.url, c.token)

	c.mu.Lock()

	if gen != c.generation || !c.enabled {
		c.mu.Unlock()

		if conn != nil {
			_ = conn.Close(websocket.CloseNormalClosure, disableReason)
		}

		return
	}

	if err != nil {
		c.transition(ClosedUnclean)
		scheduled := c.scheduleReconnect()
		c.mu.Unlock()

		c.log.Warn().Err(err).Msgf("Failed to connect to '%s'", c.url)
		c.report(logs.LevelError, fmt.Sprintf("Control channel connection to %s failed", c.url))
		c.reportRetry(scheduled)

		return
	}

	c.stopTimer()
	c.conn = conn
	c.transition(Opened)
	c.mu.Unlock()

	c.log.Info().Msgf("Connected to '%s'", c.url)
	c.report(logs.LevelInfo, "Control channel connection established.")

	c.read(gen, conn)
}

func (c *channel) read(gen uint64, conn Conn) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			c.closed(gen, err)
			return
		}

		c.dispatch(data)
	}
}

func (c *channel) closed(gen uint64, err error) {
	c.mu.Lock()

	if state := c.fsm.Current(); gen != c.generation || (state != Open && state != Connecting) {
		c.mu.Unlock()
		return
	}

	c.conn = nil
	scheduled := false

	if IsCleanClose(err) || !c.enabled {
		c.transition(ClosedClean)
	} else {
		c.transition(ClosedUnclean)
		scheduled = c.scheduleReconnect()
	}

	c.mu.Unlock()

	c.log.Info().Err(err).Msg("Socket closed")
	c.report(logs.LevelWarn, fmt.Sprintf("Control channel connection closed. Code: %d", CloseCode(err)))
	c.reportRetry(scheduled)
}

// scheduleReconnect arms the single reconnect timer; callers hold mu
func (c *channel) scheduleReconnect() bool {
	if !c.enabled || c.timer != nil {
		return false
	}

	c.timer = c.schedule(c.interval, c.reconnect)

	return true
}

func (c *channel) reconnect() {
	c.mu.Lock()
	c.timer = nil
	retry := c.enabled && c.fsm.Current() == Reconnecting
	c.mu.Unlock()

	if retry {
		c.Connect()
	}
}

// stopTimer cancels a pending reconnect; callers hold mu
func (c *channel) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// transition fires an FSM event; callers hold mu
func (c *channel) transition(event string) {
	err := c.fsm.Event(context.Background(), event)
	if err == nil {
		return
	}

	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return
	}

	c.log.Error().Err(err).Msgf("Failed to transition on '%s'", event)
}

func (c *channel) reportRetry(scheduled bool) {
	if scheduled {
		c.report(logs.LevelInfo, fmt.Sprintf("Attempting control channel reconnect in %s...", c.interval))
	}
}

func (c *channel) report(level logs.Level, text string) {
	c.mu.Lock()
	controller := c.controller
	c.mu.Unlock()

	if controller != nil {
		controller.Emit(level, text)
	}
}

func (c *channel) context() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ctx
}
