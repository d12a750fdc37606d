//go:generate mockgen -source=transport.go -destination=transport_mock.go -package=remote
package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"screenlog/internal/app/errors"
	"screenlog/internal/config"
)

// Conn is one open control channel socket
type Conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close(code int, reason string) error
}

// Dialer opens control channel sockets
type Dialer interface {
	Dial(ctx context.Context, url, token string) (Conn, error)
}

type dialer struct {
	ws        *websocket.Dialer
	writeWait time.Duration
}

// NewDialer creates a websocket dialer
func NewDialer() Dialer {
	return &dialer{
		ws: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: config.SocketDialTimeout,
		},
		writeWait: config.SocketWriteWait,
	}
}

// Dial connects to url, sending token as a bearer credential when set
func (d *dialer) Dial(ctx context.Context, url, token string) (Conn, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := d.ws.DialContext(ctx, url, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errors.ErrFailedToConnectSocket, url, err)
	}

	return NewConn(conn, d.writeWait), nil
}

// wsConn adapts a gorilla connection to Conn
type wsConn struct {
	conn      *websocket.Conn
	writeWait time.Duration
}

// NewConn wraps an established websocket connection
func NewConn(conn *websocket.Conn, writeWait time.Duration) Conn {
	return &wsConn{conn: conn, writeWait: writeWait}
}

// ReadMessage blocks until the next data frame arrives
func (c *wsConn) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()

	return data, err
}

// WriteMessage sends data as one text frame
func (c *wsConn) WriteMessage(data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteSocket, err)
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteSocket, err)
	}

	return nil
}

// Close sends a close frame with code and reason, then closes the socket
func (c *wsConn) Close(code int, reason string) error {
	deadline := time.Now().Add(c.writeWait)
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)

	return c.conn.Close()
}

// CloseCode extracts the close code from a read error; anything but a close frame is abnormal
func CloseCode(err error) int {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code
	}

	return websocket.CloseAbnormalClosure
}

// IsCleanClose reports whether err is a normal closure
func IsCleanClose(err error) bool {
	return CloseCode(err) == websocket.CloseNormalClosure
}
