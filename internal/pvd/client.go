package pvd

import (
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-physlab/internal/physics"
)

const writeTimeout = 2 * time.Second

// Client streams simulation events to a viewer.
// It implements physics.RemoteDebugger.
type Client struct {
	version int
	dialer  *websocket.Dialer

	mu      sync.Mutex
	conn    *websocket.Conn
	mask    physics.EventMask
	simType string
}

// NewClient creates a disconnected client announcing the given SDK version.
func NewClient(version int) *Client {
	return &Client{
		version: version,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 3 * time.Second,
		},
		simType: physics.SimSoftware.String(),
	}
}

// SetSimType records the sim type announced in the next hello.
func (c *Client) SetSimType(t physics.SimType) {
	c.mu.Lock()
	c.simType = t.String()
	c.mu.Unlock()
}

// Connect dials ws://host:port/pvd and sends a hello.
func (c *Client) Connect(host string, port int, mask physics.EventMask) error {
	url := "ws://" + net.JoinHostPort(host, strconv.Itoa(port)) + Path
	conn, _, err := c.dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("pvd: dial %s: %w", url, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Replace any previous link
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = conn
	c.mask = mask

	if err := c.writeLocked(MsgHello, Hello{Version: c.version, SimType: c.simType}); err != nil {
		return err
	}
	return nil
}

// Connected reports whether the link is up.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Disconnect sends a bye and closes the link. Safe to call when not connected.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}
	_ = c.writeLocked(MsgBye, Bye{Reason: "disconnect"})
	if c.conn != nil {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeTimeout))
		_ = c.conn.Close()
		c.conn = nil
	}
}

// SendFrame publishes a frame if connected and the mask allows frames.
// A write failure drops the link.
func (c *Client) SendFrame(f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil || c.mask&physics.EventFrames == 0 {
		return nil
	}
	return c.writeLocked(MsgFrame, f)
}

func (c *Client) writeLocked(t string, payload any) error {
	b, err := Encode(t, payload)
	if err != nil {
		return err
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		_ = c.conn.Close()
		c.conn = nil
		return fmt.Errorf("pvd: write %s: %w", t, err)
	}
	return nil
}

var _ physics.RemoteDebugger = (*Client)(nil)
