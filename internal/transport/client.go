package transport

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// Client owns the single outbound stream connection to the TUI consumer.
// It is not safe for concurrent use; the bridge drives it from one goroutine.
type Client struct {
	hosts            []string
	port             int
	dialTimeout      time.Duration
	reconnectTimeout time.Duration
	initialRounds    int
	retryDelay       time.Duration

	conn      net.Conn
	connected bool
	lastHost  string // last successfully dialed host, tried first on reconnect
	dead      bool   // set after a failed reconnect-and-resend; no further attempts

	debug io.Writer // nil disables diagnostics
}

// Options tunes connection behavior. Zero values fall back to sane bounds.
type Options struct {
	DialTimeout      time.Duration
	ReconnectTimeout time.Duration
	InitialRounds    int
	RetryDelay       time.Duration
	Debug            io.Writer
}

// NewClient creates a Client for the given candidate hosts and fixed port.
func NewClient(hosts []string, port int, opts Options) *Client {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = time.Second
	}
	if opts.ReconnectTimeout <= 0 {
		opts.ReconnectTimeout = 500 * time.Millisecond
	}
	if opts.InitialRounds <= 0 {
		opts.InitialRounds = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 200 * time.Millisecond
	}
	return &Client{
		hosts:            hosts,
		port:             port,
		dialTimeout:      opts.DialTimeout,
		reconnectTimeout: opts.ReconnectTimeout,
		initialRounds:    opts.InitialRounds,
		retryDelay:       opts.RetryDelay,
		debug:            opts.Debug,
	}
}

// Connected reports whether the connection is currently usable.
func (c *Client) Connected() bool {
	return c.connected
}

// Connect makes one bounded dial attempt against a single host. On failure
// the client keeps no partial state.
func (c *Client) Connect(host string, timeout time.Duration) error {
	addr := net.JoinHostPort(host, strconv.Itoa(c.port))
	c.debugf("dialing %s (timeout %v)", addr, timeout)

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		c.connected = false
		c.debugf("dial %s failed: %v", addr, err)
		return fmt.Errorf("connect %s: %w", addr, err)
	}

	c.conn = conn
	c.connected = true
	c.lastHost = host
	c.debugf("connected to %s", addr)
	return nil
}

// ConnectAny runs the front-loaded initial retry schedule: each host in
// priority order, up to the configured number of rounds per host with an
// increasing inter-round delay. The consumer process may start slightly
// after the test run does, hence the budget. Returns true on success.
func (c *Client) ConnectAny() bool {
	for _, host := range c.hosts {
		for round := 0; round < c.initialRounds; round++ {
			if round > 0 {
				time.Sleep(time.Duration(round) * c.retryDelay)
			}
			if err := c.Connect(host, c.dialTimeout); err == nil {
				return true
			}
		}
	}
	c.debugf("all connection attempts failed")
	return false
}

// EnsureConnected is a no-op when connected; otherwise it makes exactly one
// short-timeout connect pass (last-good host first, then the full list).
func (c *Client) EnsureConnected() bool {
	if c.connected {
		return true
	}
	if c.dead {
		return false
	}
	for _, host := range c.candidateHosts() {
		if err := c.Connect(host, c.reconnectTimeout); err == nil {
			return true
		}
	}
	return false
}

// Send writes one record to the consumer. A record is expected to carry its
// own trailing delimiter (see protocol.Encode). On a mid-stream write
// failure it makes exactly one fresh connect-and-resend attempt; if that
// also fails the client goes permanently disconnected for the session and
// the error is returned so the caller can latch fallback mode.
func (c *Client) Send(record []byte) error {
	if c.dead {
		return fmt.Errorf("send: connection abandoned for this session")
	}
	if !c.EnsureConnected() {
		return fmt.Errorf("send: no consumer reachable")
	}

	if err := c.write(record); err == nil {
		return nil
	}

	// Broken pipe or reset: one reconnect-and-resend, then give up.
	c.drop()
	c.debugf("write failed, attempting one reconnect")
	for _, host := range c.candidateHosts() {
		if c.Connect(host, c.reconnectTimeout) == nil {
			break
		}
	}
	if !c.connected {
		c.dead = true
		return fmt.Errorf("send: reconnect failed")
	}
	if err := c.write(record); err != nil {
		c.drop()
		c.dead = true
		return fmt.Errorf("send: resend failed: %w", err)
	}
	return nil
}

// Close shuts the connection down best-effort. Errors are swallowed.
func (c *Client) Close() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = nil
	c.connected = false
}

func (c *Client) write(record []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.dialTimeout))
	_, err := c.conn.Write(record)
	return err
}

// candidateHosts puts the last successfully dialed host first.
func (c *Client) candidateHosts() []string {
	if c.lastHost == "" {
		return c.hosts
	}
	hosts := []string{c.lastHost}
	for _, h := range c.hosts {
		if h != c.lastHost {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func (c *Client) drop() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.connected = false
}

func (c *Client) debugf(format string, args ...any) {
	if c.debug != nil {
		fmt.Fprintf(c.debug, "[bridge] "+format+"\n", args...)
	}
}
