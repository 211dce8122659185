// Package livesplit talks to a LiveSplit Server instance over TCP and
// exposes it as a splitter timer.
package livesplit

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/speedkit/minishsplit/splitter"
)

// DefaultAddr is where LiveSplit Server listens unless reconfigured.
const DefaultAddr = "localhost:16834"

const dialTimeout = 2 * time.Second

// A Client is a connection to LiveSplit Server. It implements
// splitter.Timer. Commands are best effort; a lost connection is logged
// and redialed on the next call rather than stopping the polling loop.
type Client struct {
	addr   string
	logger *log.Logger

	mu        sync.Mutex
	conn      net.Conn
	reader    *bufio.Reader
	lastState splitter.TimerState
}

// NewClient creates a client for the server at addr. An empty addr uses
// DefaultAddr.
func NewClient(addr string) *Client {
	if addr == "" {
		addr = DefaultAddr
	}

	return &Client{
		addr:   addr,
		logger: log.New(os.Stderr, "livesplit: ", 0),
	}
}

// Connect dials the server. Calling it up front lets the caller fail fast;
// the client also redials lazily on demand.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ensureConn()
}

// Close drops the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	c.reader = nil

	return err
}

// State queries the server for the current timer phase. If the server is
// unreachable the last known state is reported, so a transient outage
// cannot look like a run reset.
func (c *Client) State() splitter.TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, err := c.query("getcurrenttimerphase")
	if err != nil {
		return c.lastState
	}

	switch line {
	case "NotRunning":
		c.lastState = splitter.TimerNotRunning
	case "Running":
		c.lastState = splitter.TimerRunning
	case "Paused":
		c.lastState = splitter.TimerPaused
	case "Ended":
		c.lastState = splitter.TimerEnded
	default:
		c.logger.Printf("unknown timer phase %q", line)
	}

	return c.lastState
}

// Start starts the timer.
func (c *Client) Start() {
	c.command("starttimer")
}

// PauseGameTime tells the server that game time is set explicitly.
func (c *Client) PauseGameTime() {
	c.command("pausegametime")
}

// SetGameTime sets the elapsed in-game time.
func (c *Client) SetGameTime(t time.Duration) {
	c.command("setgametime " + formatTime(t))
}

// Split triggers a split.
func (c *Client) Split() {
	c.command("split")
}

// SetVariable sets an informational display variable.
func (c *Client) SetVariable(name, value string) {
	c.command(fmt.Sprintf("setcustomvariable %s %s", name, value))
}

// SetVariableInt sets an informational display variable from an integer.
func (c *Client) SetVariableInt(name string, value int) {
	c.SetVariable(name, strconv.Itoa(value))
}

func (c *Client) command(cmd string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(cmd); err != nil {
		c.logger.Printf("%s failed: %v", cmd, err)
	}
}

func (c *Client) send(cmd string) error {
	if err := c.ensureConn(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(c.conn, "%s\r\n", cmd)
	if err != nil {
		c.dropConn()
	}

	return err
}

func (c *Client) query(cmd string) (string, error) {
	if err := c.send(cmd); err != nil {
		return "", err
	}

	line, err := c.reader.ReadString('\n')
	if err != nil {
		c.dropConn()
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Client) ensureConn() error {
	if c.conn != nil {
		return nil
	}

	conn, err := net.DialTimeout("tcp", c.addr, dialTimeout)
	if err != nil {
		return err
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)

	return nil
}

func (c *Client) dropConn() {
	if c.conn != nil {
		c.conn.Close()
	}

	c.conn = nil
	c.reader = nil
}

// formatTime renders a duration the way LiveSplit parses time spans, with
// centisecond precision.
func formatTime(t time.Duration) string {
	if t < 0 {
		t = 0
	}

	hours := t / time.Hour
	t -= hours * time.Hour
	minutes := t / time.Minute
	t -= minutes * time.Minute
	seconds := t / time.Second
	t -= seconds * time.Second
	centis := t / (10 * time.Millisecond)

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}
