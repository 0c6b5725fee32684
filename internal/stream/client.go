// Package stream implements the client side of the pointer bridge protocol:
// a single TCP connection to a local peer, a one-line handshake and
// fire-and-forget event lines.
//
// A Client owns its connection from one goroutine. Connect, Send and
// Disconnect only enqueue work for that goroutine and return immediately, so
// the caller (the UI loop) never blocks on the network. State changes are
// published on Updates.
//
// There is no automatic reconnection. After a failure the client stays
// disconnected until Connect is called again.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"time"
)

const (
	// DefaultAddr is the peer's well-known local endpoint.
	DefaultAddr = "localhost:28200"

	// DefaultHandshakeTimeout bounds the wait for the handshake line.
	DefaultHandshakeTimeout = 5 * time.Second

	inboxSize   = 256
	updatesSize = 16
)

// Options configures a Client.
type Options struct {
	// Addr is the host:port of the peer. Defaults to DefaultAddr.
	Addr string

	// HandshakeTimeout bounds dialing plus waiting for the handshake line.
	// Defaults to DefaultHandshakeTimeout.
	HandshakeTimeout time.Duration

	// WriteTimeout bounds a single event write. Defaults to HandshakeTimeout.
	WriteTimeout time.Duration

	// Dial opens the connection. Defaults to net.Dialer.DialContext.
	Dial func(ctx context.Context, network, addr string) (net.Conn, error)
}

func (o *Options) setDefaults() {
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.HandshakeTimeout <= 0 {
		o.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = o.HandshakeTimeout
	}
	if o.Dial == nil {
		var d net.Dialer
		o.Dial = d.DialContext
	}
}

type opKind int

const (
	opConnect opKind = iota
	opSend
	opDisconnect
	opSync
)

type op struct {
	kind opKind
	line string
	done chan struct{}
}

// Client is a streaming client. Its methods are safe for concurrent use.
type Client struct {
	opts Options

	inbox   chan op
	updates chan State

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once

	mu    sync.Mutex
	state State

	// owned by the run goroutine
	conn     net.Conn
	stopConn func() bool
}

// New returns a disconnected Client and starts its owner goroutine.
func New(opts Options) *Client {
	opts.setDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		opts:    opts,
		inbox:   make(chan op, inboxSize),
		updates: make(chan State, updatesSize),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		state:   Disconnected(""),
	}
	go c.run()
	return c
}

// Addr returns the peer address.
func (c *Client) Addr() string { return c.opts.Addr }

// State returns the most recent state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates delivers state transitions. When the reader falls behind only the
// newest states are kept. The channel is closed by Close.
func (c *Client) Updates() <-chan State { return c.updates }

// Connect drops any current connection and opens a new one.
func (c *Client) Connect() { c.submit(op{kind: opConnect}, true) }

// Send writes line, plus a line terminator, if the client is connected. A
// line sent while disconnected is dropped. A failed write moves the client to
// Disconnected.
func (c *Client) Send(line string) { c.submit(op{kind: opSend, line: line}, false) }

// Disconnect closes the connection.
func (c *Client) Disconnect() { c.submit(op{kind: opDisconnect}, true) }

// Close stops the client and closes the connection. Work still queued is
// discarded.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
		<-c.done
		if c.State().Status != StatusDisconnected {
			c.setState(Disconnected(ReasonDisconnected))
		}
		close(c.updates)
	})
	return nil
}

func (c *Client) submit(o op, mustDeliver bool) bool {
	if c.ctx.Err() != nil {
		return false
	}
	select {
	case c.inbox <- o:
		return true
	default:
	}
	if !mustDeliver {
		log.Printf("Send queue full, dropping %q", o.line)
		return false
	}
	go func() {
		select {
		case c.inbox <- o:
		case <-c.ctx.Done():
		}
	}()
	return true
}

// sync waits until everything queued before it has been handled.
func (c *Client) sync() error {
	o := op{kind: opSync, done: make(chan struct{})}
	select {
	case c.inbox <- o:
	case <-c.done:
		return ErrClosed
	}
	select {
	case <-o.done:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

func (c *Client) run() {
	defer close(c.done)
	for {
		select {
		case <-c.ctx.Done():
			c.closeConn()
			return
		case o := <-c.inbox:
			c.handle(o)
		}
	}
}

func (c *Client) handle(o op) {
	switch o.kind {
	case opConnect:
		c.connect()
	case opSend:
		c.send(o.line)
	case opDisconnect:
		c.disconnect()
	case opSync:
		close(o.done)
	}
}

func (c *Client) connect() {
	c.closeConn()
	c.setState(Connecting())

	conn, peer, err := c.open()
	if err != nil {
		log.Printf("Couldn't connect to %s: %v", c.opts.Addr, err)
		c.setState(Disconnected(ReasonConnectFailed))
		return
	}
	log.Printf("Connected to %s at %s", peer, c.opts.Addr)

	c.conn = conn
	c.stopConn = context.AfterFunc(c.ctx, func() { conn.Close() })
	c.setState(Connected(peer))
}

// open dials the peer and reads the handshake within the handshake timeout.
func (c *Client) open() (net.Conn, string, error) {
	ctx, cancel := context.WithTimeout(c.ctx, c.opts.HandshakeTimeout)
	defer cancel()

	conn, err := c.opts.Dial(ctx, "tcp", c.opts.Addr)
	if err != nil {
		return nil, "", fmt.Errorf("dial: %w", err)
	}
	// unblocks the read below when the timeout fires or the client closes
	stop := context.AfterFunc(ctx, func() { conn.Close() })

	line, err := bufio.NewReader(conn).ReadString('\n')
	if !stop() {
		conn.Close()
		return nil, "", fmt.Errorf("%w: no line within %v", ErrHandshake, c.opts.HandshakeTimeout)
	}
	if err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	peer, err := ParseHandshake(line)
	if err != nil {
		conn.Close()
		return nil, "", err
	}
	return conn, peer, nil
}

func (c *Client) send(line string) {
	if c.State().Status != StatusConnected {
		return
	}
	if err := c.write(line); err != nil {
		log.Printf("Couldn't send %q: %v", line, err)
		c.closeConn()
		c.setState(Disconnected(ReasonDisconnected))
	}
}

func (c *Client) write(line string) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout)); err != nil {
		return err
	}
	_, err := io.WriteString(c.conn, line+"\n")
	return err
}

func (c *Client) disconnect() {
	c.closeConn()
	if c.State().Status != StatusDisconnected {
		log.Printf("Disconnected from %s", c.opts.Addr)
		c.setState(Disconnected(ReasonDisconnected))
	}
}

func (c *Client) closeConn() {
	if c.conn == nil {
		return
	}
	if c.stopConn != nil {
		c.stopConn()
		c.stopConn = nil
	}
	c.conn.Close()
	c.conn = nil
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()

	select {
	case c.updates <- s:
		return
	default:
	}
	// reader fell behind: drop the oldest state
	select {
	case <-c.updates:
	default:
	}
	select {
	case c.updates <- s:
	default:
	}
}
