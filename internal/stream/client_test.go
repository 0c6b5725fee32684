package stream

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"
)

// fakePeer is a local TCP server standing in for the remote process.
type fakePeer struct {
	ln    net.Listener
	hello string

	mu     sync.Mutex
	conns  []net.Conn
	active int

	lines chan string
}

func newFakePeer(t *testing.T, hello string) *fakePeer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	p := &fakePeer{ln: ln, hello: hello, lines: make(chan string, 64)}
	go p.acceptLoop()
	t.Cleanup(func() {
		ln.Close()
		p.closeAll()
	})
	return p
}

func (p *fakePeer) addr() string { return p.ln.Addr().String() }

func (p *fakePeer) acceptLoop() {
	for {
		conn, err := p.ln.Accept()
		if err != nil {
			return
		}
		p.mu.Lock()
		p.conns = append(p.conns, conn)
		p.active++
		p.mu.Unlock()

		if p.hello != "" {
			conn.Write([]byte(p.hello))
		}
		go p.readLoop(conn)
	}
}

func (p *fakePeer) readLoop(conn net.Conn) {
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		p.lines <- sc.Text()
	}
	p.mu.Lock()
	p.active--
	p.mu.Unlock()
}

func (p *fakePeer) activeConns() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *fakePeer) closeAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.conns {
		c.Close()
	}
}

func newTestClient(t *testing.T, addr string, timeout time.Duration) *Client {
	t.Helper()
	c := New(Options{Addr: addr, HandshakeTimeout: timeout})
	t.Cleanup(func() { c.Close() })
	return c
}

// waitFor reads updates until one matches want or the deadline passes.
func waitFor(t *testing.T, c *Client, want func(State) bool) State {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case s, ok := <-c.Updates():
			if !ok {
				t.Fatal("updates channel closed")
			}
			if want(s) {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for state, last %v", c.State())
		}
	}
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func isConnected(s State) bool    { return s.Status == StatusConnected }
func isDisconnected(s State) bool { return s.Status == StatusDisconnected }

func TestConnectHandshake(t *testing.T) {
	p := newFakePeer(t, "HOSTNAME:desk-pc\n")
	c := newTestClient(t, p.addr(), time.Second)

	c.Connect()
	first := waitFor(t, c, func(State) bool { return true })
	if first.Status != StatusConnecting {
		t.Errorf("first update = %v, want connecting", first)
	}
	s := waitFor(t, c, isConnected)
	if s.Peer != "desk-pc" {
		t.Errorf("Peer = %q, want %q", s.Peer, "desk-pc")
	}
	if got := s.String(); got != "Connected to desk-pc" {
		t.Errorf("String() = %q", got)
	}
}

func TestConnectTwiceKeepsOneConnection(t *testing.T) {
	p := newFakePeer(t, "HOSTNAME:desk-pc\n")
	c := newTestClient(t, p.addr(), time.Second)

	c.Connect()
	c.Connect()
	waitFor(t, c, isConnected)
	waitFor(t, c, isConnected)

	eventually(t, "one active connection", func() bool { return p.activeConns() == 1 })
	if err := c.sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got := c.State(); !isConnected(got) {
		t.Errorf("State() = %v, want connected", got)
	}
}

func TestHandshakeTimeout(t *testing.T) {
	p := newFakePeer(t, "")
	c := newTestClient(t, p.addr(), 150*time.Millisecond)

	start := time.Now()
	c.Connect()
	s := waitFor(t, c, isDisconnected)
	if s.Reason != ReasonConnectFailed {
		t.Errorf("Reason = %q, want %q", s.Reason, ReasonConnectFailed)
	}
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("failed after %v, before the handshake timeout", elapsed)
	}
	eventually(t, "socket closed", func() bool { return p.activeConns() == 0 })
}

func TestMalformedHandshake(t *testing.T) {
	tests := []struct {
		name  string
		hello string
	}{
		{"wrong prefix", "HELLO:desk-pc\n"},
		{"empty name", "HOSTNAME:\n"},
		{"no terminator", "HOSTNAME:desk-pc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakePeer(t, tt.hello)
			c := newTestClient(t, p.addr(), 200*time.Millisecond)
			c.Connect()
			s := waitFor(t, c, isDisconnected)
			if s.Reason != ReasonConnectFailed {
				t.Errorf("Reason = %q, want %q", s.Reason, ReasonConnectFailed)
			}
			eventually(t, "socket closed", func() bool { return p.activeConns() == 0 })
		})
	}
}

func TestConnectRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	c := newTestClient(t, addr, time.Second)
	c.Connect()
	s := waitFor(t, c, isDisconnected)
	if s.Reason != ReasonConnectFailed {
		t.Errorf("Reason = %q, want %q", s.Reason, ReasonConnectFailed)
	}
}

func TestSendDeliversLines(t *testing.T) {
	p := newFakePeer(t, "HOSTNAME:desk-pc\n")
	c := newTestClient(t, p.addr(), time.Second)
	c.Connect()
	waitFor(t, c, isConnected)

	want := []string{"DOWN:0.1000,0.1000", "MOVE:0.2000,0.1500", "UP:0.2500,0.2000"}
	for _, l := range want {
		c.Send(l)
	}
	for i, w := range want {
		select {
		case got := <-p.lines:
			if got != w {
				t.Errorf("line %d = %q, want %q", i, got, w)
			}
		case <-time.After(3 * time.Second):
			t.Fatalf("line %d not received", i)
		}
	}
}

func TestSendWhileDisconnectedIsNoop(t *testing.T) {
	c := newTestClient(t, "127.0.0.1:1", time.Second)
	before := c.State()

	c.Send("DOWN:0.1,0.1")
	if err := c.sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got := c.State(); got != before {
		t.Errorf("State() = %v, want unchanged %v", got, before)
	}
	select {
	case s := <-c.Updates():
		t.Errorf("unexpected update %v", s)
	default:
	}
}

func TestSendAfterPeerGoneDisconnects(t *testing.T) {
	p := newFakePeer(t, "HOSTNAME:desk-pc\n")
	c := newTestClient(t, p.addr(), time.Second)
	c.Connect()
	waitFor(t, c, isConnected)

	p.closeAll()
	eventually(t, "write failure", func() bool {
		c.Send("MOVE:0.5000,0.5000")
		c.sync()
		return isDisconnected(c.State())
	})
	if got := c.State().Reason; got != ReasonDisconnected {
		t.Errorf("Reason = %q, want %q", got, ReasonDisconnected)
	}
}

func TestDisconnect(t *testing.T) {
	p := newFakePeer(t, "HOSTNAME:desk-pc\n")
	c := newTestClient(t, p.addr(), time.Second)
	c.Connect()
	waitFor(t, c, isConnected)

	c.Disconnect()
	waitFor(t, c, isDisconnected)
	eventually(t, "socket closed", func() bool { return p.activeConns() == 0 })
}

func TestReconnectAfterFailure(t *testing.T) {
	p := newFakePeer(t, "HOSTNAME:desk-pc\n")
	c := newTestClient(t, p.addr(), time.Second)
	c.Connect()
	waitFor(t, c, isConnected)
	c.Disconnect()
	waitFor(t, c, isDisconnected)

	c.Connect()
	waitFor(t, c, isConnected)
}

func TestClose(t *testing.T) {
	p := newFakePeer(t, "HOSTNAME:desk-pc\n")
	c := New(Options{Addr: p.addr(), HandshakeTimeout: time.Second})
	c.Connect()
	waitFor(t, c, isConnected)

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	eventually(t, "socket closed", func() bool { return p.activeConns() == 0 })
	if got := c.State(); !isDisconnected(got) {
		t.Errorf("State() = %v, want disconnected", got)
	}

	// work after Close is ignored
	c.Send("DOWN:0.1000,0.1000")
	c.Connect()
	if err := c.sync(); err != ErrClosed {
		t.Errorf("sync after Close = %v, want %v", err, ErrClosed)
	}
}

func TestCloseDuringHandshake(t *testing.T) {
	p := newFakePeer(t, "")
	c := New(Options{Addr: p.addr(), HandshakeTimeout: 10 * time.Second})
	c.Connect()
	waitFor(t, c, func(s State) bool { return s.Status == StatusConnecting })

	done := make(chan struct{})
	go func() {
		c.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Close blocked on the pending handshake")
	}
}
