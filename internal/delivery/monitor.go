package delivery

import (
	"context"
	"net"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ConnectivityMsg is sent into the event loop whenever the connectivity
// state flips. An offline→online transition triggers the automatic retry
// sweep.
type ConnectivityMsg struct {
	Online bool
}

// Monitor tracks whether the sink is reachable. It probes in a background
// goroutine and publishes state transitions on a channel the event loop
// drains; the rest of the program asks Online() before attempting a
// delivery.
type Monitor struct {
	mu          sync.Mutex
	online      bool
	running     bool
	probe       func(ctx context.Context) bool
	interval    time.Duration
	transitions chan bool
	done        chan struct{}
}

// NewMonitor creates a connectivity monitor probing the given TCP address
// (host:port of the sink) at the given interval. The state starts online;
// the first failed probe flips it.
func NewMonitor(address string, interval time.Duration) *Monitor {
	m := &Monitor{
		online:      true,
		interval:    interval,
		transitions: make(chan bool, 4),
		done:        make(chan struct{}),
	}
	m.probe = func(ctx context.Context) bool {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", address)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}
	return m
}

// Start launches the probe loop.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	go m.probeLoop()
}

// Stop terminates the probe loop and closes the transitions channel.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.running = false
	close(m.done)
}

// Online reports the last observed connectivity state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// WaitCmd blocks until the next connectivity transition and hands it to
// the event loop. The app re-issues it after every ConnectivityMsg.
func (m *Monitor) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case v := <-m.transitions:
			return ConnectivityMsg{Online: v}
		case <-m.done:
			return nil
		}
	}
}

func (m *Monitor) probeLoop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.check()
		}
	}
}

// check runs one probe and records the result, publishing a transition
// when the state changed.
func (m *Monitor) check() {
	ctx, cancel := context.WithTimeout(context.Background(), m.interval)
	online := m.probe(ctx)
	cancel()

	m.mu.Lock()
	changed := online != m.online
	m.online = online
	m.mu.Unlock()

	if changed {
		select {
		case m.transitions <- online:
		default:
			// Drop when the loop is behind; state is still queryable.
		}
	}
}
