package sync

import (
	"context"
	"log/slog"
	stdsync "sync"
	"time"
)

// Status is a snapshot of the connectivity state.
type Status struct {
	Online  bool
	Syncing bool
}

// Monitor owns the connectivity and syncing flags as an explicit state
// object with observer-based change notification, rather than ambient
// globals. Created at app start, closed at shutdown.
type Monitor struct {
	mu      stdsync.Mutex
	online  bool
	syncing bool
	nextID  int
	subs    map[int]func(Status)
	closed  bool

	logger *slog.Logger
}

// NewMonitor creates a Monitor. The initial state is offline and not
// syncing; the prober (or a caller) establishes the real state.
func NewMonitor(logger *slog.Logger) *Monitor {
	return &Monitor{
		subs:   make(map[int]func(Status)),
		logger: logger,
	}
}

// Status returns the current state.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Status{Online: m.online, Syncing: m.syncing}
}

// SetOnline records a connectivity change. Subscribers are notified only
// on actual transitions, outside the lock.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()

	if m.closed || m.online == online {
		m.mu.Unlock()
		return
	}

	m.online = online
	status := Status{Online: m.online, Syncing: m.syncing}
	subs := m.snapshotSubs()
	m.mu.Unlock()

	m.logger.Info("connectivity changed", slog.Bool("online", online))

	for _, fn := range subs {
		fn(status)
	}
}

// setSyncing flips the syncing flag. Only the queue processor calls this,
// while a drain pass is in flight.
func (m *Monitor) setSyncing(syncing bool) {
	m.mu.Lock()

	if m.closed || m.syncing == syncing {
		m.mu.Unlock()
		return
	}

	m.syncing = syncing
	status := Status{Online: m.online, Syncing: m.syncing}
	subs := m.snapshotSubs()
	m.mu.Unlock()

	for _, fn := range subs {
		fn(status)
	}
}

// Subscribe registers a callback invoked on every state transition. The
// returned function unsubscribes. Callbacks run synchronously on the
// goroutine that triggered the transition and must not block.
func (m *Monitor) Subscribe(fn func(Status)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Close drops all subscribers and freezes the state. Further SetOnline
// calls are no-ops, so in-flight probes cannot fire callbacks during
// teardown.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.subs = make(map[int]func(Status))
}

// snapshotSubs copies the subscriber list for iteration outside the lock.
// Caller must hold mu.
func (m *Monitor) snapshotSubs() []func(Status) {
	subs := make([]func(Status), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}

	return subs
}

// Pinger checks server reachability. Satisfied by *api.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober drives the Monitor from periodic reachability probes. There is
// no portable connectivity-change event on a server platform, so polling
// the API's health endpoint stands in for the browser's online/offline
// events.
type Prober struct {
	pinger   Pinger
	monitor  *Monitor
	interval time.Duration
	logger   *slog.Logger
}

// NewProber creates a Prober probing at the given interval.
func NewProber(pinger Pinger, monitor *Monitor, interval time.Duration, logger *slog.Logger) *Prober {
	return &Prober{pinger: pinger, monitor: monitor, interval: interval, logger: logger}
}

// Run probes immediately and then at every interval tick, updating the
// monitor. Blocks until ctx is canceled.
func (p *Prober) Run(ctx context.Context) error {
	p.probe(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

func (p *Prober) probe(ctx context.Context) {
	err := p.pinger.Ping(ctx)
	if err != nil && ctx.Err() != nil {
		return // shutting down, not a connectivity verdict
	}

	if err != nil {
		p.logger.Debug("probe failed", slog.String("error", err.Error()))
	}

	p.monitor.SetOnline(err == nil)
}
