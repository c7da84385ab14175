package sync

import (
	stdsync "sync"
)

// Notifier broadcasts list-invalidation signals per entity kind. Entity
// stores fire a signal after every local mutation so observers (the CLI's
// watch loop, a UI) re-read the list without waiting for remote
// confirmation. Signals are best-effort level triggers: a subscriber that
// is behind sees one pending signal, not a backlog.
type Notifier struct {
	mu     stdsync.Mutex
	nextID int
	subs   map[EntityKind]map[int]chan struct{}
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[EntityKind]map[int]chan struct{})}
}

// Subscribe returns a channel that receives a signal whenever the kind's
// list is invalidated, plus an unsubscribe function. The channel has a
// one-element buffer; sends never block.
func (n *Notifier) Subscribe(kind EntityKind) (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[kind] == nil {
		n.subs[kind] = make(map[int]chan struct{})
	}

	id := n.nextID
	n.nextID++

	ch := make(chan struct{}, 1)
	n.subs[kind][id] = ch

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[kind], id)
	}
}

// Invalidate signals all subscribers of the kind.
func (n *Notifier) Invalidate(kind EntityKind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs[kind] {
		select {
		case ch <- struct{}{}:
		default: // subscriber already has a pending signal
		}
	}
}
