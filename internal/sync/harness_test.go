package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	stdsync "sync"
	"testing"
	"time"

	"github.com/learnlog/learnlog/internal/model"
	"github.com/learnlog/learnlog/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGateway is an in-memory Gateway that records every call in order
// and can be made to fail selectively via failFunc.
type fakeGateway struct {
	mu       stdsync.Mutex
	calls    []string
	journals map[string]model.Journal
	projects map[string]model.Project

	// failFunc, when non-nil, is consulted with the call descriptor
	// (e.g. "CREATE_JOURNAL j1") before each call; a non-nil result
	// fails that call.
	failFunc func(call string) error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		journals: make(map[string]model.Journal),
		projects: make(map[string]model.Project),
	}
}

// failAll makes every remote call fail, simulating an unreachable server.
func (g *fakeGateway) failAll() {
	g.setFailFunc(func(string) error { return fmt.Errorf("gateway: connection refused") })
}

func (g *fakeGateway) setFailFunc(fn func(call string) error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failFunc = fn
}

func (g *fakeGateway) recordedCalls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]string(nil), g.calls...)
}

// record logs the call and returns the configured failure, if any.
func (g *fakeGateway) record(call string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failFunc != nil {
		if err := g.failFunc(call); err != nil {
			return err
		}
	}

	g.calls = append(g.calls, call)

	return nil
}

func (g *fakeGateway) ListJournals(_ context.Context) ([]model.Journal, error) {
	if err := g.record("LIST_JOURNALS"); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]model.Journal, 0, len(g.journals))
	for _, j := range g.journals {
		out = append(out, j)
	}

	return out, nil
}

func (g *fakeGateway) CreateJournal(_ context.Context, j model.Journal) (*model.Journal, error) {
	if err := g.record("CREATE_JOURNAL " + j.ID); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.journals[j.ID] = j

	return &j, nil
}

func (g *fakeGateway) UpdateJournal(_ context.Context, id string, patch model.JournalPatch) (*model.Journal, error) {
	if err := g.record("UPDATE_JOURNAL " + id); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	j := patch.Apply(g.journals[id])
	j.ID = id
	g.journals[id] = j

	return &j, nil
}

func (g *fakeGateway) DeleteJournal(_ context.Context, id string) error {
	if err := g.record("DELETE_JOURNAL " + id); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.journals, id)

	return nil
}

func (g *fakeGateway) ListProjects(_ context.Context) ([]model.Project, error) {
	if err := g.record("LIST_PROJECTS"); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]model.Project, 0, len(g.projects))
	for _, p := range g.projects {
		out = append(out, p)
	}

	return out, nil
}

func (g *fakeGateway) CreateProject(_ context.Context, p model.Project) (*model.Project, error) {
	if err := g.record("CREATE_PROJECT " + p.ID); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.projects[p.ID] = p

	return &p, nil
}

func (g *fakeGateway) UpdateProject(_ context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	if err := g.record("UPDATE_PROJECT " + id); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	p := patch.Apply(g.projects[id])
	p.ID = id
	g.projects[id] = p

	return &p, nil
}

func (g *fakeGateway) DeleteProject(_ context.Context, id string) error {
	if err := g.record("DELETE_PROJECT " + id); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.projects, id)

	return nil
}

// harness wires the full subsystem against an in-memory store and a fake
// gateway.
type harness struct {
	local     *store.Store
	gateway   *fakeGateway
	monitor   *Monitor
	notifier  *Notifier
	journals  *JournalStore
	projects  *ProjectStore
	processor *Processor
}

// newHarness builds a harness starting in the given connectivity state.
func newHarness(t *testing.T, online bool) *harness {
	t.Helper()

	logger := testLogger()

	local, err := store.Open(":memory:", logger)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	t.Cleanup(func() { local.Close() })

	gateway := newFakeGateway()
	monitor := NewMonitor(logger)
	notifier := NewNotifier()

	monitor.SetOnline(online)

	h := &harness{
		local:     local,
		gateway:   gateway,
		monitor:   monitor,
		notifier:  notifier,
		journals:  NewJournalStore(local, gateway, monitor, notifier, logger),
		projects:  NewProjectStore(local, gateway, monitor, notifier, logger),
		processor: NewProcessor(local, gateway, monitor, notifier, logger),
	}

	// Deterministic ids and timestamps.
	var seq int

	nextID := func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}

	h.journals.newID = nextID
	h.projects.newID = nextID

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	var ticks int

	nowFunc := func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Second)
	}

	h.journals.nowFunc = nowFunc
	h.projects.nowFunc = nowFunc

	return h
}

// pendingKinds returns the queued operation kinds in enqueue order.
func (h *harness) pendingKinds(t *testing.T) []model.OpKind {
	t.Helper()

	ops, err := h.local.PendingOps(context.Background())
	if err != nil {
		t.Fatalf("listing pending ops: %v", err)
	}

	kinds := make([]model.OpKind, len(ops))
	for i, op := range ops {
		kinds[i] = op.Kind
	}

	return kinds
}
