package sync

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/learnlog/learnlog/internal/model"
	"github.com/learnlog/learnlog/internal/store"
)

// errUnknownKind marks a queue entry whose kind no dispatch case handles.
// Such entries are removed so they cannot wedge the queue, but they are
// reported as dropped, not synced.
var errUnknownKind = errors.New("sync: unknown operation kind")

// Processor drains the pending-operations queue against the remote
// gateway. At most one drain pass runs at a time (single-flight); a
// second trigger while draining is a no-op. Within a pass, operations are
// processed in enqueue order and a failure leaves the operation in place
// and moves on — one bad entry must not block unrelated ones. There is no
// backoff and no retry limit: a failed operation simply waits for the
// next pass.
type Processor struct {
	local    *store.Store
	remote   Gateway
	monitor  *Monitor
	notifier *Notifier
	logger   *slog.Logger

	draining atomic.Bool
}

// NewProcessor wires a Processor.
func NewProcessor(local *store.Store, remote Gateway, monitor *Monitor, notifier *Notifier, logger *slog.Logger) *Processor {
	return &Processor{
		local:    local,
		remote:   remote,
		monitor:  monitor,
		notifier: notifier,
		logger:   logger,
	}
}

// DrainReport summarizes one drain pass.
type DrainReport struct {
	Skipped   bool // another pass was already in flight
	Processed int
	Succeeded int
	Failed    int
	Dropped   int // unknown-kind entries removed without a remote call
}

// Drain runs one pass over a snapshot of the queue taken at pass start;
// operations enqueued mid-pass wait for the next trigger. Each successful
// dispatch removes its entry by key. After the pass both entity kinds'
// list caches are invalidated so observers see server-confirmed state.
func (p *Processor) Drain(ctx context.Context) (DrainReport, error) {
	if !p.draining.CompareAndSwap(false, true) {
		return DrainReport{Skipped: true}, nil
	}
	defer p.draining.Store(false)

	p.monitor.setSyncing(true)
	defer p.monitor.setSyncing(false)

	ops, err := p.local.PendingOps(ctx)
	if err != nil {
		return DrainReport{}, err
	}

	if len(ops) == 0 {
		return DrainReport{}, nil
	}

	p.logger.Info("draining pending operations", slog.Int("count", len(ops)))

	report := DrainReport{Processed: len(ops)}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		dispatchErr := p.dispatch(ctx, op)

		dropped := errors.Is(dispatchErr, errUnknownKind)
		if dispatchErr != nil && !dropped {
			report.Failed++
			p.logger.Warn("pending operation failed, will retry next pass",
				slog.Int64("key", op.Key),
				slog.String("kind", string(op.Kind)),
				slog.String("error", dispatchErr.Error()),
			)

			continue
		}

		if err := p.local.RemovePending(ctx, op.Key); err != nil {
			// The remote call succeeded but the removal didn't; the
			// operation will be re-applied next pass (at-least-once).
			p.logger.Error("failed to remove completed operation",
				slog.Int64("key", op.Key),
				slog.String("error", err.Error()),
			)

			report.Failed++

			continue
		}

		if dropped {
			report.Dropped++
		} else {
			report.Succeeded++
		}
	}

	p.notifier.Invalidate(KindJournals)
	p.notifier.Invalidate(KindProjects)

	p.logger.Info("drain pass complete",
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
		slog.Int("dropped", report.Dropped),
	)

	return report, nil
}

// dispatch replays one queued mutation against the gateway. The switch is
// exhaustive over the six operation kinds; an unknown kind returns
// errUnknownKind so the caller removes it from the queue instead of
// retrying it forever.
func (p *Processor) dispatch(ctx context.Context, op model.PendingOp) error {
	switch op.Kind {
	case model.OpCreateJournal:
		var j model.Journal
		if err := op.DecodePayload(&j); err != nil {
			return err
		}

		_, err := p.remote.CreateJournal(ctx, j)

		return err

	case model.OpUpdateJournal:
		var ref model.UpdateRef[model.JournalPatch]
		if err := op.DecodePayload(&ref); err != nil {
			return err
		}

		_, err := p.remote.UpdateJournal(ctx, ref.ID, ref.Patch)

		return err

	case model.OpDeleteJournal:
		var ref model.DeleteRef
		if err := op.DecodePayload(&ref); err != nil {
			return err
		}

		return p.remote.DeleteJournal(ctx, ref.ID)

	case model.OpCreateProject:
		var pr model.Project
		if err := op.DecodePayload(&pr); err != nil {
			return err
		}

		_, err := p.remote.CreateProject(ctx, pr)

		return err

	case model.OpUpdateProject:
		var ref model.UpdateRef[model.ProjectPatch]
		if err := op.DecodePayload(&ref); err != nil {
			return err
		}

		_, err := p.remote.UpdateProject(ctx, ref.ID, ref.Patch)

		return err

	case model.OpDeleteProject:
		var ref model.DeleteRef
		if err := op.DecodePayload(&ref); err != nil {
			return err
		}

		return p.remote.DeleteProject(ctx, ref.ID)

	default:
		p.logger.Warn("unknown pending operation kind, dropping",
			slog.Int64("key", op.Key),
			slog.String("kind", string(op.Kind)),
		)

		return errUnknownKind
	}
}

// Run drains whenever the monitor transitions to online and blocks until
// ctx is canceled. An immediate pass runs first if already online. Drains
// execute on a dedicated goroutine fed by a buffered trigger channel so
// monitor callbacks never block.
func (p *Processor) Run(ctx context.Context) error {
	trigger := make(chan struct{}, 1)

	// Track the previous online flag so only offline→online edges
	// trigger a drain; syncing-flag notifications during a pass must not
	// re-trigger it. Atomic because callbacks run on whichever goroutine
	// caused the transition.
	var wasOnline atomic.Bool

	wasOnline.Store(p.monitor.Status().Online)

	unsubscribe := p.monitor.Subscribe(func(s Status) {
		if !s.Online {
			wasOnline.Store(false)
			return
		}

		if wasOnline.Swap(true) {
			return // already online; syncing-flag change only
		}

		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	if p.monitor.Status().Online {
		trigger <- struct{}{}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-trigger:
			if _, err := p.Drain(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				p.logger.Error("drain pass aborted", slog.String("error", err.Error()))
			}
		}
	}
}
