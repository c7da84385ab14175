package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/learnlog/learnlog/internal/model"
	"github.com/learnlog/learnlog/internal/store"
)

// JournalStore is the application-facing journal API: local-first reads
// with opportunistic server reconcile, and write-through mutations that
// fall back to the pending queue when the remote side is unavailable.
//
// Within one call the local write always completes before the remote
// attempt begins — that ordering is what prevents data loss when the
// remote call fails. Across calls there is no locking: two rapid edits to
// the same entry race last-write-wins, in local storage and in the queue
// alike.
type JournalStore struct {
	local    *store.Store
	remote   JournalGateway
	monitor  *Monitor
	notifier *Notifier
	logger   *slog.Logger

	nowFunc func() time.Time // injectable for deterministic tests
	newID   func() string
}

// NewJournalStore wires a JournalStore.
func NewJournalStore(local *store.Store, remote JournalGateway, monitor *Monitor, notifier *Notifier, logger *slog.Logger) *JournalStore {
	return &JournalStore{
		local:    local,
		remote:   remote,
		monitor:  monitor,
		notifier: notifier,
		logger:   logger,
		nowFunc:  time.Now,
		newID:    uuid.NewString,
	}
}

// List returns all journal entries, newest subject date first. When
// online it concurrently fetches the server's list and merges it into the
// local store (server record wins, whole-record replace) before
// returning; a remote failure falls back silently to the local snapshot.
// Reads never fail due to connectivity.
func (s *JournalStore) List(ctx context.Context) ([]model.Journal, error) {
	if !s.monitor.Status().Online {
		return s.local.ListJournals(ctx)
	}

	var (
		locals    []model.Journal
		remotes   []model.Journal
		remoteErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		locals, err = s.local.ListJournals(gctx)

		return err
	})

	// Remote failure is captured, not returned: it must not cancel or
	// fail the local read.
	g.Go(func() error {
		remotes, remoteErr = s.remote.ListJournals(gctx)

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if remoteErr != nil {
		s.logger.Info("using local journals, server unavailable",
			slog.String("error", remoteErr.Error()))

		return locals, nil
	}

	for _, j := range remotes {
		if err := s.local.PutJournal(ctx, j); err != nil {
			return nil, fmt.Errorf("sync: merging server journal %s: %w", j.ID, err)
		}
	}

	return s.local.ListJournals(ctx)
}

// Get returns the local copy of one entry, or store.ErrNotFound.
func (s *JournalStore) Get(ctx context.Context, id string) (*model.Journal, error) {
	return s.local.GetJournal(ctx, id)
}

// Create validates the input, synthesizes a full record, writes it
// locally, and then best-effort creates it remotely — queueing a
// CREATE_JOURNAL operation on failure or while offline. The created
// record is returned regardless of remote outcome.
func (s *JournalStore) Create(ctx context.Context, in model.JournalInput) (*model.Journal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()

	j := model.Journal{
		ID:        s.newID(),
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.Tags,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if !in.Date.IsZero() {
		j.Date = in.Date.UTC()
	}

	if err := s.local.PutJournal(ctx, j); err != nil {
		return nil, err
	}

	s.notifier.Invalidate(KindJournals)

	err := s.attemptRemote(ctx, model.OpCreateJournal, j, func() error {
		_, remoteErr := s.remote.CreateJournal(ctx, j)

		return remoteErr
	})
	if err != nil {
		return nil, err
	}

	return &j, nil
}

// Update merges the patch over the existing local record (failing with
// store.ErrNotFound if absent), validates the result, stamps UpdatedAt,
// writes locally, and best-effort updates remotely — queueing an
// UPDATE_JOURNAL operation carrying the id and patch on failure/offline.
func (s *JournalStore) Update(ctx context.Context, id string, patch model.JournalPatch) (*model.Journal, error) {
	existing, err := s.local.GetJournal(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(*existing)

	in := model.JournalInput{Title: merged.Title, Content: merged.Content, Tags: merged.Tags}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	merged.Title = in.Title
	merged.Tags = in.Tags
	merged.UpdatedAt = s.nowFunc().UTC()

	if err := s.local.PutJournal(ctx, merged); err != nil {
		return nil, err
	}

	s.notifier.Invalidate(KindJournals)

	ref := model.UpdateRef[model.JournalPatch]{ID: id, Patch: patch}

	err = s.attemptRemote(ctx, model.OpUpdateJournal, ref, func() error {
		_, remoteErr := s.remote.UpdateJournal(ctx, id, patch)

		return remoteErr
	})
	if err != nil {
		return nil, err
	}

	return &merged, nil
}

// Delete removes the entry locally (idempotent) and best-effort remotely,
// queueing a DELETE_JOURNAL operation on failure/offline.
func (s *JournalStore) Delete(ctx context.Context, id string) error {
	if err := s.local.DeleteJournal(ctx, id); err != nil {
		return err
	}

	s.notifier.Invalidate(KindJournals)

	return s.attemptRemote(ctx, model.OpDeleteJournal, model.DeleteRef{ID: id}, func() error {
		return s.remote.DeleteJournal(ctx, id)
	})
}

// attemptRemote runs the remote call when online, enqueueing a pending
// operation with the given kind and payload when offline or on failure.
// Remote errors are absorbed here — only a queue write failure (a local
// storage error) propagates.
func (s *JournalStore) attemptRemote(ctx context.Context, kind model.OpKind, payload any, call func() error) error {
	if s.monitor.Status().Online {
		err := call()
		if err == nil {
			return nil
		}

		s.logger.Warn("remote call failed, queueing for sync",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
	}

	op, err := model.NewPendingOp(kind, payload)
	if err != nil {
		return err
	}

	if _, err := s.local.Enqueue(ctx, op); err != nil {
		return err
	}

	return nil
}
