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

// ProjectStore is the application-facing project API, symmetric with
// JournalStore: local-first reads, write-through mutations, deferred
// retry via the pending queue.
type ProjectStore struct {
	local    *store.Store
	remote   ProjectGateway
	monitor  *Monitor
	notifier *Notifier
	logger   *slog.Logger

	nowFunc func() time.Time
	newID   func() string
}

// NewProjectStore wires a ProjectStore.
func NewProjectStore(local *store.Store, remote ProjectGateway, monitor *Monitor, notifier *Notifier, logger *slog.Logger) *ProjectStore {
	return &ProjectStore{
		local:    local,
		remote:   remote,
		monitor:  monitor,
		notifier: notifier,
		logger:   logger,
		nowFunc:  time.Now,
		newID:    uuid.NewString,
	}
}

// List returns all projects, newest first, reconciling with the server
// when online. Server records win (whole-record replace); remote failure
// falls back silently to the local snapshot.
func (s *ProjectStore) List(ctx context.Context) ([]model.Project, error) {
	if !s.monitor.Status().Online {
		return s.local.ListProjects(ctx)
	}

	var (
		locals    []model.Project
		remotes   []model.Project
		remoteErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		locals, err = s.local.ListProjects(gctx)

		return err
	})

	g.Go(func() error {
		remotes, remoteErr = s.remote.ListProjects(gctx)

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if remoteErr != nil {
		s.logger.Info("using local projects, server unavailable",
			slog.String("error", remoteErr.Error()))

		return locals, nil
	}

	for _, p := range remotes {
		if err := s.local.PutProject(ctx, p); err != nil {
			return nil, fmt.Errorf("sync: merging server project %s: %w", p.ID, err)
		}
	}

	return s.local.ListProjects(ctx)
}

// Get returns the local copy of one project, or store.ErrNotFound.
func (s *ProjectStore) Get(ctx context.Context, id string) (*model.Project, error) {
	return s.local.GetProject(ctx, id)
}

// Create validates the input, synthesizes a full record, writes it
// locally, then best-effort creates it remotely — queueing a
// CREATE_PROJECT operation on failure or while offline.
func (s *ProjectStore) Create(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()

	p := model.Project{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		TechStack:   in.TechStack,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.local.PutProject(ctx, p); err != nil {
		return nil, err
	}

	s.notifier.Invalidate(KindProjects)

	err := s.attemptRemote(ctx, model.OpCreateProject, p, func() error {
		_, remoteErr := s.remote.CreateProject(ctx, p)

		return remoteErr
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Update merges the patch over the existing local record, validates,
// stamps UpdatedAt, writes locally, and best-effort updates remotely —
// queueing an UPDATE_PROJECT operation on failure/offline.
func (s *ProjectStore) Update(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	existing, err := s.local.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(*existing)

	in := model.ProjectInput{Name: merged.Name, Description: merged.Description, TechStack: merged.TechStack}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	merged.Name = in.Name
	merged.UpdatedAt = s.nowFunc().UTC()

	if err := s.local.PutProject(ctx, merged); err != nil {
		return nil, err
	}

	s.notifier.Invalidate(KindProjects)

	ref := model.UpdateRef[model.ProjectPatch]{ID: id, Patch: patch}

	err = s.attemptRemote(ctx, model.OpUpdateProject, ref, func() error {
		_, remoteErr := s.remote.UpdateProject(ctx, id, patch)

		return remoteErr
	})
	if err != nil {
		return nil, err
	}

	return &merged, nil
}

// Delete removes the project locally (idempotent) and best-effort
// remotely, queueing a DELETE_PROJECT operation on failure/offline.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	if err := s.local.DeleteProject(ctx, id); err != nil {
		return err
	}

	s.notifier.Invalidate(KindProjects)

	return s.attemptRemote(ctx, model.OpDeleteProject, model.DeleteRef{ID: id}, func() error {
		return s.remote.DeleteProject(ctx, id)
	})
}

// attemptRemote mirrors JournalStore.attemptRemote for projects.
func (s *ProjectStore) attemptRemote(ctx context.Context, kind model.OpKind, payload any, call func() error) error {
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
