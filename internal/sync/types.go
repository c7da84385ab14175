// Package sync implements the offline-first synchronization core: the
// entity stores combining local-first reads with write-through and
// deferred-retry writes, the pending-queue processor that drains queued
// mutations when connectivity returns, and the connectivity monitor that
// gates both.
package sync

import (
	"context"

	"github.com/learnlog/learnlog/internal/model"
)

// EntityKind names a list cache for invalidation signaling.
type EntityKind string

// The two entity kinds this subsystem synchronizes.
const (
	KindJournals EntityKind = "journals"
	KindProjects EntityKind = "projects"
)

// JournalGateway is the remote side of journal sync. Satisfied by
// *api.Client; tests substitute a recording fake.
type JournalGateway interface {
	ListJournals(ctx context.Context) ([]model.Journal, error)
	CreateJournal(ctx context.Context, j model.Journal) (*model.Journal, error)
	UpdateJournal(ctx context.Context, id string, patch model.JournalPatch) (*model.Journal, error)
	DeleteJournal(ctx context.Context, id string) error
}

// ProjectGateway is the remote side of project sync.
type ProjectGateway interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, p model.Project) (*model.Project, error)
	UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// Gateway is the full remote surface the queue processor drains against.
type Gateway interface {
	JournalGateway
	ProjectGateway
}
