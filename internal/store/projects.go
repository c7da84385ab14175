package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/learnlog/learnlog/internal/model"
)

// SQL statements for the projects collection.
const (
	sqlListProjects = `SELECT id, name, description, tech_stack, created_at, updated_at
		FROM projects ORDER BY created_at DESC`

	sqlGetProject = `SELECT id, name, description, tech_stack, created_at, updated_at
		FROM projects WHERE id = ?`

	sqlUpsertProject = `INSERT INTO projects
		(id, name, description, tech_stack, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		 name = excluded.name,
		 description = excluded.description,
		 tech_stack = excluded.tech_stack,
		 created_at = excluded.created_at,
		 updated_at = excluded.updated_at`

	sqlDeleteProject = `DELETE FROM projects WHERE id = ?`
)

// ListProjects returns all projects, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, sqlListProjects)
	if err != nil {
		return nil, fmt.Errorf("store: listing projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project

	for rows.Next() {
		p, scanErr := scanProject(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		projects = append(projects, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterating project rows: %w", err)
	}

	return projects, nil
}

// GetProject returns the project with the given id, or ErrNotFound.
func (s *Store) GetProject(ctx context.Context, id string) (*model.Project, error) {
	row := s.db.QueryRowContext(ctx, sqlGetProject, id)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: project %s: %w", id, ErrNotFound)
	}

	if err != nil {
		return nil, err
	}

	return p, nil
}

// PutProject upserts the record by id.
func (s *Store) PutProject(ctx context.Context, p model.Project) error {
	stack, err := json.Marshal(p.TechStack)
	if err != nil {
		return fmt.Errorf("store: encoding tech stack for project %s: %w", p.ID, err)
	}

	_, err = s.db.ExecContext(ctx, sqlUpsertProject,
		p.ID, p.Name, p.Description, string(stack),
		p.CreatedAt.UnixMilli(), p.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("store: putting project %s: %w", p.ID, err)
	}

	return nil
}

// DeleteProject removes the record by id. Deleting an absent id is a no-op.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, sqlDeleteProject, id); err != nil {
		return fmt.Errorf("store: deleting project %s: %w", id, err)
	}

	return nil
}

func scanProject(row rowScanner) (*model.Project, error) {
	var (
		p         model.Project
		stackJSON string
		created   int64
		updated   int64
	)

	err := row.Scan(&p.ID, &p.Name, &p.Description, &stackJSON, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("store: scanning project row: %w", err)
	}

	if err := json.Unmarshal([]byte(stackJSON), &p.TechStack); err != nil {
		return nil, fmt.Errorf("store: decoding tech stack for project %s: %w", p.ID, err)
	}

	p.CreatedAt = time.UnixMilli(created).UTC()
	p.UpdatedAt = time.UnixMilli(updated).UTC()

	return &p, nil
}
