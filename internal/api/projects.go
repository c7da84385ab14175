package api

import (
	"context"
	"net/http"

	"github.com/learnlog/learnlog/internal/model"
)

// ListProjects fetches all projects in the device's partition.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project

	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}

	return projects, nil
}

// GetProject fetches one project. ErrNotFound if absent.
func (c *Client) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project

	if err := c.do(ctx, http.MethodGet, "/api/projects/"+id, nil, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// CreateProject posts a full record and returns the server-confirmed one.
func (c *Client) CreateProject(ctx context.Context, p model.Project) (*model.Project, error) {
	var created model.Project

	if err := c.do(ctx, http.MethodPost, "/api/projects", p, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateProject sends a partial update and returns the updated record.
func (c *Client) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	var updated model.Project

	if err := c.do(ctx, http.MethodPut, "/api/projects/"+id, patch, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteProject removes the project server-side.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil)
}
