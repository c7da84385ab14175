package api

import (
	"context"
	"net/http"

	"github.com/learnlog/learnlog/internal/model"
)

// ListJournals fetches all journal entries in the device's partition.
func (c *Client) ListJournals(ctx context.Context) ([]model.Journal, error) {
	var journals []model.Journal

	if err := c.do(ctx, http.MethodGet, "/api/journals", nil, &journals); err != nil {
		return nil, err
	}

	return journals, nil
}

// GetJournal fetches one journal entry. ErrNotFound if absent or owned by
// another device.
func (c *Client) GetJournal(ctx context.Context, id string) (*model.Journal, error) {
	var j model.Journal

	if err := c.do(ctx, http.MethodGet, "/api/journals/"+id, nil, &j); err != nil {
		return nil, err
	}

	return &j, nil
}

// CreateJournal posts a full record (client-generated id included, so
// offline-created entries keep their identity server-side) and returns the
// server-confirmed record.
func (c *Client) CreateJournal(ctx context.Context, j model.Journal) (*model.Journal, error) {
	var created model.Journal

	if err := c.do(ctx, http.MethodPost, "/api/journals", j, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateJournal sends a partial update and returns the updated record.
func (c *Client) UpdateJournal(ctx context.Context, id string, patch model.JournalPatch) (*model.Journal, error) {
	var updated model.Journal

	if err := c.do(ctx, http.MethodPut, "/api/journals/"+id, patch, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteJournal removes the entry server-side.
func (c *Client) DeleteJournal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/journals/"+id, nil, nil)
}
