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

// SQL statements for the journals collection.
const (
	sqlListJournals = `SELECT id, title, content, tags, date, created_at, updated_at
		FROM journals ORDER BY date DESC, created_at DESC`

	sqlGetJournal = `SELECT id, title, content, tags, date, created_at, updated_at
		FROM journals WHERE id = ?`

	sqlUpsertJournal = `INSERT INTO journals
		(id, title, content, tags, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		 title = excluded.title,
		 content = excluded.content,
		 tags = excluded.tags,
		 date = excluded.date,
		 created_at = excluded.created_at,
		 updated_at = excluded.updated_at`

	sqlDeleteJournal = `DELETE FROM journals WHERE id = ?`
)

// ListJournals returns all journal entries, newest subject date first.
func (s *Store) ListJournals(ctx context.Context) ([]model.Journal, error) {
	rows, err := s.db.QueryContext(ctx, sqlListJournals)
	if err != nil {
		return nil, fmt.Errorf("store: listing journals: %w", err)
	}
	defer rows.Close()

	var journals []model.Journal

	for rows.Next() {
		j, scanErr := scanJournal(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		journals = append(journals, *j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterating journal rows: %w", err)
	}

	return journals, nil
}

// GetJournal returns the journal entry with the given id, or ErrNotFound.
func (s *Store) GetJournal(ctx context.Context, id string) (*model.Journal, error) {
	row := s.db.QueryRowContext(ctx, sqlGetJournal, id)

	j, err := scanJournal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: journal %s: %w", id, ErrNotFound)
	}

	if err != nil {
		return nil, err
	}

	return j, nil
}

// PutJournal upserts the record by id.
func (s *Store) PutJournal(ctx context.Context, j model.Journal) error {
	tags, err := json.Marshal(j.Tags)
	if err != nil {
		return fmt.Errorf("store: encoding tags for journal %s: %w", j.ID, err)
	}

	_, err = s.db.ExecContext(ctx, sqlUpsertJournal,
		j.ID, j.Title, j.Content, string(tags),
		j.Date.UnixMilli(), j.CreatedAt.UnixMilli(), j.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("store: putting journal %s: %w", j.ID, err)
	}

	return nil
}

// DeleteJournal removes the record by id. Deleting an absent id is a no-op.
func (s *Store) DeleteJournal(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, sqlDeleteJournal, id); err != nil {
		return fmt.Errorf("store: deleting journal %s: %w", id, err)
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournal(row rowScanner) (*model.Journal, error) {
	var (
		j        model.Journal
		tagsJSON string
		date     int64
		created  int64
		updated  int64
	)

	err := row.Scan(&j.ID, &j.Title, &j.Content, &tagsJSON, &date, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("store: scanning journal row: %w", err)
	}

	if err := json.Unmarshal([]byte(tagsJSON), &j.Tags); err != nil {
		return nil, fmt.Errorf("store: decoding tags for journal %s: %w", j.ID, err)
	}

	if j.Tags == nil {
		j.Tags = []string{}
	}

	j.Date = time.UnixMilli(date).UTC()
	j.CreatedAt = time.UnixMilli(created).UTC()
	j.UpdatedAt = time.UnixMilli(updated).UTC()

	return &j, nil
}
