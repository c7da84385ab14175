// Package model defines the entities shared by the local store, the remote
// gateway, and the sync layer: journal entries, projects, and the pending
// mutation operations queued for deferred sync. JSON field names mirror the
// server wire protocol exactly.
package model

import "time"

// Journal is a single learning-journal entry. Records are whole-record
// replaced on sync; there is no field-level merging.
type Journal struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JournalInput carries the caller-provided fields for creating a journal
// entry. Zero Date means "use the current time".
type JournalInput struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Tags    []string  `json:"tags"`
	Date    time.Time `json:"date,omitzero"`
}

// JournalPatch is a partial update. Nil fields are left unchanged so a
// patch can distinguish "not provided" from an explicit zero value.
type JournalPatch struct {
	Title   *string    `json:"title,omitempty"`
	Content *string    `json:"content,omitempty"`
	Tags    *[]string  `json:"tags,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
}

// Apply merges the patch over an existing record and returns the result.
// UpdatedAt is the caller's responsibility.
func (p JournalPatch) Apply(j Journal) Journal {
	if p.Title != nil {
		j.Title = *p.Title
	}

	if p.Content != nil {
		j.Content = *p.Content
	}

	if p.Tags != nil {
		j.Tags = *p.Tags
	}

	if p.Date != nil {
		j.Date = *p.Date
	}

	return j
}
