package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalPatchApply(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	base := Journal{
		ID: "j1", Title: "old", Content: "body", Tags: []string{"a"},
		Date: created, CreatedAt: created, UpdatedAt: created,
	}

	title := "new"
	tags := []string{"b", "c"}

	got := JournalPatch{Title: &title, Tags: &tags}.Apply(base)

	assert.Equal(t, "new", got.Title)
	assert.Equal(t, []string{"b", "c"}, got.Tags)
	assert.Equal(t, "body", got.Content, "unset fields are untouched")
	assert.Equal(t, created, got.Date)
	assert.Equal(t, "j1", got.ID)
}

func TestJournalPatchApply_ExplicitEmptyTags(t *testing.T) {
	t.Parallel()

	base := Journal{ID: "j1", Tags: []string{"a", "b"}}
	empty := []string{}

	got := JournalPatch{Tags: &empty}.Apply(base)

	assert.Empty(t, got.Tags, "an explicit empty slice clears the tags")
}

func TestProjectPatchApply(t *testing.T) {
	t.Parallel()

	base := Project{ID: "p1", Name: "old", Description: "d", TechStack: []string{"go"}}

	desc := "new description"
	stack := []string{"go", "sqlite"}

	got := ProjectPatch{Description: &desc, TechStack: &stack}.Apply(base)

	assert.Equal(t, "old", got.Name)
	assert.Equal(t, "new description", got.Description)
	assert.Equal(t, []string{"go", "sqlite"}, got.TechStack)
}

func TestPendingOpPayloadRoundTrip(t *testing.T) {
	t.Parallel()

	title := "patched"
	ref := UpdateRef[JournalPatch]{ID: "j1", Patch: JournalPatch{Title: &title}}

	op, err := NewPendingOp(OpUpdateJournal, ref)
	require.NoError(t, err)
	assert.Equal(t, OpUpdateJournal, op.Kind)

	var decoded UpdateRef[JournalPatch]
	require.NoError(t, op.DecodePayload(&decoded))
	assert.Equal(t, "j1", decoded.ID)
	require.NotNil(t, decoded.Patch.Title)
	assert.Equal(t, "patched", *decoded.Patch.Title)
}

func TestPendingOpDecodeMismatch(t *testing.T) {
	t.Parallel()

	op := PendingOp{Kind: OpDeleteJournal, Payload: json.RawMessage(`{"id": 42}`)}

	var ref DeleteRef
	assert.Error(t, op.DecodePayload(&ref))
}
