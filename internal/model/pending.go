package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// OpKind identifies the mutation a pending operation replays against the
// server. Values match the queue's persisted kind column.
type OpKind string

// The six concrete operation kinds. The drain dispatcher switches over
// these exhaustively; an unknown kind is a poison entry.
const (
	OpCreateJournal OpKind = "CREATE_JOURNAL"
	OpUpdateJournal OpKind = "UPDATE_JOURNAL"
	OpDeleteJournal OpKind = "DELETE_JOURNAL"
	OpCreateProject OpKind = "CREATE_PROJECT"
	OpUpdateProject OpKind = "UPDATE_PROJECT"
	OpDeleteProject OpKind = "DELETE_PROJECT"
)

// PendingOp is a durably queued mutation intent awaiting remote
// confirmation. Key is the strictly increasing queue key assigned at
// enqueue time; Payload is the kind-specific JSON body (a full record for
// creates, an UpdateRef for updates, a DeleteRef for deletes). Entries are
// never mutated in place: they are removed only after the corresponding
// remote call succeeds.
type PendingOp struct {
	Key        int64
	Kind       OpKind
	Payload    json.RawMessage
	EnqueuedAt time.Time
}

// UpdateRef is the payload of an UPDATE_* operation: the target id plus
// the patch fields to replay.
type UpdateRef[P any] struct {
	ID    string `json:"id"`
	Patch P      `json:"patch"`
}

// DeleteRef is the payload of a DELETE_* operation.
type DeleteRef struct {
	ID string `json:"id"`
}

// NewPendingOp marshals payload and pairs it with kind. The queue key is
// assigned by the store at enqueue time, not here.
func NewPendingOp(kind OpKind, payload any) (PendingOp, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return PendingOp{}, fmt.Errorf("model: encoding %s payload: %w", kind, err)
	}

	return PendingOp{Kind: kind, Payload: raw}, nil
}

// DecodePayload unmarshals the operation's payload into dst.
func (op PendingOp) DecodePayload(dst any) error {
	if err := json.Unmarshal(op.Payload, dst); err != nil {
		return fmt.Errorf("model: decoding %s payload (key %d): %w", op.Kind, op.Key, err)
	}

	return nil
}
