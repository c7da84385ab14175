package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/learnlog/learnlog/internal/model"
)

// SQL statements for the pending-operations queue.
const (
	sqlEnqueueOp = `INSERT INTO pending_ops (key, kind, payload, enqueued_at)
		VALUES (?, ?, ?, ?)`

	sqlListPending  = `SELECT key, kind, payload, enqueued_at FROM pending_ops ORDER BY key`
	sqlRemoveOp     = `DELETE FROM pending_ops WHERE key = ?`
	sqlClearPending = `DELETE FROM pending_ops`
	sqlCountPending = `SELECT COUNT(*) FROM pending_ops`
)

// nextKey issues a strictly increasing queue key. Keys are current unix
// milliseconds; if two enqueues land on the same millisecond (or the clock
// steps backwards) the previous key is bumped by one instead.
func (s *Store) nextKey() int64 {
	s.keyMu.Lock()
	defer s.keyMu.Unlock()

	key := s.nowFunc().UnixMilli()
	if key <= s.lastKey {
		key = s.lastKey + 1
	}

	s.lastKey = key

	return key
}

// Enqueue appends a pending operation to the queue, assigning its key.
// The returned operation carries the assigned key and enqueue time.
func (s *Store) Enqueue(ctx context.Context, op model.PendingOp) (model.PendingOp, error) {
	op.Key = s.nextKey()
	op.EnqueuedAt = time.UnixMilli(op.Key).UTC()

	_, err := s.db.ExecContext(ctx, sqlEnqueueOp,
		op.Key, string(op.Kind), string(op.Payload), op.EnqueuedAt.UnixMilli(),
	)
	if err != nil {
		return model.PendingOp{}, fmt.Errorf("store: enqueueing %s: %w", op.Kind, err)
	}

	return op, nil
}

// PendingOps returns all queued operations in enqueue (key) order.
// Rows with corrupted payloads are skipped with a warning rather than
// failing the whole drain pass.
func (s *Store) PendingOps(ctx context.Context) ([]model.PendingOp, error) {
	rows, err := s.db.QueryContext(ctx, sqlListPending)
	if err != nil {
		return nil, fmt.Errorf("store: listing pending operations: %w", err)
	}
	defer rows.Close()

	var ops []model.PendingOp

	for rows.Next() {
		var (
			op         model.PendingOp
			kind       string
			payload    string
			enqueuedAt int64
		)

		if err := rows.Scan(&op.Key, &kind, &payload, &enqueuedAt); err != nil {
			return nil, fmt.Errorf("store: scanning pending operation: %w", err)
		}

		if payload == "" || !json.Valid([]byte(payload)) {
			s.logger.Warn("skipping corrupted pending operation",
				slog.Int64("key", op.Key),
				slog.String("kind", kind),
			)

			continue
		}

		op.Kind = model.OpKind(kind)
		op.Payload = json.RawMessage(payload)
		op.EnqueuedAt = time.UnixMilli(enqueuedAt).UTC()

		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterating pending operations: %w", err)
	}

	return ops, nil
}

// RemovePending deletes the operation with the given key. Removing an
// already-removed key is a no-op.
func (s *Store) RemovePending(ctx context.Context, key int64) error {
	if _, err := s.db.ExecContext(ctx, sqlRemoveOp, key); err != nil {
		return fmt.Errorf("store: removing pending operation %d: %w", key, err)
	}

	return nil
}

// ClearPending empties the queue.
func (s *Store) ClearPending(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqlClearPending); err != nil {
		return fmt.Errorf("store: clearing pending operations: %w", err)
	}

	return nil
}

// CountPending returns the number of queued operations.
func (s *Store) CountPending(ctx context.Context) (int, error) {
	var count int

	if err := s.db.QueryRowContext(ctx, sqlCountPending).Scan(&count); err != nil {
		return 0, fmt.Errorf("store: counting pending operations: %w", err)
	}

	return count, nil
}
