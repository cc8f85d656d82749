// Package audit keeps a tamper-evident trail of security-relevant auth
// events: signins, rotations, revocations. Rows are append-only and carry
// the request origin alongside free-form metadata.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nathan-pruitt/openhouse/libs/db"
	"github.com/nathan-pruitt/openhouse/libs/eventbus"
)

// Entry is one audit record. ActorID is empty for pre-auth events such as
// a failed signin against an unknown email.
type Entry struct {
	EventType string
	ActorID   string
	SourceIP  string
	UserAgent string
	Metadata  map[string]any
}

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Record(ctx context.Context, e Entry) error {
	raw, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO audit_events (event_type, actor_id, source_ip, user_agent, metadata)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
	`, e.EventType, e.ActorID, e.SourceIP, e.UserAgent, raw)
	return err
}

// RecordWithOutbox writes the audit row and a mirror event in one
// transaction so downstream consumers see the same history the table
// holds.
func (r *Repository) RecordWithOutbox(ctx context.Context, outboxRepo *eventbus.OutboxRepository, e Entry) error {
	if outboxRepo == nil {
		return r.Record(ctx, e)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	raw, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO audit_events (event_type, actor_id, source_ip, user_agent, metadata)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
	`, e.EventType, e.ActorID, e.SourceIP, e.UserAgent, raw)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]any{
		"event_type": e.EventType,
		"actor_id":   e.ActorID,
		"source_ip":  e.SourceIP,
		"metadata":   e.Metadata,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	if err := outboxRepo.Insert(ctx, tx, eventbus.Event{
		AggregateType: "audit_event",
		AggregateID:   "auth",
		EventType:     eventbus.EventAuthAudit,
		Payload:       payload,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type AuditEvent struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	ActorID   string          `json:"actor_id,omitempty"`
	SourceIP  string          `json:"source_ip,omitempty"`
	UserAgent string          `json:"user_agent,omitempty"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt string          `json:"created_at"`
}

// ListRecent returns the newest events first. A non-empty eventType
// restricts the result to that type, e.g. "auth.signin.failed".
func (r *Repository) ListRecent(ctx context.Context, limit int, eventType string) ([]AuditEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_type, COALESCE(actor_id::text, ''),
		       COALESCE(source_ip, ''), COALESCE(user_agent, ''),
		       metadata, created_at
		FROM audit_events
		WHERE $2 = '' OR event_type = $2
		ORDER BY id DESC
		LIMIT $1
	`, limit, eventType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []AuditEvent
	for rows.Next() {
		var e AuditEvent
		var createdAt time.Time
		if err := rows.Scan(&e.ID, &e.EventType, &e.ActorID, &e.SourceIP, &e.UserAgent, &e.Metadata, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		events = append(events, e)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return events, nil
}
