package eventbus

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nathan-pruitt/openhouse/libs/db"
)

// InboxRepository records consumed event ids for exactly-once handling.
type InboxRepository struct {
	pool *db.Pool
}

func NewInboxRepository(pool *db.Pool) *InboxRepository {
	return &InboxRepository{pool: pool}
}

// Seen reports whether the event id was already recorded, without claiming it.
func (r *InboxRepository) Seen(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM inbox_events WHERE event_id = $1)
	`, eventID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Record inserts the event id, returning false when it was seen before.
func (r *InboxRepository) Record(ctx context.Context, eventID string, eventType string) (bool, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO inbox_events (event_id, event_type)
		VALUES ($1, $2)
	`, eventID, eventType)
	if err == nil {
		return true, nil
	}

	if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
		return false, nil
	}

	return false, err
}
