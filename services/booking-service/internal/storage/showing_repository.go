package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nathan-pruitt/openhouse/libs/db"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/model"
)

type ShowingRepository struct {
	pool *db.Pool
}

type IdempotencyRecord struct {
	AgentID         string
	IdempotencyKey  string
	ShowingID       string
	StatusCode      int
	ResponsePayload []byte
}

func NewShowingRepository(pool *db.Pool) *ShowingRepository {
	return &ShowingRepository{pool: pool}
}

func (r *ShowingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// LockIdempotencyKey claims the (agent, key) row for this transaction,
// reporting whether a prior request already completed under it.
func (r *ShowingRepository) LockIdempotencyKey(ctx context.Context, tx pgx.Tx, agentID, key string) (IdempotencyRecord, bool, error) {
	rec, err := r.selectIdempotencyForUpdate(ctx, tx, agentID, key)
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return IdempotencyRecord{}, false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO booking_idempotency_keys (agent_id, idempotency_key)
		VALUES ($1, $2)
		ON CONFLICT (agent_id, idempotency_key) DO NOTHING
	`, agentID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}

	rec, err = r.selectIdempotencyForUpdate(ctx, tx, agentID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}
	return rec, false, nil
}

func (r *ShowingRepository) FinalizeIdempotency(ctx context.Context, tx pgx.Tx, agentID, key, showingID string, statusCode int, response []byte) error {
	_, err := tx.Exec(ctx, `
		UPDATE booking_idempotency_keys
		SET showing_id = $3,
			status_code = $4,
			response_payload = $5,
			updated_at = now()
		WHERE agent_id = $1 AND idempotency_key = $2
	`, agentID, key, showingID, statusCode, response)
	return err
}

func (r *ShowingRepository) Create(ctx context.Context, tx pgx.Tx, s *model.Showing) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO showings
			(agent_id, listing_id, visitor_name, visitor_email, visitor_phone, start_time, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, s.AgentID, s.ListingID, s.VisitorName, s.VisitorEmail, s.VisitorPhone,
		s.StartTime, s.DurationMinutes, s.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *ShowingRepository) GetShowingForUpdate(ctx context.Context, tx pgx.Tx, agentID, showingID string) (model.Showing, error) {
	var s model.Showing
	var cancelledAt *time.Time
	err := tx.QueryRow(ctx, `
		SELECT id, agent_id, listing_id, visitor_name, visitor_email, visitor_phone,
			start_time, duration_minutes, status, cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM showings
		WHERE id = $1 AND agent_id = $2
		FOR UPDATE
	`, showingID, agentID).Scan(
		&s.ID,
		&s.AgentID,
		&s.ListingID,
		&s.VisitorName,
		&s.VisitorEmail,
		&s.VisitorPhone,
		&s.StartTime,
		&s.DurationMinutes,
		&s.Status,
		&cancelledAt,
		&s.CancelReason,
		&s.CreatedAt,
	)
	if err != nil {
		return model.Showing{}, err
	}
	s.CancelledAt = cancelledAt
	return s, nil
}

func (r *ShowingRepository) CancelShowing(ctx context.Context, tx pgx.Tx, agentID, showingID, reason string) (time.Time, error) {
	var cancelledAt time.Time
	err := tx.QueryRow(ctx, `
		UPDATE showings
		SET status = 'cancelled',
			cancelled_at = now(),
			cancellation_reason = $3
		WHERE id = $1 AND agent_id = $2
		RETURNING cancelled_at
	`, showingID, agentID, reason).Scan(&cancelledAt)
	return cancelledAt, err
}

// ListActiveInRange returns booked showings for the agent whose interval
// overlaps [start, end). Cancelled showings never block a slot.
func (r *ShowingRepository) ListActiveInRange(ctx context.Context, agentID string, start, end time.Time) ([]model.Showing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, agent_id, listing_id, visitor_name, visitor_email, visitor_phone,
			start_time, duration_minutes, status, cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM showings
		WHERE agent_id = $1
			AND status = 'booked'
			AND start_time < $3
			AND start_time + make_interval(mins => duration_minutes) > $2
		ORDER BY start_time ASC
	`, agentID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShowings(rows)
}

// ListActiveInRangeTx is the transactional variant used by the weekly
// entitlement check so the count and the insert see the same snapshot.
func (r *ShowingRepository) ListActiveInRangeTx(ctx context.Context, tx pgx.Tx, agentID string, start, end time.Time) ([]model.Showing, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, agent_id, listing_id, visitor_name, visitor_email, visitor_phone,
			start_time, duration_minutes, status, cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM showings
		WHERE agent_id = $1
			AND status = 'booked'
			AND start_time < $3
			AND start_time + make_interval(mins => duration_minutes) > $2
		ORDER BY start_time ASC
	`, agentID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShowings(rows)
}

func (r *ShowingRepository) ListByAgent(ctx context.Context, agentID string, limit int) ([]model.Showing, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, agent_id, listing_id, visitor_name, visitor_email, visitor_phone,
			start_time, duration_minutes, status, cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM showings
		WHERE agent_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`, agentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShowings(rows)
}

func scanShowings(rows pgx.Rows) ([]model.Showing, error) {
	var showings []model.Showing
	for rows.Next() {
		var s model.Showing
		var cancelledAt *time.Time
		if err := rows.Scan(
			&s.ID,
			&s.AgentID,
			&s.ListingID,
			&s.VisitorName,
			&s.VisitorEmail,
			&s.VisitorPhone,
			&s.StartTime,
			&s.DurationMinutes,
			&s.Status,
			&cancelledAt,
			&s.CancelReason,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.CancelledAt = cancelledAt
		showings = append(showings, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return showings, nil
}

func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func (r *ShowingRepository) selectIdempotencyForUpdate(ctx context.Context, tx pgx.Tx, agentID, key string) (IdempotencyRecord, error) {
	var rec IdempotencyRecord
	var responseText string
	err := tx.QueryRow(ctx, `
		SELECT agent_id::text,
			idempotency_key,
			COALESCE(showing_id::text, ''),
			COALESCE(status_code, 0),
			COALESCE(response_payload::text, '')
		FROM booking_idempotency_keys
		WHERE agent_id = $1 AND idempotency_key = $2
		FOR UPDATE
	`, agentID, key).Scan(
		&rec.AgentID,
		&rec.IdempotencyKey,
		&rec.ShowingID,
		&rec.StatusCode,
		&responseText,
	)
	if err != nil {
		return IdempotencyRecord{}, err
	}
	if responseText != "" {
		rec.ResponsePayload = []byte(responseText)
	}
	return rec, nil
}
