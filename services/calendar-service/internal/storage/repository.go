package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nathan-pruitt/openhouse/libs/db"
	"golang.org/x/oauth2"
)

// Event is the local mirror of a showing, fed by booking events. Both the
// Google sync worker and the ICS feed read from this table so neither
// depends on booking-service being up.
type Event struct {
	ShowingID       string
	AgentID         string
	ListingID       string
	VisitorName     string
	StartTime       time.Time
	DurationMinutes int
	Status          string
	GoogleEventID   string
}

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) UpsertEvent(ctx context.Context, e Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO calendar_events (showing_id, agent_id, listing_id, visitor_name, start_time, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'booked')
		ON CONFLICT (showing_id)
		DO UPDATE SET start_time = EXCLUDED.start_time,
		              duration_minutes = EXCLUDED.duration_minutes,
		              status = 'booked',
		              sync_pending = true,
		              updated_at = now()
	`, e.ShowingID, e.AgentID, e.ListingID, e.VisitorName, e.StartTime, e.DurationMinutes)
	return err
}

func (r *Repository) MarkCancelled(ctx context.Context, showingID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE calendar_events
		SET status = 'cancelled', sync_pending = true, updated_at = now()
		WHERE showing_id = $1 AND status <> 'cancelled'
	`, showingID)
	return err
}

func (r *Repository) ListUpcoming(ctx context.Context, agentID string, from time.Time, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	rows, err := r.pool.Query(ctx, `
		SELECT showing_id, agent_id::text, listing_id, visitor_name, start_time, duration_minutes, status, COALESCE(google_event_id, '')
		FROM calendar_events
		WHERE agent_id = $1 AND status = 'booked' AND start_time >= $2
		ORDER BY start_time
		LIMIT $3
	`, agentID, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListPendingSync returns events whose Google Calendar copy is stale. Rows
// are locked so concurrent sync workers do not double-write.
func (r *Repository) ListPendingSync(ctx context.Context, tx pgx.Tx, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := tx.Query(ctx, `
		SELECT showing_id, agent_id::text, listing_id, visitor_name, start_time, duration_minutes, status, COALESCE(google_event_id, '')
		FROM calendar_events
		WHERE sync_pending
		ORDER BY updated_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *Repository) MarkSynced(ctx context.Context, tx pgx.Tx, showingID string, googleEventID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE calendar_events
		SET sync_pending = false,
		    google_event_id = NULLIF($2, ''),
		    updated_at = now()
		WHERE showing_id = $1
	`, showingID, googleEventID)
	return err
}

func (r *Repository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func scanEvents(rows pgx.Rows) ([]Event, error) {
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ShowingID, &e.AgentID, &e.ListingID, &e.VisitorName, &e.StartTime, &e.DurationMinutes, &e.Status, &e.GoogleEventID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveGoogleToken persists an agent's OAuth token as JSON so refresh
// tokens survive restarts.
func (r *Repository) SaveGoogleToken(ctx context.Context, agentID string, tok *oauth2.Token) error {
	raw, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO calendar_google_tokens (agent_id, token)
		VALUES ($1, $2)
		ON CONFLICT (agent_id)
		DO UPDATE SET token = EXCLUDED.token, updated_at = now()
	`, agentID, raw)
	return err
}

func (r *Repository) GetGoogleToken(ctx context.Context, agentID string) (*oauth2.Token, bool, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT token FROM calendar_google_tokens WHERE agent_id = $1
	`, agentID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, false, err
	}
	return &tok, true, nil
}

// EnsureFeedToken returns the agent's ICS feed token, minting one on
// first use. The token is the only auth on the feed URL.
func (r *Repository) EnsureFeedToken(ctx context.Context, agentID string) (string, error) {
	var token string
	err := r.pool.QueryRow(ctx, `
		SELECT feed_token FROM calendar_feed_tokens WHERE agent_id = $1
	`, agentID).Scan(&token)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	token = newFeedToken()
	_, err = r.pool.Exec(ctx, `
		INSERT INTO calendar_feed_tokens (agent_id, feed_token)
		VALUES ($1, $2)
		ON CONFLICT (agent_id) DO NOTHING
	`, agentID, token)
	if err != nil {
		return "", err
	}
	// Re-read in case a concurrent request won the insert.
	if err := r.pool.QueryRow(ctx, `
		SELECT feed_token FROM calendar_feed_tokens WHERE agent_id = $1
	`, agentID).Scan(&token); err != nil {
		return "", err
	}
	return token, nil
}

func (r *Repository) AgentForFeedToken(ctx context.Context, token string) (string, bool, error) {
	var agentID string
	err := r.pool.QueryRow(ctx, `
		SELECT agent_id::text FROM calendar_feed_tokens WHERE feed_token = $1
	`, token).Scan(&agentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return agentID, true, nil
}

func newFeedToken() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
