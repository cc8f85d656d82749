package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nathan-pruitt/openhouse/libs/db"
)

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

type AgentProfile struct {
	AgentID     string
	Name        string
	Timezone    string
	OffsetsMins []int
}

func (r *Repository) GetOrCreateProfile(ctx context.Context, agentID string) (AgentProfile, error) {
	// Create a default profile if missing (keeps dev UX smooth while other services mature).
	_, err := r.pool.Exec(ctx, `
		INSERT INTO agent_profiles (agent_id)
		VALUES ($1)
		ON CONFLICT (agent_id) DO NOTHING
	`, agentID)
	if err != nil {
		return AgentProfile{}, err
	}

	var p AgentProfile
	err = r.pool.QueryRow(ctx, `
		SELECT agent_id::text, name, timezone, reminder_offsets_minutes
		FROM agent_profiles
		WHERE agent_id = $1
	`, agentID).Scan(&p.AgentID, &p.Name, &p.Timezone, &p.OffsetsMins)
	return p, err
}

func (r *Repository) UpdateProfile(ctx context.Context, agentID string, name string, timezone string, offsetsMins []int) error {
	if len(offsetsMins) == 0 {
		offsetsMins = []int{1440, 60}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO agent_profiles (agent_id, name, timezone, reminder_offsets_minutes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (agent_id) DO UPDATE
		SET name = EXCLUDED.name,
			timezone = EXCLUDED.timezone,
			reminder_offsets_minutes = EXCLUDED.reminder_offsets_minutes,
			updated_at = now()
	`, agentID, name, timezone, offsetsMins)
	return err
}

type Listing struct {
	ID           string
	AgentID      string
	Address      string
	DurationMins int
	BufferMins   int
	DaysAhead    int
	IsActive     bool
	CreatedAt    time.Time
}

func (r *Repository) CreateListing(ctx context.Context, agentID, address string, durationMinutes, bufferMinutes, daysAhead int) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO listings (id, agent_id, address, showing_duration_minutes, buffer_minutes, days_ahead, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
	`, id, agentID, address, durationMinutes, bufferMinutes, daysAhead)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) ListListings(ctx context.Context, agentID string, limit int) ([]Listing, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, agent_id::text, address, showing_duration_minutes, buffer_minutes, days_ahead, is_active, created_at
		FROM listings
		WHERE agent_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, agentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		var l Listing
		if err := rows.Scan(&l.ID, &l.AgentID, &l.Address, &l.DurationMins, &l.BufferMins, &l.DaysAhead, &l.IsActive, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *Repository) GetListing(ctx context.Context, agentID, listingID string) (Listing, error) {
	var l Listing
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, agent_id::text, address, showing_duration_minutes, buffer_minutes, days_ahead, is_active, created_at
		FROM listings
		WHERE agent_id = $1 AND id = $2
	`, agentID, listingID).Scan(&l.ID, &l.AgentID, &l.Address, &l.DurationMins, &l.BufferMins, &l.DaysAhead, &l.IsActive, &l.CreatedAt)
	return l, err
}

func (r *Repository) CountListings(ctx context.Context, agentID string) (int, error) {
	var cnt int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM listings WHERE agent_id = $1 AND is_active
	`, agentID).Scan(&cnt)
	return cnt, err
}

func (r *Repository) DeactivateListing(ctx context.Context, agentID, listingID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE listings
		SET is_active = false, updated_at = now()
		WHERE agent_id = $1 AND id = $2
	`, agentID, listingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type WorkingHours struct {
	AgentID    string
	Weekday    int
	Enabled    bool
	StartClock string
	EndClock   string
}

func (r *Repository) GetWorkingHours(ctx context.Context, agentID string, weekday int) (WorkingHours, error) {
	var wh WorkingHours
	err := r.pool.QueryRow(ctx, `
		SELECT agent_id::text, weekday, enabled, start_clock, end_clock
		FROM agent_working_hours
		WHERE agent_id = $1 AND weekday = $2
	`, agentID, weekday).Scan(&wh.AgentID, &wh.Weekday, &wh.Enabled, &wh.StartClock, &wh.EndClock)
	if err == nil {
		return wh, nil
	}
	if err == pgx.ErrNoRows {
		// Default fallback if the schedule wasn't seeded.
		return WorkingHours{AgentID: agentID, Weekday: weekday, Enabled: weekday >= 1 && weekday <= 5, StartClock: "09:00", EndClock: "17:00"}, nil
	}
	return WorkingHours{}, err
}

func (r *Repository) ListWorkingHours(ctx context.Context, agentID string) ([]WorkingHours, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT agent_id::text, weekday, enabled, start_clock, end_clock
		FROM agent_working_hours
		WHERE agent_id = $1
		ORDER BY weekday ASC
	`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WorkingHours
	for rows.Next() {
		var wh WorkingHours
		if err := rows.Scan(&wh.AgentID, &wh.Weekday, &wh.Enabled, &wh.StartClock, &wh.EndClock); err != nil {
			return nil, err
		}
		out = append(out, wh)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *Repository) UpsertWorkingHours(ctx context.Context, agentID string, weekday int, enabled bool, startClock, endClock string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO agent_working_hours (agent_id, weekday, enabled, start_clock, end_clock)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (agent_id, weekday) DO UPDATE
		SET enabled = EXCLUDED.enabled,
			start_clock = EXCLUDED.start_clock,
			end_clock = EXCLUDED.end_clock
	`, agentID, weekday, enabled, startClock, endClock)
	return err
}

type TimeOff struct {
	ID        string
	AgentID   string
	StartTime time.Time
	EndTime   time.Time
	Reason    string
	CreatedAt time.Time
}

func (r *Repository) CreateTimeOff(ctx context.Context, agentID string, startTime, endTime time.Time, reason string) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO agent_time_off (id, agent_id, start_time, end_time, reason)
		VALUES ($1, $2, $3, $4, $5)
	`, id, agentID, startTime, endTime, reason)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) ListTimeOff(ctx context.Context, agentID string, from, to time.Time, limit int) ([]TimeOff, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, agent_id::text, start_time, end_time, reason, created_at
		FROM agent_time_off
		WHERE agent_id = $1
			AND end_time > $2
			AND start_time < $3
		ORDER BY start_time ASC
		LIMIT $4
	`, agentID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TimeOff
	for rows.Next() {
		var t TimeOff
		if err := rows.Scan(&t.ID, &t.AgentID, &t.StartTime, &t.EndTime, &t.Reason, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *Repository) DeleteTimeOff(ctx context.Context, agentID, timeOffID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM agent_time_off
		WHERE agent_id = $1 AND id = $2
	`, agentID, timeOffID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
