package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// AgentEntitlements is a local cache of billing limits, kept fresh by
// consuming subscription events. Bookings are gated without a billing call.
type AgentEntitlements struct {
	AgentID           string
	Tier              string
	MaxListings       int
	MaxWeeklyShowings int
	UpdatedAt         time.Time
}

func (r *ShowingRepository) UpsertAgentEntitlements(ctx context.Context, tx pgx.Tx, ent AgentEntitlements) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO agent_entitlements (agent_id, tier, max_listings, max_weekly_showings)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (agent_id)
		DO UPDATE SET tier = EXCLUDED.tier,
		              max_listings = EXCLUDED.max_listings,
		              max_weekly_showings = EXCLUDED.max_weekly_showings,
		              updated_at = now()
	`, ent.AgentID, ent.Tier, ent.MaxListings, ent.MaxWeeklyShowings)
	return err
}

func (r *ShowingRepository) GetAgentEntitlements(ctx context.Context, tx pgx.Tx, agentID string) (AgentEntitlements, bool, error) {
	var ent AgentEntitlements
	err := tx.QueryRow(ctx, `
		SELECT agent_id::text, tier, max_listings, max_weekly_showings, updated_at
		FROM agent_entitlements
		WHERE agent_id = $1
	`, agentID).Scan(&ent.AgentID, &ent.Tier, &ent.MaxListings, &ent.MaxWeeklyShowings, &ent.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return AgentEntitlements{}, false, nil
		}
		return AgentEntitlements{}, false, err
	}
	return ent, true, nil
}
