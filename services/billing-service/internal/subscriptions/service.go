package subscriptions

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nathan-pruitt/openhouse/libs/eventbus"
	"github.com/nathan-pruitt/openhouse/services/billing-service/internal/entitlements"
	"github.com/nathan-pruitt/openhouse/services/billing-service/internal/storage"
)

// Service owns subscription state transitions and their side effects
// (outbox events). Living outside the HTTP handlers, it is shared by the
// webhook and reconciliation flows.
type Service struct {
	repo       *storage.Repository
	outboxRepo *eventbus.OutboxRepository
}

func New(repo *storage.Repository, outboxRepo *eventbus.OutboxRepository) *Service {
	return &Service{repo: repo, outboxRepo: outboxRepo}
}

func (s *Service) ApplyActivated(ctx context.Context, tx pgx.Tx, agentID, tier string, activatedAt time.Time, provider string, stripeCustomerID string, stripeSubscriptionID string, periodStart, periodEnd *time.Time) error {
	existing, ok, err := s.repo.GetSubscriptionForUpdate(ctx, tx, agentID)
	if err != nil {
		return err
	}

	if err := s.repo.UpsertSubscription(ctx, tx, storage.Subscription{
		AgentID:              agentID,
		Tier:                 tier,
		Status:               "active",
		Provider:             provider,
		StripeCustomerID:     stripeCustomerID,
		StripeSubscriptionID: stripeSubscriptionID,
		CurrentPeriodStart:   periodStart,
		CurrentPeriodEnd:     periodEnd,
	}); err != nil {
		return err
	}

	// Only emit when the effective entitlement changes (tier/status). Provider ID updates alone shouldn't fan out.
	if ok && existing.Status == "active" && existing.Tier == tier {
		return nil
	}

	limits := entitlements.LimitsForTier(tier)
	payload, err := json.Marshal(map[string]any{
		"agent_id":            agentID,
		"tier":                limits.Tier,
		"max_listings":        limits.MaxListings,
		"max_weekly_showings": limits.MaxWeeklyShowings,
		"activated_at":        activatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.Insert(ctx, tx, eventbus.Event{
		AggregateType: "subscription",
		AggregateID:   agentID,
		EventType:     eventbus.EventSubscriptionActivated,
		Payload:       payload,
	})
}

func (s *Service) ApplyCanceled(ctx context.Context, tx pgx.Tx, agentID string, canceledAt time.Time, provider string, stripeCustomerID string, stripeSubscriptionID string, periodStart, periodEnd *time.Time) error {
	existing, ok, err := s.repo.GetSubscriptionForUpdate(ctx, tx, agentID)
	if err != nil {
		return err
	}

	if err := s.repo.UpsertSubscription(ctx, tx, storage.Subscription{
		AgentID:              agentID,
		Tier:                 "trial",
		Status:               "canceled",
		Provider:             provider,
		StripeCustomerID:     stripeCustomerID,
		StripeSubscriptionID: stripeSubscriptionID,
		CurrentPeriodStart:   periodStart,
		CurrentPeriodEnd:     periodEnd,
	}); err != nil {
		return err
	}

	// Only emit when the effective entitlement changes (tier/status).
	if ok && existing.Status == "canceled" && existing.Tier == "trial" {
		return nil
	}

	limits := entitlements.LimitsForTier("trial")
	payload, err := json.Marshal(map[string]any{
		"agent_id":            agentID,
		"tier":                limits.Tier,
		"max_listings":        limits.MaxListings,
		"max_weekly_showings": limits.MaxWeeklyShowings,
		"canceled_at":         canceledAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.Insert(ctx, tx, eventbus.Event{
		AggregateType: "subscription",
		AggregateID:   agentID,
		EventType:     eventbus.EventSubscriptionCanceled,
		Payload:       payload,
	})
}
