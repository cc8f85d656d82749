package reconcile

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nathan-pruitt/openhouse/libs/db"
	"github.com/nathan-pruitt/openhouse/services/billing-service/internal/storage"
	"github.com/nathan-pruitt/openhouse/services/billing-service/internal/subscriptions"
	"github.com/stripe/stripe-go/v79"
	stripesubscription "github.com/stripe/stripe-go/v79/subscription"
)

// StripeReconciler periodically re-reads subscription state from Stripe so a
// missed webhook cannot leave an agent on the wrong tier forever.
type StripeReconciler struct {
	pool        *db.Pool
	repo        *storage.Repository
	subSvc      *subscriptions.Service
	logger      *slog.Logger
	stripeKey   string
	batchSize   int
	advisoryKey int64
}

type StripeReconcilerConfig struct {
	StripeSecretKey string
	Interval        time.Duration
	BatchSize       int
	AdvisoryLockKey int64
}

func NewStripeReconciler(pool *db.Pool, repo *storage.Repository, subSvc *subscriptions.Service, logger *slog.Logger, cfg StripeReconcilerConfig) *StripeReconciler {
	key := strings.TrimSpace(cfg.StripeSecretKey)
	bs := cfg.BatchSize
	if bs <= 0 {
		bs = 50
	}
	lockKey := cfg.AdvisoryLockKey
	if lockKey == 0 {
		// Stable-ish default; override via env if you run multiple billing instances.
		lockKey = 7180042
	}
	return &StripeReconciler{
		pool:        pool,
		repo:        repo,
		subSvc:      subSvc,
		logger:      logger,
		stripeKey:   key,
		batchSize:   bs,
		advisoryKey: lockKey,
	}
}

func (r *StripeReconciler) Run(ctx context.Context, interval time.Duration) {
	if strings.TrimSpace(r.stripeKey) == "" {
		r.logger.Warn("stripe reconcile disabled: STRIPE_SECRET_KEY missing")
		return
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	// Best-effort leader election for multi-instance deployments.
	// Only the instance holding the advisory lock will reconcile.
	for {
		if ctx.Err() != nil {
			return
		}
		var locked bool
		if err := r.pool.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, r.advisoryKey).Scan(&locked); err != nil {
			r.logger.Error("stripe reconcile: failed to acquire advisory lock", "err", err)
			time.Sleep(5 * time.Second)
			continue
		}
		if !locked {
			r.logger.Info("stripe reconcile: advisory lock held by another instance", "lock_key", r.advisoryKey)
			time.Sleep(30 * time.Second)
			continue
		}
		r.logger.Info("stripe reconcile: advisory lock acquired", "lock_key", r.advisoryKey)
		defer func() {
			_, _ = r.pool.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, r.advisoryKey)
		}()
		break
	}

	stripe.Key = r.stripeKey
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on startup to self-heal faster after downtime.
	r.reconcileOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.reconcileOnce(ctx)
		}
	}
}

func (r *StripeReconciler) reconcileOnce(ctx context.Context) {
	subs, err := r.repo.ListStripeSubscriptionsForReconcile(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("stripe reconcile: failed to list subscriptions", "err", err)
		return
	}

	applied, clean := 0, 0
	for _, s := range subs {
		if ctx.Err() != nil {
			return
		}
		if strings.TrimSpace(s.StripeSubscriptionID) == "" || strings.TrimSpace(s.AgentID) == "" {
			continue
		}
		changed, err := r.reconcileSubscription(ctx, s)
		if err != nil {
			r.logger.Warn("stripe reconcile: apply failed", "err", err, "agent_id", s.AgentID, "stripe_subscription_id", s.StripeSubscriptionID)
			continue
		}
		if changed {
			applied++
		} else {
			clean++
		}
	}
	if applied > 0 {
		r.logger.Info("stripe reconcile: sweep finished", "drift_fixed", applied, "in_sync", clean)
	}

	r.expireStaleCheckouts(ctx)
}

// reconcileSubscription compares the local row against Stripe and applies
// the remote state only when they disagree. It reports whether anything was
// written.
func (r *StripeReconciler) reconcileSubscription(ctx context.Context, s storage.Subscription) (bool, error) {
	stripeSub, err := stripesubscription.Get(s.StripeSubscriptionID, nil)
	if err != nil {
		return false, err
	}

	tier := strings.TrimSpace(strings.ToLower(stripeSub.Metadata["tier"]))
	if tier == "" {
		// If Stripe metadata is missing, keep the current tier rather than guessing.
		tier = s.Tier
	}

	// Stripe is the source of truth for lifecycle status. Only
	// active/trialing count as entitled; past_due and unpaid drop the agent
	// back to trial limits until payment recovers.
	entitled := stripeSub.Status == stripe.SubscriptionStatusActive || stripeSub.Status == stripe.SubscriptionStatusTrialing

	if !driftDetected(s.Status, s.Tier, entitled, tier) {
		return false, nil
	}
	r.logger.Info("stripe reconcile: drift detected",
		"agent_id", s.AgentID,
		"local_status", s.Status, "local_tier", s.Tier,
		"stripe_status", string(stripeSub.Status), "stripe_tier", tier)

	customerID := ""
	if stripeSub.Customer != nil {
		customerID = stripeSub.Customer.ID
	}
	var cps, cpe *time.Time
	if stripeSub.CurrentPeriodStart > 0 {
		t := time.Unix(stripeSub.CurrentPeriodStart, 0).UTC()
		cps = &t
	}
	if stripeSub.CurrentPeriodEnd > 0 {
		t := time.Unix(stripeSub.CurrentPeriodEnd, 0).UTC()
		cpe = &t
	}

	tx, err := r.repo.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if entitled {
		occurredAt := time.Unix(stripeSub.Created, 0).UTC()
		err = r.subSvc.ApplyActivated(ctx, tx, s.AgentID, tier, occurredAt, "stripe", customerID, stripeSub.ID, cps, cpe)
	} else {
		occurredAt := time.Now().UTC()
		if stripeSub.CanceledAt > 0 {
			occurredAt = time.Unix(stripeSub.CanceledAt, 0).UTC()
		}
		err = r.subSvc.ApplyCanceled(ctx, tx, s.AgentID, occurredAt, "stripe", customerID, stripeSub.ID, cps, cpe)
	}
	if err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

// driftDetected reports whether the local subscription row disagrees with
// Stripe's view. Tier only matters while entitled: a canceled agent is on
// trial limits whatever the old paid tier was.
func driftDetected(localStatus, localTier string, stripeEntitled bool, stripeTier string) bool {
	locallyEntitled := localStatus == "active"
	if stripeEntitled != locallyEntitled {
		return true
	}
	return stripeEntitled && stripeTier != localTier
}

// expireStaleCheckouts closes out checkout sessions the agent abandoned.
// Stripe expires its hosted sessions after 24 hours; mirroring that keeps
// the upgrade page from offering a resume link that would 404.
func (r *StripeReconciler) expireStaleCheckouts(ctx context.Context) {
	cutoff := time.Now().Add(-24 * time.Hour)
	stale, err := r.repo.ListStaleOpenCheckoutSessions(ctx, cutoff, r.batchSize)
	if err != nil {
		r.logger.Error("stripe reconcile: failed to list stale checkouts", "err", err)
		return
	}
	for _, s := range stale {
		if ctx.Err() != nil {
			return
		}
		tx, err := r.repo.Begin(ctx)
		if err != nil {
			r.logger.Error("stripe reconcile: db begin failed", "err", err)
			return
		}
		if err := r.repo.MarkCheckoutSessionExpired(ctx, tx, s.StripeSessionID, time.Now().UTC()); err != nil {
			_ = tx.Rollback(ctx)
			r.logger.Warn("stripe reconcile: failed to expire checkout", "err", err, "stripe_session_id", s.StripeSessionID)
			continue
		}
		if err := tx.Commit(ctx); err != nil {
			_ = tx.Rollback(ctx)
			continue
		}
		r.logger.Info("stripe reconcile: checkout session expired", "stripe_session_id", s.StripeSessionID, "agent_id", s.AgentID)
	}
}
