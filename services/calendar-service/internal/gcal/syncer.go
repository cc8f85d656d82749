package gcal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nathan-pruitt/openhouse/services/calendar-service/internal/storage"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Syncer mirrors booked showings into each connected agent's Google
// Calendar. Agents without a stored OAuth token are skipped; their rows
// are marked synced so the queue drains either way.
type Syncer struct {
	repo       *storage.Repository
	oauthCfg   *oauth2.Config
	logger     *slog.Logger
	interval   time.Duration
	batchSize  int
	calendarID string
}

type Config struct {
	Interval   time.Duration
	BatchSize  int
	CalendarID string
}

func NewSyncer(repo *storage.Repository, oauthCfg *oauth2.Config, logger *slog.Logger, cfg Config) *Syncer {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.CalendarID == "" {
		cfg.CalendarID = "primary"
	}
	return &Syncer{
		repo:       repo,
		oauthCfg:   oauthCfg,
		logger:     logger,
		interval:   cfg.Interval,
		batchSize:  cfg.BatchSize,
		calendarID: cfg.CalendarID,
	}
}

func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.processBatch(ctx); err != nil {
				s.logger.Error("calendar sync batch failed", "err", err)
			}
		}
	}
}

func (s *Syncer) processBatch(ctx context.Context) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	events, err := s.repo.ListPendingSync(ctx, tx, s.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return tx.Commit(ctx)
	}

	services := map[string]*calendar.Service{}
	for _, e := range events {
		svc, ok := services[e.AgentID]
		if !ok {
			svc = s.serviceForAgent(ctx, e.AgentID)
			services[e.AgentID] = svc
		}
		if svc == nil {
			// Not connected to Google; nothing to mirror.
			if err := s.repo.MarkSynced(ctx, tx, e.ShowingID, e.GoogleEventID); err != nil {
				return err
			}
			continue
		}

		googleID, err := s.syncEvent(svc, e)
		if err != nil {
			s.logger.Warn("calendar sync failed", "err", err, "showing_id", e.ShowingID, "agent_id", e.AgentID)
			continue
		}
		if err := s.repo.MarkSynced(ctx, tx, e.ShowingID, googleID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// serviceForAgent returns nil when the agent has not connected Google
// Calendar.
func (s *Syncer) serviceForAgent(ctx context.Context, agentID string) *calendar.Service {
	tok, ok, err := s.repo.GetGoogleToken(ctx, agentID)
	if err != nil {
		s.logger.Error("failed to load google token", "err", err, "agent_id", agentID)
		return nil
	}
	if !ok {
		return nil
	}
	svc, err := calendar.NewService(ctx, option.WithTokenSource(s.oauthCfg.TokenSource(ctx, tok)))
	if err != nil {
		s.logger.Error("failed to build calendar client", "err", err, "agent_id", agentID)
		return nil
	}
	return svc
}

func (s *Syncer) syncEvent(svc *calendar.Service, e storage.Event) (string, error) {
	if e.Status == "cancelled" {
		if e.GoogleEventID == "" {
			return "", nil
		}
		if err := svc.Events.Delete(s.calendarID, e.GoogleEventID).Do(); err != nil {
			return e.GoogleEventID, err
		}
		return "", nil
	}

	start := e.StartTime.UTC()
	end := start.Add(time.Duration(e.DurationMinutes) * time.Minute)
	ev := &calendar.Event{
		Summary:     eventSummary(e),
		Description: fmt.Sprintf("Listing %s, booked through OpenHouse.", e.ListingID),
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}

	if e.GoogleEventID != "" {
		updated, err := svc.Events.Update(s.calendarID, e.GoogleEventID, ev).Do()
		if err != nil {
			return e.GoogleEventID, err
		}
		return updated.Id, nil
	}

	created, err := svc.Events.Insert(s.calendarID, ev).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func eventSummary(e storage.Event) string {
	if e.VisitorName != "" {
		return "Showing with " + e.VisitorName
	}
	return "Property showing"
}
