package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nathan-pruitt/openhouse/libs/eventbus"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/agentcfg"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/model"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/policy"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/slots"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/storage"
)

type ShowingHandler struct {
	repo       *storage.ShowingRepository
	outboxRepo *eventbus.OutboxRepository
	logger     *slog.Logger
	policy     policy.Provider
	agents     agentcfg.Provider
	defaults   []time.Duration
}

func NewShowingHandler(repo *storage.ShowingRepository, outboxRepo *eventbus.OutboxRepository, logger *slog.Logger, policyProvider policy.Provider, agentProvider agentcfg.Provider, defaults []time.Duration) *ShowingHandler {
	return &ShowingHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		logger:     logger,
		policy:     policyProvider,
		agents:     agentProvider,
		defaults:   defaults,
	}
}

type bookShowingRequest struct {
	AgentID      string `json:"agent_id"`
	ListingID    string `json:"listing_id"`
	VisitorName  string `json:"visitor_name"`
	VisitorEmail string `json:"visitor_email"`
	VisitorPhone string `json:"visitor_phone"`
	StartTime    string `json:"start_time"`
}

type bookShowingResponse struct {
	ShowingID string `json:"showing_id"`
}

type cancelShowingRequest struct {
	AgentID   string `json:"agent_id"`
	ShowingID string `json:"showing_id"`
	Reason    string `json:"reason"`
}

type cancelShowingResponse struct {
	ShowingID   string `json:"showing_id"`
	Status      string `json:"status"`
	CancelledAt string `json:"cancelled_at"`
}

type listShowingItem struct {
	ShowingID       string `json:"showing_id"`
	ListingID       string `json:"listing_id"`
	VisitorName     string `json:"visitor_name"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	CancelledAt     string `json:"cancelled_at,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// Slots returns every bookable start for the listing over its booking
// window, grouped by day. With group_by=part_of_day each day's slots are
// nested under morning/afternoon/evening.
func (h *ShowingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	agentID := strings.TrimSpace(r.URL.Query().Get("agent_id"))
	listingID := strings.TrimSpace(r.URL.Query().Get("listing_id"))
	if agentID == "" || listingID == "" {
		http.Error(w, "agent_id and listing_id are required", http.StatusBadRequest)
		return
	}

	cfg, err := h.resolveListingConfig(r.Context(), agentID, listingID, r)
	if err != nil {
		http.Error(w, "agent configuration unavailable", http.StatusServiceUnavailable)
		return
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		http.Error(w, "invalid agent timezone", http.StatusUnprocessableEntity)
		return
	}

	now := time.Now().In(loc)
	groups, status, err := h.generateSlots(r.Context(), agentID, cfg, loc, now)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	var resp any
	if strings.TrimSpace(r.URL.Query().Get("group_by")) == "part_of_day" {
		resp = dayGroupsByPartOfDay(groups)
	} else {
		resp = dayGroupItems(groups)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// generateSlots runs the engine against the agent's configuration plus the
// booked showings and time-off blocks currently on the calendar.
func (h *ShowingHandler) generateSlots(ctx context.Context, agentID string, cfg agentcfg.ListingConfig, loc *time.Location, now time.Time) ([]slots.DayGroup, int, error) {
	params := slots.Params{
		ShowingDurationMinutes: cfg.ShowingDurationMinutes,
		BufferMinutes:          cfg.BufferMinutes,
		DaysAhead:              cfg.DaysAhead,
	}
	if err := slots.Validate(cfg.Week, params, loc); err != nil {
		return nil, http.StatusUnprocessableEntity, err
	}

	year, month, day := now.Date()
	anchor := time.Date(year, month, day, 0, 0, 0, 0, loc)
	horizonEnd := anchor.AddDate(0, 0, cfg.DaysAhead+1)

	showings, err := h.repo.ListActiveInRange(ctx, agentID, anchor, horizonEnd)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("failed to load booked showings")
	}

	bookings := make([]slots.Booking, 0, len(showings)+len(cfg.TimeOff))
	for _, s := range showings {
		bookings = append(bookings, slots.Booking{StartTime: s.StartTime, DurationMinutes: s.DurationMinutes})
	}
	for _, t := range cfg.TimeOff {
		mins := int(t.End.Sub(t.Start) / time.Minute)
		if mins <= 0 {
			continue
		}
		bookings = append(bookings, slots.Booking{StartTime: t.Start, DurationMinutes: mins})
	}

	groups, err := slots.Generate(cfg.Week, bookings, params, loc, now)
	if err != nil {
		var cfgErr *slots.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, http.StatusUnprocessableEntity, err
		}
		return nil, http.StatusInternalServerError, errors.New("slot generation failed")
	}
	return groups, http.StatusOK, nil
}

func (h *ShowingHandler) Book(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req bookShowingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	req.AgentID = strings.TrimSpace(req.AgentID)
	req.ListingID = strings.TrimSpace(req.ListingID)
	req.VisitorName = strings.TrimSpace(req.VisitorName)

	if req.AgentID == "" || req.ListingID == "" || req.VisitorName == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		http.Error(w, "invalid start_time", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idempotencyKey != "" {
		rec, exists, err := h.repo.LockIdempotencyKey(ctx, tx, req.AgentID, idempotencyKey)
		if err != nil {
			http.Error(w, "failed to lock idempotency key", http.StatusInternalServerError)
			return
		}
		if exists && rec.StatusCode > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(rec.StatusCode)
			if len(rec.ResponsePayload) > 0 {
				_, _ = w.Write(rec.ResponsePayload)
				return
			}
			_ = json.NewEncoder(w).Encode(bookShowingResponse{ShowingID: rec.ShowingID})
			return
		}
	}

	durationMinutes, ok, err := h.validateRequestedSlot(ctx, req.AgentID, req.ListingID, startTime)
	if err != nil {
		// Neither case finalizes idempotency: a dependency outage clears
		// on its own, a misconfiguration clears once the agent fixes the
		// availability settings, and the same key should then succeed.
		if errors.Is(err, errAgentMisconfigured) {
			http.Error(w, errAgentMisconfigured.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "agent configuration unavailable", http.StatusServiceUnavailable)
		return
	}
	if !ok {
		if idempotencyKey != "" {
			if h.finalizeIdempotencyError(ctx, tx, req.AgentID, idempotencyKey, http.StatusUnprocessableEntity, "requested time is not an available slot") {
				_ = tx.Commit(ctx)
				return
			}
		}
		http.Error(w, "requested time is not an available slot", http.StatusUnprocessableEntity)
		return
	}

	// Entitlement gate: trial accounts get a weekly showing cap, enforced
	// against the event-carried billing cache.
	if err := h.enforceWeeklyShowingLimit(ctx, tx, req.AgentID, startTime); err != nil {
		if errors.Is(err, errPaymentRequired) {
			if idempotencyKey != "" {
				if h.finalizeIdempotencyError(ctx, tx, req.AgentID, idempotencyKey, http.StatusPaymentRequired, err.Error()) {
					_ = tx.Commit(ctx)
					return
				}
			}
			http.Error(w, err.Error(), http.StatusPaymentRequired)
			return
		}
		http.Error(w, "entitlements check failed", http.StatusInternalServerError)
		return
	}

	showing := &model.Showing{
		AgentID:         req.AgentID,
		ListingID:       req.ListingID,
		VisitorName:     req.VisitorName,
		VisitorEmail:    strings.TrimSpace(req.VisitorEmail),
		VisitorPhone:    strings.TrimSpace(req.VisitorPhone),
		StartTime:       startTime,
		DurationMinutes: durationMinutes,
		Status:          "booked",
	}

	id, err := h.repo.Create(ctx, tx, showing)
	if err != nil {
		if storage.IsConflict(err) {
			http.Error(w, "time slot already booked", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create showing", http.StatusInternalServerError)
		return
	}

	evtPayload, err := json.Marshal(map[string]any{
		"showing_id":       id,
		"agent_id":         showing.AgentID,
		"listing_id":       showing.ListingID,
		"visitor_name":     showing.VisitorName,
		"visitor_email":    showing.VisitorEmail,
		"visitor_phone":    showing.VisitorPhone,
		"start_time":       showing.StartTime.UTC().Format(time.RFC3339),
		"duration_minutes": showing.DurationMinutes,
	})
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}

	if err := h.outboxRepo.Insert(ctx, tx, eventbus.Event{
		AggregateType: "showing",
		AggregateID:   id,
		EventType:     eventbus.EventShowingBooked,
		Payload:       evtPayload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	offsets := h.defaults
	if h.policy != nil {
		if policyOffsets, err := h.policy.ReminderOffsets(r.Context(), req.AgentID); err == nil && len(policyOffsets) > 0 {
			offsets = policyOffsets
		} else if err != nil {
			h.logger.Warn("policy offsets fetch failed; using defaults", "err", err)
		}
	}
	for _, offset := range offsets {
		remindAt := showing.StartTime.Add(-offset)
		if remindAt.Before(now) {
			continue
		}
		h.enqueueReminder(ctx, tx, id, showing, remindAt, "email", showing.VisitorEmail)
		h.enqueueReminder(ctx, tx, id, showing, remindAt, "sms", showing.VisitorPhone)
	}

	respBody, err := json.Marshal(bookShowingResponse{ShowingID: id})
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	if idempotencyKey != "" {
		if err := h.repo.FinalizeIdempotency(ctx, tx, req.AgentID, idempotencyKey, id, http.StatusCreated, respBody); err != nil {
			http.Error(w, "failed to finalize idempotency key", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(respBody)
}

var errPaymentRequired = errors.New("weekly showing limit reached (upgrade required)")

// errAgentMisconfigured marks failures the booker cannot fix by picking a
// different time: the agent's availability settings are invalid.
var errAgentMisconfigured = errors.New("agent availability configuration is invalid")

// defaultTrialWeeklyShowings applies when no entitlement event has arrived
// yet, which is the state of every fresh signup.
const defaultTrialWeeklyShowings = 10

func (h *ShowingHandler) enforceWeeklyShowingLimit(ctx context.Context, tx pgx.Tx, agentID string, start time.Time) error {
	ent, ok, err := h.repo.GetAgentEntitlements(ctx, tx, agentID)
	if err != nil {
		return err
	}
	max := defaultTrialWeeklyShowings
	if ok {
		max = ent.MaxWeeklyShowings
	}
	if max <= 0 {
		// Paid tiers carry no weekly cap.
		return nil
	}

	// The cap applies to the Sunday-anchored week containing the new
	// showing, counted in the timestamp's own location.
	showings, err := h.repo.ListActiveInRangeTx(ctx, tx, agentID, start.AddDate(0, 0, -7), start.AddDate(0, 0, 7))
	if err != nil {
		return err
	}
	bookings := make([]slots.Booking, 0, len(showings))
	for _, s := range showings {
		bookings = append(bookings, slots.Booking{StartTime: s.StartTime, DurationMinutes: s.DurationMinutes})
	}
	if slots.CountBookingsInCurrentWeek(bookings, start) >= max {
		return errPaymentRequired
	}
	return nil
}

func (h *ShowingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req cancelShowingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	// The gateway sets X-Agent-Id from verified claims; the body field is
	// only honored for direct internal calls.
	if hdr := strings.TrimSpace(r.Header.Get("X-Agent-Id")); hdr != "" {
		req.AgentID = hdr
	} else {
		req.AgentID = strings.TrimSpace(req.AgentID)
	}
	req.ShowingID = strings.TrimSpace(req.ShowingID)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.AgentID == "" || req.ShowingID == "" {
		http.Error(w, "agent_id and showing_id required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	showing, err := h.repo.GetShowingForUpdate(ctx, tx, req.AgentID, req.ShowingID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "showing not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load showing", http.StatusInternalServerError)
		return
	}

	if showing.Status == "cancelled" && showing.CancelledAt != nil {
		h.writeCancelResponse(w, showing.ID, showing.CancelledAt.UTC())
		return
	}
	if showing.Status != "booked" {
		http.Error(w, "showing cannot be cancelled", http.StatusConflict)
		return
	}

	cancelledAt, err := h.repo.CancelShowing(ctx, tx, req.AgentID, showing.ID, req.Reason)
	if err != nil {
		http.Error(w, "failed to cancel showing", http.StatusInternalServerError)
		return
	}

	cancelPayload, err := json.Marshal(map[string]any{
		"showing_id":       showing.ID,
		"agent_id":         showing.AgentID,
		"listing_id":       showing.ListingID,
		"visitor_email":    showing.VisitorEmail,
		"start_time":       showing.StartTime.UTC().Format(time.RFC3339),
		"duration_minutes": showing.DurationMinutes,
		"cancelled_at":     cancelledAt.UTC().Format(time.RFC3339),
		"reason":           req.Reason,
	})
	if err != nil {
		http.Error(w, "failed to build cancellation event", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, eventbus.Event{
		AggregateType: "showing",
		AggregateID:   showing.ID,
		EventType:     eventbus.EventShowingCancelled,
		Payload:       cancelPayload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	h.writeCancelResponse(w, showing.ID, cancelledAt.UTC())
}

func (h *ShowingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	agentID := strings.TrimSpace(r.Header.Get("X-Agent-Id"))
	if agentID == "" {
		agentID = strings.TrimSpace(r.URL.Query().Get("agent_id"))
	}
	if agentID == "" {
		http.Error(w, "agent_id required", http.StatusBadRequest)
		return
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	showings, err := h.repo.ListByAgent(r.Context(), agentID, limit)
	if err != nil {
		http.Error(w, "failed to list showings", http.StatusInternalServerError)
		return
	}

	items := make([]listShowingItem, 0, len(showings))
	for _, s := range showings {
		item := listShowingItem{
			ShowingID:       s.ID,
			ListingID:       s.ListingID,
			VisitorName:     s.VisitorName,
			StartTime:       s.StartTime.UTC().Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
			Status:          s.Status,
			CreatedAt:       s.CreatedAt.UTC().Format(time.RFC3339),
		}
		if s.CancelledAt != nil {
			item.CancelledAt = s.CancelledAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}

	body, err := json.Marshal(items)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// resolveListingConfig asks agent-service when the gRPC provider is built
// in, and otherwise accepts explicit query parameters so booking-service
// works standalone in dev.
func (h *ShowingHandler) resolveListingConfig(ctx context.Context, agentID, listingID string, r *http.Request) (agentcfg.ListingConfig, error) {
	if h.agents != nil {
		reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		cfg, err := h.agents.GetListingConfig(reqCtx, agentID, listingID)
		if err != nil {
			return agentcfg.ListingConfig{}, fmt.Errorf("listing config fetch failed: %w", err)
		}
		return cfg, nil
	}
	return fallbackListingConfig(r.URL.Query())
}

// validateRequestedSlot confirms the requested start is one of the
// available generated slots and returns the showing duration to book.
// Invalid availability settings surface as errAgentMisconfigured rather
// than a plain rejection, so the booker is not told to pick another time
// when no time would work. With no provider it trusts the request and
// relies on the DB exclusion constraint plus a default duration.
func (h *ShowingHandler) validateRequestedSlot(ctx context.Context, agentID, listingID string, start time.Time) (int, bool, error) {
	const defaultDuration = 30
	if h.agents == nil {
		return defaultDuration, true, nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	cfg, err := h.agents.GetListingConfig(reqCtx, agentID, listingID)
	if err != nil {
		return 0, false, fmt.Errorf("listing config fetch failed: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return 0, false, fmt.Errorf("%w: bad timezone %q", errAgentMisconfigured, cfg.Timezone)
	}

	groups, _, err := h.generateSlots(ctx, agentID, cfg, loc, time.Now().In(loc))
	if err != nil {
		var cfgErr *slots.ConfigError
		if errors.As(err, &cfgErr) {
			return 0, false, fmt.Errorf("%w: %v", errAgentMisconfigured, cfgErr)
		}
		return 0, false, err
	}
	for _, g := range groups {
		for _, s := range g.Slots {
			if s.Available && s.StartTime.Equal(start) {
				return cfg.ShowingDurationMinutes, true, nil
			}
		}
	}
	return 0, false, nil
}

func (h *ShowingHandler) enqueueReminder(ctx context.Context, tx pgx.Tx, showingID string, s *model.Showing, remindAt time.Time, channel string, recipient string) {
	if strings.TrimSpace(recipient) == "" {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"showing_id": showingID,
		"agent_id":   s.AgentID,
		"channel":    channel,
		"recipient":  recipient,
		"remind_at":  remindAt.UTC().Format(time.RFC3339),
		"template_data": map[string]any{
			"visitor_name": s.VisitorName,
			"listing_id":   s.ListingID,
			"start_time":   s.StartTime.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		h.logger.Error("failed to build reminder payload", "err", err)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, eventbus.Event{
		AggregateType: "showing",
		AggregateID:   showingID,
		EventType:     eventbus.EventReminderRequested,
		Payload:       payload,
	}); err != nil {
		h.logger.Error("failed to enqueue reminder", "err", err)
	}
}

func (h *ShowingHandler) writeCancelResponse(w http.ResponseWriter, showingID string, cancelledAt time.Time) {
	resp := cancelShowingResponse{
		ShowingID:   showingID,
		Status:      "cancelled",
		CancelledAt: cancelledAt.Format(time.RFC3339),
	}
	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *ShowingHandler) finalizeIdempotencyError(ctx context.Context, tx pgx.Tx, agentID, key string, statusCode int, msg string) bool {
	body, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return false
	}
	if err := h.repo.FinalizeIdempotency(ctx, tx, agentID, key, "", statusCode, body); err != nil {
		h.logger.Error("failed to finalize idempotency (error)", "err", err)
		return false
	}
	return true
}
