package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/agentcfg"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/slots"
)

type staticProvider struct {
	cfg agentcfg.ListingConfig
	err error
}

func (p staticProvider) GetListingConfig(ctx context.Context, agentID, listingID string) (agentcfg.ListingConfig, error) {
	return p.cfg, p.err
}

func weekdayConfig() agentcfg.ListingConfig {
	week := slots.WeekSchedule{}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		week[wd] = slots.DayHours{Start: "09:00", End: "17:00", Enabled: true}
	}
	return agentcfg.ListingConfig{
		Timezone:               "UTC",
		Week:                   week,
		ShowingDurationMinutes: 30,
		BufferMinutes:          15,
		DaysAhead:              7,
	}
}

func TestValidateRequestedSlot_BadTimezoneIsMisconfiguration(t *testing.T) {
	cfg := weekdayConfig()
	cfg.Timezone = "Mars/Olympus_Mons"
	h := &ShowingHandler{agents: staticProvider{cfg: cfg}}

	_, ok, err := h.validateRequestedSlot(context.Background(), "agent-1", "listing-1", time.Now())
	if ok {
		t.Fatal("a misconfigured listing must not validate")
	}
	if !errors.Is(err, errAgentMisconfigured) {
		t.Fatalf("expected errAgentMisconfigured, got %v", err)
	}
}

func TestValidateRequestedSlot_InvalidHoursIsMisconfiguration(t *testing.T) {
	cfg := weekdayConfig()
	cfg.Week[time.Monday] = slots.DayHours{Start: "17:00", End: "09:00", Enabled: true}
	h := &ShowingHandler{agents: staticProvider{cfg: cfg}}

	_, ok, err := h.validateRequestedSlot(context.Background(), "agent-1", "listing-1", time.Now())
	if ok {
		t.Fatal("a misconfigured listing must not validate")
	}
	if !errors.Is(err, errAgentMisconfigured) {
		t.Fatalf("expected errAgentMisconfigured, got %v", err)
	}
}

func TestValidateRequestedSlot_ProviderOutageIsNotMisconfiguration(t *testing.T) {
	h := &ShowingHandler{agents: staticProvider{err: errors.New("dial tcp: connection refused")}}

	_, ok, err := h.validateRequestedSlot(context.Background(), "agent-1", "listing-1", time.Now())
	if ok {
		t.Fatal("an unreachable provider must not validate")
	}
	if err == nil || errors.Is(err, errAgentMisconfigured) {
		t.Fatalf("expected a plain dependency error, got %v", err)
	}
}

func TestValidateRequestedSlot_NoProviderTrustsRequest(t *testing.T) {
	h := &ShowingHandler{}

	mins, ok, err := h.validateRequestedSlot(context.Background(), "agent-1", "listing-1", time.Now())
	if err != nil || !ok {
		t.Fatalf("expected fallback acceptance, got ok=%v err=%v", ok, err)
	}
	if mins != 30 {
		t.Fatalf("expected the default duration, got %d", mins)
	}
}
