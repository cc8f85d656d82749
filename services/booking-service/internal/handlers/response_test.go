package handlers

import (
	"net/url"
	"testing"
	"time"

	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/slots"
)

func TestFallbackListingConfigDefaults(t *testing.T) {
	cfg, err := fallbackListingConfig(url.Values{})
	if err != nil {
		t.Fatalf("fallbackListingConfig failed: %v", err)
	}
	if cfg.Timezone != "UTC" {
		t.Fatalf("expected UTC default, got %q", cfg.Timezone)
	}
	if cfg.ShowingDurationMinutes != 30 || cfg.BufferMinutes != 15 || cfg.DaysAhead != 7 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Week) != 7 {
		t.Fatalf("expected 7 weekday entries, got %d", len(cfg.Week))
	}
	if cfg.Week[time.Saturday].Enabled || cfg.Week[time.Sunday].Enabled {
		t.Fatal("weekend should be disabled by default")
	}
	if !cfg.Week[time.Wednesday].Enabled {
		t.Fatal("weekdays should be enabled by default")
	}
}

func TestFallbackListingConfigRejectsBadValues(t *testing.T) {
	cases := []url.Values{
		{"duration_minutes": {"0"}},
		{"duration_minutes": {"abc"}},
		{"buffer_minutes": {"-1"}},
		{"days_ahead": {"-2"}},
	}
	for _, q := range cases {
		if _, err := fallbackListingConfig(q); err == nil {
			t.Fatalf("expected error for %v", q)
		}
	}
}

func TestDayGroupsByPartOfDay(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, time.January, 26, 0, 0, 0, 0, loc)
	mk := func(hour, min int) slots.Slot {
		st := day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
		return slots.Slot{StartTime: st, DisplayTime: st.Format("3:04 PM"), Available: true}
	}
	groups := []slots.DayGroup{{
		DateLabel: "Monday, Jan 26",
		DateKey:   "2026-01-26",
		Slots:     []slots.Slot{mk(9, 0), mk(13, 0), mk(18, 30)},
	}}

	items := dayGroupsByPartOfDay(groups)
	if len(items) != 1 {
		t.Fatalf("expected 1 day, got %d", len(items))
	}
	got := items[0]
	if len(got.Morning) != 1 || len(got.Afternoon) != 1 || len(got.Evening) != 1 {
		t.Fatalf("unexpected partition: %d/%d/%d", len(got.Morning), len(got.Afternoon), len(got.Evening))
	}
	if got.Morning[0].DisplayTime != "9:00 AM" {
		t.Fatalf("unexpected display time %q", got.Morning[0].DisplayTime)
	}
	if got.DateKey != "2026-01-26" {
		t.Fatalf("unexpected date key %q", got.DateKey)
	}
}
