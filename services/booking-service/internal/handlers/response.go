package handlers

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/agentcfg"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/slots"
)

type slotItem struct {
	StartTime   string `json:"start_time"`
	DisplayTime string `json:"display_time"`
	Available   bool   `json:"available"`
}

type dayGroupItem struct {
	DateLabel string     `json:"date_label"`
	DateKey   string     `json:"date_key"`
	Slots     []slotItem `json:"slots"`
}

type dayPartsItem struct {
	DateLabel string     `json:"date_label"`
	DateKey   string     `json:"date_key"`
	Morning   []slotItem `json:"morning"`
	Afternoon []slotItem `json:"afternoon"`
	Evening   []slotItem `json:"evening"`
}

func dayGroupItems(groups []slots.DayGroup) []dayGroupItem {
	items := make([]dayGroupItem, 0, len(groups))
	for _, g := range groups {
		items = append(items, dayGroupItem{
			DateLabel: g.DateLabel,
			DateKey:   g.DateKey,
			Slots:     slotItems(g.Slots),
		})
	}
	return items
}

func dayGroupsByPartOfDay(groups []slots.DayGroup) []dayPartsItem {
	items := make([]dayPartsItem, 0, len(groups))
	for _, g := range groups {
		parts := slots.GroupByPartOfDay(g.Slots)
		items = append(items, dayPartsItem{
			DateLabel: g.DateLabel,
			DateKey:   g.DateKey,
			Morning:   slotItems(parts.Morning),
			Afternoon: slotItems(parts.Afternoon),
			Evening:   slotItems(parts.Evening),
		})
	}
	return items
}

func slotItems(in []slots.Slot) []slotItem {
	out := make([]slotItem, 0, len(in))
	for _, s := range in {
		out = append(out, slotItem{
			StartTime:   s.StartTime.Format(time.RFC3339),
			DisplayTime: s.DisplayTime,
			Available:   s.Available,
		})
	}
	return out
}

// fallbackListingConfig builds a configuration from query parameters for
// builds without the agent-service provider. Weekdays run workday hours,
// weekends are closed.
func fallbackListingConfig(q url.Values) (agentcfg.ListingConfig, error) {
	cfg := agentcfg.ListingConfig{
		Timezone:               "UTC",
		ShowingDurationMinutes: 30,
		BufferMinutes:          15,
		DaysAhead:              7,
	}
	if v := strings.TrimSpace(q.Get("timezone")); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(q.Get("duration_minutes")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 8*60 {
			return agentcfg.ListingConfig{}, errors.New("invalid duration_minutes")
		}
		cfg.ShowingDurationMinutes = n
	}
	if v := strings.TrimSpace(q.Get("buffer_minutes")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 120 {
			return agentcfg.ListingConfig{}, errors.New("invalid buffer_minutes")
		}
		cfg.BufferMinutes = n
	}
	if v := strings.TrimSpace(q.Get("days_ahead")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 60 {
			return agentcfg.ListingConfig{}, errors.New("invalid days_ahead")
		}
		cfg.DaysAhead = n
	}

	workStart := strings.TrimSpace(q.Get("workday_start"))
	if workStart == "" {
		workStart = "09:00"
	}
	workEnd := strings.TrimSpace(q.Get("workday_end"))
	if workEnd == "" {
		workEnd = "17:00"
	}

	cfg.Week = slots.WeekSchedule{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		enabled := d != time.Sunday && d != time.Saturday
		cfg.Week[d] = slots.DayHours{Start: workStart, End: workEnd, Enabled: enabled}
	}
	return cfg, nil
}
