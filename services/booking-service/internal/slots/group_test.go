package slots

import (
	"testing"
	"time"
)

func slotAt(day time.Time, hour, min int) Slot {
	start := day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	return Slot{StartTime: start, DisplayTime: start.Format(timeLayout), Available: true}
}

func TestGroupByPartOfDay_Partition(t *testing.T) {
	day := monday(time.UTC)
	in := []Slot{
		slotAt(day, 0, 0),
		slotAt(day, 9, 0),
		slotAt(day, 11, 59),
		slotAt(day, 12, 0),
		slotAt(day, 16, 59),
		slotAt(day, 17, 0),
		slotAt(day, 23, 45),
	}

	parts := GroupByPartOfDay(in)
	if got := len(parts.Morning); got != 3 {
		t.Errorf("morning: got %d slots, want 3", got)
	}
	if got := len(parts.Afternoon); got != 2 {
		t.Errorf("afternoon: got %d slots, want 2", got)
	}
	if got := len(parts.Evening); got != 2 {
		t.Errorf("evening: got %d slots, want 2", got)
	}

	// Disjoint buckets whose concatenation preserves the input order.
	var all []Slot
	all = append(all, parts.Morning...)
	all = append(all, parts.Afternoon...)
	all = append(all, parts.Evening...)
	if len(all) != len(in) {
		t.Fatalf("partition dropped or duplicated slots: %d != %d", len(all), len(in))
	}
	for i := range in {
		if !all[i].StartTime.Equal(in[i].StartTime) {
			t.Fatalf("order not preserved at %d: got %s, want %s", i, all[i].StartTime, in[i].StartTime)
		}
	}
}

func TestGroupByPartOfDay_Empty(t *testing.T) {
	parts := GroupByPartOfDay(nil)
	if len(parts.Morning)+len(parts.Afternoon)+len(parts.Evening) != 0 {
		t.Fatal("empty input should produce empty buckets")
	}
}

func TestCountBookingsInCurrentWeek(t *testing.T) {
	loc := time.UTC
	// Wednesday 2026-01-28; the week runs Sunday 2026-01-25 through Saturday 2026-01-31.
	ref := time.Date(2026, 1, 28, 15, 30, 0, 0, loc)

	bookings := []Booking{
		{StartTime: time.Date(2026, 1, 24, 23, 59, 0, 0, loc)}, // previous Saturday
		{StartTime: time.Date(2026, 1, 25, 0, 0, 0, 0, loc)},   // Sunday midnight, inclusive
		{StartTime: time.Date(2026, 1, 28, 10, 0, 0, 0, loc)},  // same day
		{StartTime: time.Date(2026, 1, 31, 23, 0, 0, 0, loc)},  // Saturday night
		{StartTime: time.Date(2026, 2, 1, 0, 0, 0, 0, loc)},    // next Sunday, exclusive
	}

	if got := CountBookingsInCurrentWeek(bookings, ref); got != 3 {
		t.Fatalf("got %d bookings in week, want 3", got)
	}
}

func TestCountBookingsInCurrentWeek_RefOnSunday(t *testing.T) {
	loc := time.UTC
	ref := time.Date(2026, 1, 25, 8, 0, 0, 0, loc) // Sunday morning

	bookings := []Booking{
		{StartTime: time.Date(2026, 1, 25, 0, 0, 0, 0, loc)},
		{StartTime: time.Date(2026, 1, 24, 12, 0, 0, 0, loc)},
	}
	if got := CountBookingsInCurrentWeek(bookings, ref); got != 1 {
		t.Fatalf("got %d, want 1 (week starts on the reference Sunday itself)", got)
	}
}
