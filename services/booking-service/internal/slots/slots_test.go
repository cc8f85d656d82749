package slots

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// monday is a fixed Monday used across tests (2026-01-26).
func monday(loc *time.Location) time.Time {
	return time.Date(2026, 1, 26, 0, 0, 0, 0, loc)
}

func weekdaysOnly() WeekSchedule {
	sched := WeekSchedule{}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		sched[wd] = DayHours{Start: "09:00", End: "17:00", Enabled: true}
	}
	sched[time.Saturday] = DayHours{Enabled: false}
	sched[time.Sunday] = DayHours{Enabled: false}
	return sched
}

func TestGenerate_FixedGrid(t *testing.T) {
	loc := time.UTC
	day := monday(loc)
	sched := WeekSchedule{time.Monday: {Start: "09:00", End: "17:00", Enabled: true}}
	p := Params{ShowingDurationMinutes: 30, BufferMinutes: 15, DaysAhead: 1}

	groups, err := Generate(sched, nil, p, loc, day.Add(8*time.Hour))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 day group, got %d", len(groups))
	}

	g := groups[0]
	if g.DateKey != "2026-01-26" {
		t.Errorf("date key: got %q", g.DateKey)
	}
	if g.DateLabel != "Monday, Jan 26" {
		t.Errorf("date label: got %q", g.DateLabel)
	}

	// 09:00-17:00 on a 45-minute grid: 09:00, 09:45, ..., 16:30.
	if len(g.Slots) != 11 {
		t.Fatalf("expected 11 slots, got %d", len(g.Slots))
	}
	if !g.Slots[0].StartTime.Equal(day.Add(9 * time.Hour)) {
		t.Errorf("first slot: got %s", g.Slots[0].StartTime)
	}
	if g.Slots[0].DisplayTime != "9:00 AM" {
		t.Errorf("display time: got %q", g.Slots[0].DisplayTime)
	}
	last := g.Slots[len(g.Slots)-1]
	if !last.StartTime.Equal(day.Add(16*time.Hour + 30*time.Minute)) {
		t.Errorf("last slot: got %s", last.StartTime)
	}
	step := 45 * time.Minute
	for i, s := range g.Slots {
		if !s.Available {
			t.Errorf("slot %d should be available", i)
		}
		if i > 0 && s.StartTime.Sub(g.Slots[i-1].StartTime) != step {
			t.Errorf("slot %d: spacing %s, want %s", i, s.StartTime.Sub(g.Slots[i-1].StartTime), step)
		}
	}
}

func TestGenerate_ExistingBookingBlocksSlot(t *testing.T) {
	loc := time.UTC
	day := monday(loc)
	sched := WeekSchedule{time.Monday: {Start: "09:00", End: "17:00", Enabled: true}}
	p := Params{ShowingDurationMinutes: 30, BufferMinutes: 15, DaysAhead: 1}
	booked := []Booking{{StartTime: day.Add(10 * time.Hour), DurationMinutes: 30}}

	groups, err := Generate(sched, booked, p, loc, day.Add(8*time.Hour))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	avail := map[string]bool{}
	for _, s := range groups[0].Slots {
		avail[s.DisplayTime] = s.Available
	}
	if avail["10:00 AM"] {
		t.Error("10:00 slot should be blocked by the existing booking")
	}
	if !avail["9:45 AM"] || !avail["10:30 AM"] {
		t.Error("neighbouring slots should stay available (buffer is already in the grid step)")
	}
}

func TestGenerate_LongBookingCoversContainedStartsOnly(t *testing.T) {
	loc := time.UTC
	day := monday(loc)
	sched := WeekSchedule{time.Monday: {Start: "09:00", End: "17:00", Enabled: true}}
	p := Params{ShowingDurationMinutes: 30, BufferMinutes: 15, DaysAhead: 1}
	// 09:50-10:50: contains the 10:00 and 10:30 grid starts, not 09:45 or 11:15.
	booked := []Booking{{StartTime: day.Add(9*time.Hour + 50*time.Minute), DurationMinutes: 60}}

	groups, err := Generate(sched, booked, p, loc, day.Add(8*time.Hour))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	avail := map[string]bool{}
	for _, s := range groups[0].Slots {
		avail[s.DisplayTime] = s.Available
	}
	for _, tc := range []struct {
		at   string
		want bool
	}{
		{"9:45 AM", true},
		{"10:00 AM", false},
		{"10:30 AM", false},
		{"11:15 AM", true},
	} {
		if avail[tc.at] != tc.want {
			t.Errorf("slot %s: available=%v, want %v", tc.at, avail[tc.at], tc.want)
		}
	}
}

func TestGenerate_PastSlotsUnavailable(t *testing.T) {
	loc := time.UTC
	day := monday(loc)
	sched := WeekSchedule{time.Monday: {Start: "09:00", End: "17:00", Enabled: true}}
	p := Params{ShowingDurationMinutes: 30, BufferMinutes: 15, DaysAhead: 1}

	now := day.Add(10*time.Hour + 50*time.Minute)
	groups, err := Generate(sched, nil, p, loc, now)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, s := range groups[0].Slots {
		if s.StartTime.Before(now) && s.Available {
			t.Errorf("past slot %s marked available", s.DisplayTime)
		}
		if !s.StartTime.Before(now) && !s.Available {
			t.Errorf("future slot %s marked unavailable", s.DisplayTime)
		}
	}
	// 09:00 through 10:30 are past; 11:15 onward remain.
	if groups[0].Slots[2].Available {
		t.Error("10:30 slot should be past")
	}
	if !groups[0].Slots[3].Available {
		t.Error("11:15 slot should be available")
	}
}

func TestGenerate_DisabledDaySkipped(t *testing.T) {
	loc := time.UTC
	day := monday(loc)
	sched := weekdaysOnly()
	sched[time.Tuesday] = DayHours{Start: "09:00", End: "17:00", Enabled: false}
	p := Params{ShowingDurationMinutes: 30, BufferMinutes: 0, DaysAhead: 7}

	groups, err := Generate(sched, nil, p, loc, day)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// Mon, Wed, Thu, Fri enabled; no Tuesday, no weekend.
	if len(groups) != 4 {
		t.Fatalf("expected 4 day groups, got %d", len(groups))
	}
	for _, g := range groups {
		if g.DateKey == "2026-01-27" {
			t.Error("disabled Tuesday should contribute no day group")
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	loc := time.UTC
	day := monday(loc)
	sched := weekdaysOnly()
	p := Params{ShowingDurationMinutes: 20, BufferMinutes: 10, DaysAhead: 14}
	booked := []Booking{
		{StartTime: day.Add(9 * time.Hour), DurationMinutes: 20},
		{StartTime: day.AddDate(0, 0, 2).Add(15 * time.Hour)},
	}
	now := day.Add(11 * time.Hour)

	first, err := Generate(sched, booked, p, loc, now)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := Generate(sched, booked, p, loc, now)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated invocations should produce identical output")
	}
}

func TestGenerate_AgentTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	sched := WeekSchedule{time.Monday: {Start: "09:00", End: "12:00", Enabled: true}}
	p := Params{ShowingDurationMinutes: 60, BufferMinutes: 0, DaysAhead: 1}

	// 13:00 UTC on the Monday is 08:00 in New York: still the same local day.
	now := time.Date(2026, 1, 26, 13, 0, 0, 0, time.UTC)
	groups, err := Generate(sched, nil, p, loc, now)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Slots) != 3 {
		t.Fatalf("expected 3 slots on the local Monday, got %+v", groups)
	}
	first := groups[0].Slots[0]
	if first.DisplayTime != "9:00 AM" {
		t.Errorf("display time should be agent-local: got %q", first.DisplayTime)
	}
	if !first.StartTime.Equal(time.Date(2026, 1, 26, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("9:00 AM EST should be 14:00 UTC, got %s", first.StartTime.UTC())
	}
}

func TestGenerate_DSTTransitionKeepsWallClockWindow(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	sched := WeekSchedule{time.Sunday: {Start: "09:00", End: "17:00", Enabled: true}}
	p := Params{ShowingDurationMinutes: 60, BufferMinutes: 0, DaysAhead: 1}

	// 2026-03-08 is the spring-forward Sunday in New York: the clocks skip
	// 02:00-03:00, so midnight plus nine hours lands at 10:00 AM. The window
	// must still open at the 9:00 AM wall clock.
	now := time.Date(2026, 3, 8, 1, 0, 0, 0, loc)
	groups, err := Generate(sched, nil, p, loc, now)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 day group, got %d", len(groups))
	}
	g := groups[0]
	if len(g.Slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(g.Slots))
	}
	if g.Slots[0].DisplayTime != "9:00 AM" {
		t.Errorf("first slot: got %q, want %q", g.Slots[0].DisplayTime, "9:00 AM")
	}
	// 9:00 AM EDT is 13:00 UTC.
	if !g.Slots[0].StartTime.Equal(time.Date(2026, 3, 8, 13, 0, 0, 0, time.UTC)) {
		t.Errorf("first slot instant: got %s", g.Slots[0].StartTime.UTC())
	}
	dayEnd := time.Date(2026, 3, 8, 17, 0, 0, 0, loc)
	for _, s := range g.Slots {
		if !s.StartTime.Before(dayEnd) {
			t.Errorf("slot %s starts at or after the 5:00 PM close", s.DisplayTime)
		}
	}

	// Fall-back Sunday (2026-11-01, clocks repeat 01:00-02:00): still eight
	// slots opening at the 9:00 AM wall clock, now EST (14:00 UTC).
	now = time.Date(2026, 11, 1, 0, 30, 0, 0, loc)
	groups, err = Generate(sched, nil, p, loc, now)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	g = groups[0]
	if len(g.Slots) != 8 {
		t.Fatalf("fall-back day: expected 8 slots, got %d", len(g.Slots))
	}
	if !g.Slots[0].StartTime.Equal(time.Date(2026, 11, 1, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("fall-back first slot instant: got %s", g.Slots[0].StartTime.UTC())
	}
}

func TestGenerate_ZeroDaysAhead(t *testing.T) {
	groups, err := Generate(weekdaysOnly(), nil, Params{ShowingDurationMinutes: 30, DaysAhead: 0}, time.UTC, monday(time.UTC))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestGenerate_ConfigErrors(t *testing.T) {
	loc := time.UTC
	now := monday(loc)
	valid := weekdaysOnly()

	cases := []struct {
		name  string
		sched WeekSchedule
		p     Params
	}{
		{
			name:  "zero duration",
			sched: valid,
			p:     Params{ShowingDurationMinutes: 0, DaysAhead: 7},
		},
		{
			name:  "negative duration",
			sched: valid,
			p:     Params{ShowingDurationMinutes: -15, DaysAhead: 7},
		},
		{
			name:  "negative buffer",
			sched: valid,
			p:     Params{ShowingDurationMinutes: 30, BufferMinutes: -1, DaysAhead: 7},
		},
		{
			name:  "unparseable start",
			sched: WeekSchedule{time.Monday: {Start: "9am", End: "17:00", Enabled: true}},
			p:     Params{ShowingDurationMinutes: 30, DaysAhead: 7},
		},
		{
			name:  "unparseable end",
			sched: WeekSchedule{time.Monday: {Start: "09:00", End: "25:61", Enabled: true}},
			p:     Params{ShowingDurationMinutes: 30, DaysAhead: 7},
		},
		{
			name:  "start after end",
			sched: WeekSchedule{time.Monday: {Start: "17:00", End: "09:00", Enabled: true}},
			p:     Params{ShowingDurationMinutes: 30, DaysAhead: 7},
		},
		{
			name:  "start equals end",
			sched: WeekSchedule{time.Monday: {Start: "09:00", End: "09:00", Enabled: true}},
			p:     Params{ShowingDurationMinutes: 30, DaysAhead: 7},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			groups, err := Generate(tc.sched, nil, tc.p, loc, now)
			if err == nil {
				t.Fatal("expected a configuration error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %T: %v", err, err)
			}
			if groups != nil {
				t.Fatal("no output should be produced on error")
			}
		})
	}
}

func TestGenerate_MalformedDisabledDayIgnored(t *testing.T) {
	// A disabled day never parses its times, so stale garbage in a day the
	// agent switched off does not break slot generation.
	sched := WeekSchedule{
		time.Monday:  {Start: "09:00", End: "17:00", Enabled: true},
		time.Tuesday: {Start: "garbage", End: "", Enabled: false},
	}
	p := Params{ShowingDurationMinutes: 30, DaysAhead: 7}
	groups, err := Generate(sched, nil, p, time.UTC, monday(time.UTC))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
}

func TestGenerate_BookingDurationDefaultsToShowingDuration(t *testing.T) {
	loc := time.UTC
	day := monday(loc)
	sched := WeekSchedule{time.Monday: {Start: "09:00", End: "12:00", Enabled: true}}
	p := Params{ShowingDurationMinutes: 90, BufferMinutes: 0, DaysAhead: 1}
	// No explicit duration: occupies 09:00-10:30 using the listing's 90 minutes.
	booked := []Booking{{StartTime: day.Add(9 * time.Hour)}}

	groups, err := Generate(sched, booked, p, loc, day)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if groups[0].Slots[0].Available {
		t.Error("09:00 should be blocked")
	}
	if !groups[0].Slots[1].Available {
		t.Error("10:30 should be available")
	}
}
