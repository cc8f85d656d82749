// Package slots generates bookable showing slots from an agent's weekly
// working hours and the set of already-booked showings. It is pure
// computation: callers supply every input, including "now", so results are
// fully deterministic.
package slots

import (
	"fmt"
	"time"
)

// DayHours is one weekday's working-hour window. Start and End are wall-clock
// "HH:MM" (24h) times local to the agent's configured timezone.
type DayHours struct {
	Start   string
	End     string
	Enabled bool
}

// WeekSchedule maps each weekday to its working hours. A missing entry is
// treated the same as a disabled day.
type WeekSchedule map[time.Weekday]DayHours

// Params controls slot generation for a listing.
type Params struct {
	ShowingDurationMinutes int
	BufferMinutes          int
	// DaysAhead is the booking window: how many calendar days, starting
	// today, to generate slots for.
	DaysAhead int
}

// Booking is an existing showing occupying [StartTime, StartTime+duration).
type Booking struct {
	StartTime       time.Time
	DurationMinutes int
}

// Slot is a candidate showing start time. Available is false when the start
// is in the past or collides with an existing booking.
type Slot struct {
	StartTime   time.Time `json:"start_time"`
	DisplayTime string    `json:"display_time"`
	Available   bool      `json:"available"`
}

// DayGroup holds one calendar day's slots in ascending start order.
type DayGroup struct {
	DateLabel string `json:"date_label"`
	DateKey   string `json:"date_key"`
	Slots     []Slot `json:"slots"`
}

// ConfigError reports working-hours or duration configuration that cannot
// produce a valid schedule. It is a hard failure: the agent's settings need
// fixing upstream, there is nothing to retry.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return "slots: " + e.msg
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

const (
	clockLayout = "15:04"
	labelLayout = "Monday, Jan 2"
	keyLayout   = "2006-01-02"
	timeLayout  = "3:04 PM"
)

// Generate computes the bookable slots for the next p.DaysAhead calendar
// days. All wall-clock arithmetic happens in loc, the listing's IANA
// timezone; now anchors both the day iteration and past-slot marking.
//
// The walk within a day is a fixed grid: consecutive starts are exactly
// duration+buffer minutes apart, and a slot is emitted as long as its start
// is strictly before the day's end time. Days that end up with no slots
// (disabled or outside the schedule) contribute no DayGroup.
//
// The returned groups are ordered by date and each group's slots by start
// time. Generate either returns a complete result or an error before
// producing any output.
func Generate(sched WeekSchedule, bookings []Booking, p Params, loc *time.Location, now time.Time) ([]DayGroup, error) {
	windows, err := validate(sched, p, loc)
	if err != nil {
		return nil, err
	}

	step := time.Duration(p.ShowingDurationMinutes+p.BufferMinutes) * time.Minute
	local := now.In(loc)
	anchor := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var groups []DayGroup
	for offset := 0; offset < p.DaysAhead; offset++ {
		day := anchor.AddDate(0, 0, offset)
		win, ok := windows[day.Weekday()]
		if !ok {
			continue
		}

		// Combine the date with the wall-clock window via time.Date rather
		// than adding a duration to midnight: on a DST transition day the
		// two differ by the offset change, and the window must follow the
		// wall clock.
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), win.startHour, win.startMin, 0, 0, loc)
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), win.endHour, win.endMin, 0, 0, loc)

		var daySlots []Slot
		for t := dayStart; t.Before(dayEnd); t = t.Add(step) {
			daySlots = append(daySlots, Slot{
				StartTime:   t,
				DisplayTime: t.Format(timeLayout),
				Available:   !t.Before(now) && !conflicts(t, bookings, p.ShowingDurationMinutes),
			})
		}
		if len(daySlots) == 0 {
			continue
		}

		groups = append(groups, DayGroup{
			DateLabel: day.Format(labelLayout),
			DateKey:   day.Format(keyLayout),
			Slots:     daySlots,
		})
	}
	return groups, nil
}

// conflicts reports whether an existing booking's half-open interval contains
// the candidate start. A booking with no duration of its own falls back to
// the listing's showing duration.
func conflicts(start time.Time, bookings []Booking, defaultDurationMins int) bool {
	for _, b := range bookings {
		mins := b.DurationMinutes
		if mins <= 0 {
			mins = defaultDurationMins
		}
		end := b.StartTime.Add(time.Duration(mins) * time.Minute)
		if !start.Before(b.StartTime) && start.Before(end) {
			return true
		}
	}
	return false
}

// Validate reports whether the schedule and params would generate, without
// generating. Callers use it to reject bad configuration before doing any
// other work.
func Validate(sched WeekSchedule, p Params, loc *time.Location) error {
	_, err := validate(sched, p, loc)
	return err
}

func validate(sched WeekSchedule, p Params, loc *time.Location) (map[time.Weekday]dayWindow, error) {
	if loc == nil {
		return nil, configErrorf("timezone is required")
	}
	if p.ShowingDurationMinutes <= 0 {
		return nil, configErrorf("showing duration must be positive, got %d", p.ShowingDurationMinutes)
	}
	if p.BufferMinutes < 0 {
		return nil, configErrorf("buffer minutes must not be negative, got %d", p.BufferMinutes)
	}
	if p.DaysAhead < 0 {
		return nil, configErrorf("days ahead must not be negative, got %d", p.DaysAhead)
	}
	return parseWeek(sched)
}

// dayWindow keeps the window as wall-clock components, not as offsets from
// midnight, so a window can be rebuilt correctly on any date.
type dayWindow struct {
	startHour, startMin int
	endHour, endMin     int
}

// parseWeek validates the enabled entries up front so Generate fails before
// emitting anything. Disabled or missing days are dropped.
func parseWeek(sched WeekSchedule) (map[time.Weekday]dayWindow, error) {
	out := make(map[time.Weekday]dayWindow, len(sched))
	for wd, h := range sched {
		if !h.Enabled {
			continue
		}
		sh, sm, err := parseClock(h.Start)
		if err != nil {
			return nil, configErrorf("%s start %q: not a valid HH:MM time", wd, h.Start)
		}
		eh, em, err := parseClock(h.End)
		if err != nil {
			return nil, configErrorf("%s end %q: not a valid HH:MM time", wd, h.End)
		}
		if sh*60+sm >= eh*60+em {
			return nil, configErrorf("%s working hours %q-%q: start must be before end", wd, h.Start, h.End)
		}
		out[wd] = dayWindow{startHour: sh, startMin: sm, endHour: eh, endMin: em}
	}
	return out, nil
}

func parseClock(s string) (hour, min int, err error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}
