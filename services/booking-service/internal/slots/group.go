package slots

import "time"

// PartsOfDay buckets slots by the local hour of their start time:
// [0,12) morning, [12,17) afternoon, [17,24) evening.
type PartsOfDay struct {
	Morning   []Slot `json:"morning"`
	Afternoon []Slot `json:"afternoon"`
	Evening   []Slot `json:"evening"`
}

// GroupByPartOfDay partitions slots into morning/afternoon/evening buckets,
// preserving relative order. Every input slot lands in exactly one bucket.
func GroupByPartOfDay(in []Slot) PartsOfDay {
	var out PartsOfDay
	for _, s := range in {
		switch hour := s.StartTime.Hour(); {
		case hour < 12:
			out.Morning = append(out.Morning, s)
		case hour < 17:
			out.Afternoon = append(out.Afternoon, s)
		default:
			out.Evening = append(out.Evening, s)
		}
	}
	return out
}

// CountBookingsInCurrentWeek counts bookings whose start falls within the
// calendar week containing ref. Weeks start on Sunday at midnight in ref's
// location. Used for trial usage accounting.
func CountBookingsInCurrentWeek(bookings []Booking, ref time.Time) int {
	daysSinceSunday := int(ref.Weekday())
	weekStart := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()).
		AddDate(0, 0, -daysSinceSunday)
	weekEnd := weekStart.AddDate(0, 0, 7)

	n := 0
	for _, b := range bookings {
		if !b.StartTime.Before(weekStart) && b.StartTime.Before(weekEnd) {
			n++
		}
	}
	return n
}
