// Package message renders the reminder copy for each channel.
package message

import (
	"fmt"
	"strings"
	"time"
)

// Reminder carries the fields needed to render a showing reminder.
type Reminder struct {
	ShowingID   string
	VisitorName string
	ListingID   string
	StartTime   string
}

// FromTemplateData pulls the reminder fields out of the loosely typed
// template_data map the booking flow attaches to each reminder request.
func FromTemplateData(showingID string, data map[string]any) Reminder {
	r := Reminder{ShowingID: showingID}
	if v, ok := data["visitor_name"].(string); ok {
		r.VisitorName = strings.TrimSpace(v)
	}
	if v, ok := data["listing_id"].(string); ok {
		r.ListingID = strings.TrimSpace(v)
	}
	if v, ok := data["start_time"].(string); ok {
		r.StartTime = strings.TrimSpace(v)
	}
	return r
}

// EmailSubject is the same for every reminder; the body carries the detail.
func EmailSubject() string {
	return "Showing reminder"
}

// EmailBody renders the plain-text email. Unknown or missing fields fall
// back to generic wording rather than failing the send.
func EmailBody(r Reminder) string {
	var b strings.Builder
	if r.VisitorName != "" {
		fmt.Fprintf(&b, "Hi %s,\n\n", r.VisitorName)
	}
	fmt.Fprintf(&b, "This is a reminder about your upcoming property showing%s.", atTime(r.StartTime))
	if r.ListingID != "" {
		fmt.Fprintf(&b, "\n\nListing: %s", r.ListingID)
	}
	b.WriteString("\n\nIf you can no longer make it, please cancel so the time slot opens up for others.\n")
	return b.String()
}

// SMSBody keeps the reminder under one SMS segment where possible.
func SMSBody(r Reminder) string {
	return fmt.Sprintf("Reminder: your property showing%s. Reply to your agent if you need to reschedule.", atTime(r.StartTime))
}

func atTime(startTime string) string {
	if startTime == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, startTime); err == nil {
		return " on " + t.Format("Mon Jan 2 at 3:04 PM MST")
	}
	return " at " + startTime
}
