package message

import (
	"strings"
	"testing"
)

func TestFromTemplateData(t *testing.T) {
	r := FromTemplateData("showing-1", map[string]any{
		"visitor_name": " Jordan Lee ",
		"listing_id":   "listing-9",
		"start_time":   "2026-02-03T14:00:00Z",
	})
	if r.ShowingID != "showing-1" || r.VisitorName != "Jordan Lee" || r.ListingID != "listing-9" {
		t.Fatalf("unexpected reminder: %+v", r)
	}

	empty := FromTemplateData("showing-2", map[string]any{"visitor_name": 42})
	if empty.VisitorName != "" {
		t.Fatalf("non-string visitor_name should be ignored, got %q", empty.VisitorName)
	}
}

func TestEmailBody(t *testing.T) {
	body := EmailBody(Reminder{
		VisitorName: "Jordan Lee",
		ListingID:   "listing-9",
		StartTime:   "2026-02-03T14:00:00Z",
	})
	if !strings.Contains(body, "Hi Jordan Lee,") {
		t.Fatalf("body missing greeting:\n%s", body)
	}
	if !strings.Contains(body, "Listing: listing-9") {
		t.Fatalf("body missing listing:\n%s", body)
	}
	if !strings.Contains(body, "on Tue Feb 3 at 2:00 PM UTC") {
		t.Fatalf("body missing formatted time:\n%s", body)
	}
}

func TestEmailBodyWithoutOptionalFields(t *testing.T) {
	body := EmailBody(Reminder{})
	if strings.Contains(body, "Hi ,") {
		t.Fatalf("empty name should not produce a greeting:\n%s", body)
	}
	if !strings.Contains(body, "upcoming property showing.") {
		t.Fatalf("body should degrade gracefully:\n%s", body)
	}
}

func TestSMSBodyFallsBackToRawTime(t *testing.T) {
	got := SMSBody(Reminder{StartTime: "tomorrow 2pm"})
	if !strings.Contains(got, "at tomorrow 2pm") {
		t.Fatalf("raw time should pass through: %s", got)
	}
}
