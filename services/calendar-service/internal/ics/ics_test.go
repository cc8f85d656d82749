package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/nathan-pruitt/openhouse/services/calendar-service/internal/storage"
)

func TestFeed(t *testing.T) {
	start := time.Date(2026, 2, 3, 14, 0, 0, 0, time.UTC)
	events := []storage.Event{
		{
			ShowingID:       "sh-1",
			AgentID:         "agent-1",
			ListingID:       "listing-9",
			VisitorName:     "Jordan Lee",
			StartTime:       start,
			DurationMinutes: 30,
		},
	}
	dtstamp := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	feed := Feed(events, dtstamp)

	for _, want := range []string{
		"BEGIN:VCALENDAR\r\n",
		"END:VCALENDAR\r\n",
		"UID:showing-sh-1@openhouse\r\n",
		"DTSTAMP:20260201T090000Z\r\n",
		"DTSTART:20260203T140000Z\r\n",
		"DTEND:20260203T143000Z\r\n",
		"SUMMARY:Showing with Jordan Lee\r\n",
		"DESCRIPTION:Listing: listing-9\\nVisitor: Jordan Lee\r\n",
	} {
		if !strings.Contains(feed, want) {
			t.Fatalf("feed missing %q:\n%s", want, feed)
		}
	}
}

func TestFeedEmptyStillValid(t *testing.T) {
	feed := Feed(nil, time.Now())
	if !strings.HasPrefix(feed, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(feed, "END:VCALENDAR\r\n") {
		t.Fatalf("empty feed should still be a valid calendar:\n%s", feed)
	}
	if strings.Contains(feed, "VEVENT") {
		t.Fatalf("empty feed should have no events:\n%s", feed)
	}
}

func TestEscape(t *testing.T) {
	got := escape("a,b;c\nd\\e")
	if got != `a\,b\;c\nd\\e` {
		t.Fatalf("escape = %q", got)
	}
}
