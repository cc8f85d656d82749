// Package ics renders an iCalendar (RFC 5545) feed of upcoming showings.
// The format is simple enough that building the text directly beats
// pulling in a calendar library, mirroring the plain-text SMTP message
// the notification side hand-builds.
package ics

import (
	"fmt"
	"strings"
	"time"

	"github.com/nathan-pruitt/openhouse/services/calendar-service/internal/storage"
)

const timeLayout = "20060102T150405Z"

// Feed renders a VCALENDAR document for the given events. dtstamp is
// injected so output is reproducible in tests.
func Feed(events []storage.Event, dtstamp time.Time) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//OpenHouse//Showings//EN\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")
	b.WriteString("METHOD:PUBLISH\r\n")

	stamp := dtstamp.UTC().Format(timeLayout)
	for _, e := range events {
		start := e.StartTime.UTC()
		end := start.Add(time.Duration(e.DurationMinutes) * time.Minute)

		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:showing-%s@openhouse\r\n", e.ShowingID)
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", stamp)
		fmt.Fprintf(&b, "DTSTART:%s\r\n", start.Format(timeLayout))
		fmt.Fprintf(&b, "DTEND:%s\r\n", end.Format(timeLayout))
		fmt.Fprintf(&b, "SUMMARY:%s\r\n", escape(summary(e)))
		fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", escape(description(e)))
		b.WriteString("STATUS:CONFIRMED\r\n")
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func summary(e storage.Event) string {
	if e.VisitorName != "" {
		return "Showing with " + e.VisitorName
	}
	return "Property showing"
}

func description(e storage.Event) string {
	parts := []string{"Listing: " + e.ListingID}
	if e.VisitorName != "" {
		parts = append(parts, "Visitor: "+e.VisitorName)
	}
	return strings.Join(parts, "\n")
}

// escape applies RFC 5545 text escaping for commas, semicolons,
// backslashes, and newlines.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
