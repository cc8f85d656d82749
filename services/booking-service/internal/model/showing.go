package model

import "time"

// Showing is a booked property visit. It occupies
// [StartTime, StartTime+DurationMinutes).
type Showing struct {
	ID              string
	AgentID         string
	ListingID       string
	VisitorName     string
	VisitorEmail    string
	VisitorPhone    string
	StartTime       time.Time
	DurationMinutes int
	Status          string
	CancelledAt     *time.Time
	CancelReason    string
	CreatedAt       time.Time
}
