// Package eventbus implements the transactional outbox, inbox
// deduplication, and Kafka consumer loop shared by every OpenHouse
// service. Writers insert events in the same transaction as their state
// change; a background publisher drains the outbox table to Kafka.
package eventbus

// Event is the domain event envelope written to the outbox table.
// The Kafka topic name equals EventType, one event type per topic.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// Event types emitted across OpenHouse. Versioned so consumers can
// evolve independently of producers.
const (
	EventShowingBooked         = "booking.showing.booked.v1"
	EventShowingCancelled      = "booking.showing.cancelled.v1"
	EventReminderRequested     = "booking.reminder.requested.v1"
	EventReminderDue           = "scheduler.reminder.due.v1"
	EventReminderDLQ           = "scheduler.reminder.dlq.v1"
	EventNotificationSent      = "notification.sent.v1"
	EventNotificationFailed    = "notification.failed.v1"
	EventSubscriptionActivated = "billing.subscription.activated.v1"
	EventSubscriptionCanceled  = "billing.subscription.canceled.v1"
	EventUserRegistered        = "auth.user.registered.v1"
	EventAuthAudit             = "auth.audit.v1"
)
