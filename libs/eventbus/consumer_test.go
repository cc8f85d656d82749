package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeInbox struct {
	seen      map[string]bool
	recorded  []string
	seenErr   error
	recordErr error
}

func newFakeInbox() *fakeInbox {
	return &fakeInbox{seen: map[string]bool{}}
}

func (f *fakeInbox) Seen(ctx context.Context, eventID string) (bool, error) {
	if f.seenErr != nil {
		return false, f.seenErr
	}
	return f.seen[eventID], nil
}

func (f *fakeInbox) Record(ctx context.Context, eventID string, eventType string) (bool, error) {
	if f.recordErr != nil {
		return false, f.recordErr
	}
	if f.seen[eventID] {
		return false, nil
	}
	f.seen[eventID] = true
	f.recorded = append(f.recorded, eventID)
	return true, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func eventMessage(id, eventType string) kafka.Message {
	return kafka.Message{
		Topic: "openhouse.events",
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(id)},
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
}

func TestConsumerProcess_HandlerErrorLeavesEventUnclaimed(t *testing.T) {
	inbox := newFakeInbox()
	calls := 0
	handlerErr := errors.New("smtp unavailable")
	c := &Consumer{
		logger: quietLogger(),
		inbox:  inbox,
		handler: func(ctx context.Context, msg kafka.Message) error {
			calls++
			if calls == 1 {
				return handlerErr
			}
			return nil
		},
	}
	msg := eventMessage("evt-1", "scheduler.reminder.due.v1")

	if err := c.process(context.Background(), msg); !errors.Is(err, handlerErr) {
		t.Fatalf("expected the handler error, got %v", err)
	}
	if len(inbox.recorded) != 0 {
		t.Fatalf("failed delivery must not claim the event, recorded %v", inbox.recorded)
	}

	// The redelivery succeeds and only then claims the event.
	if err := c.process(context.Background(), msg); err != nil {
		t.Fatalf("redelivery failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 handler calls, got %d", calls)
	}
	if len(inbox.recorded) != 1 || inbox.recorded[0] != "evt-1" {
		t.Fatalf("event should be claimed after success, recorded %v", inbox.recorded)
	}
}

func TestConsumerProcess_DuplicateSkipsHandler(t *testing.T) {
	inbox := newFakeInbox()
	inbox.seen["evt-1"] = true
	calls := 0
	c := &Consumer{
		logger: quietLogger(),
		inbox:  inbox,
		handler: func(ctx context.Context, msg kafka.Message) error {
			calls++
			return nil
		},
	}

	if err := c.process(context.Background(), eventMessage("evt-1", "booking.showing.booked.v1")); err != nil {
		t.Fatalf("duplicate should be a clean skip, got %v", err)
	}
	if calls != 0 {
		t.Fatal("handler must not run for an already-claimed event")
	}
}

func TestConsumerProcess_RecordFailureSurfaces(t *testing.T) {
	inbox := newFakeInbox()
	inbox.recordErr = errors.New("db down")
	c := &Consumer{
		logger: quietLogger(),
		inbox:  inbox,
		handler: func(ctx context.Context, msg kafka.Message) error {
			return nil
		},
	}

	if err := c.process(context.Background(), eventMessage("evt-2", "booking.showing.booked.v1")); err == nil {
		t.Fatal("a failed claim must keep the offset uncommitted")
	}
}
