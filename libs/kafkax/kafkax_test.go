package kafkax

import (
	"reflect"
	"testing"

	"github.com/segmentio/kafka-go"
)

func TestSplitBrokers(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"localhost:9092", []string{"localhost:9092"}},
		{"a:9092, b:9092 ,,c:9092", []string{"a:9092", "b:9092", "c:9092"}},
	}
	for _, tc := range cases {
		if got := SplitBrokers(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitBrokers(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestExtractEventMeta(t *testing.T) {
	msg := kafka.Message{
		Topic: "booking.showing.booked.v1",
		Key:   []byte("key-1"),
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte("evt-1")},
			{Key: "event_type", Value: []byte("booking.showing.booked.v1")},
		},
	}
	meta := ExtractEventMeta(msg)
	if meta.EventID != "evt-1" || meta.EventType != "booking.showing.booked.v1" {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	// Without headers the key and topic stand in.
	bare := kafka.Message{Topic: "scheduler.reminder.due.v1", Key: []byte("key-2")}
	meta = ExtractEventMeta(bare)
	if meta.EventID != "key-2" || meta.EventType != "scheduler.reminder.due.v1" {
		t.Fatalf("unexpected fallback meta: %+v", meta)
	}
}
