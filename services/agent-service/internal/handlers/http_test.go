package handlers

import "testing"

func TestValidClockRange(t *testing.T) {
	cases := []struct {
		start, end string
		want       bool
	}{
		{"09:00", "17:00", true},
		{"00:00", "23:59", true},
		{"17:00", "09:00", false},
		{"09:00", "09:00", false},
		{"9am", "17:00", false},
		{"", "17:00", false},
		{"09:00", "25:00", false},
	}
	for _, c := range cases {
		if got := validClockRange(c.start, c.end); got != c.want {
			t.Errorf("validClockRange(%q, %q) = %v, want %v", c.start, c.end, got, c.want)
		}
	}
}
