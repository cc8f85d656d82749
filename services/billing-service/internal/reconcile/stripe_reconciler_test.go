package reconcile

import "testing"

func TestDriftDetected(t *testing.T) {
	cases := []struct {
		name           string
		localStatus    string
		localTier      string
		stripeEntitled bool
		stripeTier     string
		want           bool
	}{
		{"in sync active", "active", "solo", true, "solo", false},
		{"in sync canceled", "canceled", "trial", false, "solo", false},
		{"missed cancellation webhook", "active", "solo", false, "solo", true},
		{"missed activation webhook", "canceled", "trial", true, "solo", true},
		{"tier change while active", "active", "solo", true, "team", true},
		{"tier mismatch while canceled is noise", "canceled", "solo", false, "team", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := driftDetected(tc.localStatus, tc.localTier, tc.stripeEntitled, tc.stripeTier)
			if got != tc.want {
				t.Fatalf("driftDetected(%q, %q, %v, %q) = %v, want %v",
					tc.localStatus, tc.localTier, tc.stripeEntitled, tc.stripeTier, got, tc.want)
			}
		})
	}
}
