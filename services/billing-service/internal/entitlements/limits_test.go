package entitlements

import "testing"

func TestLimitsForTier(t *testing.T) {
	solo := LimitsForTier("solo")
	if solo.Tier != "solo" || solo.MaxListings != 10 || solo.MaxWeeklyShowings != 0 {
		t.Fatalf("unexpected solo limits: %+v", solo)
	}

	team := LimitsForTier("team")
	if team.MaxListings != 0 || team.MaxWeeklyShowings != 0 {
		t.Fatalf("team should be uncapped: %+v", team)
	}

	for _, tier := range []string{"trial", "", "enterprise"} {
		got := LimitsForTier(tier)
		if got.Tier != "trial" {
			t.Fatalf("tier %q should resolve to trial, got %q", tier, got.Tier)
		}
		if got.MaxWeeklyShowings != 10 {
			t.Fatalf("trial weekly showings = %d, want 10", got.MaxWeeklyShowings)
		}
	}
}
