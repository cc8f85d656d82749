package entitlements

// Limits describes what a subscription tier allows. A zero max means
// the tier has no cap on that dimension.
type Limits struct {
	Tier              string `json:"tier"`
	MaxListings       int32  `json:"max_listings"`
	MaxWeeklyShowings int32  `json:"max_weekly_showings"`
}

// LimitsForTier maps a tier name to its limits. Unknown tiers fall back
// to trial so a bad value never grants unlimited access.
func LimitsForTier(tier string) Limits {
	switch tier {
	case "solo":
		return Limits{Tier: "solo", MaxListings: 10, MaxWeeklyShowings: 0}
	case "team":
		return Limits{Tier: "team", MaxListings: 0, MaxWeeklyShowings: 0}
	default:
		return Limits{Tier: "trial", MaxListings: 1, MaxWeeklyShowings: 10}
	}
}
