// Package agentcfg resolves an agent's scheduling configuration from
// agent-service. The gRPC client is only compiled in protogen builds;
// without it the slots handler falls back to query parameters, which keeps
// local development possible with booking-service alone.
package agentcfg

import (
	"context"
	"time"

	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/slots"
)

type TimeOffInterval struct {
	Start time.Time
	End   time.Time
}

type ListingConfig struct {
	Timezone               string
	Week                   slots.WeekSchedule
	ShowingDurationMinutes int
	BufferMinutes          int
	DaysAhead              int
	TimeOff                []TimeOffInterval
}

type Provider interface {
	GetListingConfig(ctx context.Context, agentID, listingID string) (ListingConfig, error)
}
