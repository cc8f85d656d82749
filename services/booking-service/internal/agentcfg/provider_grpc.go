//go:build protogen

package agentcfg

import (
	"context"
	"time"

	"github.com/nathan-pruitt/openhouse/libs/grpcx"
	agentv1 "github.com/nathan-pruitt/openhouse/protos/gen/agent/v1"
	"github.com/nathan-pruitt/openhouse/services/booking-service/internal/slots"
)

type grpcProvider struct {
	client agentv1.AgentServiceClient
}

func NewProvider(addr string) (Provider, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &grpcProvider{client: agentv1.NewAgentServiceClient(conn)}, nil
}

func (p *grpcProvider) GetListingConfig(ctx context.Context, agentID, listingID string) (ListingConfig, error) {
	resp, err := p.client.GetListingConfig(ctx, &agentv1.ListingConfigRequest{
		AgentId:   agentID,
		ListingId: listingID,
	})
	if err != nil {
		return ListingConfig{}, err
	}

	cfg := ListingConfig{
		Timezone:               resp.GetTimezone(),
		Week:                   slots.WeekSchedule{},
		ShowingDurationMinutes: int(resp.GetShowingDurationMinutes()),
		BufferMinutes:          int(resp.GetBufferMinutes()),
		DaysAhead:              int(resp.GetDaysAhead()),
	}
	for _, d := range resp.GetWeek() {
		cfg.Week[time.Weekday(d.GetDayOfWeek())] = slots.DayHours{
			Start:   d.GetStart(),
			End:     d.GetEnd(),
			Enabled: d.GetEnabled(),
		}
	}
	for _, t := range resp.GetTimeOff() {
		if t.GetStartUtc() == nil || t.GetEndUtc() == nil {
			continue
		}
		start := t.GetStartUtc().AsTime()
		end := t.GetEndUtc().AsTime()
		if end.After(start) {
			cfg.TimeOff = append(cfg.TimeOff, TimeOffInterval{Start: start, End: end})
		}
	}
	return cfg, nil
}
