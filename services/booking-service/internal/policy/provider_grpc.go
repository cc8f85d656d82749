//go:build protogen

package policy

import (
	"context"
	"log/slog"
	"time"

	"github.com/nathan-pruitt/openhouse/libs/grpcx"
	agentv1 "github.com/nathan-pruitt/openhouse/protos/gen/agent/v1"
)

type grpcProvider struct {
	client agentv1.AgentServiceClient
}

func NewAgentPolicyProvider(logger *slog.Logger, fallback []time.Duration, addr string) (Provider, error) {
	if addr == "" {
		return NewStaticProvider(fallback), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := grpcx.Dial(ctx, addr, grpcx.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		logger.Warn("grpc policy provider unavailable, using fallback", "err", err)
		return NewStaticProvider(fallback), nil
	}

	logger.Info("grpc policy provider enabled", "addr", addr)
	return &grpcProvider{client: agentv1.NewAgentServiceClient(conn)}, nil
}

func (p *grpcProvider) ReminderOffsets(ctx context.Context, agentID string) ([]time.Duration, error) {
	resp, err := p.client.GetAgentProfile(ctx, &agentv1.AgentProfileRequest{AgentId: agentID})
	if err != nil {
		return nil, err
	}
	var offsets []time.Duration
	for _, mins := range resp.GetReminderOffsetsMinutes() {
		if mins <= 0 {
			continue
		}
		offsets = append(offsets, time.Duration(mins)*time.Minute)
	}
	return offsets, nil
}
