//go:build protogen

package entitlements

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	billingv1 "github.com/nathan-pruitt/openhouse/protos/gen/billing/v1"
	"github.com/nathan-pruitt/openhouse/services/billing-service/internal/storage"
	"google.golang.org/grpc"
)

type server struct {
	billingv1.UnimplementedEntitlementsServiceServer
	repo *storage.Repository
}

func Register(grpcServer *grpc.Server, repo *storage.Repository) {
	billingv1.RegisterEntitlementsServiceServer(grpcServer, &server{repo: repo})
}

func (s *server) GetEntitlements(ctx context.Context, req *billingv1.EntitlementsRequest) (*billingv1.EntitlementsResponse, error) {
	limits := LimitsForTier("trial")
	if s.repo != nil && req.GetAgentId() != "" {
		sub, err := s.repo.GetSubscription(ctx, req.GetAgentId())
		if err == nil && sub.Status == "active" {
			limits = LimitsForTier(sub.Tier)
		}
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			// keep the response stable: a repo error answers with trial limits
		}
	}
	return &billingv1.EntitlementsResponse{
		Tier:              limits.Tier,
		MaxListings:       limits.MaxListings,
		MaxWeeklyShowings: limits.MaxWeeklyShowings,
	}, nil
}
