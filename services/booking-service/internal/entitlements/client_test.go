//go:build protogen

package entitlements

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"

	billingv1 "github.com/nathan-pruitt/openhouse/protos/gen/billing/v1"
)

type testServer struct {
	billingv1.UnimplementedEntitlementsServiceServer
}

func (s *testServer) GetEntitlements(_ context.Context, _ *billingv1.EntitlementsRequest) (*billingv1.EntitlementsResponse, error) {
	return &billingv1.EntitlementsResponse{
		Tier:              "team",
		MaxListings:       50,
		MaxWeeklyShowings: 0,
	}, nil
}

func TestClientGetEntitlements(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer lis.Close()

	srv := grpc.NewServer()
	billingv1.RegisterEntitlementsServiceServer(srv, &testServer{})

	go func() {
		_ = srv.Serve(lis)
	}()
	defer srv.Stop()

	client, err := NewClient(lis.Addr().String())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := client.GetEntitlements(ctx, "agent-123")
	if err != nil {
		t.Fatalf("get entitlements: %v", err)
	}
	if resp.Tier != "team" {
		t.Fatalf("unexpected tier: %s", resp.Tier)
	}
}
