//go:build protogen

package entitlements

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"github.com/nathan-pruitt/openhouse/libs/grpcx"
	billingv1 "github.com/nathan-pruitt/openhouse/protos/gen/billing/v1"
)

type Client struct {
	conn   *grpc.ClientConn
	client billingv1.EntitlementsServiceClient
}

func NewClient(addr string) (*Client, error) {
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		conn:   conn,
		client: billingv1.NewEntitlementsServiceClient(conn),
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) GetEntitlements(ctx context.Context, agentID string) (*billingv1.EntitlementsResponse, error) {
	return c.client.GetEntitlements(ctx, &billingv1.EntitlementsRequest{
		AgentId: agentID,
	})
}
