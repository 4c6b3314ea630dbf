package dispatch

//go:generate protoc --go_out=../../gen/guardianpb --go_opt=paths=source_relative --go-grpc_out=../../gen/guardianpb --go-grpc_opt=paths=source_relative -I ../../api/proto guardian.proto

import (
	"context"
	"fmt"
	"log"
	"time"

	pb "github.com/danielpatrickdp/burnout-guardian/gen/guardianpb"
	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// #region client-struct
// Client wraps the gRPC connection to the external action executor
// (calendar integration, notification system).
type Client struct {
	conn   *grpc.ClientConn
	client pb.ActionServiceClient
}

// #endregion client-struct

// #region constructor
// NewClient connects to the action execution gRPC server.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		client: pb.NewActionServiceClient(conn),
	}, nil
}

// NewClientWithService creates a Client with an injected service
// implementation. Used for testing without a real gRPC connection.
func NewClientWithService(svc pb.ActionServiceClient) *Client {
	return &Client{client: svc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// #endregion close

// #region send
// Send hands one intervention to the executor. An executor rejection is an
// error like any transport failure; the caller records it on the
// intervention and moves on. The recorded intervention is never rolled
// back over a failed hand-off.
func (c *Client) Send(ctx context.Context, iv decide.Intervention, paramsJSON string) error {
	resp, err := c.client.ExecuteAction(ctx, &pb.ExecuteActionRequest{
		InterventionId: iv.ID,
		EmployeeId:     iv.EmployeeID,
		Day:            int32(iv.Day),
		ActionType:     string(iv.ActionType),
		ParamsJson:     paramsJSON,
		RiskScore:      iv.RiskScoreAtTrigger,
		TriggeredAt:    iv.TriggeredAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("execute action rpc: %w", err)
	}
	if !resp.Accepted {
		return fmt.Errorf("executor rejected %s: %s", iv.ID, resp.Detail)
	}
	log.Printf("[DISPATCH] %s: %s accepted for %s", iv.ID, iv.ActionType, iv.EmployeeID)
	return nil
}

// #endregion send
