package anomaly

import (
	"context"
	"fmt"

	pb "github.com/Indra-jith/failure-aware-vision/gen/anomalypb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// #region client-struct

// Client wraps the gRPC connection to the external anomaly-scoring
// service. The score it returns is treated as an opaque non-negative
// scalar; nothing downstream inspects how the service produced it.
type Client struct {
	conn   *grpc.ClientConn
	client pb.AnomalyServiceClient
}

// #endregion client-struct

// #region constructor

// NewClient creates a client for the anomaly-scoring service at addr. The
// connection is made lazily, so an unreachable address only surfaces as an
// error from Score.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		client: pb.NewAnomalyServiceClient(conn),
	}, nil
}

// NewClientWithService creates a Client with an injected service
// implementation. Used for testing without a real gRPC connection.
func NewClientWithService(svc pb.AnomalyServiceClient) *Client {
	return &Client{client: svc}
}

// #endregion constructor

// #region close

// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region score

// Score sends a frame's luminance projection to the anomaly service and
// returns its scalar score. If the source is unavailable the caller
// substitutes 0 rather than propagating the error into the trust engine.
func (c *Client) Score(ctx context.Context, frameID string, width, height int, luma []byte, timestamp float64) (float64, error) {
	resp, err := c.client.Score(ctx, &pb.ScoreRequest{
		FrameId:   frameID,
		Width:     int32(width),
		Height:    int32(height),
		Luma:      luma,
		Timestamp: timestamp,
	})
	if err != nil {
		return 0, fmt.Errorf("score rpc: %w", err)
	}
	return resp.AnomalyScore, nil
}

// #endregion score
