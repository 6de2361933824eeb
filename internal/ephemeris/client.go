package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
)

// CastChartMethod is the full gRPC method name of the chart service.
const CastChartMethod = "/horary.ChartService/CastChart"

// #region types
// ChartRequest identifies the moment and place a question was asked.
type ChartRequest struct {
	Moment       time.Time
	Timezone     string
	Latitude     float64
	Longitude    float64
	LocationName string
}

func (r ChartRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"moment":        r.Moment.Format(time.RFC3339),
		"timezone":      r.Timezone,
		"latitude":      r.Latitude,
		"longitude":     r.Longitude,
		"location_name": r.LocationName,
	})
}

// #endregion types

// #region client-struct
// ChartClient calls an external chart-construction service.
type ChartClient struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}

// #endregion client-struct

// #region constructor
// NewChartClient connects to the chart service.
func NewChartClient(addr string) (*ChartClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &ChartClient{conn: conn, cc: conn}, nil
}

// NewChartClientWithConn creates a ChartClient over an existing connection.
// Used for testing without a real gRPC server.
func NewChartClientWithConn(cc grpc.ClientConnInterface) *ChartClient {
	return &ChartClient{cc: cc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection, if the client owns one.
func (c *ChartClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region cast-chart
// CastChart asks the service for the chart of req and validates the reply.
func (c *ChartClient) CastChart(ctx context.Context, req ChartRequest) (*chart.Chart, error) {
	if req.Moment.IsZero() {
		return nil, fmt.Errorf("cast chart: moment is required")
	}
	args, err := req.toStruct()
	if err != nil {
		return nil, fmt.Errorf("cast chart request: %w", err)
	}

	reply := &structpb.Struct{}
	if err := c.cc.Invoke(ctx, CastChartMethod, args, reply); err != nil {
		return nil, fmt.Errorf("cast chart rpc: %w", err)
	}

	data, err := protojson.Marshal(reply)
	if err != nil {
		return nil, fmt.Errorf("cast chart encode: %w", err)
	}
	var ch chart.Chart
	if err := json.Unmarshal(data, &ch); err != nil {
		return nil, fmt.Errorf("cast chart decode: %w", err)
	}
	if err := ch.Validate(); err != nil {
		return nil, fmt.Errorf("cast chart: %w", err)
	}
	return &ch, nil
}

// #endregion cast-chart
