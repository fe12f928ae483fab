package api

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pulsev1 "github.com/miradorstack/logistics-pulse/internal/grpc/pulsev1"
)

// Dial opens a plaintext client connection to a dashboard engine. The caller
// owns the returned connection.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, pulsev1.DashboardServiceClient, error) {
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return conn, pulsev1.NewDashboardServiceClient(conn), nil
}
