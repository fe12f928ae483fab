package services

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/miradorstack/logistics-pulse/internal/api"
	"github.com/miradorstack/logistics-pulse/internal/config"
	"github.com/miradorstack/logistics-pulse/internal/dashboard"
	pulsev1 "github.com/miradorstack/logistics-pulse/internal/grpc/pulsev1"
	"github.com/miradorstack/logistics-pulse/internal/models"
	"github.com/miradorstack/logistics-pulse/internal/utils"
)

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("build struct: %v", err)
	}
	return s
}

func startServer(t *testing.T, opts dashboard.Options) (pulsev1.DashboardServiceClient, *grpc.ClientConn, *dashboard.Dashboard) {
	t.Helper()
	dash := dashboard.New(nil, opts)
	if err := dash.Activate(context.Background()); err != nil {
		t.Fatalf("activate: %v", err)
	}

	lis := bufconn.Listen(1 << 20)
	srv := api.NewServerWithListener(config.ServerConfig{Reflection: true}, lis, NewDashboardService(nil, dash, 2))
	go func() { _ = srv.Start() }()

	conn, client, err := api.Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		dash.Teardown()
	})
	return client, conn, dash
}

func waitLoaded(t *testing.T, dash *dashboard.Dashboard) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for dash.Store().Current() == nil {
		if time.Now().After(deadline) {
			t.Fatalf("seed never loaded")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestGetDashboardGatesRecommendations(t *testing.T) {
	client, _, dash := startServer(t, dashboard.Options{LoadDelay: -1, TickInterval: time.Hour})
	waitLoaded(t, dash)
	ctx := context.Background()

	editorView, err := client.GetDashboard(ctx, mustStruct(t, map[string]any{"role": "editor", "name": "Ada"}))
	if err != nil {
		t.Fatalf("editor view: %v", err)
	}
	snap := editorView.GetFields()["snapshot"].GetStructValue().GetFields()
	if got := len(snap["aiRecommendations"].GetListValue().GetValues()); got != 4 {
		t.Fatalf("editor should see 4 recommendations, got %d", got)
	}

	viewerView, err := client.GetDashboard(ctx, mustStruct(t, map[string]any{"role": "viewer", "name": "Lin"}))
	if err != nil {
		t.Fatalf("viewer view: %v", err)
	}
	snap = viewerView.GetFields()["snapshot"].GetStructValue().GetFields()
	if _, ok := snap["aiRecommendations"]; ok {
		t.Fatalf("viewer should not see recommendations")
	}

	_, err = client.GetDashboard(ctx, mustStruct(t, map[string]any{"role": "admin"}))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected invalid argument for unknown role, got %v", err)
	}
}

func TestDrillDownAndAlertsOverGRPC(t *testing.T) {
	client, _, dash := startServer(t, dashboard.Options{LoadDelay: -1, TickInterval: time.Hour})
	waitLoaded(t, dash)
	ctx := context.Background()

	resp, err := client.SelectDay(ctx, mustStruct(t, map[string]any{"day": "Wed"}))
	if err != nil {
		t.Fatalf("select day: %v", err)
	}
	if got := len(resp.GetFields()["feedback"].GetListValue().GetValues()); got != 2 {
		t.Fatalf("expected 2 Wed entries, got %d", got)
	}

	if _, err := client.ClearDrillDown(ctx, &structpb.Struct{}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	view, err := dash.View(models.Identity{Role: models.RoleViewer})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.SelectedDay != "" {
		t.Fatalf("selection should be cleared, got %q", view.SelectedDay)
	}

	resp, err = client.ClickDeliveryChart(ctx, mustStruct(t, map[string]any{"x": 1.0}))
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if resp.GetFields()["hit"].GetBoolValue() {
		t.Fatalf("click in the margin should miss")
	}
	if _, err := client.ClickDeliveryChart(ctx, &structpb.Struct{}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected invalid argument without x, got %v", err)
	}

	resp, err = client.DismissAlert(ctx, mustStruct(t, map[string]any{"id": models.AlertAvgDeliveryTime}))
	if err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if !resp.GetFields()["dismissed"].GetBoolValue() {
		t.Fatalf("expected dismissal")
	}
	if got := len(resp.GetFields()["alerts"].GetListValue().GetValues()); got != 1 {
		t.Fatalf("expected one alert left, got %d", got)
	}
	if _, err := client.DismissAlert(ctx, &structpb.Struct{}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected invalid argument without id, got %v", err)
	}
}

func TestSetFilterOverGRPC(t *testing.T) {
	client, _, _ := startServer(t, dashboard.Options{LoadDelay: time.Hour})
	ctx := context.Background()

	resp, err := client.SetFilter(ctx, mustStruct(t, map[string]any{"field": "shipmentType", "value": "express"}))
	if err != nil {
		t.Fatalf("set filter: %v", err)
	}
	if got := resp.GetFields()["shipmentType"].GetStringValue(); got != "express" {
		t.Fatalf("unexpected shipmentType %q", got)
	}

	_, err = client.SetFilter(ctx, mustStruct(t, map[string]any{"field": "region", "value": "mars"}))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestWatchDashboardStreamsUpdates(t *testing.T) {
	client, _, _ := startServer(t, dashboard.Options{LoadDelay: -1, TickInterval: 20 * time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.WatchDashboard(ctx, mustStruct(t, map[string]any{"role": "viewer", "name": "Lin"}))
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	var last *structpb.Struct
	for i := 0; i < 3; i++ {
		msg, err := stream.Recv()
		if err != nil {
			t.Fatalf("recv %d: %v", i, err)
		}
		last = msg
	}
	fields := last.GetFields()
	if fields["loading"].GetBoolValue() {
		t.Fatalf("later views should carry a snapshot")
	}
	if fields["version"].GetNumberValue() < 1 {
		t.Fatalf("expected a published version, got %v", fields["version"].GetNumberValue())
	}
	if got := fields["user"].GetStructValue().GetFields()["role"].GetStringValue(); got != models.RoleViewer {
		t.Fatalf("unexpected role %q", got)
	}
}

func TestCloseEndsWatchesAndUnblocksShutdown(t *testing.T) {
	dash := dashboard.New(nil, dashboard.Options{LoadDelay: -1, TickInterval: time.Hour})
	defer dash.Teardown()
	if err := dash.Activate(context.Background()); err != nil {
		t.Fatalf("activate: %v", err)
	}
	svc := NewDashboardService(nil, dash, 1)
	lis := bufconn.Listen(1 << 20)
	srv := api.NewServerWithListener(config.ServerConfig{GracefulTimeout: 10 * time.Second}, lis, svc)
	go func() { _ = srv.Start() }()
	conn, client, err := api.Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	stream, err := client.WatchDashboard(context.Background(), mustStruct(t, map[string]any{"role": "viewer"}))
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if _, err := stream.Recv(); err != nil {
		t.Fatalf("first view: %v", err)
	}

	svc.Close()
	svc.Close()
	if _, err := stream.Recv(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected watch to end cleanly after close, got %v", err)
	}

	start := time.Now()
	if forced := srv.Shutdown(context.Background()); forced {
		t.Fatalf("shutdown should drain without cutting calls")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("shutdown took %s with watches closed", elapsed)
	}
}

func TestWatchRefusedAfterClose(t *testing.T) {
	dash := dashboard.New(nil, dashboard.Options{LoadDelay: time.Hour})
	defer dash.Teardown()
	svc := NewDashboardService(nil, dash, 1)
	svc.Close()

	err := svc.WatchDashboard(mustStruct(t, map[string]any{"role": "viewer"}), nil)
	if status.Code(err) != codes.Unavailable {
		t.Fatalf("expected unavailable after close, got %v", err)
	}
}

func TestHealthServing(t *testing.T) {
	_, conn, _ := startServer(t, dashboard.Options{LoadDelay: time.Hour})
	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: pulsev1.ServiceName})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("unexpected health status %v", resp.GetStatus())
	}
}

func TestToStatus(t *testing.T) {
	cases := map[utils.Kind]codes.Code{
		utils.KindInvalid:     codes.InvalidArgument,
		utils.KindNotFound:    codes.NotFound,
		utils.KindUnavailable: codes.Unavailable,
		utils.KindInternal:    codes.Internal,
	}
	for kind, want := range cases {
		err := toStatus(utils.NewAppError("test", kind, "boom", nil))
		if status.Code(err) != want {
			t.Fatalf("kind %s: want %s, got %s", kind, want, status.Code(err))
		}
	}
}

func TestNilDashboard(t *testing.T) {
	svc := NewDashboardService(nil, nil, 1)
	_, err := svc.GetDashboard(context.Background(), &structpb.Struct{})
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("expected failed precondition, got %v", err)
	}
}
