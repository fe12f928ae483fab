package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/miradorstack/logistics-pulse/internal/api"
	"github.com/miradorstack/logistics-pulse/internal/dashboard"
	pulsev1 "github.com/miradorstack/logistics-pulse/internal/grpc/pulsev1"
	"github.com/miradorstack/logistics-pulse/internal/metrics"
	"github.com/miradorstack/logistics-pulse/internal/models"
	"github.com/miradorstack/logistics-pulse/internal/utils"
)

// DashboardService implements the gRPC DashboardService.
type DashboardService struct {
	pulsev1.UnimplementedDashboardServiceServer

	logger      *slog.Logger
	dash        *dashboard.Dashboard
	latencies   *utils.LatencyTracker
	watchBuffer int

	done      chan struct{}
	closeOnce sync.Once
}

// NewDashboardService constructs the dashboard service facade. watchBuffer
// bounds how far a slow watcher may lag before older updates are dropped.
func NewDashboardService(logger *slog.Logger, dash *dashboard.Dashboard, watchBuffer int) *DashboardService {
	if watchBuffer < 1 {
		watchBuffer = 1
	}
	return &DashboardService{
		logger:      utils.Component(logger, "service"),
		dash:        dash,
		latencies:   utils.NewLatencyTracker(1024),
		watchBuffer: watchBuffer,
		done:        make(chan struct{}),
	}
}

// Close ends every open watch stream and refuses new ones. It does not stop
// the dashboard. Later calls do nothing.
func (s *DashboardService) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.logger.Info("dashboard service closed")
	})
}

// GetDashboard returns the dashboard as seen by the requesting identity.
func (s *DashboardService) GetDashboard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.dash == nil {
		return nil, status.Error(codes.FailedPrecondition, "dashboard not configured")
	}
	id, err := api.IdentityFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	start := time.Now()
	out, err := s.view(id)
	if err != nil {
		return nil, err
	}
	s.latencies.Observe(time.Since(start))
	if count := s.latencies.Count(); count >= 50 && count%50 == 0 {
		s.logger.Info("view latency", slog.Duration("p95", s.latencies.Percentile(95)), slog.Int("samples", count))
	}
	return out, nil
}

// DismissAlert removes one alert from the active set.
func (s *DashboardService) DismissAlert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.dash == nil {
		return nil, status.Error(codes.FailedPrecondition, "dashboard not configured")
	}
	alertID := api.StringField(req, "id")
	if alertID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	dismissed := s.dash.DismissAlert(alertID)
	return structOrInternal(api.ToStructAlerts(dismissed, s.dash.Alerts()))
}

// SelectDay drills into one weekday's feedback.
func (s *DashboardService) SelectDay(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.dash == nil {
		return nil, status.Error(codes.FailedPrecondition, "dashboard not configured")
	}
	day := api.StringField(req, "day")
	if day == "" {
		return nil, status.Error(codes.InvalidArgument, "day is required")
	}
	return structOrInternal(api.ToStructDrillDown(day, s.dash.SelectDay(day), true))
}

// ClickDeliveryChart resolves a click on the delivery-time chart.
func (s *DashboardService) ClickDeliveryChart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.dash == nil {
		return nil, status.Error(codes.FailedPrecondition, "dashboard not configured")
	}
	x, ok := api.NumberField(req, "x")
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "x is required")
	}
	day, entries, hit := s.dash.ClickDeliveryChart(x)
	return structOrInternal(api.ToStructDrillDown(day, entries, hit))
}

// ClearDrillDown drops the weekday selection.
func (s *DashboardService) ClearDrillDown(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.dash == nil {
		return nil, status.Error(codes.FailedPrecondition, "dashboard not configured")
	}
	s.dash.ClearDrillDown()
	return &structpb.Struct{}, nil
}

// SetFilter records a display filter change.
func (s *DashboardService) SetFilter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.dash == nil {
		return nil, status.Error(codes.FailedPrecondition, "dashboard not configured")
	}
	state, err := s.dash.SetFilter(api.StringField(req, "field"), api.StringField(req, "value"))
	if err != nil {
		return nil, toStatus(err)
	}
	return structOrInternal(api.ToStructFilters(state))
}

// WatchDashboard streams the caller's view once on subscribe and again after
// every published snapshot. A watcher that falls behind skips intermediate
// views rather than stalling the stream.
func (s *DashboardService) WatchDashboard(req *structpb.Struct, stream pulsev1.DashboardService_WatchDashboardServer) error {
	if s.dash == nil {
		return status.Error(codes.FailedPrecondition, "dashboard not configured")
	}
	select {
	case <-s.done:
		return status.Error(codes.Unavailable, "dashboard service is shutting down")
	default:
	}
	id, err := api.IdentityFromStruct(req)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	first, err := s.view(id)
	if err != nil {
		return err
	}

	streamID := uuid.NewString()
	logger := s.logger.With(slog.String("stream", streamID), slog.String("role", id.Role))
	updates := make(chan struct{}, s.watchBuffer)
	unsubscribe := s.dash.Subscribe(func(*models.Snapshot) {
		for {
			select {
			case updates <- struct{}{}:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	metrics.WatchOpened()
	defer metrics.WatchClosed()
	logger.Info("watch opened")
	defer logger.Info("watch closed")

	if err := stream.Send(first); err != nil {
		return err
	}
	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case <-updates:
			out, err := s.view(id)
			if err != nil {
				return err
			}
			if err := stream.Send(out); err != nil {
				logger.Warn("watch send failed", slog.Any("error", err))
				return err
			}
		}
	}
}

func (s *DashboardService) view(id models.Identity) (*structpb.Struct, error) {
	view, err := s.dash.View(id)
	if err != nil {
		return nil, toStatus(err)
	}
	return structOrInternal(api.ToStructView(view))
}

func structOrInternal(out *structpb.Struct, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func toStatus(err error) error {
	switch utils.KindOf(err) {
	case utils.KindInvalid:
		return status.Error(codes.InvalidArgument, err.Error())
	case utils.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case utils.KindUnavailable:
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
