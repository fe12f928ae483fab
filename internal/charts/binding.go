package charts

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/miradorstack/logistics-pulse/internal/metrics"
	"github.com/miradorstack/logistics-pulse/internal/models"
)

// ErrBindingClosed is returned by Bind after Close.
var ErrBindingClosed = errors.New("chart binding closed")

// Binding keeps one chart in step with the snapshot store. It owns at most one
// live Renderer and always disposes it before constructing the next one.
type Binding struct {
	kind    Kind
	surface Surface
	series  func(*models.Snapshot) []models.DayPoint
	logger  *slog.Logger

	mu     sync.Mutex
	live   *Renderer
	closed bool
}

// NewDeliveryTimeBinding binds the delivery-time trend as a bar chart.
func NewDeliveryTimeBinding(surface Surface, logger *slog.Logger) *Binding {
	return newBinding(KindDeliveryTime, surface, logger, func(s *models.Snapshot) []models.DayPoint {
		return s.DeliveryTimeTrend
	})
}

// NewShipmentVolumeBinding binds the shipment volume as a filled line chart.
func NewShipmentVolumeBinding(surface Surface, logger *slog.Logger) *Binding {
	return newBinding(KindShipmentVolume, surface, logger, func(s *models.Snapshot) []models.DayPoint {
		return s.ShipmentVolume
	})
}

func newBinding(kind Kind, surface Surface, logger *slog.Logger, series func(*models.Snapshot) []models.DayPoint) *Binding {
	if logger == nil {
		logger = slog.Default()
	}
	return &Binding{
		kind:    kind,
		surface: surface,
		series:  series,
		logger:  logger.With(slog.String("chart", string(kind))),
	}
}

// Kind reports which chart this binding draws.
func (b *Binding) Kind() Kind { return b.kind }

// Bind replaces the live renderer with one drawn from snapshot. A nil
// snapshot is ignored. If rendering fails the binding is left empty.
func (b *Binding) Bind(snapshot *models.Snapshot) error {
	if snapshot == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBindingClosed
	}

	b.disposeLocked()

	renderer, err := newRenderer(b.kind, b.surface, b.series(snapshot))
	if err != nil {
		metrics.ObserveRender(string(b.kind), metrics.OutcomeError)
		b.logger.Error("chart render failed", slog.Any("error", err))
		return err
	}
	metrics.ObserveRender(string(b.kind), metrics.OutcomeSuccess)
	b.live = renderer
	return nil
}

// Close disposes the live renderer and rejects further binds. Safe to call repeatedly.
func (b *Binding) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.disposeLocked()
}

// Live reports whether a renderer currently holds a drawable.
func (b *Binding) Live() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live != nil
}

// HitTest resolves a click at horizontal offset x on the delivery-time chart
// to the weekday of the bar under it.
func (b *Binding) HitTest(x float64) (string, bool) {
	if b.kind != KindDeliveryTime {
		return "", false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.live == nil {
		return "", false
	}
	idx := b.live.BarAt(x)
	if idx < 0 || idx >= len(b.live.labels) {
		return "", false
	}
	return b.live.labels[idx], true
}

func (b *Binding) disposeLocked() {
	if b.live == nil {
		return
	}
	if err := b.live.Dispose(); err != nil {
		b.logger.Warn("chart dispose failed", slog.Any("error", err))
	}
	metrics.ObserveDispose(string(b.kind))
	b.live = nil
}
