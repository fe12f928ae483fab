package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/miradorstack/logistics-pulse/internal/charts"
	"github.com/miradorstack/logistics-pulse/internal/engine"
	"github.com/miradorstack/logistics-pulse/internal/metrics"
	"github.com/miradorstack/logistics-pulse/internal/models"
	"github.com/miradorstack/logistics-pulse/internal/store"
	"github.com/miradorstack/logistics-pulse/internal/utils"
)

const (
	DefaultTickInterval = 5 * time.Second
	DefaultLoadDelay    = 1500 * time.Millisecond
)

// ErrTornDown is returned by Activate once Teardown has run.
var ErrTornDown = errors.New("dashboard torn down")

// Options configures a Dashboard. Zero values fall back to defaults; a
// negative LoadDelay publishes the seed immediately.
type Options struct {
	TickInterval    time.Duration
	LoadDelay       time.Duration
	Seed            *models.Snapshot
	Simulator       *engine.Simulator
	Thresholds      engine.Thresholds
	DeliverySurface charts.Surface
	VolumeSurface   charts.Surface
}

// View is what one user sees at a point in time. Snapshot is nil while the
// initial load is pending.
type View struct {
	SessionID   string
	Version     uint64
	Loading     bool
	User        models.Identity
	Snapshot    *models.Snapshot
	Alerts      []models.Alert
	SelectedDay string
	DrillDown   []models.Feedback
	Filters     models.FilterState
}

// Dashboard wires the snapshot store to its dependents and drives the
// simulated stream.
type Dashboard struct {
	id     string
	logger *slog.Logger
	opts   Options

	store    *store.Store
	sim      *engine.Simulator
	alerts   *AlertManager
	drill    *DrillDown
	filters  *Filters
	delivery *charts.Binding
	volume   *charts.Binding

	mu        sync.Mutex
	loader    *engine.Task
	ticker    *engine.Task
	unsubs    []func()
	activated bool
	tornDown  bool
}

// New builds a dashboard and registers its dependents on the store. Nothing
// is published until Activate.
func New(logger *slog.Logger, opts Options) *Dashboard {
	logger = utils.Component(logger, "dashboard")
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	switch {
	case opts.LoadDelay == 0:
		opts.LoadDelay = DefaultLoadDelay
	case opts.LoadDelay < 0:
		opts.LoadDelay = 0
	}
	if opts.Seed == nil {
		opts.Seed = engine.DefaultSeed()
	}
	if opts.Simulator == nil {
		opts.Simulator = engine.NewSimulator(nil)
	}
	if opts.Thresholds == (engine.Thresholds{}) {
		opts.Thresholds = engine.DefaultThresholds()
	}
	if opts.DeliverySurface == nil {
		opts.DeliverySurface = charts.NewMemorySurface(0, 0, charts.FormatPNG)
	}
	if opts.VolumeSurface == nil {
		opts.VolumeSurface = charts.NewMemorySurface(0, 0, charts.FormatPNG)
	}

	d := &Dashboard{
		id:       uuid.NewString(),
		logger:   logger,
		opts:     opts,
		store:    store.New(),
		sim:      opts.Simulator,
		alerts:   NewAlertManager(opts.Thresholds, logger),
		filters:  NewFilters(logger),
		delivery: charts.NewDeliveryTimeBinding(opts.DeliverySurface, logger),
		volume:   charts.NewShipmentVolumeBinding(opts.VolumeSurface, logger),
	}
	d.drill = NewDrillDown(d.store)

	// Alerts first so anything subscribing later sees an up-to-date alert set.
	d.unsubs = append(d.unsubs,
		d.store.Subscribe(d.alerts.Recompute),
		d.store.Subscribe(func(s *models.Snapshot) { _ = d.delivery.Bind(s) }),
		d.store.Subscribe(func(s *models.Snapshot) { _ = d.volume.Bind(s) }),
	)
	return d
}

// ID identifies this dashboard session.
func (d *Dashboard) ID() string { return d.id }

// Store exposes the snapshot store.
func (d *Dashboard) Store() *store.Store { return d.store }

// Activate schedules the initial load and, once it lands, the repeating tick.
// It returns immediately. Calling it again is a no-op.
func (d *Dashboard) Activate(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tornDown {
		return ErrTornDown
	}
	if d.activated {
		return nil
	}
	d.activated = true
	d.loader = engine.After(ctx, d.opts.LoadDelay, func(time.Time) {
		d.load(ctx)
	})
	d.logger.Info("dashboard activated",
		slog.String("session", d.id),
		slog.Duration("load_delay", d.opts.LoadDelay),
		slog.Duration("tick_interval", d.opts.TickInterval))
	return nil
}

func (d *Dashboard) load(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tornDown {
		return
	}
	d.store.Replace(d.opts.Seed)
	d.logger.Info("initial snapshot loaded", slog.Uint64("version", d.store.Version()))
	d.ticker = engine.Every(ctx, d.opts.TickInterval, d.tick)
}

func (d *Dashboard) tick(time.Time) {
	start := time.Now()
	next := d.sim.Next(d.store.Current())
	if next == nil {
		return
	}
	d.store.Replace(next)
	metrics.ObserveTick(time.Since(start), len(next.RecentFeedback))
	d.logger.Debug("snapshot published",
		slog.Uint64("version", d.store.Version()),
		slog.Int("on_time_rate", next.Performance.OnTimeRate),
		slog.Float64("avg_delivery_time", next.Performance.AvgDeliveryTime))
}

// Teardown cancels a pending load, stops the tick, detaches every dependent,
// and releases both chart drawables. Later calls do nothing.
func (d *Dashboard) Teardown() {
	d.mu.Lock()
	if d.tornDown {
		d.mu.Unlock()
		return
	}
	d.tornDown = true
	loader := d.loader
	unsubs := d.unsubs
	d.unsubs = nil
	d.mu.Unlock()

	// load takes d.mu, so the loader must be stopped without holding it.
	loader.Stop()

	d.mu.Lock()
	ticker := d.ticker
	d.mu.Unlock()
	ticker.Stop()

	for _, unsub := range unsubs {
		unsub()
	}
	d.delivery.Close()
	d.volume.Close()
	d.logger.Info("dashboard torn down", slog.String("session", d.id))
}

// View assembles the dashboard as seen by id. Recommendations are withheld
// from anyone but an editor.
func (d *Dashboard) View(id models.Identity) (View, error) {
	if err := checkIdentity(id); err != nil {
		return View{}, err
	}
	day, entries := d.drill.Selection()
	view := View{
		SessionID:   d.id,
		Version:     d.store.Version(),
		User:        id,
		Alerts:      []models.Alert{},
		SelectedDay: day,
		DrillDown:   entries,
		Filters:     d.filters.State(),
	}
	current := d.store.Current()
	if current == nil {
		view.Loading = true
		return view, nil
	}
	snapshot := *current
	if !id.CanViewRecommendations() {
		snapshot.Recommendations = nil
	}
	view.Snapshot = &snapshot
	view.Alerts = d.alerts.ActiveFor(current)
	return view, nil
}

// Alerts returns the active alert set.
func (d *Dashboard) Alerts() []models.Alert { return d.alerts.Active() }

// DismissAlert removes one alert from the current set.
func (d *Dashboard) DismissAlert(id string) bool { return d.alerts.Dismiss(id) }

// SelectDay drills into the feedback received on day.
func (d *Dashboard) SelectDay(day string) []models.Feedback { return d.drill.Select(day) }

// ClickDeliveryChart resolves a click on the delivery-time chart and drills
// into the weekday under it. ok is false when the click missed every bar.
func (d *Dashboard) ClickDeliveryChart(x float64) (day string, entries []models.Feedback, ok bool) {
	day, ok = d.delivery.HitTest(x)
	if !ok {
		return "", []models.Feedback{}, false
	}
	return day, d.drill.Select(day), true
}

// ClearDrillDown drops the weekday selection.
func (d *Dashboard) ClearDrillDown() { d.drill.Clear() }

// SetFilter records a filter change.
func (d *Dashboard) SetFilter(field, value string) (models.FilterState, error) {
	return d.filters.Set(field, value)
}

// Subscribe registers fn for every published snapshot, after the dashboard's
// own dependents.
func (d *Dashboard) Subscribe(fn store.Listener) func() {
	return d.store.Subscribe(fn)
}

func checkIdentity(id models.Identity) error {
	switch id.Role {
	case models.RoleEditor, models.RoleViewer:
		return nil
	}
	return utils.NewAppError("dashboard.view", utils.KindInvalid, fmt.Sprintf("unknown role %q", id.Role), nil)
}
