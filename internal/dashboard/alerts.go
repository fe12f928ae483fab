package dashboard

import (
	"log/slog"
	"sync"

	"github.com/miradorstack/logistics-pulse/internal/engine"
	"github.com/miradorstack/logistics-pulse/internal/metrics"
	"github.com/miradorstack/logistics-pulse/internal/models"
)

// AlertManager holds the active alert set. The set is recomputed from scratch
// on every published snapshot, so a dismissed alert whose rule still fires
// comes back on the next tick.
type AlertManager struct {
	thresholds engine.Thresholds
	logger     *slog.Logger

	mu     sync.Mutex
	source *models.Snapshot
	active []models.Alert
}

// NewAlertManager returns a manager evaluating the given thresholds.
func NewAlertManager(thresholds engine.Thresholds, logger *slog.Logger) *AlertManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlertManager{thresholds: thresholds, logger: logger}
}

// Recompute replaces the active set with the alerts firing for snapshot.
// A nil snapshot leaves the set untouched.
func (m *AlertManager) Recompute(snapshot *models.Snapshot) {
	if snapshot == nil {
		return
	}
	alerts := m.thresholds.Evaluate(snapshot)

	firing := make(map[string]bool, 2)
	for _, a := range alerts {
		firing[a.ID] = true
	}
	metrics.SetAlertFiring(models.AlertAvgDeliveryTime, firing[models.AlertAvgDeliveryTime])
	metrics.SetAlertFiring(models.AlertOnTimeRate, firing[models.AlertOnTimeRate])

	m.mu.Lock()
	m.source = snapshot
	m.active = alerts
	m.mu.Unlock()

	if len(alerts) > 0 {
		m.logger.Debug("alerts firing", slog.Int("count", len(alerts)))
	}
}

// Dismiss removes the alert with id from the current set. It reports whether
// anything was removed.
func (m *AlertManager) Dismiss(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.active {
		if a.ID == id {
			m.active = append(m.active[:i:i], m.active[i+1:]...)
			m.logger.Info("alert dismissed", slog.String("alert", id))
			return true
		}
	}
	return false
}

// Active returns a copy of the current alert set.
func (m *AlertManager) Active() []models.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Alert{}, m.active...)
}

// ActiveFor returns the alert set belonging to snapshot. When snapshot is not
// the one the set was last computed from, its alerts are evaluated directly
// so the result never pairs one snapshot with another's alerts.
func (m *AlertManager) ActiveFor(snapshot *models.Snapshot) []models.Alert {
	if snapshot == nil {
		return []models.Alert{}
	}
	m.mu.Lock()
	source, active := m.source, m.active
	m.mu.Unlock()
	if source != snapshot {
		active = m.thresholds.Evaluate(snapshot)
	}
	return append([]models.Alert{}, active...)
}
