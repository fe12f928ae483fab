package dashboard

import (
	"sync"

	"github.com/miradorstack/logistics-pulse/internal/models"
	"github.com/miradorstack/logistics-pulse/internal/store"
)

// DrillDown holds the weekday selection and the feedback captured for it.
// The projection is taken when a day is selected and is not refreshed by
// later snapshots.
type DrillDown struct {
	store *store.Store

	mu      sync.Mutex
	day     string
	entries []models.Feedback
}

// NewDrillDown reads feedback from st.
func NewDrillDown(st *store.Store) *DrillDown {
	return &DrillDown{store: st}
}

// Select projects the current feedback log onto day. Before the first
// snapshot it returns an empty result and keeps the previous selection.
func (d *DrillDown) Select(day string) []models.Feedback {
	snapshot := d.store.Current()
	if snapshot == nil {
		return []models.Feedback{}
	}
	entries := snapshot.FeedbackForDay(day)

	d.mu.Lock()
	d.day = day
	d.entries = entries
	d.mu.Unlock()

	return append([]models.Feedback{}, entries...)
}

// Clear drops the selection.
func (d *DrillDown) Clear() {
	d.mu.Lock()
	d.day = ""
	d.entries = nil
	d.mu.Unlock()
}

// Selection returns the selected day and a copy of its entries. day is empty
// when nothing is selected.
func (d *DrillDown) Selection() (string, []models.Feedback) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.day == "" {
		return "", []models.Feedback{}
	}
	return d.day, append([]models.Feedback{}, d.entries...)
}
