package dashboard

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/miradorstack/logistics-pulse/internal/models"
	"github.com/miradorstack/logistics-pulse/internal/utils"
)

// Filters stores the display filter selection. Changes are validated and
// logged but do not alter any data shown.
type Filters struct {
	logger *slog.Logger

	mu    sync.Mutex
	state models.FilterState
}

// NewFilters starts from models.DefaultFilters.
func NewFilters(logger *slog.Logger) *Filters {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filters{logger: logger, state: models.DefaultFilters()}
}

// Set changes one filter field. Unknown fields or values yield an invalid AppError.
func (f *Filters) Set(field, value string) (models.FilterState, error) {
	options, ok := models.FilterOptions[field]
	if !ok {
		return f.State(), utils.NewAppError("filters.set", utils.KindInvalid, fmt.Sprintf("unknown filter field %q", field), nil)
	}
	if !slices.Contains(options, value) {
		return f.State(), utils.NewAppError("filters.set", utils.KindInvalid, fmt.Sprintf("unsupported %s value %q", field, value), nil)
	}

	f.mu.Lock()
	next, _ := f.state.With(field, value)
	f.state = next
	f.mu.Unlock()

	f.logger.Info("filter changed", slog.String("field", field), slog.String("value", value))
	return next, nil
}

// State returns the current selection.
func (f *Filters) State() models.FilterState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
