package engine

import (
	"fmt"
	"strconv"

	"github.com/miradorstack/logistics-pulse/internal/models"
)

// Thresholds configures the two alert rules.
type Thresholds struct {
	AvgDeliveryTimeDays float64
	OnTimeRatePercent   float64
}

// DefaultThresholds returns the stock alert limits.
func DefaultThresholds() Thresholds {
	return Thresholds{AvgDeliveryTimeDays: 3, OnTimeRatePercent: 90}
}

// Evaluate returns one alert per firing rule, in rule order. It carries no
// state between calls; a nil snapshot yields no alerts.
func (t Thresholds) Evaluate(s *models.Snapshot) []models.Alert {
	if s == nil {
		return nil
	}
	alerts := make([]models.Alert, 0, 2)
	perf := s.Performance

	if perf.AvgDeliveryTime > t.AvgDeliveryTimeDays {
		msg := fmt.Sprintf("Alert: Average delivery time has exceeded %s days, currently at %s days.",
			formatLimit(t.AvgDeliveryTimeDays), strconv.FormatFloat(perf.AvgDeliveryTime, 'f', 1, 64))
		alerts = append(alerts, models.Alert{ID: models.AlertAvgDeliveryTime, Message: msg, Type: models.AlertWarning})
	}

	if float64(perf.OnTimeRate) < t.OnTimeRatePercent {
		msg := fmt.Sprintf("Alert: The on-time delivery rate has dropped below %s%%, currently at %d%%.",
			formatLimit(t.OnTimeRatePercent), perf.OnTimeRate)
		alerts = append(alerts, models.Alert{ID: models.AlertOnTimeRate, Message: msg, Type: models.AlertWarning})
	}
	return alerts
}

func formatLimit(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
