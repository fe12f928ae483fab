package models

// Alert rule identifiers. An active alert set holds at most one alert per rule.
const (
	AlertAvgDeliveryTime = "avg-delivery-time"
	AlertOnTimeRate      = "on-time-rate"
)

// AlertType tags alert severity.
type AlertType string

const (
	AlertWarning AlertType = "warning"
)

// Alert is one firing threshold rule rendered for display.
type Alert struct {
	ID      string
	Message string
	Type    AlertType
}
