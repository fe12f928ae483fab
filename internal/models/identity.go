package models

// Role values supplied by the sign-in collaborator.
const (
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Identity is who is looking at the dashboard.
type Identity struct {
	Role string
	Name string
}

// CanViewRecommendations reports whether the recommendations panel is visible.
func (i Identity) CanViewRecommendations() bool {
	return i.Role == RoleEditor
}

// Filter field names.
const (
	FilterDateRange    = "dateRange"
	FilterRegion       = "region"
	FilterProduct      = "product"
	FilterShipmentType = "shipmentType"
)

// FilterOptions enumerates the accepted values of each filter field.
var FilterOptions = map[string][]string{
	FilterDateRange:    {"last-week", "last-month", "last-quarter"},
	FilterRegion:       {"all", "north-america", "europe", "asia"},
	FilterProduct:      {"all", "electronics", "apparel", "home-goods"},
	FilterShipmentType: {"all", "standard", "express", "freight"},
}

// FilterState holds the user-selected display filters.
type FilterState struct {
	DateRange    string
	Region       string
	Product      string
	ShipmentType string
}

// DefaultFilters returns the initial filter selection.
func DefaultFilters() FilterState {
	return FilterState{
		DateRange:    "last-week",
		Region:       "all",
		Product:      "all",
		ShipmentType: "all",
	}
}

// With returns a copy of f with field set to value. ok is false for an
// unknown field name.
func (f FilterState) With(field, value string) (FilterState, bool) {
	switch field {
	case FilterDateRange:
		f.DateRange = value
	case FilterRegion:
		f.Region = value
	case FilterProduct:
		f.Product = value
	case FilterShipmentType:
		f.ShipmentType = value
	default:
		return f, false
	}
	return f, true
}
