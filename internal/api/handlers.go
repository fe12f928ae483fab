package api

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/miradorstack/logistics-pulse/internal/dashboard"
	"github.com/miradorstack/logistics-pulse/internal/models"
)

// IdentityFromStruct reads {role, name} from a request.
func IdentityFromStruct(req *structpb.Struct) (models.Identity, error) {
	if req == nil {
		return models.Identity{}, fmt.Errorf("request is nil")
	}
	role := StringField(req, "role")
	if role == "" {
		return models.Identity{}, fmt.Errorf("role is required")
	}
	return models.Identity{Role: role, Name: StringField(req, "name")}, nil
}

// StringField returns the string value of key, or "" when absent or not a string.
func StringField(req *structpb.Struct, key string) string {
	if req == nil {
		return ""
	}
	v, ok := req.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

// NumberField returns the numeric value of key. ok is false when the key is
// absent or not a number.
func NumberField(req *structpb.Struct, key string) (float64, bool) {
	if req == nil {
		return 0, false
	}
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, false
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	return n.NumberValue, true
}

// ToStructView converts a dashboard view into its wire representation.
func ToStructView(view dashboard.View) (*structpb.Struct, error) {
	out := map[string]any{
		"sessionId":   view.SessionID,
		"version":     view.Version,
		"loading":     view.Loading,
		"user":        map[string]any{"name": view.User.Name, "role": view.User.Role},
		"filters":     filtersMap(view.Filters),
		"alerts":      alertsList(view.Alerts),
		"selectedDay": view.SelectedDay,
		"drillDown":   feedbackList(view.DrillDown),
	}
	if view.Snapshot != nil {
		out["snapshot"] = snapshotMap(view.Snapshot)
	}
	return structpb.NewStruct(out)
}

// ToStructDrillDown wraps a drill-down projection. hit is false when a chart
// click landed outside every bar.
func ToStructDrillDown(day string, entries []models.Feedback, hit bool) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"hit":      hit,
		"day":      day,
		"feedback": feedbackList(entries),
	})
}

// ToStructAlerts reports a dismissal and the alerts left active.
func ToStructAlerts(dismissed bool, alerts []models.Alert) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"dismissed": dismissed,
		"alerts":    alertsList(alerts),
	})
}

// ToStructFilters wraps the filter selection.
func ToStructFilters(state models.FilterState) (*structpb.Struct, error) {
	return structpb.NewStruct(filtersMap(state))
}

func snapshotMap(s *models.Snapshot) map[string]any {
	out := map[string]any{
		"performanceMetrics": map[string]any{
			"onTimeRate":      s.Performance.OnTimeRate,
			"avgDeliveryTime": s.Performance.AvgDeliveryTime,
			"costEfficiency":  s.Performance.CostEfficiency,
			"shipmentDelays":  s.Performance.ShipmentDelays,
		},
		"deliveryTimeTrend":  seriesList(s.DeliveryTimeTrend),
		"shipmentVolume":     seriesList(s.ShipmentVolume),
		"recentFeedback":     feedbackList(s.RecentFeedback),
		"dataPipelineStatus": pipelineList(s.PipelineStatus),
		"predictiveAnalytics": map[string]any{
			"predictedOnTimeRate": s.Predictive.PredictedOnTimeRate,
			"forecastPeriod":      s.Predictive.ForecastPeriod,
		},
		"causalAnalysis": map[string]any{
			"title":   s.Causal.Title,
			"insight": s.Causal.Insight,
		},
		"topicModeling": topicList(s.Topics),
	}
	if s.Recommendations != nil {
		out["aiRecommendations"] = stringList(s.Recommendations)
	}
	return out
}

func filtersMap(f models.FilterState) map[string]any {
	return map[string]any{
		models.FilterDateRange:    f.DateRange,
		models.FilterRegion:       f.Region,
		models.FilterProduct:      f.Product,
		models.FilterShipmentType: f.ShipmentType,
	}
}

func alertsList(alerts []models.Alert) []any {
	out := make([]any, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, map[string]any{"id": a.ID, "message": a.Message, "type": string(a.Type)})
	}
	return out
}

func seriesList(points []models.DayPoint) []any {
	out := make([]any, 0, len(points))
	for _, p := range points {
		out = append(out, map[string]any{"day": p.Day, "value": p.Value})
	}
	return out
}

func feedbackList(entries []models.Feedback) []any {
	out := make([]any, 0, len(entries))
	for _, f := range entries {
		out = append(out, map[string]any{
			"id":                f.ID,
			"source":            string(f.Source),
			"text":              f.Text,
			"sentiment":         string(f.Sentiment),
			"advancedSentiment": f.AdvancedSentiment,
			"topics":            stringList(f.Topics),
			"day":               f.Day,
		})
	}
	return out
}

func pipelineList(sources []models.PipelineSource) []any {
	out := make([]any, 0, len(sources))
	for _, p := range sources {
		out = append(out, map[string]any{"source": p.Source, "status": string(p.Status), "lastSync": p.LastSync})
	}
	return out
}

func topicList(topics []models.TopicCount) []any {
	out := make([]any, 0, len(topics))
	for _, t := range topics {
		out = append(out, map[string]any{"topic": t.Topic, "count": t.Count, "sentiment": t.Sentiment})
	}
	return out
}

func stringList(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
