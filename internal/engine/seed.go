package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/miradorstack/logistics-pulse/internal/models"
)

// SeedFile is the YAML root of a seed dataset override.
type SeedFile struct {
	Snapshot models.Snapshot `yaml:"snapshot"`
}

// LoadSeed reads a seed dataset from path. An empty path or a missing file
// falls back to DefaultSeed so a fresh checkout boots without extra files.
func LoadSeed(path string, logger *slog.Logger) (*models.Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return DefaultSeed(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("seed file not found, using built-in dataset", slog.String("path", path))
			return DefaultSeed(), nil
		}
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := Validate(&file.Snapshot); err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return &file.Snapshot, nil
}

// Validate checks the structural invariants every published snapshot must hold.
func Validate(s *models.Snapshot) error {
	if s == nil {
		return errors.New("snapshot is nil")
	}
	if err := validateWeek("deliveryTimeTrend", s.DeliveryTimeTrend); err != nil {
		return err
	}
	if err := validateWeek("shipmentVolume", s.ShipmentVolume); err != nil {
		return err
	}
	if len(s.RecentFeedback) > models.FeedbackLogLimit {
		return fmt.Errorf("recentFeedback holds %d entries, limit is %d", len(s.RecentFeedback), models.FeedbackLogLimit)
	}
	seen := make(map[string]struct{}, len(s.PipelineStatus))
	for _, p := range s.PipelineStatus {
		if _, dup := seen[p.Source]; dup {
			return fmt.Errorf("dataPipelineStatus lists %q twice", p.Source)
		}
		seen[p.Source] = struct{}{}
	}
	return nil
}

func validateWeek(name string, points []models.DayPoint) error {
	if len(points) != len(models.Weekdays) {
		return fmt.Errorf("%s has %d points, want %d", name, len(points), len(models.Weekdays))
	}
	for i, p := range points {
		if p.Day != models.Weekdays[i] {
			return fmt.Errorf("%s[%d] is %q, want %q", name, i, p.Day, models.Weekdays[i])
		}
	}
	return nil
}

// DefaultSeed returns a fresh copy of the built-in dataset shown on first load.
func DefaultSeed() *models.Snapshot {
	return &models.Snapshot{
		Performance: models.PerformanceMetrics{
			OnTimeRate:      88,
			AvgDeliveryTime: 3.1,
			CostEfficiency:  "$1.25/mile",
			ShipmentDelays:  12,
		},
		DeliveryTimeTrend: week(2.5, 2.4, 2.6, 3.1, 2.2, 2.4, 3.2),
		ShipmentVolume:    week(120, 150, 135, 170, 165, 180, 155),
		RecentFeedback: []models.Feedback{
			{
				ID:                1,
				Source:            models.SourceEmail,
				Text:              "The delivery was faster than expected. Very happy with the service!",
				Sentiment:         models.SentimentPositive,
				AdvancedSentiment: "Satisfied",
				Topics:            []string{"Delivery Speed"},
				Day:               "Mon",
			},
			{
				ID:                2,
				Source:            models.SourceReview,
				Text:              "My package was delayed by two days without any communication. Disappointed.",
				Sentiment:         models.SentimentNegative,
				AdvancedSentiment: "Frustrated",
				Topics:            []string{"Shipment Delays", "Communication"},
				Day:               "Wed",
			},
			{
				ID:                3,
				Source:            models.SourceSurvey,
				Text:              "Overall, a good experience. The tracking information was accurate.",
				Sentiment:         models.SentimentPositive,
				AdvancedSentiment: "Pleased",
				Topics:            []string{"Tracking"},
				Day:               "Fri",
			},
			{
				ID:                4,
				Source:            models.SourceEmail,
				Text:              "The product arrived damaged. This is unacceptable.",
				Sentiment:         models.SentimentNegative,
				AdvancedSentiment: "Angry",
				Topics:            []string{"Product Damage"},
				Day:               "Wed",
			},
			{
				ID:                5,
				Source:            models.SourceEmail,
				Text:              "The delivery speed was great, but the packaging was poor.",
				Sentiment:         models.SentimentMixed,
				AdvancedSentiment: "Mixed",
				Topics:            []string{"Delivery Speed", "Packaging Issues"},
				Day:               "Thu",
			},
			{
				ID:                6,
				Source:            models.SourceReview,
				Text:              "Customer service was unhelpful when I called about my late delivery.",
				Sentiment:         models.SentimentNegative,
				AdvancedSentiment: "Disappointed",
				Topics:            []string{"Customer Service", "Shipment Delays"},
				Day:               "Sat",
			},
		},
		Recommendations: []string{
			`Optimize route planning for the "Western Region" to reduce average delivery time.`,
			"Analyze the impact of recent fuel price changes on overall cost efficiency.",
			"Investigate the root cause of on-time delivery rate drops on weekends.",
			"Implement a proactive communication system for shipment delays via SMS.",
		},
		Predictive: models.PredictiveAnalytics{
			PredictedOnTimeRate: 96,
			ForecastPeriod:      "Next Month",
		},
		Causal: models.CausalAnalysis{
			Title:   "Fuel Costs and Delivery Speed",
			Insight: "Causal analysis suggests that the 10% increase in fuel costs over the last quarter is a significant driver of the 5% decrease in average delivery speed.",
		},
		Topics: []models.TopicCount{
			{Topic: "Delivery Speed", Count: 18, Sentiment: "Mixed"},
			{Topic: "Packaging Issues", Count: 7, Sentiment: "Negative"},
			{Topic: "Customer Service", Count: 5, Sentiment: "Neutral"},
		},
		PipelineStatus: []models.PipelineSource{
			{Source: "Email API", Status: models.PipelineHealthy, LastSync: "Just now"},
			{Source: "SurveyMonkey API", Status: models.PipelineHealthy, LastSync: "2 minutes ago"},
			{Source: "Logistics Provider API", Status: models.PipelineDegraded, LastSync: "15 minutes ago"},
		},
	}
}

func week(values ...float64) []models.DayPoint {
	points := make([]models.DayPoint, len(models.Weekdays))
	for i, day := range models.Weekdays {
		points[i] = models.DayPoint{Day: day, Value: values[i]}
	}
	return points
}
