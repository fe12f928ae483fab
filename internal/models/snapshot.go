package models

// Weekdays lists the category labels in display order. Trend and volume series
// always carry exactly one point per label, in this order.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// FeedbackLogLimit bounds RecentFeedback; the oldest entry is evicted on overflow.
const FeedbackLogLimit = 6

// Snapshot is one complete, self-consistent set of dashboard data. A published
// Snapshot is never mutated; producers build a fresh value for every update.
type Snapshot struct {
	Performance       PerformanceMetrics  `yaml:"performanceMetrics"`
	DeliveryTimeTrend []DayPoint          `yaml:"deliveryTimeTrend"`
	ShipmentVolume    []DayPoint          `yaml:"shipmentVolume"`
	RecentFeedback    []Feedback          `yaml:"recentFeedback"`
	PipelineStatus    []PipelineSource    `yaml:"dataPipelineStatus"`
	Recommendations   []string            `yaml:"aiRecommendations"`
	Predictive        PredictiveAnalytics `yaml:"predictiveAnalytics"`
	Causal            CausalAnalysis      `yaml:"causalAnalysis"`
	Topics            []TopicCount        `yaml:"topicModeling"`
}

// PerformanceMetrics holds the headline KPI cards.
type PerformanceMetrics struct {
	OnTimeRate      int     `yaml:"onTimeRate"`
	AvgDeliveryTime float64 `yaml:"avgDeliveryTime"`
	CostEfficiency  string  `yaml:"costEfficiency"`
	ShipmentDelays  int     `yaml:"shipmentDelays"`
}

// DayPoint is a single weekday sample of a weekly series.
type DayPoint struct {
	Day   string  `yaml:"day"`
	Value float64 `yaml:"value"`
}

// FeedbackSource enumerates feedback channels.
type FeedbackSource string

const (
	SourceEmail   FeedbackSource = "Email"
	SourceReview  FeedbackSource = "Review"
	SourceSurvey  FeedbackSource = "Survey"
	SourceChatbot FeedbackSource = "Chatbot"
)

// Sentiment is the coarse, pre-labelled sentiment of a feedback item.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentMixed    Sentiment = "Mixed"
)

// Feedback is one customer feedback entry. Sentiment and topics are passed
// through as labelled upstream.
type Feedback struct {
	ID                int            `yaml:"id"`
	Source            FeedbackSource `yaml:"source"`
	Text              string         `yaml:"text"`
	Sentiment         Sentiment      `yaml:"sentiment"`
	AdvancedSentiment string         `yaml:"advancedSentiment"`
	Topics            []string       `yaml:"topics"`
	Day               string         `yaml:"day"`
}

// PipelineState enumerates ingestion health states.
type PipelineState string

const (
	PipelineHealthy  PipelineState = "Healthy"
	PipelineDegraded PipelineState = "Degraded"
	PipelineOffline  PipelineState = "Offline"
)

// PipelineStates lists every state in draw order.
var PipelineStates = []PipelineState{PipelineHealthy, PipelineDegraded, PipelineOffline}

// PipelineSource is the health record of one ingestion source. The set of
// sources never changes over a session.
type PipelineSource struct {
	Source   string        `yaml:"source"`
	Status   PipelineState `yaml:"status"`
	LastSync string        `yaml:"lastSync"`
}

// PredictiveAnalytics is static forecast reference data.
type PredictiveAnalytics struct {
	PredictedOnTimeRate int    `yaml:"predictedOnTimeRate"`
	ForecastPeriod      string `yaml:"forecastPeriod"`
}

// CausalAnalysis is a static causal insight card.
type CausalAnalysis struct {
	Title   string `yaml:"title"`
	Insight string `yaml:"insight"`
}

// TopicCount is a static topic-modeling row.
type TopicCount struct {
	Topic     string `yaml:"topic"`
	Count     int    `yaml:"count"`
	Sentiment string `yaml:"sentiment"`
}

// FeedbackForDay returns the feedback entries tagged with day, preserving their
// relative order. The result is a fresh slice and never nil.
func (s *Snapshot) FeedbackForDay(day string) []Feedback {
	out := make([]Feedback, 0)
	if s == nil {
		return out
	}
	for _, item := range s.RecentFeedback {
		if item.Day == day {
			out = append(out, item)
		}
	}
	return out
}
