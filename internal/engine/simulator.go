package engine

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/miradorstack/logistics-pulse/internal/models"
)

// Rand is the random source the simulator draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

const (
	onTimeRateMin    = 85
	onTimeRateMax    = 99
	avgDeliveryMin   = 2.0
	avgDeliveryMax   = 3.5
	maxShipmentDelay = 19
	trendMin         = 2.0
	trendMax         = 4.0
	volumeMin        = 100
	volumeMax        = 200

	// statusChangeThreshold: a pipeline source switches to its drawn candidate
	// only when a uniform draw exceeds it (a 20% chance).
	statusChangeThreshold = 0.8
)

var streamTopics = []string{"Delivery Speed", "Customer Service"}

// Simulator derives the next snapshot of the simulated stream from the previous one.
type Simulator struct {
	mu  sync.Mutex
	rng Rand
}

// NewSimulator constructs a Simulator. A nil rng selects a time-seeded PCG source.
func NewSimulator(rng Rand) *Simulator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return &Simulator{rng: rng}
}

// Next builds a new snapshot from prev. prev is read, never modified; static
// reference data is carried over as-is.
func (s *Simulator) Next(prev *models.Snapshot) *models.Snapshot {
	if prev == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	feedback := s.nextFeedback(prev.RecentFeedback)
	pipeline := nextPipeline(prev.PipelineStatus, s.rng)

	next := *prev
	next.Performance = models.PerformanceMetrics{
		OnTimeRate:      onTimeRateMin + s.rng.IntN(onTimeRateMax-onTimeRateMin+1),
		AvgDeliveryTime: roundTenth(avgDeliveryMin + s.rng.Float64()*(avgDeliveryMax-avgDeliveryMin)),
		CostEfficiency:  prev.Performance.CostEfficiency,
		ShipmentDelays:  s.rng.IntN(maxShipmentDelay + 1),
	}
	next.DeliveryTimeTrend = mapValues(prev.DeliveryTimeTrend, func() float64 {
		return trendMin + s.rng.Float64()*(trendMax-trendMin)
	})
	next.ShipmentVolume = mapValues(prev.ShipmentVolume, func() float64 {
		return float64(volumeMin + s.rng.IntN(volumeMax-volumeMin+1))
	})
	next.RecentFeedback = feedback
	next.PipelineStatus = pipeline
	return &next
}

func (s *Simulator) nextFeedback(prev []models.Feedback) []models.Feedback {
	speed := "slow"
	if s.coin() {
		speed = "fast"
	}
	sentiment := models.SentimentNegative
	if s.coin() {
		sentiment = models.SentimentPositive
	}
	advanced := "Frustrated"
	if s.coin() {
		advanced = "Satisfied"
	}

	item := models.Feedback{
		ID:                nextFeedbackID(prev),
		Source:            models.SourceChatbot,
		Text:              "New feedback received: delivery was " + speed + ".",
		Sentiment:         sentiment,
		AdvancedSentiment: advanced,
		Topics:            append([]string(nil), streamTopics...),
		Day:               models.Weekdays[s.rng.IntN(len(models.Weekdays))],
	}

	size := len(prev) + 1
	if size > models.FeedbackLogLimit {
		size = models.FeedbackLogLimit
	}
	out := make([]models.Feedback, 0, size)
	out = append(out, item)
	for _, f := range prev {
		if len(out) == size {
			break
		}
		out = append(out, f)
	}
	return out
}

func (s *Simulator) coin() bool {
	return s.rng.Float64() > 0.5
}

// nextFeedbackID keeps IDs unique after eviction by continuing from the
// largest ID still in the log.
func nextFeedbackID(log []models.Feedback) int {
	next := len(log) + 1
	for _, f := range log {
		if f.ID >= next {
			next = f.ID + 1
		}
	}
	return next
}

// nextPipeline draws a candidate status for every source and adopts it with a
// 20% chance. LastSync follows the drawn candidate and the prior status: "Just
// now" for a Healthy candidate, otherwise by whether the source was Degraded.
func nextPipeline(prev []models.PipelineSource, rng Rand) []models.PipelineSource {
	out := make([]models.PipelineSource, len(prev))
	for i, p := range prev {
		candidate := models.PipelineStates[rng.IntN(len(models.PipelineStates))]
		status := p.Status
		if rng.Float64() > statusChangeThreshold {
			status = candidate
		}
		var lastSync string
		switch {
		case candidate == models.PipelineHealthy:
			lastSync = "Just now"
		case p.Status == models.PipelineDegraded:
			lastSync = "15 minutes ago"
		default:
			lastSync = "1 hour ago"
		}
		out[i] = models.PipelineSource{Source: p.Source, Status: status, LastSync: lastSync}
	}
	return out
}

func mapValues(points []models.DayPoint, value func() float64) []models.DayPoint {
	out := make([]models.DayPoint, len(points))
	for i, p := range points {
		out[i] = models.DayPoint{Day: p.Day, Value: value()}
	}
	return out
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
