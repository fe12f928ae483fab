package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSeedIsValid(t *testing.T) {
	seed := DefaultSeed()
	if err := Validate(seed); err != nil {
		t.Fatalf("default seed invalid: %v", err)
	}
	if len(seed.RecentFeedback) != 6 || len(seed.PipelineStatus) != 3 {
		t.Fatalf("unexpected seed shape")
	}
	if DefaultSeed() == seed {
		t.Fatalf("expected a fresh copy on every call")
	}
}

func TestLoadSeedFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(path, []byte(`snapshot:
  performanceMetrics:
    onTimeRate: 93
    avgDeliveryTime: 2.4
    costEfficiency: "$1.10/mile"
    shipmentDelays: 3
  deliveryTimeTrend:
    - {day: Mon, value: 2.1}
    - {day: Tue, value: 2.2}
    - {day: Wed, value: 2.3}
    - {day: Thu, value: 2.4}
    - {day: Fri, value: 2.5}
    - {day: Sat, value: 2.6}
    - {day: Sun, value: 2.7}
  shipmentVolume:
    - {day: Mon, value: 101}
    - {day: Tue, value: 102}
    - {day: Wed, value: 103}
    - {day: Thu, value: 104}
    - {day: Fri, value: 105}
    - {day: Sat, value: 106}
    - {day: Sun, value: 107}
  recentFeedback:
    - id: 1
      source: Survey
      text: "Great"
      sentiment: Positive
      advancedSentiment: Pleased
      topics: [Tracking]
      day: Tue
  dataPipelineStatus:
    - {source: "Email API", status: Healthy, lastSync: "Just now"}
`), 0644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	seed, err := LoadSeed(path, nil)
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if seed.Performance.OnTimeRate != 93 || seed.ShipmentVolume[6].Value != 107 {
		t.Fatalf("seed not decoded: %+v", seed.Performance)
	}
	if seed.RecentFeedback[0].Day != "Tue" {
		t.Fatalf("feedback not decoded: %+v", seed.RecentFeedback)
	}
}

func TestLoadSeedMissingFileFallsBack(t *testing.T) {
	seed, err := LoadSeed(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}
	if seed.Performance.OnTimeRate != 88 {
		t.Fatalf("expected built-in dataset")
	}
}

func TestLoadSeedRejectsShortWeek(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(`snapshot:
  deliveryTimeTrend:
    - {day: Mon, value: 2.1}
`), 0644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if _, err := LoadSeed(path, nil); err == nil {
		t.Fatalf("expected validation error")
	}
}
