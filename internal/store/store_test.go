package store

import (
	"testing"

	"github.com/miradorstack/logistics-pulse/internal/models"
)

func TestStoreStartsEmpty(t *testing.T) {
	s := New()
	if s.Current() != nil {
		t.Fatalf("expected no snapshot before first replace")
	}
	if s.Version() != 0 {
		t.Fatalf("expected version 0, got %d", s.Version())
	}
}

func TestStoreReplaceNotifiesInOrder(t *testing.T) {
	s := New()
	var calls []string
	s.Subscribe(func(*models.Snapshot) { calls = append(calls, "alerts") })
	s.Subscribe(func(*models.Snapshot) { calls = append(calls, "charts") })

	snap := &models.Snapshot{Performance: models.PerformanceMetrics{OnTimeRate: 91}}
	s.Replace(snap)

	if s.Current() != snap {
		t.Fatalf("expected current snapshot to be replaced")
	}
	if len(calls) != 2 || calls[0] != "alerts" || calls[1] != "charts" {
		t.Fatalf("unexpected notification order: %v", calls)
	}
	if s.Version() != 1 {
		t.Fatalf("expected version 1, got %d", s.Version())
	}
}

func TestStoreListenerSeesPublishedSnapshot(t *testing.T) {
	s := New()
	var seen *models.Snapshot
	s.Subscribe(func(snap *models.Snapshot) {
		seen = s.Current()
		if seen != snap {
			t.Errorf("listener observed a different snapshot than the published one")
		}
	})
	s.Replace(&models.Snapshot{})
	if seen == nil {
		t.Fatalf("listener was not called")
	}
}

func TestStoreUnsubscribe(t *testing.T) {
	s := New()
	count := 0
	cancel := s.Subscribe(func(*models.Snapshot) { count++ })
	s.Replace(&models.Snapshot{})
	cancel()
	cancel()
	s.Replace(&models.Snapshot{})
	if count != 1 {
		t.Fatalf("expected 1 notification, got %d", count)
	}
}

func TestStoreIgnoresNil(t *testing.T) {
	s := New()
	s.Replace(nil)
	if s.Version() != 0 || s.Current() != nil {
		t.Fatalf("nil replace should be ignored")
	}
}
