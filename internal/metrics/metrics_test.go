package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second register should tolerate duplicates: %v", err)
	}
}

func TestRenderAndDisposeBalanceLiveGauge(t *testing.T) {
	before := testutil.ToFloat64(liveRenderers.WithLabelValues("unit-test"))
	ObserveRender("unit-test", OutcomeSuccess)
	ObserveRender("unit-test", OutcomeError)
	if got := testutil.ToFloat64(liveRenderers.WithLabelValues("unit-test")); got != before+1 {
		t.Fatalf("expected one live renderer, got %v", got-before)
	}
	ObserveDispose("unit-test")
	if got := testutil.ToFloat64(liveRenderers.WithLabelValues("unit-test")); got != before {
		t.Fatalf("expected live gauge back to %v, got %v", before, got)
	}
}

func TestSetAlertFiring(t *testing.T) {
	SetAlertFiring("on-time-rate", true)
	if got := testutil.ToFloat64(alertFiring.WithLabelValues("on-time-rate")); got != 1 {
		t.Fatalf("expected firing gauge 1, got %v", got)
	}
	SetAlertFiring("on-time-rate", false)
	if got := testutil.ToFloat64(alertFiring.WithLabelValues("on-time-rate")); got != 0 {
		t.Fatalf("expected firing gauge 0, got %v", got)
	}
}
