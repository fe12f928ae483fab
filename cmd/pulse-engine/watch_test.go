package main

import (
	"testing"

	"github.com/miradorstack/logistics-pulse/internal/api"
	"github.com/miradorstack/logistics-pulse/internal/dashboard"
	"github.com/miradorstack/logistics-pulse/internal/engine"
	"github.com/miradorstack/logistics-pulse/internal/models"
)

func TestSummarize(t *testing.T) {
	loading, err := api.ToStructView(dashboard.View{Loading: true, User: models.Identity{Role: models.RoleViewer}})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := summarize(loading); got != "v0 loading" {
		t.Fatalf("unexpected loading summary %q", got)
	}

	seed := engine.DefaultSeed()
	view, err := api.ToStructView(dashboard.View{
		Version:  2,
		User:     models.Identity{Role: models.RoleViewer},
		Snapshot: seed,
		Alerts:   engine.DefaultThresholds().Evaluate(seed),
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := "v2 on-time=88% avg=3.1d delays=12 feedback=6 alerts=avg-delivery-time,on-time-rate"
	if got := summarize(view); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
