package models

import "testing"

func TestFeedbackForDay(t *testing.T) {
	s := &Snapshot{RecentFeedback: []Feedback{
		{ID: 4, Day: "Mon"},
		{ID: 3, Day: "Wed"},
		{ID: 2, Day: "Wed"},
		{ID: 1, Day: "Fri"},
	}}

	wed := s.FeedbackForDay("Wed")
	if len(wed) != 2 || wed[0].ID != 3 || wed[1].ID != 2 {
		t.Fatalf("expected Wed items 3 then 2, got %+v", wed)
	}
	sun := s.FeedbackForDay("Sun")
	if sun == nil || len(sun) != 0 {
		t.Fatalf("expected empty non-nil result for Sun, got %#v", sun)
	}

	var missing *Snapshot
	if got := missing.FeedbackForDay("Mon"); got == nil || len(got) != 0 {
		t.Fatalf("nil snapshot should project nothing")
	}
}

func TestFilterStateWith(t *testing.T) {
	f, ok := DefaultFilters().With(FilterShipmentType, "freight")
	if !ok || f.ShipmentType != "freight" || f.Region != "all" {
		t.Fatalf("unexpected state %+v ok=%v", f, ok)
	}
	if _, ok := f.With("carrier", "ups"); ok {
		t.Fatalf("unknown field should be rejected")
	}
}

func TestCanViewRecommendations(t *testing.T) {
	if !(Identity{Role: RoleEditor}).CanViewRecommendations() {
		t.Fatalf("editor should see recommendations")
	}
	if (Identity{Role: RoleViewer}).CanViewRecommendations() {
		t.Fatalf("viewer should not see recommendations")
	}
}
