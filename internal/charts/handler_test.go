package charts

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/miradorstack/logistics-pulse/internal/engine"
)

func TestFrameHandler(t *testing.T) {
	surface := NewMemorySurface(480, 240, FormatSVG)
	handler := FrameHandler(surface)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts/shipment-volume", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before render, got %d", rec.Code)
	}

	b := NewShipmentVolumeBinding(surface, nil)
	defer b.Close()
	if err := b.Bind(engine.DefaultSeed()); err != nil {
		t.Fatalf("bind: %v", err)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts/shipment-volume", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Fatalf("body is not svg")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/charts/shipment-volume", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
