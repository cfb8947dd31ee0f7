package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"book_my_hotel/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors have children to export
	observability.ObserveHTTP("/v1/hotels", "GET", 200, 12*time.Millisecond)
	observability.ObserveBooking("confirmed")
	observability.ObserveSubmit(2 * time.Second)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"bookmyhotel_http_requests_total",
		`bookmyhotel_booking_events_total{event="confirmed"}`,
		"bookmyhotel_booking_submit_duration_seconds_count",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}
