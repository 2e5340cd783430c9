package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javierferna/nasa-asteroid-dashboard/config"
	"github.com/javierferna/nasa-asteroid-dashboard/models"
	"github.com/javierferna/nasa-asteroid-dashboard/services"
	"github.com/javierferna/nasa-asteroid-dashboard/source"
	"github.com/javierferna/nasa-asteroid-dashboard/utils"
)

type failSource struct{}

func (failSource) Fetch(_ context.Context) ([]models.ApproachRecord, error) {
	return nil, errors.New("warehouse unreachable")
}

func testRouter(src source.RecordSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := utils.NewLogger()
	cfg := &config.Config{DefaultMaxDistanceMkm: 100, DefaultTopN: 10}
	store := services.NewSnapshotStore(src, time.Hour, logger)
	pipeline := services.NewPipeline(logger)
	return NewRouter(NewHandler(store, pipeline, cfg, logger))
}

func demoRouter() *gin.Engine {
	return testRouter(source.NewDemoSource(1, 7))
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := get(t, demoRouter(), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
}

func TestSummary(t *testing.T) {
	w := get(t, demoRouter(), "/api/v1/summary?max_distance_mkm=100")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		Metrics        models.Metrics `json:"metrics"`
		ClosestDisplay string         `json:"closest_display"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Metrics.Total == 0 {
		t.Error("demo snapshot should not be empty at 100 Mkm")
	}
	if body.ClosestDisplay == "" || body.ClosestDisplay == "N/A" {
		t.Errorf("closest_display: got %q", body.ClosestDisplay)
	}
}

func TestSummaryEmptySetSentinel(t *testing.T) {
	// 0 Mkm excludes everything the demo generator produces.
	w := get(t, demoRouter(), "/api/v1/summary?max_distance_mkm=0")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	var body struct {
		ClosestDisplay string `json:"closest_display"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ClosestDisplay != "N/A" {
		t.Errorf("closest_display for empty set: got %q, want N/A", body.ClosestDisplay)
	}
}

func TestInvalidVelocityRangeRejected(t *testing.T) {
	w := get(t, demoRouter(), "/api/v1/dashboard?vmin=30&vmax=5")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestTopNClampedAndReversed(t *testing.T) {
	w := get(t, demoRouter(), "/api/v1/largest?top_n=500&max_distance_mkm=100")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", w.Code, w.Body.String())
	}

	var records []models.ApproachRecord
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) > models.MaxTopN {
		t.Fatalf("top-N not clamped: got %d", len(records))
	}
	// Reversed for the bar chart: largest asteroid comes last.
	for i := 1; i < len(records); i++ {
		if records[i-1].MaxDiameterKm > records[i].MaxDiameterKm {
			t.Fatalf("largest endpoint not ascending at %d", i)
		}
	}
}

func TestAsteroidsSortedClosestFirst(t *testing.T) {
	w := get(t, demoRouter(), "/api/v1/asteroids?max_distance_mkm=100")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	var rows []models.AsteroidRow
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].MissDistanceMkm > rows[i].MissDistanceMkm {
			t.Fatalf("rows not sorted closest-first at %d", i)
		}
	}
	for _, row := range rows {
		if row.HazardLabel != models.LabelHazardous && row.HazardLabel != models.LabelSafe {
			t.Fatalf("unexpected hazard label %q", row.HazardLabel)
		}
	}
}

func TestDailySumsMatchSummary(t *testing.T) {
	r := demoRouter()

	var daily []models.DailyAggregate
	w := get(t, r, "/api/v1/daily?max_distance_mkm=100")
	if err := json.Unmarshal(w.Body.Bytes(), &daily); err != nil {
		t.Fatalf("decode daily: %v", err)
	}

	var summary struct {
		Metrics models.Metrics `json:"metrics"`
	}
	w = get(t, r, "/api/v1/summary?max_distance_mkm=100")
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}

	sum := 0
	for _, d := range daily {
		sum += d.Count
	}
	if sum != summary.Metrics.Total {
		t.Errorf("daily sum %d != total %d", sum, summary.Metrics.Total)
	}
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	w := get(t, testRouter(failSource{}), "/api/v1/dashboard")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502: %s", w.Code, w.Body.String())
	}
}
