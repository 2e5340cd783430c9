package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/javierferna/nasa-asteroid-dashboard/config"
	"github.com/javierferna/nasa-asteroid-dashboard/models"
	"github.com/javierferna/nasa-asteroid-dashboard/services"
	"github.com/javierferna/nasa-asteroid-dashboard/utils"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neo_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "method"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neo_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"endpoint"},
	)
	snapshotSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "neo_snapshot_records",
			Help: "Records in the current approach snapshot",
		},
	)
)

// Handler serves pipeline outputs to the dashboard frontend. It owns the
// translation of query parameters into FilterCriteria, including the
// clamping the input side is responsible for.
type Handler struct {
	store    *services.SnapshotStore
	pipeline *services.Pipeline
	cfg      *config.Config
	logger   *utils.Logger
}

// NewHandler wires a Handler over the given store and pipeline.
func NewHandler(store *services.SnapshotStore, pipeline *services.Pipeline, cfg *config.Config, logger *utils.Logger) *Handler {
	return &Handler{store: store, pipeline: pipeline, cfg: cfg, logger: logger}
}

func (h *Handler) Health(c *gin.Context) {
	defer h.observe(c, "/health")()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "nasa-asteroid-dashboard",
	})
}

// Dashboard returns the full FilterResult for one render cycle.
func (h *Handler) Dashboard(c *gin.Context) {
	defer h.observe(c, "/api/v1/dashboard")()
	result, ok := h.render(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

// Summary returns the metric cards, with the closest approach formatted the
// way the dashboard header shows it ("X.XXM km", or "N/A" for an empty set).
func (h *Handler) Summary(c *gin.Context) {
	defer h.observe(c, "/api/v1/summary")()
	result, ok := h.render(c)
	if !ok {
		return
	}

	closest := "N/A"
	if result.Metrics.ClosestMissKm != nil {
		closest = fmt.Sprintf("%.2fM km", *result.Metrics.ClosestMissKm/1_000_000)
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics":           result.Metrics,
		"closest_display":   closest,
		"avg_velocity_text": fmt.Sprintf("%.1f km/s", result.Metrics.AvgVelocityKmS),
	})
}

// Daily returns the per-date rollups for the time-series chart.
func (h *Handler) Daily(c *gin.Context) {
	defer h.observe(c, "/api/v1/daily")()
	result, ok := h.render(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result.Daily)
}

// HazardBreakdown returns the two-category proportion behind the pie chart.
func (h *Handler) HazardBreakdown(c *gin.Context) {
	defer h.observe(c, "/api/v1/hazard-breakdown")()
	result, ok := h.render(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, []gin.H{
		{"label": models.LabelHazardous, "count": result.Metrics.Hazardous},
		{"label": models.LabelSafe, "count": result.Metrics.Total - result.Metrics.Hazardous},
	})
}

// Largest returns the top-N subset reversed so the biggest asteroid renders
// at the top of a horizontal bar chart. The pipeline hands out the subset
// sorted descending; reversing it is purely a presentation choice.
func (h *Handler) Largest(c *gin.Context) {
	defer h.observe(c, "/api/v1/largest")()
	result, ok := h.render(c)
	if !ok {
		return
	}

	reversed := make([]models.ApproachRecord, len(result.Largest))
	for i, r := range result.Largest {
		reversed[len(result.Largest)-1-i] = r
	}
	c.JSON(http.StatusOK, reversed)
}

// Asteroids returns the sortable detail table rows.
func (h *Handler) Asteroids(c *gin.Context) {
	defer h.observe(c, "/api/v1/asteroids")()
	result, ok := h.render(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result.Rows)
}

// render runs one full cycle: snapshot read, criteria parse, pipeline apply.
// It writes the error response itself and reports ok=false on failure.
func (h *Handler) render(c *gin.Context) (*models.FilterResult, bool) {
	records, err := h.store.Records(c.Request.Context())
	if err != nil {
		h.logger.Error("[api] upstream load failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return nil, false
	}
	snapshotSize.Set(float64(len(records)))

	criteria := h.parseCriteria(c)
	result, err := h.pipeline.Apply(records, criteria)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCriteria) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return result, true
}

// parseCriteria translates query parameters into FilterCriteria, clamping
// hazard mode, distance, and top-N into their widget constraints. A velocity
// range is passed through as supplied: an inverted range is a malformed
// request and surfaces as a 400 from the pipeline's validation.
func (h *Handler) parseCriteria(c *gin.Context) models.FilterCriteria {
	criteria := models.FilterCriteria{
		HazardMode:     models.HazardAll,
		MaxDistanceMkm: h.cfg.DefaultMaxDistanceMkm,
		TopN:           h.cfg.DefaultTopN,
	}

	switch c.Query("hazard") {
	case "hazardous":
		criteria.HazardMode = models.HazardousOnly
	case "non-hazardous":
		criteria.HazardMode = models.NonHazardousOnly
	}

	if raw := c.Query("max_distance_mkm"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			if v < 0 {
				v = 0
			}
			if v > 100 {
				v = 100
			}
			criteria.MaxDistanceMkm = v
		}
	}

	if raw := c.Query("top_n"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			if n < 1 {
				n = 1
			}
			if n > models.MaxTopN {
				n = models.MaxTopN
			}
			criteria.TopN = n
		}
	}

	vminRaw, vmaxRaw := c.Query("vmin"), c.Query("vmax")
	if vminRaw != "" && vmaxRaw != "" {
		vmin, errMin := strconv.ParseFloat(vminRaw, 64)
		vmax, errMax := strconv.ParseFloat(vmaxRaw, 64)
		if errMin == nil && errMax == nil {
			criteria.Velocity = &models.VelocityRange{MinKmS: vmin, MaxKmS: vmax}
		}
	}

	return criteria
}

// observe increments the request counter and returns a func that records
// the request duration when deferred.
func (h *Handler) observe(c *gin.Context, endpoint string) func() {
	start := time.Now()
	requestsTotal.WithLabelValues(endpoint, c.Request.Method).Inc()
	return func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}
