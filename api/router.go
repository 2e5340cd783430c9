package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with all dashboard routes registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard", h.Dashboard)
		v1.GET("/summary", h.Summary)
		v1.GET("/daily", h.Daily)
		v1.GET("/hazard-breakdown", h.HazardBreakdown)
		v1.GET("/largest", h.Largest)
		v1.GET("/asteroids", h.Asteroids)
	}

	return r
}
