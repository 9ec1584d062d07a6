package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/scrapo/models"
	"github.com/use-agent/scrapo/scraper"
)

// Version is the service version reported by the health endpoint.
const Version = "1.0.0"

// Health returns the handler for GET /api/v1/health.
func Health(session *scraper.Session, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "healthy",
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			PoolStats: session.Stats(),
			Version:   Version,
		})
	}
}
