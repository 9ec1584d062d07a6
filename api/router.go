// Package api wires the gin router for the HTTP front end: a thin shim that
// accepts a URL or spreadsheet upload and returns contact records as a CSV
// file.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/scrapo/api/handler"
	"github.com/use-agent/scrapo/api/middleware"
	"github.com/use-agent/scrapo/cache"
	"github.com/use-agent/scrapo/config"
	"github.com/use-agent/scrapo/runner"
	"github.com/use-agent/scrapo/scraper"
)

// NewRouter creates a configured gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health is intentionally outside auth so monitoring probes always work.
func NewRouter(session *scraper.Session, r *runner.Runner, cc *cache.Cache, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(gin.Logger())

	v1 := e.Group("/api/v1")

	v1.GET("/health", handler.Health(session, startTime))

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/scrape", handler.Scrape(r, cc, cfg))

	return e
}
