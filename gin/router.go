// Package gin exposes the extraction pipeline and run history as a JSON API.
package gin

import (
	"log/slog"
	"time"

	"github.com/fwojciec/webtab"
	"github.com/gin-gonic/gin"
)

// Option configures the router.
type Option func(*router)

// WithLogger sets the logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *router) {
		r.logger = logger
	}
}

// WithAPIKeys requires one of keys on every route except health.
func WithAPIKeys(keys ...string) Option {
	return func(r *router) {
		r.apiKeys = keys
	}
}

type router struct {
	extraction webtab.ExtractionService
	runs       webtab.RunService
	logger     *slog.Logger
	apiKeys    []string
	started    time.Time
}

// NewRouter returns a gin engine serving the API under /api/v1.
// Run routes are only registered when runs is non-nil.
func NewRouter(extraction webtab.ExtractionService, runs webtab.RunService, opts ...Option) *gin.Engine {
	rt := &router{
		extraction: extraction,
		runs:       runs,
		started:    time.Now(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.logger == nil {
		rt.logger = slog.New(slog.DiscardHandler)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(rt.logger))

	v1 := r.Group("/api/v1")
	v1.GET("/health", rt.health)

	protected := v1.Group("")
	protected.Use(apiKeyAuth(rt.apiKeys))
	protected.POST("/extract", rt.extract)

	if runs != nil {
		protected.GET("/runs", rt.listRuns)
		protected.GET("/runs/:id", rt.getRun)
		protected.GET("/runs/:id/csv", rt.getRunCSV)
		protected.DELETE("/runs/:id", rt.deleteRun)
	}

	return r
}
