// Package handler provides HTTP handlers for all API endpoints. Handlers
// delegate to the scoreboard and ingestion services and shape JSON
// responses; they hold no domain logic of their own.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/scoreframe/gridiron-data/internal/api/respond"
	"github.com/scoreframe/gridiron-data/internal/cache"
	"github.com/scoreframe/gridiron-data/internal/config"
	"github.com/scoreframe/gridiron-data/internal/ingest"
	"github.com/scoreframe/gridiron-data/internal/scoreboard"
	"github.com/scoreframe/gridiron-data/internal/store"
	"github.com/scoreframe/gridiron-data/internal/week"
)

// Scores is the scoreboard read path.
type Scores interface {
	Cached(ctx context.Context, year, overallWeek int) (scoreboard.Payload, error)
}

// Ingestor is the ingestion service surface the handlers call.
type Ingestor interface {
	SaveGame(ctx context.Context, eventID string) (*ingest.SaveResult, error)
	ScoreGame(ctx context.Context, eventID string) (*ingest.ScoreResult, error)
	TopPerformers(ctx context.Context, eventID string, top int) ([]store.Performer, error)
	IngestWeek(ctx context.Context, year, overallWeek int, score bool) (*ingest.WeekReport, error)
}

// DBHealth reports database reachability.
type DBHealth interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	scores  Scores
	ingest  Ingestor
	db      DBHealth
	cache   *cache.Cache
	cfg     *config.Config
	loc     *time.Location
	fixed   week.FixedRule
	nowFunc func() time.Time
}

// New creates a Handler with shared dependencies.
func New(scores Scores, ing Ingestor, db DBHealth, c *cache.Cache, cfg *config.Config, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		scores:  scores,
		ingest:  ing,
		db:      db,
		cache:   c,
		cfg:     cfg,
		loc:     loc,
		nowFunc: time.Now,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Gridiron Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns response-cache statistics.
// @Summary Cache health check
// @Description Returns in-memory response cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
