package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scoreframe/gridiron-data/internal/api/respond"
	"github.com/scoreframe/gridiron-data/internal/cache"
	"github.com/scoreframe/gridiron-data/internal/store"
)

// SaveGame fetches one game from upstream and persists it.
// @Summary Save a game
// @Description Fetches the game summary from upstream and upserts the game, its season, and both teams.
// @Tags games
// @Produce json
// @Param eventID path string true "Upstream event ID"
// @Success 200 {object} ingest.SaveResult
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/games/{eventID}/save [post]
func (h *Handler) SaveGame(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	res, err := h.ingest.SaveGame(r.Context(), eventID)
	if err != nil {
		h.writeIngestError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, res)
}

// FantasyFullPPR computes and persists Full PPR points for a saved game.
// @Summary Score a game (Full PPR)
// @Description Resolves player stat lines for a previously saved game, computes Full PPR fantasy points, and persists them.
// @Tags fantasy
// @Produce json
// @Param eventID path string true "Upstream event ID"
// @Success 200 {object} ingest.ScoreResult
// @Failure 404 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/games/{eventID}/fantasy/fullppr [post]
func (h *Handler) FantasyFullPPR(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	res, err := h.ingest.ScoreGame(r.Context(), eventID)
	if err != nil {
		h.writeIngestError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, res)
}

// FantasyTop returns the top fantasy performers for a saved game.
// @Summary Top fantasy performers
// @Description Returns the highest-scoring players of a saved and scored game, ordered by Full PPR points.
// @Tags fantasy
// @Produce json
// @Param eventID path string true "Upstream event ID"
// @Param top query int false "Number of performers (1-50, default 5)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/games/{eventID}/fantasy/top [get]
func (h *Handler) FantasyTop(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	top, ok := queryInt(w, r, "top")
	if !ok {
		return
	}
	if top == 0 {
		top = h.cfg.LeaderboardSize
	}

	key := fmt.Sprintf("top:%s:%d", eventID, top)
	if data, etag, hit := h.cache.Get(key); hit {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLLeaderboard, true)
		return
	}

	rows, err := h.ingest.TopPerformers(r.Context(), eventID, top)
	if err != nil {
		h.writeIngestError(w, err)
		return
	}
	if rows == nil {
		rows = []store.Performer{}
	}

	data, err := json.Marshal(map[string]interface{}{
		"event_id": eventID,
		"top":      rows,
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "internal_error",
			"failed to encode leaderboard")
		return
	}
	etag := h.cache.Set(key, data, cache.TTLLeaderboard)
	respond.WriteJSON(w, data, etag, cache.TTLLeaderboard, false)
}
