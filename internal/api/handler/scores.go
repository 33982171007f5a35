package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/scoreframe/gridiron-data/internal/api/respond"
	"github.com/scoreframe/gridiron-data/internal/cache"
	"github.com/scoreframe/gridiron-data/internal/week"
)

// GetScores returns the normalized live scoreboard.
// @Summary Live scoreboard
// @Description Returns normalized scores for the current slate, or for a specific season week when both year and week are given.
// @Tags scores
// @Produce json
// @Param year query int false "Season year (requires week)"
// @Param week query int false "Overall week 1-21 (requires year)"
// @Success 200 {object} scoreboard.Payload
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/scores [get]
func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	year, ok := queryInt(w, r, "year")
	if !ok {
		return
	}
	wk, ok := queryInt(w, r, "week")
	if !ok {
		return
	}

	// A custom window needs both parameters; a lone one falls back to the
	// current slate.
	if year == 0 || wk == 0 {
		year, wk = 0, 0
	} else if wk < 1 || wk > week.MaxOverallWeek {
		respond.WriteError(w, http.StatusBadRequest, "invalid_week",
			fmt.Sprintf("week must be between 1 and %d", week.MaxOverallWeek))
		return
	}

	key := fmt.Sprintf("scores:%d:%d", year, wk)
	if data, etag, hit := h.cache.Get(key); hit {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLScoreboard, true)
		return
	}

	payload, err := h.scores.Cached(r.Context(), year, wk)
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, "upstream_error",
			"scoreboard upstream is unavailable")
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "internal_error",
			"failed to encode scoreboard")
		return
	}
	etag := h.cache.Set(key, data, cache.TTLScoreboard)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLScoreboard, false)
}

// GetWeekMeta reports the season year and overall week for today.
// @Summary Current week metadata
// @Description Returns today's season year and overall week number under the configured week rule.
// @Tags scores
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/weekmeta [get]
func (h *Handler) GetWeekMeta(w http.ResponseWriter, r *http.Request) {
	now := h.nowFunc().In(h.loc)
	year := now.Year()
	overall := h.fixed.CurrentGuess(now)
	if y, wk, ok := h.fixed.Season(now); ok {
		year, overall = y, wk
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"year": year,
		"week": overall,
		"rule": h.cfg.WeekRule,
	})
}

// queryInt parses an optional integer query parameter. A missing parameter
// yields 0. On a malformed value it writes a 400 and returns ok=false.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "invalid_parameter",
			fmt.Sprintf("%s must be an integer", name))
		return 0, false
	}
	return n, true
}
