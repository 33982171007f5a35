package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scoreframe/gridiron-data/internal/api/respond"
	"github.com/scoreframe/gridiron-data/internal/week"
)

// IngestWeek saves every game in a season week, optionally scoring each.
// @Summary Ingest a week
// @Description Fetches the scoreboard for one season week and saves every listed game, optionally computing Full PPR scores. Per-game failures are reported, not fatal.
// @Tags ingest
// @Produce json
// @Param year path int true "Season year"
// @Param week path int true "Overall week 1-21"
// @Param score query bool false "Also compute fantasy scores (default true)"
// @Success 200 {object} ingest.WeekReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/weeks/{year}/{week}/ingest [post]
func (h *Handler) IngestWeek(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "invalid_parameter", "year must be an integer")
		return
	}
	overall, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || overall < 1 || overall > week.MaxOverallWeek {
		respond.WriteError(w, http.StatusBadRequest, "invalid_week",
			fmt.Sprintf("week must be between 1 and %d", week.MaxOverallWeek))
		return
	}

	score := true
	if raw := r.URL.Query().Get("score"); raw != "" {
		score, err = strconv.ParseBool(raw)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "invalid_parameter", "score must be a boolean")
			return
		}
	}

	report, err := h.ingest.IngestWeek(r.Context(), year, overall, score)
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, "upstream_error",
			"scoreboard upstream is unavailable")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, report)
}
