package handler

import (
	"errors"
	"net/http"

	"github.com/scoreframe/gridiron-data/internal/api/respond"
	"github.com/scoreframe/gridiron-data/internal/ingest"
)

// writeIngestError maps ingestion errors onto the API error taxonomy.
func (h *Handler) writeIngestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ingest.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "not_found",
			"game has not been saved")
	case errors.Is(err, ingest.ErrMalformedPayload):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "malformed_payload",
			"upstream payload is missing required fields", err.Error())
	case errors.Is(err, ingest.ErrRuleMissing):
		respond.WriteError(w, http.StatusInternalServerError, "rule_missing",
			"scoring rule is not seeded")
	default:
		respond.WriteErrorDetail(w, http.StatusBadGateway, "upstream_error",
			"failed to fetch or persist game data", err.Error())
	}
}
