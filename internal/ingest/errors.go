package ingest

import (
	"errors"

	"github.com/scoreframe/gridiron-data/internal/store"
)

// Error taxonomy for ingestion operations. The API layer maps these onto
// status codes; everything else surfaces as an upstream failure.
var (
	// ErrNotFound: the referenced game has not been saved yet.
	ErrNotFound = store.ErrNotFound

	// ErrMalformedPayload: the upstream summary is missing structure the
	// save path cannot proceed without (competitors, kickoff, team codes).
	ErrMalformedPayload = errors.New("malformed upstream payload")

	// ErrRuleMissing: the required scoring rule row is absent from the
	// database. Scoring never invents weights; seed the rules first.
	ErrRuleMissing = errors.New("scoring rule missing")
)
