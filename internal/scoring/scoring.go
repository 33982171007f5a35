// Package scoring computes fantasy points from canonical stat maps.
package scoring

import "math"

// Canonical stat keys. Every resolver tier normalizes upstream field names
// to this set before scoring.
const (
	PassingYards        = "passingYards"
	PassingTouchdowns   = "passingTouchdowns"
	Interceptions       = "interceptions"
	RushingYards        = "rushingYards"
	RushingTouchdowns   = "rushingTouchdowns"
	ReceivingYards      = "receivingYards"
	ReceivingTouchdowns = "receivingTouchdowns"
	Receptions          = "receptions"
	FumblesLost         = "fumblesLost"
)

// Keys lists the canonical stat keys in display order.
var Keys = []string{
	PassingYards, PassingTouchdowns, Interceptions,
	RushingYards, RushingTouchdowns,
	ReceivingYards, ReceivingTouchdowns, Receptions,
	FumblesLost,
}

// FullPPRName is the rule every scoring flow requires. Its absence from the
// database is a configuration error, not a recoverable one.
const FullPPRName = "Full PPR"

// Rule is a named set of linear weights, one per canonical stat.
type Rule struct {
	Name       string
	PassYd     float64
	PassTD     float64
	PassInt    float64
	RushYd     float64
	RushTD     float64
	RecYd      float64
	RecTD      float64
	Reception  float64
	FumbleLost float64
}

// Presets seeded by the ingest CLI. Weights are mutable configuration in
// the database; these are just starting points.
var (
	FullPPR = Rule{
		Name:       FullPPRName,
		PassYd:     0.04, // 1 per 25 passing yards
		PassTD:     4.0,
		PassInt:    -2.0,
		RushYd:     0.1, // 1 per 10 rushing yards
		RushTD:     6.0,
		RecYd:      0.1,
		RecTD:      6.0,
		Reception:  1.0,
		FumbleLost: -2.0,
	}

	HalfPPR = Rule{
		Name:       "Half-PPR",
		PassYd:     0.04,
		PassTD:     4.0,
		PassInt:    -2.0,
		RushYd:     0.1,
		RushTD:     6.0,
		RecYd:      0.1,
		RecTD:      6.0,
		Reception:  0.5,
		FumbleLost: -2.0,
	}
)

// Points applies the rule's linear weights to a stat map. Missing keys
// contribute zero; keys outside the canonical set are ignored. The result
// is unrounded — callers round when caching the value.
func Points(stats map[string]float64, r Rule) float64 {
	get := func(k string) float64 { return stats[k] }
	return r.PassYd*get(PassingYards) +
		r.PassTD*get(PassingTouchdowns) +
		r.PassInt*get(Interceptions) +
		r.RushYd*get(RushingYards) +
		r.RushTD*get(RushingTouchdowns) +
		r.RecYd*get(ReceivingYards) +
		r.RecTD*get(ReceivingTouchdowns) +
		r.Reception*get(Receptions) +
		r.FumbleLost*get(FumblesLost)
}

// Round2 rounds to two decimal places, applied at the point a computed
// value is cached on a statistic row.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
