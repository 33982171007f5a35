package nflverse

import "strings"

// The provider and the nflverse data set disagree on a handful of team
// codes, and relocated franchises appear under legacy codes in old
// seasons. Both directions are normalized through these maps.

var toNflverse = map[string]string{
	"WSH": "WAS",
	"JAC": "JAX",
	"SD":  "LAC",
	"STL": "LAR",
	"OAK": "LV",
	"LA":  "LAR",
}

var toESPN = map[string]string{
	"WAS": "WSH",
}

// ToNflverseAbbr converts a provider-style team abbreviation to the
// nflverse standard code.
func ToNflverseAbbr(abbr string) string {
	a := strings.ToUpper(strings.TrimSpace(abbr))
	if nv, ok := toNflverse[a]; ok {
		return nv
	}
	return a
}

// ToESPNAbbr converts an nflverse team code back to the provider-style
// abbreviation the rest of the system stores.
func ToESPNAbbr(abbr string) string {
	a := strings.ToUpper(strings.TrimSpace(abbr))
	if es, ok := toESPN[a]; ok {
		return es
	}
	return a
}
