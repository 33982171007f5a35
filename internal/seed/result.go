// Package seed provides database seeding for reference data: the team
// table, scoring rule presets, and season week anchors.
package seed

import "fmt"

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	TeamsUpserted   int
	RulesUpserted   int
	SeasonsUpserted int
	Errors          []string
}

// Add merges another SeedResult into this one.
func (r *SeedResult) Add(other SeedResult) {
	r.TeamsUpserted += other.TeamsUpserted
	r.RulesUpserted += other.RulesUpserted
	r.SeasonsUpserted += other.SeasonsUpserted
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError records an error message.
func (r *SeedResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"teams=%d rules=%d seasons=%d errors=%d",
		r.TeamsUpserted, r.RulesUpserted, r.SeasonsUpserted, len(r.Errors),
	)
}
