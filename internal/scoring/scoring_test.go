package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsEmptyStats(t *testing.T) {
	for _, rule := range []Rule{FullPPR, HalfPPR, {}} {
		assert.Equal(t, 0.0, Points(map[string]float64{}, rule))
		assert.Equal(t, 0.0, Points(nil, rule))
	}
}

func TestPointsFullPPRReceptions(t *testing.T) {
	got := Points(map[string]float64{Receptions: 4}, FullPPR)
	assert.Equal(t, 4.0, got)

	got = Points(map[string]float64{Receptions: 4}, HalfPPR)
	assert.Equal(t, 2.0, got)
}

func TestPointsIgnoresUnknownKeys(t *testing.T) {
	got := Points(map[string]float64{
		"kickReturnYards": 120,
		"sacks":           3,
		RushingYards:      10,
	}, FullPPR)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestPointsLinearity(t *testing.T) {
	a := map[string]float64{PassingYards: 250, PassingTouchdowns: 2, Interceptions: 1}
	b := map[string]float64{RushingYards: 80, ReceivingTouchdowns: 1, Receptions: 5, FumblesLost: 1}

	merged := map[string]float64{}
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}

	assert.InDelta(t, Points(a, FullPPR)+Points(b, FullPPR), Points(merged, FullPPR), 1e-9)
}

func TestPointsTypicalLine(t *testing.T) {
	// 250 pass yds, 2 pass TD, 1 INT: 10 + 8 - 2 = 16.
	stats := map[string]float64{
		PassingYards:      250,
		PassingTouchdowns: 2,
		Interceptions:     1,
	}
	assert.InDelta(t, 16.0, Points(stats, FullPPR), 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 16.46, Round2(16.456))
	assert.Equal(t, -2.35, Round2(-2.345000000000001))
	assert.Equal(t, 0.0, Round2(0))
}
