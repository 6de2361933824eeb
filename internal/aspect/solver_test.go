package aspect

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
)

// #region helpers
func pos(p chart.Planet, lon, speed float64) chart.PlanetPosition {
	return chart.PlanetPosition{Planet: p, Longitude: lon, Speed: speed, Sign: chart.SignOf(lon)}
}

// #endregion helpers

// #region solve-time-tests
func TestSolveTime_MarsJupiterSquareOrderIndependent(t *testing.T) {
	mars := pos(chart.Mars, 195.97361454606846, 0.649422093300911)
	jupiter := pos(chart.Jupiter, 107.8889649540042, 0.17943345590025755)

	tMJ, ok := SolveTime(mars, jupiter, chart.Square)
	require.True(t, ok)
	tJM, ok := SolveTime(jupiter, mars, chart.Square)
	require.True(t, ok)

	assert.InDelta(t, 4.08, tMJ, 0.05)
	assert.InDelta(t, 4.08, tJM, 0.05)
	assert.InDelta(t, tMJ, tJM, 1e-9)
}

func TestSolveTime_SeparatingIsNegative(t *testing.T) {
	// Moon passed an exact opposition to Saturn about two days ago.
	moon := pos(chart.Moon, 242.8, 13.46)
	saturn := pos(chart.Saturn, 34.8, 0.09)

	days, ok := SolveTime(moon, saturn, chart.Opposition)
	require.True(t, ok)
	assert.InDelta(t, -2.094, days, 1e-3)
}

func TestSolveTime_ZeroRelativeSpeedNeverPerfects(t *testing.T) {
	a := pos(chart.Venus, 10, 1.2)
	b := pos(chart.Mercury, 70, 1.2)
	for _, asp := range chart.TraditionalAspects {
		days, ok := SolveTime(a, b, asp)
		if ok {
			t.Errorf("%s: expected never, got %v days", asp, days)
		}
		if _, ok := Candidates(a, b, asp); ok {
			t.Errorf("%s: expected no candidates", asp)
		}
	}
}

func TestNextPerfection(t *testing.T) {
	moon := pos(chart.Moon, 0, 13)
	sun := pos(chart.Sun, 15, 1)

	days, asp, ok := NextPerfection(moon, sun, 0, 10)
	require.True(t, ok)
	assert.Equal(t, chart.Conjunction, asp)
	assert.InDelta(t, 1.25, days, 1e-9)

	// Just past the conjunction: the next contact is the applying sextile.
	moon = pos(chart.Moon, 16, 13)
	days, asp, ok = NextPerfection(moon, sun, 0, 10)
	require.True(t, ok)
	assert.Equal(t, chart.Sextile, asp)
	assert.InDelta(t, 4.9167, days, 1e-3)

	_, _, ok = NextPerfection(moon, sun, 0, 4)
	assert.False(t, ok, "no contact expected before day 4")
}

func TestNextPerfection_WrapsToNextPass(t *testing.T) {
	// Relative speed 12°/day: the conjunction repeats every 30 days.
	moon := pos(chart.Moon, 16, 13)
	sun := pos(chart.Sun, 15, 1)
	days, asp, ok := NextPerfection(moon, sun, 25, 40)
	require.True(t, ok)
	assert.Equal(t, chart.Conjunction, asp)
	assert.InDelta(t, 29.9167, days, 1e-3)
}

func TestNextExact_SingleAspect(t *testing.T) {
	moon := pos(chart.Moon, 16, 13)
	sun := pos(chart.Sun, 15, 1)

	// The sextile at 4.92 days is ignored when only the conjunction is asked for.
	days, ok := NextExact(moon, sun, chart.Conjunction, 0, 40)
	require.True(t, ok)
	assert.InDelta(t, 29.9167, days, 1e-3)

	_, ok = NextExact(moon, sun, chart.Conjunction, 0, 29)
	assert.False(t, ok)

	_, ok = NextExact(pos(chart.Mars, 10, 0.5), pos(chart.Venus, 40, 0.5), chart.Conjunction, 0, 100)
	assert.False(t, ok, "equal speeds never perfect")
}

func TestProject(t *testing.T) {
	moon := pos(chart.Moon, 350, 13)
	got := Project(moon, 1)
	assert.InDelta(t, 3, got.Longitude, 1e-9)
	assert.Equal(t, chart.Aries, got.Sign)
	assert.Equal(t, chart.Moon, got.Planet)
}

// #endregion solve-time-tests

// #region solve-time-properties
func TestSolveTimeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("swapping bodies yields the same magnitude", prop.ForAll(
		func(lon1, lon2, s1, s2 float64, idx int) bool {
			asp := chart.TraditionalAspects[idx]
			p1 := pos(chart.Moon, lon1, s1)
			p2 := pos(chart.Mars, lon2, s2)
			t1, ok1 := SolveTime(p1, p2, asp)
			t2, ok2 := SolveTime(p2, p1, asp)
			if ok1 != ok2 {
				return false
			}
			if !ok1 {
				return true
			}
			return math.Abs(math.Abs(t1)-math.Abs(t2)) <= 1e-6*(1+math.Abs(t1))
		},
		gen.Float64Range(0, 360),
		gen.Float64Range(0, 360),
		gen.Float64Range(-1, 15),
		gen.Float64Range(-1, 15),
		gen.IntRange(0, len(chart.TraditionalAspects)-1),
	))

	properties.Property("equal speeds never perfect", prop.ForAll(
		func(lon1, lon2, speed float64, idx int) bool {
			asp := chart.TraditionalAspects[idx]
			_, ok := SolveTime(pos(chart.Sun, lon1, speed), pos(chart.Venus, lon2, speed), asp)
			return !ok
		},
		gen.Float64Range(0, 360),
		gen.Float64Range(0, 360),
		gen.Float64Range(-1, 15),
		gen.IntRange(0, len(chart.TraditionalAspects)-1),
	))

	properties.Property("signed delta stays in (-180, 180]", prop.ForAll(
		func(a, b float64) bool {
			d := SignedDelta(a, b)
			return d > -180 && d <= 180
		},
		gen.Float64Range(-720, 720),
		gen.Float64Range(-720, 720),
	))

	properties.TestingRun(t)
}

// #endregion solve-time-properties
