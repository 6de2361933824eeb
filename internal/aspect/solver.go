package aspect

import (
	"math"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
)

// #region targets

// signedTargets returns the signed separations p1-p2 at which the aspect is
// exact. Conjunction and opposition have a single target; the others can be
// reached from either side.
func signedTargets(a chart.Aspect) []float64 {
	d := a.Degrees()
	if math.IsNaN(d) {
		return nil
	}
	if d == 0 || d == 180 {
		return []float64{d}
	}
	return []float64{d, -d}
}

// #endregion targets

// #region solver

// Candidates returns, for each signed target of the aspect, the number of days
// until p1-p2 reaches it under constant speeds. Negative values lie in the
// past. ok is false when the relative speed is zero: the pair never perfects.
func Candidates(p1, p2 chart.PlanetPosition, a chart.Aspect) ([]float64, bool) {
	v := p1.Speed - p2.Speed
	if v == 0 {
		return nil, false
	}
	targets := signedTargets(a)
	if len(targets) == 0 {
		return nil, false
	}
	diff := p1.Longitude - p2.Longitude
	out := make([]float64, 0, len(targets))
	for _, target := range targets {
		delta := SignedDelta(diff, target)
		out = append(out, -delta/v)
	}
	return out, true
}

// SolveTime returns the signed days until the aspect between p1 and p2 is exact.
// Negative means it perfected in the past (separating now), positive means it
// is still ahead (applying now). The nearest solution in time wins, with a
// future solution preferred on an exact tie, so swapping p1 and p2 returns the
// same value. ok is false when the bodies move at the same speed.
func SolveTime(p1, p2 chart.PlanetPosition, a chart.Aspect) (float64, bool) {
	cands, ok := Candidates(p1, p2, a)
	if !ok {
		return 0, false
	}
	best := cands[0]
	for _, t := range cands[1:] {
		if math.Abs(t) < math.Abs(best) || (math.Abs(t) == math.Abs(best) && t > best) {
			best = t
		}
	}
	return best, true
}

// NextExact returns the earliest moment t with after < t < before at which
// aspect a between p1 and p2 is exact. Solutions repeat every 360/|v| days,
// so a contact that just separated is followed by its next pass.
func NextExact(p1, p2 chart.PlanetPosition, a chart.Aspect, after, before float64) (float64, bool) {
	cands, ok := Candidates(p1, p2, a)
	if !ok {
		return 0, false
	}
	period := 360 / math.Abs(p1.Speed-p2.Speed)
	var (
		best  float64
		found bool
	)
	for _, t := range cands {
		for t <= after {
			t += period
		}
		for t-period > after {
			t -= period
		}
		if t >= before {
			continue
		}
		if !found || t < best {
			best, found = t, true
		}
	}
	return best, found
}

// NextPerfection is NextExact over every traditional aspect.
func NextPerfection(p1, p2 chart.PlanetPosition, after, before float64) (float64, chart.Aspect, bool) {
	var (
		bestT   float64
		bestAsp chart.Aspect
		found   bool
	)
	for _, a := range chart.TraditionalAspects {
		t, ok := NextExact(p1, p2, a, after, before)
		if ok && (!found || t < bestT) {
			bestT, bestAsp, found = t, a, true
		}
	}
	return bestT, bestAsp, found
}

// #endregion solver

// #region projection

// Project advances a position linearly by days, keeping identity, house and
// dignity and recomputing longitude and sign.
func Project(p chart.PlanetPosition, days float64) chart.PlanetPosition {
	out := p
	out.Longitude = Normalize(p.Longitude + p.Speed*days)
	out.Sign = chart.SignOf(out.Longitude)
	return out
}

// #endregion projection
