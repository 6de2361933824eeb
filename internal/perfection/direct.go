package perfection

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/horary/go-engine/internal/aspect"
	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
)

// #region detector

// Detector finds direct, sequence and prohibition perfections in a chart.
// It holds only read-only configuration and is safe for concurrent use.
type Detector struct {
	config  Config
	scanner *aspect.Scanner
}

// NewDetector creates a detector with the given configuration.
func NewDetector(config Config) *Detector {
	return &Detector{
		config:  config,
		scanner: aspect.NewScanner(config.Orbs),
	}
}

// Config returns the detector's configuration.
func (d *Detector) Config() Config {
	return d.config
}

// #endregion detector

// #region direct-perfection

// DirectPerfection returns the earliest applying aspect between a and b that
// perfects within (0, windowDays]. Aspects recorded on the chart are
// consulted first; when none qualifies, aspects currently within orb are
// solved from the positions. A non-positive window uses FutureWindowDays.
func (d *Detector) DirectPerfection(c *chart.Chart, a, b chart.Planet, windowDays float64) (DirectFinding, error) {
	pa, err := c.Position(a)
	if err != nil {
		return DirectFinding{}, fmt.Errorf("direct perfection: %w", err)
	}
	pb, err := c.Position(b)
	if err != nil {
		return DirectFinding{}, fmt.Errorf("direct perfection: %w", err)
	}
	if windowDays <= 0 {
		windowDays = d.config.FutureWindowDays
	}

	var best DirectFinding
	consider := func(f DirectFinding) {
		if !best.Found || f.Days < best.Days {
			best = f
		}
	}

	for _, rec := range c.RecordedAspects(a, b) {
		if !rec.Applying {
			continue
		}
		t, ok := aspect.SolveTime(pa, pb, rec.Aspect)
		if !ok || t <= 0 || t > windowDays {
			continue
		}
		consider(DirectFinding{
			Found:     true,
			Aspect:    rec.Aspect,
			Days:      t,
			Orb:       rec.Orb,
			Favorable: rec.Aspect.Favorable(),
			Recorded:  true,
		})
	}
	if best.Found {
		return best, nil
	}

	sep := aspect.Separation(pa.Longitude, pb.Longitude)
	for _, asp := range chart.TraditionalAspects {
		orb := math.Abs(sep - asp.Degrees())
		if orb > d.config.Orbs.MaxOrb(asp) {
			continue
		}
		t, ok := aspect.SolveTime(pa, pb, asp)
		if !ok || t <= 0 || t > windowDays {
			continue
		}
		consider(DirectFinding{
			Found:     true,
			Aspect:    asp,
			Days:      t,
			Orb:       orb,
			Favorable: asp.Favorable(),
		})
	}
	return best, nil
}

// #endregion direct-perfection

// #region void-of-course

// MoonVoidOfCourse reports whether the Moon perfects no aspect with any other
// body before it leaves its current sign.
func (d *Detector) MoonVoidOfCourse(c *chart.Chart) (bool, error) {
	moon, err := c.Position(chart.Moon)
	if err != nil {
		return false, fmt.Errorf("void of course: %w", err)
	}
	if moon.Speed == 0 {
		return false, nil
	}
	exit := daysToSignExit(moon)
	others, err := c.Others(chart.Moon)
	if err != nil {
		return false, fmt.Errorf("void of course: %w", err)
	}
	for _, o := range others {
		if _, _, ok := aspect.NextPerfection(moon, o, 0, exit); ok {
			return false, nil
		}
	}
	return true, nil
}

// daysToSignExit returns how long the body needs to reach the boundary of its
// sign in its direction of motion.
func daysToSignExit(p chart.PlanetPosition) float64 {
	within := math.Mod(aspect.Normalize(p.Longitude), 30)
	if p.Speed > 0 {
		return (30 - within) / p.Speed
	}
	return within / -p.Speed
}

// #endregion void-of-course
