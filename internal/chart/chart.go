package chart

import (
	"errors"
	"fmt"
	"time"
)

// #region errors
var (
	// ErrMissingPlanet means a traditional body has no position in the chart.
	ErrMissingPlanet = errors.New("chart: missing planet position")
	// ErrInvalidChart covers every other violation of the chart invariant.
	ErrInvalidChart = errors.New("chart: invalid chart")
)

// #endregion errors

// #region validate

// Validate checks the chart invariant: every traditional body has exactly one
// position keyed by its own identity, there are 12 cusps, and house ruler keys
// are house numbers 1-12.
func (c *Chart) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil chart", ErrInvalidChart)
	}
	for _, p := range TraditionalPlanets {
		pos, ok := c.Planets[p]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingPlanet, p)
		}
		if pos.Planet != "" && pos.Planet != p {
			return fmt.Errorf("%w: position keyed %s carries planet %s", ErrInvalidChart, p, pos.Planet)
		}
	}
	if len(c.Planets) != len(TraditionalPlanets) {
		return fmt.Errorf("%w: %d bodies, want %d", ErrInvalidChart, len(c.Planets), len(TraditionalPlanets))
	}
	if len(c.Houses) != 12 {
		return fmt.Errorf("%w: %d house cusps, want 12", ErrInvalidChart, len(c.Houses))
	}
	for h := range c.HouseRulers {
		if h < 1 || h > 12 {
			return fmt.Errorf("%w: house ruler key %d outside 1-12", ErrInvalidChart, h)
		}
	}
	return nil
}

// #endregion validate

// #region accessors

// Position returns the body's position. A missing body is an input-contract
// violation and is reported, never defaulted.
func (c *Chart) Position(p Planet) (PlanetPosition, error) {
	if c == nil {
		return PlanetPosition{}, fmt.Errorf("%w: %s (nil chart)", ErrMissingPlanet, p)
	}
	pos, ok := c.Planets[p]
	if !ok {
		return PlanetPosition{}, fmt.Errorf("%w: %s", ErrMissingPlanet, p)
	}
	if pos.Planet == "" {
		pos.Planet = p
	}
	return pos, nil
}

// Ruler returns the planet ruling the given house, if the chart records one.
func (c *Chart) Ruler(house int) (Planet, bool) {
	p, ok := c.HouseRulers[house]
	return p, ok
}

// RecordedAspects returns the precomputed aspects between a and b, in chart order.
func (c *Chart) RecordedAspects(a, b Planet) []AspectRecord {
	var out []AspectRecord
	for _, r := range c.Aspects {
		if r.Involves(a, b) {
			out = append(out, r)
		}
	}
	return out
}

// Others returns the positions of every traditional body except the excluded ones.
func (c *Chart) Others(exclude ...Planet) ([]PlanetPosition, error) {
	skip := make(map[Planet]bool, len(exclude))
	for _, p := range exclude {
		skip[p] = true
	}
	out := make([]PlanetPosition, 0, len(TraditionalPlanets))
	for _, p := range TraditionalPlanets {
		if skip[p] {
			continue
		}
		pos, err := c.Position(p)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}

// #endregion accessors

// #region constructor

// New builds a chart from positions with zeroed cusps and no house rulers.
// Each position's sign is derived from its longitude.
func New(moment time.Time, positions []PlanetPosition) *Chart {
	c := &Chart{
		DateTime:    moment,
		DateTimeUTC: moment.UTC(),
		Timezone:    moment.Location().String(),
		Planets:     make(map[Planet]PlanetPosition, len(positions)),
		Houses:      make([]float64, 12),
		HouseRulers: make(map[int]Planet),
	}
	for _, p := range positions {
		p.Sign = SignOf(p.Longitude)
		c.Planets[p.Planet] = p
	}
	return c
}

// #endregion constructor
