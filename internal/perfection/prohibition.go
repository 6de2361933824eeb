package perfection

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/horary/go-engine/internal/aspect"
	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
)

// #region types

// transit is a carrier that touches both significators, the first contact at
// first and the second at second. Only its cut-offs after first count.
type transit struct {
	carrier chart.PlanetPosition
	first   float64
	second  float64
}

// interposition is one candidate cut-off found while scanning.
type interposition struct {
	abscissor    chart.Planet
	significator chart.Planet
	aspect       chart.Aspect
	days         float64
	carried      bool
}

// #endregion types

// #region check-prohibitions

// CheckProhibitions looks for a third body that cuts off the a-b perfection
// before it completes. The earliest interposition wins.
//
// When a direct a-b perfection falls within referenceDays (a non-positive
// value uses FutureWindowDays), any third body perfecting with a or b strictly
// before it prohibits. Without one, only light already being carried can be
// cut off: a body conjoining the carrier of an in-progress transit or of the
// primary translation between the carrier's contacts is abscission.
func (d *Detector) CheckProhibitions(c *chart.Chart, a, b chart.Planet, referenceDays float64) (ProhibitionFinding, error) {
	pa, err := c.Position(a)
	if err != nil {
		return ProhibitionFinding{}, fmt.Errorf("check prohibitions: %w", err)
	}
	pb, err := c.Position(b)
	if err != nil {
		return ProhibitionFinding{}, fmt.Errorf("check prohibitions: %w", err)
	}
	others, err := c.Others(a, b)
	if err != nil {
		return ProhibitionFinding{}, fmt.Errorf("check prohibitions: %w", err)
	}
	if referenceDays <= 0 {
		referenceDays = d.config.FutureWindowDays
	}

	ref := referenceDays
	pendingDays, pendingAspect, pending := aspect.NextPerfection(pa, pb, 0, math.Nextafter(referenceDays, math.Inf(1)))
	if pending {
		ref = pendingDays
	}

	transits := inProgress(others, pa, pb, ref)
	if !pending {
		seq, err := d.DetectTranslationOrCollection(c, a, b)
		if err != nil {
			return ProhibitionFinding{}, fmt.Errorf("check prohibitions: %w", err)
		}
		if tr, ok := carried(seq, others, ref); ok {
			transits = append(transits, tr)
		}
	}
	isCarrier := make(map[chart.Planet]bool, len(transits))
	for _, tr := range transits {
		isCarrier[tr.carrier.Planet] = true
	}

	var best *interposition
	consider := func(ip interposition) {
		if best == nil || ip.days < best.days {
			best = &ip
		}
	}

	if pending {
		for _, o := range others {
			if isCarrier[o.Planet] {
				continue
			}
			for _, sig := range []chart.PlanetPosition{pa, pb} {
				if t, asp, ok := aspect.NextPerfection(o, sig, 0, ref); ok {
					consider(interposition{abscissor: o.Planet, significator: sig.Planet, aspect: asp, days: t})
				}
			}
		}
	}

	for _, tr := range transits {
		for _, o := range others {
			if o.Planet == tr.carrier.Planet {
				continue
			}
			if t, ok := aspect.NextExact(o, tr.carrier, chart.Conjunction, tr.first, tr.second); ok {
				consider(interposition{abscissor: o.Planet, significator: tr.carrier.Planet, aspect: chart.Conjunction, days: t, carried: true})
			}
		}
	}

	if best == nil {
		return ProhibitionFinding{}, nil
	}

	var typ, reason string
	switch {
	case best.carried:
		typ = TypeAbscission
		reason = fmt.Sprintf("%s %s to %s in %.2f days cuts off light carried by %s between %s and %s",
			best.abscissor, best.aspect, best.significator, best.days, best.significator, a, b)
	default:
		typ = TypeProhibition
		reason = fmt.Sprintf("%s %s to %s in %.2f days comes before the %s-%s %s in %.2f days",
			best.abscissor, best.aspect, best.significator, best.days, a, b, pendingAspect, pendingDays)
	}

	return ProhibitionFinding{
		Prohibited:   true,
		Type:         typ,
		Reason:       reason,
		Abscissor:    best.abscissor,
		Significator: best.significator,
		Aspect:       best.aspect,
		Days:         best.days,
	}, nil
}

// #endregion check-prohibitions

// #region helpers

// inProgress returns carriers that will perfect with both significators
// before ref. Carriers carry light and are never counted as prohibitors.
func inProgress(others []chart.PlanetPosition, pa, pb chart.PlanetPosition, ref float64) []transit {
	var out []transit
	for _, carrier := range carriers(others, pa, pb) {
		ta, _, okA := aspect.NextPerfection(carrier, pa, 0, ref)
		tb, _, okB := aspect.NextPerfection(carrier, pb, 0, ref)
		if !okA || !okB {
			continue
		}
		out = append(out, transit{
			carrier: carrier,
			first:   math.Min(ta, tb),
			second:  math.Max(ta, tb),
		})
	}
	return out
}

// carried turns the primary translation into a transit from now until the
// carrier's application, provided that lands within ref. Collections carry
// nothing that can be cut off.
func carried(seq SequenceFinding, others []chart.PlanetPosition, ref float64) (transit, bool) {
	if !seq.Found || seq.Kind != KindTranslation || seq.Second.Days > ref {
		return transit{}, false
	}
	for _, o := range others {
		if o.Planet == seq.Carrier {
			return transit{carrier: o, first: math.Max(0, seq.First.Days), second: seq.Second.Days}, true
		}
	}
	return transit{}, false
}

// #endregion helpers
