package perfection

import (
	"fmt"
	"math"
	"sort"

	"github.com/danielpatrickdp/horary/go-engine/internal/aspect"
	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
)

// #region detect

// DetectTranslationOrCollection looks for a translation of light between a and
// b first and falls back to collection of light. An empty result is a normal
// outcome with Found == false.
func (d *Detector) DetectTranslationOrCollection(c *chart.Chart, a, b chart.Planet) (SequenceFinding, error) {
	pa, err := c.Position(a)
	if err != nil {
		return SequenceFinding{}, fmt.Errorf("detect sequence: %w", err)
	}
	pb, err := c.Position(b)
	if err != nil {
		return SequenceFinding{}, fmt.Errorf("detect sequence: %w", err)
	}
	others, err := c.Others(a, b)
	if err != nil {
		return SequenceFinding{}, fmt.Errorf("detect sequence: %w", err)
	}

	finding, err := d.translation(pa, pb, carriers(others, pa, pb))
	if err != nil || finding.Found {
		return finding, err
	}
	return d.collection(pa, pb, collectors(others, pa, pb))
}

// #endregion detect

// #region translation

// translation pairs every past separation of a carrier from one significator
// with a future application to the other. The shortest total span wins.
func (d *Detector) translation(pa, pb chart.PlanetPosition, carriers []chart.PlanetPosition) (SequenceFinding, error) {
	sigs := []chart.PlanetPosition{pa, pb}
	past := aspect.ScanOptions{
		Direction:  aspect.Past,
		WindowDays: d.config.PastWindowDays,
		StepDays:   d.config.StepDays,
	}
	future := aspect.ScanOptions{
		Direction:         aspect.Future,
		WindowDays:        d.config.FutureWindowDays,
		StepDays:          d.config.StepDays,
		RequireSignChange: d.config.RequireSignChange,
	}

	var cands []Candidate
	for _, carrier := range carriers {
		seps, err := d.scanner.Scan(carrier, sigs, past)
		if err != nil {
			return SequenceFinding{}, fmt.Errorf("translation past scan: %w", err)
		}
		if len(seps) == 0 {
			continue
		}
		apps, err := d.scanner.Scan(carrier, sigs, future)
		if err != nil {
			return SequenceFinding{}, fmt.Errorf("translation future scan: %w", err)
		}
		for _, s := range seps {
			for _, ap := range apps {
				if s.Target == ap.Target {
					continue
				}
				cands = append(cands, Candidate{
					Carrier:  carrier.Planet,
					First:    contactOf(carrier.Planet, s),
					Second:   contactOf(carrier.Planet, ap),
					SpanDays: -s.Days + ap.Days,
				})
			}
		}
	}
	if len(cands) == 0 {
		return SequenceFinding{}, nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].SpanDays < cands[j].SpanDays
	})

	primary := cands[0]
	return SequenceFinding{
		Found:      true,
		Kind:       KindTranslation,
		Candidate:  primary,
		Sequence:   fmt.Sprintf("translation by %s: %s, then %s", primary.Carrier, primary.First, primary.Second),
		Favorable:  primary.Second.Aspect.Favorable(),
		Confidence: d.config.confidence(d.config.TranslationConfidence, primary.SpanDays),
		TimingDays: primary.Second.Days,
		Alternates: cands[1:],
	}, nil
}

// #endregion translation

// #region collection

// collection finds slower bodies that both significators apply to within the
// future window. The collector whose later application comes first wins.
func (d *Detector) collection(pa, pb chart.PlanetPosition, collectors []chart.PlanetPosition) (SequenceFinding, error) {
	opts := aspect.ScanOptions{
		Direction:  aspect.Future,
		WindowDays: d.config.FutureWindowDays,
		StepDays:   d.config.StepDays,
	}

	var cands []Candidate
	for _, col := range collectors {
		target := []chart.PlanetPosition{col}
		ma, err := d.scanner.Scan(pa, target, opts)
		if err != nil {
			return SequenceFinding{}, fmt.Errorf("collection scan: %w", err)
		}
		mb, err := d.scanner.Scan(pb, target, opts)
		if err != nil {
			return SequenceFinding{}, fmt.Errorf("collection scan: %w", err)
		}
		if len(ma) == 0 || len(mb) == 0 {
			continue
		}
		cands = append(cands, Candidate{
			Carrier:  col.Planet,
			First:    contactOf(pa.Planet, ma[0]),
			Second:   contactOf(pb.Planet, mb[0]),
			SpanDays: math.Max(ma[0].Days, mb[0].Days),
		})
	}
	if len(cands) == 0 {
		return SequenceFinding{}, nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].SpanDays < cands[j].SpanDays
	})

	primary := cands[0]
	return SequenceFinding{
		Found:      true,
		Kind:       KindCollection,
		Candidate:  primary,
		Sequence:   fmt.Sprintf("collection by %s: %s, and %s", primary.Carrier, primary.First, primary.Second),
		Favorable:  primary.First.Aspect.Favorable() && primary.Second.Aspect.Favorable(),
		Confidence: d.config.confidence(d.config.CollectionConfidence, primary.SpanDays),
		TimingDays: primary.SpanDays,
		Alternates: cands[1:],
	}, nil
}

// #endregion collection

// #region helpers

// carriers returns bodies moving faster than both significators, Moon first.
func carriers(others []chart.PlanetPosition, pa, pb chart.PlanetPosition) []chart.PlanetPosition {
	floor := math.Max(math.Abs(pa.Speed), math.Abs(pb.Speed))
	var out []chart.PlanetPosition
	for _, o := range others {
		if math.Abs(o.Speed) > floor {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Planet == chart.Moon && out[j].Planet != chart.Moon
	})
	return out
}

// collectors returns bodies moving slower than both significators.
func collectors(others []chart.PlanetPosition, pa, pb chart.PlanetPosition) []chart.PlanetPosition {
	ceil := math.Min(math.Abs(pa.Speed), math.Abs(pb.Speed))
	var out []chart.PlanetPosition
	for _, o := range others {
		if math.Abs(o.Speed) < ceil {
			out = append(out, o)
		}
	}
	return out
}

func contactOf(from chart.Planet, m aspect.Match) Contact {
	return Contact{From: from, To: m.Target, Aspect: m.Aspect, Days: m.Days, Orb: m.Orb}
}

// #endregion helpers
