package aspect

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
)

// #region types

// Direction selects which side of judgment time a scan covers.
type Direction int

const (
	Future Direction = iota
	Past
)

func (d Direction) String() string {
	if d == Past {
		return "past"
	}
	return "future"
}

// ErrInvalidScan is returned for a non-positive step or a negative window.
var ErrInvalidScan = errors.New("aspect: invalid scan options")

// ScanOptions bounds a scan. StepDays is the sampling resolution of future
// scans; past scans are solved directly and only validate it.
type ScanOptions struct {
	Direction         Direction
	WindowDays        float64
	StepDays          float64
	RequireSignChange bool // future only: subject must have left its starting sign
}

// Match is one aspect contact found by a scan.
type Match struct {
	Target          chart.Planet
	Aspect          chart.Aspect
	Days            float64    // signed time of the exact contact relative to judgment time
	Orb             float64    // degrees from exact: at the detecting sample (future) or now (past)
	DegreesTraveled float64    // subject's travel between now and the exact contact
	SubjectSign     chart.Sign // subject's sign at the exact contact
}

// Applying reports whether the contact is still ahead.
func (m Match) Applying() bool {
	return m.Days > 0
}

// #endregion types

// #region scanner

// Scanner enumerates aspect contacts between a moving subject and its targets.
type Scanner struct {
	orbs OrbPolicy
}

// NewScanner creates a scanner; a nil policy falls back to DefaultOrbPolicy.
func NewScanner(orbs OrbPolicy) *Scanner {
	if orbs == nil {
		orbs = DefaultOrbPolicy()
	}
	return &Scanner{orbs: orbs}
}

// Orbs returns the scanner's orb policy.
func (s *Scanner) Orbs() OrbPolicy {
	return s.orbs
}

// Scan returns at most one match per target (the contact nearest to judgment
// time), ordered by |Days|. Window bounds are inclusive.
func (s *Scanner) Scan(subject chart.PlanetPosition, targets []chart.PlanetPosition, opts ScanOptions) ([]Match, error) {
	if opts.StepDays <= 0 || math.IsNaN(opts.StepDays) {
		return nil, fmt.Errorf("%w: step %.3f days", ErrInvalidScan, opts.StepDays)
	}
	if opts.WindowDays < 0 || math.IsNaN(opts.WindowDays) {
		return nil, fmt.Errorf("%w: window %.3f days", ErrInvalidScan, opts.WindowDays)
	}

	best := newBestByTarget()
	if opts.Direction == Past {
		s.scanPast(subject, targets, opts, best)
	} else {
		s.scanFuture(subject, targets, opts, best)
	}
	return best.sorted(), nil
}

// scanPast solves every contact directly: only exact moments in
// [-window, 0) qualify, and the most recent per target is kept.
func (s *Scanner) scanPast(subject chart.PlanetPosition, targets []chart.PlanetPosition, opts ScanOptions, best *bestByTarget) {
	for _, tgt := range targets {
		if tgt.Planet == subject.Planet {
			continue
		}
		v := subject.Speed - tgt.Speed
		for _, a := range chart.TraditionalAspects {
			cands, ok := Candidates(subject, tgt, a)
			if !ok {
				continue
			}
			for _, t := range cands {
				if t >= 0 || -t > opts.WindowDays {
					continue
				}
				best.consider(Match{
					Target:          tgt.Planet,
					Aspect:          a,
					Days:            t,
					Orb:             math.Abs(t * v),
					DegreesTraveled: math.Abs(t * subject.Speed),
					SubjectSign:     Project(subject, t).Sign,
				})
			}
		}
	}
}

// scanFuture samples the window at StepDays. A contact counts when the aspect
// is within orb at a sample and its exact moment, solved from that sample,
// lies in (0, window]. With RequireSignChange both the sample and the exact
// moment must be outside the subject's starting sign.
func (s *Scanner) scanFuture(subject chart.PlanetPosition, targets []chart.PlanetPosition, opts ScanOptions, best *bestByTarget) {
	startSign := chart.SignOf(subject.Longitude)
	k := 0
	if opts.RequireSignChange {
		k = 1
	}
	for ; float64(k)*opts.StepDays <= opts.WindowDays; k++ {
		d := float64(k) * opts.StepDays
		sub := Project(subject, d)
		if opts.RequireSignChange && sub.Sign == startSign {
			continue
		}
		for _, tgt := range targets {
			if tgt.Planet == subject.Planet {
				continue
			}
			tp := Project(tgt, d)
			sep := Separation(sub.Longitude, tp.Longitude)
			for _, a := range chart.TraditionalAspects {
				orb := math.Abs(sep - a.Degrees())
				if orb > s.orbs.MaxOrb(a) {
					continue
				}
				dt, ok := SolveTime(sub, tp, a)
				if !ok {
					continue
				}
				exact := d + dt
				if exact <= 0 || exact > opts.WindowDays {
					continue
				}
				at := Project(subject, exact)
				if opts.RequireSignChange && at.Sign == startSign {
					continue
				}
				best.consider(Match{
					Target:          tgt.Planet,
					Aspect:          a,
					Days:            exact,
					Orb:             orb,
					DegreesTraveled: math.Abs(subject.Speed * exact),
					SubjectSign:     at.Sign,
				})
			}
		}
	}
}

// #endregion scanner

// #region tie-break

// bestByTarget keeps the match nearest to judgment time for each target,
// remembering first-seen order so equal times sort deterministically.
type bestByTarget struct {
	order []chart.Planet
	byKey map[chart.Planet]Match
}

func newBestByTarget() *bestByTarget {
	return &bestByTarget{byKey: make(map[chart.Planet]Match)}
}

func (b *bestByTarget) consider(m Match) {
	cur, ok := b.byKey[m.Target]
	if !ok {
		b.order = append(b.order, m.Target)
		b.byKey[m.Target] = m
		return
	}
	if math.Abs(m.Days) < math.Abs(cur.Days) {
		b.byKey[m.Target] = m
	}
}

func (b *bestByTarget) sorted() []Match {
	out := make([]Match, 0, len(b.order))
	for _, p := range b.order {
		out = append(out, b.byKey[p])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Days) < math.Abs(out[j].Days)
	})
	return out
}

// #endregion tie-break
