package testimony

import (
	"fmt"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
)

// #region taxonomy

// Entry is the fixed meaning of one token.
type Entry struct {
	Houses   []int // governing houses; empty for chart-wide testimonies
	Polarity Polarity
	Family   Family
}

// Taxonomy maps every token to its meaning.
type Taxonomy map[Token]Entry

// DefaultTaxonomy covers every token in the enumeration.
func DefaultTaxonomy() Taxonomy {
	t := Taxonomy{
		PerfectionDirect:      {Polarity: Favorable, Family: FamilyPerfection},
		PerfectionTranslation: {Polarity: Favorable, Family: FamilyPerfection},
		PerfectionCollection:  {Polarity: Favorable, Family: FamilyPerfection},
		PerfectionHardAspect:  {Polarity: Unfavorable, Family: FamilyModifier},
		NoPerfection:          {Polarity: Unfavorable, Family: FamilyPerfection},
		Prohibition:           {Polarity: Unfavorable, Family: FamilyPerfection},
		AbscissionOfLight:     {Polarity: Unfavorable, Family: FamilyPerfection},
		MoonVoidOfCourse:      {Polarity: Unfavorable, Family: FamilyMoon},
	}
	for n := 1; n <= 12; n++ {
		t[RulerFortunate(n)] = Entry{Houses: []int{n}, Polarity: Favorable, Family: FamilyRuler}
		t[RulerAfflicted(n)] = Entry{Houses: []int{n}, Polarity: Unfavorable, Family: FamilyRuler}
	}
	return t
}

// Lookup returns the entry for a token.
func (t Taxonomy) Lookup(tok Token) (Entry, error) {
	e, ok := t[tok]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownToken, tok)
	}
	return e, nil
}

// #endregion taxonomy

// #region ruler-testimonies

// RulerTestimonies derives one token per house from the dignity of its ruler:
// positive dignity is fortunate, negative is afflicted, zero says nothing.
// Houses without a recorded ruler are skipped.
func RulerTestimonies(c *chart.Chart, houses []int) ([]Token, error) {
	var out []Token
	for _, h := range houses {
		if h < 1 || h > 12 {
			return nil, fmt.Errorf("ruler testimonies: house %d outside 1-12", h)
		}
		ruler, ok := c.Ruler(h)
		if !ok {
			continue
		}
		pos, err := c.Position(ruler)
		if err != nil {
			return nil, fmt.Errorf("ruler testimonies: %w", err)
		}
		switch {
		case pos.DignityScore > 0:
			out = append(out, RulerFortunate(h))
		case pos.DignityScore < 0:
			out = append(out, RulerAfflicted(h))
		}
	}
	return out, nil
}

// #endregion ruler-testimonies
