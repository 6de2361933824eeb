package aspect

import (
	"fmt"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
)

// #region orb-policy

// OrbPolicy maps each aspect to the widest orb still counted as "in aspect".
type OrbPolicy map[chart.Aspect]float64

// DefaultOrbPolicy returns 8° for conjunction and opposition, 6° otherwise.
func DefaultOrbPolicy() OrbPolicy {
	return OrbPolicy{
		chart.Conjunction: 8,
		chart.Sextile:     6,
		chart.Square:      6,
		chart.Trine:       6,
		chart.Opposition:  8,
	}
}

// MaxOrb returns the allowed orb for a, falling back to the default policy
// when the aspect is not configured.
func (o OrbPolicy) MaxOrb(a chart.Aspect) float64 {
	if v, ok := o[a]; ok {
		return v
	}
	return DefaultOrbPolicy()[a]
}

// Validate rejects negative orbs and orbs wide enough to overlap a neighbouring aspect.
func (o OrbPolicy) Validate() error {
	for a, v := range o {
		if _, err := chart.ParseAspect(string(a)); err != nil {
			return fmt.Errorf("orb policy: %w", err)
		}
		if v < 0 || v >= 30 {
			return fmt.Errorf("orb policy: %s orb %.2f outside [0, 30)", a, v)
		}
	}
	return nil
}

// #endregion orb-policy
