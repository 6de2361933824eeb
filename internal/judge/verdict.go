package judge

import (
	"fmt"
	"math"
)

// #region decide

// Decide maps a score to a verdict: at or above the threshold is favorable,
// at or below its negation unfavorable, anything between uncertain.
// Confidence grows from 50 with |score| and is clamped to [0, MaxConfidence].
func (c Config) Decide(score float64) (Verdict, float64) {
	verdict := VerdictUncertain
	switch {
	case score >= c.FavorableThreshold:
		verdict = VerdictFavorable
	case score <= -c.FavorableThreshold:
		verdict = VerdictUnfavorable
	}
	conf := 50 + math.Abs(score)*c.ConfidencePerPoint
	conf = math.Max(0, math.Min(conf, c.MaxConfidence))
	return verdict, conf
}

// Validate rejects thresholds that would make every verdict the same.
func (c Config) Validate() error {
	if c.FavorableThreshold <= 0 {
		return fmt.Errorf("judge config: favorable threshold %.2f must be positive", c.FavorableThreshold)
	}
	if c.MaxConfidence <= 0 || c.MaxConfidence > 100 {
		return fmt.Errorf("judge config: max confidence %.1f outside (0, 100]", c.MaxConfidence)
	}
	if c.ConfidencePerPoint < 0 {
		return fmt.Errorf("judge config: negative confidence per point %.2f", c.ConfidencePerPoint)
	}
	if err := c.Perfection.Validate(); err != nil {
		return fmt.Errorf("judge config: %w", err)
	}
	return nil
}

// #endregion decide
