package perfection

import (
	"fmt"

	"github.com/danielpatrickdp/horary/go-engine/internal/aspect"
	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
)

// #region config

// Config holds the scan windows and confidence policy for all detectors.
type Config struct {
	PastWindowDays    float64
	FutureWindowDays  float64
	StepDays          float64
	RequireSignChange bool // translation only: the carrier must change sign before applying
	Orbs              aspect.OrbPolicy

	TranslationConfidence float64 // starting confidence for a translation finding
	CollectionConfidence  float64
	ConfidenceDecayPerDay float64 // subtracted per day of total span
	MinConfidence         float64
}

// DefaultConfig returns a past week, a fifteen-day future and half-day steps.
func DefaultConfig() Config {
	return Config{
		PastWindowDays:        7,
		FutureWindowDays:      15,
		StepDays:              0.5,
		RequireSignChange:     true,
		Orbs:                  aspect.DefaultOrbPolicy(),
		TranslationConfidence: 80,
		CollectionConfidence:  70,
		ConfidenceDecayPerDay: 2,
		MinConfidence:         40,
	}
}

// Validate rejects windows and steps the scanner cannot use.
func (c Config) Validate() error {
	if c.PastWindowDays < 0 || c.FutureWindowDays < 0 {
		return fmt.Errorf("perfection config: negative window (past %.2f, future %.2f)", c.PastWindowDays, c.FutureWindowDays)
	}
	if c.StepDays <= 0 {
		return fmt.Errorf("perfection config: step %.3f days must be positive", c.StepDays)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 100 {
		return fmt.Errorf("perfection config: min confidence %.1f outside [0, 100]", c.MinConfidence)
	}
	return c.Orbs.Validate()
}

// confidence decays base by span days and clamps to [MinConfidence, 100].
func (c Config) confidence(base, spanDays float64) float64 {
	v := base - c.ConfidenceDecayPerDay*spanDays
	if v < c.MinConfidence {
		v = c.MinConfidence
	}
	if v > 100 {
		v = 100
	}
	return v
}

// #endregion config

// #region direct-finding

// DirectFinding describes an applying aspect between the two significators.
type DirectFinding struct {
	Found     bool
	Aspect    chart.Aspect
	Days      float64 // time to exact
	Orb       float64 // current distance from exact, degrees
	Favorable bool
	Recorded  bool // taken from the chart's precomputed aspect list
}

// #endregion direct-finding

// #region sequence-finding

// Kind distinguishes the two sequence perfections.
type Kind string

const (
	KindTranslation Kind = "translation"
	KindCollection  Kind = "collection"
)

// Contact is one leg of a sequence: From aspects To, exact at Days
// (negative when already separating).
type Contact struct {
	From   chart.Planet
	To     chart.Planet
	Aspect chart.Aspect
	Days   float64
	Orb    float64
}

func (c Contact) String() string {
	if c.Days < 0 {
		return fmt.Sprintf("%s separates from %s (%s, %.2f days ago)", c.From, c.To, c.Aspect, -c.Days)
	}
	return fmt.Sprintf("%s applies to %s (%s in %.2f days)", c.From, c.To, c.Aspect, c.Days)
}

// Candidate is one complete sequence through a carrier (translation) or to a
// collector (collection). For a translation First is the separation and
// Second the application; for a collection both legs are applications.
type Candidate struct {
	Carrier  chart.Planet
	First    Contact
	Second   Contact
	SpanDays float64
}

// SequenceFinding reports the primary sequence and any competing alternates.
type SequenceFinding struct {
	Found bool
	Kind  Kind
	Candidate
	Sequence   string
	Favorable  bool
	Confidence float64
	TimingDays float64 // days until the sequence completes
	Alternates []Candidate
}

// #endregion sequence-finding

// #region prohibition-finding

// Prohibition types.
const (
	TypeProhibition = "prohibition"
	TypeAbscission  = "abscission"
)

// ProhibitionFinding describes the earliest interposition found, if any.
type ProhibitionFinding struct {
	Prohibited   bool
	Type         string // TypeProhibition | TypeAbscission
	Reason       string
	Abscissor    chart.Planet
	Significator chart.Planet // body whose light is cut off
	Aspect       chart.Aspect
	Days         float64
}

// #endregion prohibition-finding
