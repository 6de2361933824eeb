package judge

// #region imports
import (
	"errors"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
	"github.com/danielpatrickdp/horary/go-engine/internal/perfection"
	"github.com/danielpatrickdp/horary/go-engine/internal/testimony"
)

// #endregion

// #region stage

// Stage names one step of a judgment.
type Stage string

const (
	StageStart            Stage = "start"
	StageCheckDirect      Stage = "check_direct_perfection"
	StageCheckProhibition Stage = "check_prohibition"
	StageProhibited       Stage = "prohibited"
	StageCheckSequence    Stage = "check_translation_or_collection"
	StageAggregate        Stage = "aggregate"
	StageDone             Stage = "done"
)

// #endregion

// #region verdict

// Verdict is the answer to the question.
type Verdict string

const (
	VerdictFavorable   Verdict = "favorable"
	VerdictUnfavorable Verdict = "unfavorable"
	VerdictUncertain   Verdict = "uncertain"
)

// #endregion

// #region perfection-type

// PerfectionType records how, or whether, the matter perfects.
type PerfectionType string

const (
	PerfectionDirect      PerfectionType = "direct"
	PerfectionTranslation PerfectionType = "translation"
	PerfectionCollection  PerfectionType = "collection"
	PerfectionAbscission  PerfectionType = "abscission"
	PerfectionProhibition PerfectionType = "prohibition"
	PerfectionNone        PerfectionType = "none"
)

// #endregion

// #region errors

var (
	// ErrSameSignificator means both significators resolve to the same body.
	ErrSameSignificator = errors.New("judge: significators must differ")
	// ErrNoSignificator means a house needed for a category has no ruler.
	ErrNoSignificator = errors.New("judge: house has no recorded ruler")
)

// #endregion

// #region config

// Config holds detector settings and verdict thresholds.
type Config struct {
	Perfection         perfection.Config
	FavorableThreshold float64 // |score| at or above this decides the verdict
	ConfidencePerPoint float64 // confidence gained per point of |score| above 50
	MaxConfidence      float64
}

// DefaultConfig returns a threshold of 5 points and confidence capped at 95.
func DefaultConfig() Config {
	return Config{
		Perfection:         perfection.DefaultConfig(),
		FavorableThreshold: 5,
		ConfidencePerPoint: 1.5,
		MaxConfidence:      95,
	}
}

// #endregion

// #region request-result

// Request is one judgment between two significators.
type Request struct {
	Chart         *chart.Chart
	SignificatorA chart.Planet
	SignificatorB chart.Planet
	Contract      testimony.Contract
	WindowDays    float64 // non-positive uses the configured future window

	// Testimonies from outside the perfection engine (dignities, house
	// placements, the Moon's condition), folded in at aggregation.
	Testimonies []testimony.Token
}

// Result is the immutable outcome of a judgment.
type Result struct {
	Category       string                  `json:"category,omitempty"`
	SignificatorA  chart.Planet            `json:"significator_a"`
	SignificatorB  chart.Planet            `json:"significator_b"`
	Verdict        Verdict                 `json:"verdict"`
	Confidence     float64                 `json:"confidence"`
	PerfectionType PerfectionType          `json:"perfection_type"`
	Score          float64                 `json:"score"`
	Ledger         []testimony.LedgerEntry `json:"ledger"`
	Trace          []Stage                 `json:"trace"`
	Reasoning      []string                `json:"reasoning"`

	Direct      *perfection.DirectFinding      `json:"direct,omitempty"`
	Prohibition *perfection.ProhibitionFinding `json:"prohibition,omitempty"`
	Sequence    *perfection.SequenceFinding    `json:"sequence,omitempty"`
}

// #endregion

// #region interfaces

// DirectChecker finds an applying aspect between the significators.
type DirectChecker interface {
	DirectPerfection(c *chart.Chart, a, b chart.Planet, windowDays float64) (perfection.DirectFinding, error)
}

// ProhibitionChecker finds a body cutting off the significators' light.
type ProhibitionChecker interface {
	CheckProhibitions(c *chart.Chart, a, b chart.Planet, referenceDays float64) (perfection.ProhibitionFinding, error)
}

// SequenceChecker finds translation or collection of light.
type SequenceChecker interface {
	DetectTranslationOrCollection(c *chart.Chart, a, b chart.Planet) (perfection.SequenceFinding, error)
}

// VoidChecker reports whether the Moon is void of course.
type VoidChecker interface {
	MoonVoidOfCourse(c *chart.Chart) (bool, error)
}

// #endregion
