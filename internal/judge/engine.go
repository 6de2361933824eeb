package judge

// #region imports
import (
	"fmt"

	"go.uber.org/zap"

	"github.com/danielpatrickdp/horary/go-engine/internal/perfection"
	"github.com/danielpatrickdp/horary/go-engine/internal/testimony"
)

// #endregion

// #region engine-struct

// Engine sequences the detectors into one verdict. It holds no per-judgment
// state; concurrent calls to Judge are independent.
type Engine struct {
	config      Config
	direct      DirectChecker
	prohibition ProhibitionChecker
	sequence    SequenceChecker
	void        VoidChecker
	aggregator  *testimony.Aggregator
	logger      *zap.Logger
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithDirectChecker replaces the direct perfection detector.
func WithDirectChecker(c DirectChecker) Option {
	return func(e *Engine) { e.direct = c }
}

// WithProhibitionChecker replaces the prohibition detector.
func WithProhibitionChecker(c ProhibitionChecker) Option {
	return func(e *Engine) { e.prohibition = c }
}

// WithSequenceChecker replaces the translation/collection detector.
func WithSequenceChecker(c SequenceChecker) Option {
	return func(e *Engine) { e.sequence = c }
}

// WithVoidChecker replaces the void-of-course check used by JudgeCategory.
func WithVoidChecker(c VoidChecker) Option {
	return func(e *Engine) { e.void = c }
}

// WithAggregator replaces the testimony aggregator.
func WithAggregator(a *testimony.Aggregator) Option {
	return func(e *Engine) { e.aggregator = a }
}

// WithLogger sets the structured logger. Stages log at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// #endregion

// #region constructor

// NewEngine wires a perfection.Detector built from config.Perfection into
// every capability not overridden by an option.
func NewEngine(config Config, opts ...Option) *Engine {
	det := perfection.NewDetector(config.Perfection)
	e := &Engine{
		config:      config,
		direct:      det,
		prohibition: det,
		sequence:    det,
		void:        det,
		aggregator:  testimony.NewAggregator(nil),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// #endregion

// #region judge

// Judge runs direct perfection, prohibition and, only when neither settles
// the matter, translation/collection, then aggregates every testimony.
// A prohibition always short-circuits the softer perfections.
func (e *Engine) Judge(req Request) (Result, error) {
	a, b := req.SignificatorA, req.SignificatorB
	res := Result{
		Category:      req.Contract.Category,
		SignificatorA: a,
		SignificatorB: b,
		Trace:         []Stage{StageStart},
	}
	if err := req.Chart.Validate(); err != nil {
		return Result{}, fmt.Errorf("judge: %w", err)
	}
	if a == b {
		return Result{}, fmt.Errorf("%w: %s", ErrSameSignificator, a)
	}
	window := req.WindowDays
	if window <= 0 {
		window = e.config.Perfection.FutureWindowDays
	}
	log := e.logger.With(zap.String("a", string(a)), zap.String("b", string(b)), zap.String("category", req.Contract.Category))

	// --- Direct perfection ---
	res.Trace = append(res.Trace, StageCheckDirect)
	direct, err := e.direct.DirectPerfection(req.Chart, a, b, window)
	if err != nil {
		return Result{}, fmt.Errorf("judge direct: %w", err)
	}
	if direct.Found {
		res.Direct = &direct
		res.Reasoning = append(res.Reasoning, fmt.Sprintf("%s applies to %s by %s, exact in %.2f days", a, b, direct.Aspect, direct.Days))
	}
	log.Debug("stage", zap.String("stage", string(StageCheckDirect)), zap.Bool("found", direct.Found))

	// --- Prohibition ---
	res.Trace = append(res.Trace, StageCheckProhibition)
	ref := window
	if direct.Found {
		ref = direct.Days
	}
	pro, err := e.prohibition.CheckProhibitions(req.Chart, a, b, ref)
	if err != nil {
		return Result{}, fmt.Errorf("judge prohibition: %w", err)
	}
	log.Debug("stage", zap.String("stage", string(StageCheckProhibition)), zap.Bool("prohibited", pro.Prohibited))

	var tokens []testimony.Token
	switch {
	case pro.Prohibited:
		res.Trace = append(res.Trace, StageProhibited)
		res.Prohibition = &pro
		res.Reasoning = append(res.Reasoning, pro.Reason)
		if pro.Type == perfection.TypeProhibition {
			res.PerfectionType = PerfectionProhibition
			tokens = append(tokens, testimony.Prohibition)
		} else {
			res.PerfectionType = PerfectionAbscission
			tokens = append(tokens, testimony.AbscissionOfLight)
		}

	case direct.Found:
		res.PerfectionType = PerfectionDirect
		tokens = append(tokens, testimony.PerfectionDirect)
		if !direct.Favorable {
			tokens = append(tokens, testimony.PerfectionHardAspect)
		}

	default:
		// --- Translation / collection ---
		res.Trace = append(res.Trace, StageCheckSequence)
		seq, err := e.sequence.DetectTranslationOrCollection(req.Chart, a, b)
		if err != nil {
			return Result{}, fmt.Errorf("judge sequence: %w", err)
		}
		log.Debug("stage", zap.String("stage", string(StageCheckSequence)), zap.Bool("found", seq.Found))
		switch {
		case seq.Found && seq.Kind == perfection.KindCollection:
			res.Sequence = &seq
			res.PerfectionType = PerfectionCollection
			tokens = append(tokens, testimony.PerfectionCollection)
		case seq.Found:
			res.Sequence = &seq
			res.PerfectionType = PerfectionTranslation
			tokens = append(tokens, testimony.PerfectionTranslation)
		default:
			res.PerfectionType = PerfectionNone
			tokens = append(tokens, testimony.NoPerfection)
			res.Reasoning = append(res.Reasoning, fmt.Sprintf("no perfection between %s and %s within %.1f days", a, b, window))
		}
		if seq.Found {
			res.Reasoning = append(res.Reasoning, seq.Sequence)
			if !seq.Favorable {
				tokens = append(tokens, testimony.PerfectionHardAspect)
			}
		}
	}

	// --- Aggregate ---
	res.Trace = append(res.Trace, StageAggregate)
	tokens = append(tokens, req.Testimonies...)
	score, ledger, err := e.aggregator.Aggregate(tokens, req.Contract)
	if err != nil {
		return Result{}, fmt.Errorf("judge aggregate: %w", err)
	}
	res.Score = score
	res.Ledger = ledger
	res.Verdict, res.Confidence = e.config.Decide(score)
	res.Reasoning = append(res.Reasoning, fmt.Sprintf("score %.1f from %d testimonies: %s", score, len(ledger), res.Verdict))
	res.Trace = append(res.Trace, StageDone)

	log.Info("judgment",
		zap.String("verdict", string(res.Verdict)),
		zap.String("perfection", string(res.PerfectionType)),
		zap.Float64("score", res.Score),
		zap.Float64("confidence", res.Confidence))
	return res, nil
}

// #endregion
