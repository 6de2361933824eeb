package judge

import (
	"fmt"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
	"github.com/danielpatrickdp/horary/go-engine/internal/testimony"
)

// #region category-request

// CategoryRequest asks a question of a known category; the significators
// are resolved from the chart's house rulers.
type CategoryRequest struct {
	Chart       *chart.Chart
	Category    string
	WindowDays  float64
	Testimonies []testimony.Token
}

// #endregion

// #region judge-category

// JudgeCategory resolves the contract, takes the ruler of the first house
// and the ruler of the quesited house as significators, adds ruler-dignity
// and void-of-course testimonies, and judges. When one planet rules both
// houses the Moon stands in as co-significator for the querent.
func (e *Engine) JudgeCategory(contracts testimony.Contracts, req CategoryRequest) (Result, error) {
	contract, err := contracts.Lookup(req.Category)
	if err != nil {
		return Result{}, err
	}
	if err := req.Chart.Validate(); err != nil {
		return Result{}, fmt.Errorf("judge category: %w", err)
	}
	a, b, err := Significators(req.Chart, contract)
	if err != nil {
		return Result{}, err
	}

	tokens := append([]testimony.Token(nil), req.Testimonies...)
	rulers, err := testimony.RulerTestimonies(req.Chart, contract.RelevantHouses)
	if err != nil {
		return Result{}, fmt.Errorf("judge category: %w", err)
	}
	tokens = append(tokens, rulers...)

	void, err := e.void.MoonVoidOfCourse(req.Chart)
	if err != nil {
		return Result{}, fmt.Errorf("judge category: %w", err)
	}
	if void {
		tokens = append(tokens, testimony.MoonVoidOfCourse)
	}

	return e.Judge(Request{
		Chart:         req.Chart,
		SignificatorA: a,
		SignificatorB: b,
		Contract:      contract,
		WindowDays:    req.WindowDays,
		Testimonies:   tokens,
	})
}

// Significators returns the rulers of house 1 and the contract's quesited house.
func Significators(c *chart.Chart, contract testimony.Contract) (chart.Planet, chart.Planet, error) {
	a, ok := c.Ruler(1)
	if !ok {
		return "", "", fmt.Errorf("%w: 1", ErrNoSignificator)
	}
	b, ok := c.Ruler(contract.Quesited)
	if !ok {
		return "", "", fmt.Errorf("%w: %d", ErrNoSignificator, contract.Quesited)
	}
	if a == b {
		if a == chart.Moon {
			return "", "", fmt.Errorf("%w: Moon rules houses 1 and %d", ErrSameSignificator, contract.Quesited)
		}
		return chart.Moon, b, nil
	}
	return a, b, nil
}

// #endregion
