package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
	"github.com/danielpatrickdp/horary/go-engine/internal/judge"
	"github.com/danielpatrickdp/horary/go-engine/internal/testimony"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: one chart,
// one question, and the judgment it is expected to produce.
type Fixture struct {
	Name          string          `json:"-"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	SignificatorA chart.Planet    `json:"significator_a,omitempty"`
	SignificatorB chart.Planet    `json:"significator_b,omitempty"`
	WindowDays    float64         `json:"window_days,omitempty"`
	Chart         *chart.Chart    `json:"chart"`
	Testimonies   []string        `json:"testimonies,omitempty"`
	Expected      FixtureExpected `json:"expected"`
}

// FixtureExpected captures the expected outcome. Empty fields are not checked.
type FixtureExpected struct {
	Verdict        judge.Verdict        `json:"verdict,omitempty"`
	PerfectionType judge.PerfectionType `json:"perfection_type,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &f, nil
}

// LoadDir loads every *.json fixture in dir, in file name order.
func LoadDir(dir string) ([]*Fixture, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob fixtures %s: %w", dir, err)
	}
	fixtures := make([]*Fixture, 0, len(paths))
	for _, p := range paths {
		f, err := LoadFixture(p)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

// #endregion fixture-loader

// #region conversions

// explicit reports whether the fixture names its significators rather than
// leaving them to the category's house rulers.
func (f *Fixture) explicit() bool {
	return f.SignificatorA != "" || f.SignificatorB != ""
}

func (f *Fixture) category() string {
	if f.Category == "" {
		return "general"
	}
	return f.Category
}

// ToRequest converts an explicit-significator fixture to a judge.Request.
func (f *Fixture) ToRequest(contracts testimony.Contracts) (judge.Request, error) {
	contract, err := contracts.Lookup(f.category())
	if err != nil {
		return judge.Request{}, err
	}
	tokens, err := testimony.ParseTokens(f.Testimonies)
	if err != nil {
		return judge.Request{}, fmt.Errorf("fixture %s: %w", f.Name, err)
	}
	return judge.Request{
		Chart:         f.Chart,
		SignificatorA: f.SignificatorA,
		SignificatorB: f.SignificatorB,
		Contract:      contract,
		WindowDays:    f.WindowDays,
		Testimonies:   tokens,
	}, nil
}

// ToCategoryRequest converts a category fixture to a judge.CategoryRequest.
func (f *Fixture) ToCategoryRequest() (judge.CategoryRequest, error) {
	tokens, err := testimony.ParseTokens(f.Testimonies)
	if err != nil {
		return judge.CategoryRequest{}, fmt.Errorf("fixture %s: %w", f.Name, err)
	}
	return judge.CategoryRequest{
		Chart:       f.Chart,
		Category:    f.category(),
		WindowDays:  f.WindowDays,
		Testimonies: tokens,
	}, nil
}

// #endregion conversions
