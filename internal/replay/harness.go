package replay

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/horary/go-engine/internal/judge"
	"github.com/danielpatrickdp/horary/go-engine/internal/testimony"
)

// #region types

// Result captures the outcome of replaying one fixture.
type Result struct {
	Name        string
	Description string
	Expected    FixtureExpected
	Judgment    judge.Result
	Err         error
	Match       bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Total      int
	Matches    int
	Mismatches int
	Errors     int
}

// #endregion types

// #region replay

// Run judges one fixture and compares the outcome with its expectations.
func Run(e *judge.Engine, contracts testimony.Contracts, f *Fixture) Result {
	r := Result{Name: f.Name, Description: f.Description, Expected: f.Expected}

	if f.explicit() {
		req, err := f.ToRequest(contracts)
		if err != nil {
			r.Err = err
			return r
		}
		r.Judgment, r.Err = e.Judge(req)
	} else {
		req, err := f.ToCategoryRequest()
		if err != nil {
			r.Err = err
			return r
		}
		r.Judgment, r.Err = e.JudgeCategory(contracts, req)
	}
	if r.Err != nil {
		return r
	}

	r.Match = (f.Expected.Verdict == "" || f.Expected.Verdict == r.Judgment.Verdict) &&
		(f.Expected.PerfectionType == "" || f.Expected.PerfectionType == r.Judgment.PerfectionType)
	return r
}

// Replay runs fixtures one after another, in order.
func Replay(e *judge.Engine, contracts testimony.Contracts, fixtures []*Fixture) []Result {
	results := make([]Result, 0, len(fixtures))
	for _, f := range fixtures {
		results = append(results, Run(e, contracts, f))
	}
	return results
}

// RunParallel runs fixtures concurrently with at most limit in flight.
// Results keep fixture order. Only cancellation of ctx is returned as an
// error; per-fixture failures are reported in each Result.
func RunParallel(ctx context.Context, e *judge.Engine, contracts testimony.Contracts, fixtures []*Fixture, limit int) ([]Result, error) {
	results := make([]Result, len(fixtures))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, f := range fixtures {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Run(e, contracts, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Errors++
		case r.Match:
			s.Matches++
		default:
			s.Mismatches++
		}
	}
	return s
}

// #endregion replay
