package replay

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
	"github.com/danielpatrickdp/horary/go-engine/internal/judge"
	"github.com/danielpatrickdp/horary/go-engine/internal/testimony"
)

const fixtureDir = "testdata/fixtures"

func loadAll(t *testing.T) []*Fixture {
	t.Helper()
	fixtures, err := LoadDir(fixtureDir)
	require.NoError(t, err)
	require.Len(t, fixtures, 3)
	return fixtures
}

// #region fixture-tests

// TestFixtures_Regression replays every fixture and checks each expected
// verdict and perfection type. If detector parameters drift this catches it.
func TestFixtures_Regression(t *testing.T) {
	e := judge.NewEngine(judge.DefaultConfig())
	for _, r := range Replay(e, testimony.DefaultContracts(), loadAll(t)) {
		require.NoError(t, r.Err, r.Name)
		assert.True(t, r.Match, "%s: expected %s/%s, got %s/%s (%v)",
			r.Name, r.Expected.Verdict, r.Expected.PerfectionType,
			r.Judgment.Verdict, r.Judgment.PerfectionType, r.Judgment.Reasoning)
	}
}

func TestLoadFixture_Fields(t *testing.T) {
	f, err := LoadFixture(filepath.Join(fixtureDir, "translation_general.json"))
	require.NoError(t, err)

	assert.Equal(t, "translation_general", f.Name)
	assert.Equal(t, "general", f.Category)
	assert.False(t, f.explicit())
	require.NoError(t, f.Chart.Validate())
	sun, err := f.Chart.Position(chart.Sun)
	require.NoError(t, err)
	assert.Equal(t, chart.Pisces, sun.Sign)
	assert.Equal(t, 3, sun.DignityScore)
	ruler, ok := f.Chart.Ruler(7)
	assert.True(t, ok)
	assert.Equal(t, chart.Saturn, ruler)
}

func TestLoadFixture_Errors(t *testing.T) {
	_, err := LoadFixture(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadFixture(bad)
	assert.Error(t, err)

	_, err = LoadDir(filepath.Dir(bad))
	assert.Error(t, err)
}

func TestLoadDir_OrderedByName(t *testing.T) {
	fixtures := loadAll(t)
	names := []string{fixtures[0].Name, fixtures[1].Name, fixtures[2].Name}
	assert.Equal(t, []string{"abscission", "no_perfection", "translation_general"}, names)
}

// #endregion fixture-tests

// #region harness-tests

func TestRun_Mismatch(t *testing.T) {
	f, err := LoadFixture(filepath.Join(fixtureDir, "no_perfection.json"))
	require.NoError(t, err)
	f.Expected.Verdict = judge.VerdictFavorable

	r := Run(judge.NewEngine(judge.DefaultConfig()), testimony.DefaultContracts(), f)
	require.NoError(t, r.Err)
	assert.False(t, r.Match)
	assert.Equal(t, judge.PerfectionNone, r.Judgment.PerfectionType)
}

func TestRun_UnknownTestimony(t *testing.T) {
	f, err := LoadFixture(filepath.Join(fixtureDir, "abscission.json"))
	require.NoError(t, err)
	f.Testimonies = []string{"not_a_token"}

	r := Run(judge.NewEngine(judge.DefaultConfig()), testimony.DefaultContracts(), f)
	assert.ErrorIs(t, r.Err, testimony.ErrUnknownToken)
}

func TestRunParallel_MatchesSequential(t *testing.T) {
	e := judge.NewEngine(judge.DefaultConfig())
	fixtures := loadAll(t)

	seq := Replay(e, testimony.DefaultContracts(), fixtures)
	par, err := RunParallel(context.Background(), e, testimony.DefaultContracts(), fixtures, 2)
	require.NoError(t, err)
	require.Len(t, par, len(seq))
	for i := range seq {
		assert.Equal(t, seq[i].Name, par[i].Name)
		assert.Equal(t, seq[i].Judgment, par[i].Judgment)
	}
}

func TestRunParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunParallel(ctx, judge.NewEngine(judge.DefaultConfig()), testimony.DefaultContracts(), loadAll(t), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Result{
		{Match: true},
		{Match: true},
		{Match: false},
		{Err: assert.AnError},
	})
	assert.Equal(t, Summary{Total: 4, Matches: 2, Mismatches: 1, Errors: 1}, s)
}

// #endregion harness-tests
