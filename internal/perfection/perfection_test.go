package perfection

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
)

// #region helpers
func body(p chart.Planet, lon, speed float64) chart.PlanetPosition {
	return chart.PlanetPosition{Planet: p, Longitude: lon, Speed: speed}
}

func testChart(positions ...chart.PlanetPosition) *chart.Chart {
	return chart.New(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), positions)
}

// translationChart has the Moon in Sagittarius as the only body faster than
// both the Sun and Saturn. Nothing else touches the Moon while it carries.
func translationChart() *chart.Chart {
	return testChart(
		body(chart.Sun, 339.6, 1.0),
		body(chart.Moon, 242.8, 13.46),
		body(chart.Mercury, 50, 0.8),
		body(chart.Venus, 60, 0.6),
		body(chart.Mars, 110, 0.5),
		body(chart.Jupiter, 10, 0.1),
		body(chart.Saturn, 34.8, 0.09),
	)
}

// #endregion helpers

// #region direct-tests
func TestDirectPerfection_ComputedInOrb(t *testing.T) {
	c := testChart(
		body(chart.Sun, 5, 1),
		body(chart.Moon, 0, 13),
		body(chart.Mercury, 100, 1),
		body(chart.Venus, 140, 1),
		body(chart.Mars, 200, 0.5),
		body(chart.Jupiter, 250, 0.1),
		body(chart.Saturn, 300, 0.05),
	)
	d := NewDetector(DefaultConfig())

	f, err := d.DirectPerfection(c, chart.Moon, chart.Sun, 15)
	require.NoError(t, err)
	require.True(t, f.Found)
	assert.Equal(t, chart.Conjunction, f.Aspect)
	assert.InDelta(t, 5.0/12, f.Days, 1e-9)
	assert.InDelta(t, 5.0, f.Orb, 1e-9)
	assert.True(t, f.Favorable)
	assert.False(t, f.Recorded)
}

func TestDirectPerfection_RecordedAspectFirst(t *testing.T) {
	c := testChart(
		body(chart.Sun, 0, 1),
		body(chart.Moon, 300, 13),
		body(chart.Mercury, 10, 1),
		body(chart.Venus, 20, 1),
		body(chart.Mars, 195.97361454606846, 0.649422093300911),
		body(chart.Jupiter, 107.8889649540042, 0.17943345590025755),
		body(chart.Saturn, 50, 0.05),
	)
	c.Aspects = []chart.AspectRecord{
		{Planet1: chart.Jupiter, Planet2: chart.Mars, Aspect: chart.Square, Orb: 1.92, Applying: true},
	}
	d := NewDetector(DefaultConfig())

	f, err := d.DirectPerfection(c, chart.Mars, chart.Jupiter, 15)
	require.NoError(t, err)
	require.True(t, f.Found)
	assert.True(t, f.Recorded)
	assert.Equal(t, chart.Square, f.Aspect)
	assert.InDelta(t, 4.08, f.Days, 0.01)
	assert.False(t, f.Favorable)

	f, err = d.DirectPerfection(c, chart.Mars, chart.Jupiter, 3)
	require.NoError(t, err)
	assert.False(t, f.Found, "square at 4.08 days lies outside a 3-day window")
}

func TestDirectPerfection_MissingPlanet(t *testing.T) {
	c := testChart(body(chart.Mars, 10, 0.5))
	d := NewDetector(DefaultConfig())

	_, err := d.DirectPerfection(c, chart.Mars, chart.Jupiter, 15)
	require.Error(t, err)
	assert.True(t, errors.Is(err, chart.ErrMissingPlanet))
}

// #endregion direct-tests

// #region translation-tests
func TestDetectTranslation_ShortestSpanWins(t *testing.T) {
	d := NewDetector(DefaultConfig())

	f, err := d.DetectTranslationOrCollection(translationChart(), chart.Sun, chart.Saturn)
	require.NoError(t, err)
	require.True(t, f.Found)
	assert.Equal(t, KindTranslation, f.Kind)
	assert.Equal(t, chart.Moon, f.Carrier)

	assert.Equal(t, chart.Sun, f.First.To)
	assert.Equal(t, chart.Trine, f.First.Aspect)
	assert.InDelta(t, -1.862, f.First.Days, 1e-3)
	assert.Equal(t, chart.Saturn, f.Second.To)
	assert.Equal(t, chart.Trine, f.Second.Aspect)
	assert.InDelta(t, 2.393, f.Second.Days, 1e-3)
	assert.InDelta(t, 4.255, f.SpanDays, 1e-3)
	assert.InDelta(t, f.Second.Days, f.TimingDays, 1e-12)
	assert.True(t, f.Favorable)
	assert.InDelta(t, 80-2*4.255, f.Confidence, 1e-2)
	assert.Contains(t, f.Sequence, "translation by Moon")

	require.Len(t, f.Alternates, 1)
	alt := f.Alternates[0]
	assert.Equal(t, chart.Saturn, alt.First.To)
	assert.Equal(t, chart.Opposition, alt.First.Aspect)
	assert.Equal(t, chart.Sun, alt.Second.To)
	assert.Equal(t, chart.Sextile, alt.Second.Aspect)
	assert.InDelta(t, 5.047, alt.SpanDays, 1e-3)
	assert.Less(t, f.SpanDays, alt.SpanDays)
}

func TestDetectTranslation_SignGateDropsInSignApplication(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequireSignChange = false
	d := NewDetector(cfg)

	// Without the sign gate the Moon's square to the Sun while still in
	// Sagittarius pairs with the earlier Saturn separation.
	f, err := d.DetectTranslationOrCollection(translationChart(), chart.Sun, chart.Saturn)
	require.NoError(t, err)
	require.True(t, f.Found)
	assert.Equal(t, chart.Saturn, f.First.To)
	assert.Equal(t, chart.Sun, f.Second.To)
	assert.Equal(t, chart.Square, f.Second.Aspect)
	assert.False(t, f.Favorable)
}

// #endregion translation-tests

// #region collection-tests
func TestDetectCollection(t *testing.T) {
	c := testChart(
		body(chart.Sun, 10, 1.0),
		body(chart.Moon, 200, 1.1),
		body(chart.Mercury, 230, 1.1),
		body(chart.Venus, 75, 1.2),
		body(chart.Mars, 260, 1.1),
		body(chart.Jupiter, 290, 1.1),
		body(chart.Saturn, 20, 0.1),
	)
	d := NewDetector(DefaultConfig())

	f, err := d.DetectTranslationOrCollection(c, chart.Sun, chart.Venus)
	require.NoError(t, err)
	require.True(t, f.Found)
	assert.Equal(t, KindCollection, f.Kind)
	assert.Equal(t, chart.Saturn, f.Carrier)
	assert.Equal(t, chart.Conjunction, f.First.Aspect)
	assert.InDelta(t, 10/0.9, f.First.Days, 1e-6)
	assert.Equal(t, chart.Sextile, f.Second.Aspect)
	assert.InDelta(t, 5/1.1, f.Second.Days, 1e-6)
	assert.InDelta(t, 10/0.9, f.TimingDays, 1e-6)
	assert.True(t, f.Favorable)
	assert.Empty(t, f.Alternates)
}

func TestDetectSequence_NoneFound(t *testing.T) {
	c := testChart(
		body(chart.Sun, 0, 1),
		body(chart.Moon, 40, 1),
		body(chart.Mercury, 80, 1),
		body(chart.Venus, 120, 1),
		body(chart.Mars, 160, 1),
		body(chart.Jupiter, 200, 1),
		body(chart.Saturn, 240, 1),
	)
	d := NewDetector(DefaultConfig())

	f, err := d.DetectTranslationOrCollection(c, chart.Sun, chart.Saturn)
	require.NoError(t, err)
	assert.False(t, f.Found)
}

// #endregion collection-tests

// #region prohibition-tests
func TestCheckProhibitions_CarrierAbscission(t *testing.T) {
	// The Moon carries light from Mars (0.8 days) to Jupiter (1.95 days),
	// but the Sun conjoins the Moon at 1.25 days.
	c := testChart(
		body(chart.Sun, 15, 1.0),
		body(chart.Moon, 0, 13),
		body(chart.Mercury, 45, 0.5),
		body(chart.Venus, 50, 0.5),
		body(chart.Mars, 10, 0.5),
		body(chart.Jupiter, 25, 0.2),
		body(chart.Saturn, 55, 0.5),
	)
	d := NewDetector(DefaultConfig())

	f, err := d.CheckProhibitions(c, chart.Mars, chart.Jupiter, 10)
	require.NoError(t, err)
	require.True(t, f.Prohibited)
	assert.Equal(t, TypeAbscission, f.Type)
	assert.Equal(t, chart.Sun, f.Abscissor)
	assert.Equal(t, chart.Moon, f.Significator)
	assert.Equal(t, chart.Conjunction, f.Aspect)
	assert.InDelta(t, 1.25, f.Days, 1e-9)
	assert.Contains(t, f.Reason, "cuts off light carried by Moon")
}

func TestCheckProhibitions_CarrierCutOffWhileDirectPending(t *testing.T) {
	// Same bodies, but the reference now reaches the Mars-Jupiter conjunction
	// at 50 days. The Sun still conjoins the Moon first, on carried light.
	c := testChart(
		body(chart.Sun, 15, 1.0),
		body(chart.Moon, 0, 13),
		body(chart.Mercury, 45, 0.5),
		body(chart.Venus, 50, 0.5),
		body(chart.Mars, 10, 0.5),
		body(chart.Jupiter, 25, 0.2),
		body(chart.Saturn, 55, 0.5),
	)
	d := NewDetector(DefaultConfig())

	f, err := d.CheckProhibitions(c, chart.Mars, chart.Jupiter, 60)
	require.NoError(t, err)
	require.True(t, f.Prohibited)
	assert.Equal(t, TypeAbscission, f.Type)
	assert.Equal(t, chart.Sun, f.Abscissor)
	assert.Equal(t, chart.Moon, f.Significator)
	assert.InDelta(t, 1.25, f.Days, 1e-9)
	assert.Contains(t, f.Reason, "cuts off light carried by Moon")
}

// septemberChart is the sky of 2025-09-01 with the Sun ruling the querent and
// Jupiter and Saturn as candidate quesited rulers.
func septemberChart() *chart.Chart {
	return testChart(
		body(chart.Sun, 158.91979242667188, 0.9675002592643899),
		body(chart.Moon, 258.0476987021077, 12.0952993744552),
		body(chart.Mercury, 147.22454413800813, 1.8774146601089163),
		body(chart.Venus, 127.67036889775018, 1.2008693261296217),
		body(chart.Mars, 195.97361454606826, 0.649422087786682),
		body(chart.Jupiter, 107.8889649540042, 0.17943345590025755),
		body(chart.Saturn, 0.016986152664401517, -0.06935779541321868),
	)
}

func TestCheckProhibitions_LaterContactDoesNotCutTranslation(t *testing.T) {
	// The Moon leaves Saturn's trine and reaches the Sun's in 1.88 days.
	// Jupiter sextiles the Sun only at 11.38 days, long after.
	d := NewDetector(DefaultConfig())
	c := septemberChart()

	seq, err := d.DetectTranslationOrCollection(c, chart.Sun, chart.Saturn)
	require.NoError(t, err)
	require.True(t, seq.Found)
	assert.Equal(t, KindTranslation, seq.Kind)
	assert.Equal(t, chart.Moon, seq.Carrier)
	assert.Equal(t, chart.Saturn, seq.First.To)
	assert.Equal(t, chart.Sun, seq.Second.To)
	assert.InDelta(t, 1.8757, seq.Second.Days, 1e-3)

	f, err := d.CheckProhibitions(c, chart.Sun, chart.Saturn, 15)
	require.NoError(t, err)
	assert.False(t, f.Prohibited, f.Reason)
}

func TestCheckProhibitions_SlowerBodyBeforePendingSextile(t *testing.T) {
	// Sun sextile Jupiter perfects at 11.38 days; Mars squares Jupiter at 4.08.
	// The Moon's square to Mars en route is not a cut-off of carried light.
	d := NewDetector(DefaultConfig())

	f, err := d.CheckProhibitions(septemberChart(), chart.Sun, chart.Jupiter, 15)
	require.NoError(t, err)
	require.True(t, f.Prohibited)
	assert.Equal(t, TypeProhibition, f.Type)
	assert.Equal(t, chart.Mars, f.Abscissor)
	assert.Equal(t, chart.Jupiter, f.Significator)
	assert.Equal(t, chart.Square, f.Aspect)
	assert.InDelta(t, 4.0753, f.Days, 1e-3)
	assert.Contains(t, f.Reason, "Sun-Jupiter sextile in 11.38 days")
}

func prohibitionChart(venus chart.PlanetPosition) *chart.Chart {
	return testChart(
		body(chart.Sun, 110, 0.5),
		body(chart.Moon, 200, 0.5),
		body(chart.Mercury, 140, 0.5),
		venus,
		body(chart.Mars, 10, 0.5),
		body(chart.Jupiter, 16, 0.2),
		body(chart.Saturn, 170, 0.5),
	)
}

func TestCheckProhibitions_InterruptsPendingPerfection(t *testing.T) {
	// Mars conjoins Jupiter in 20 days; Venus reaches Jupiter in 2.5.
	d := NewDetector(DefaultConfig())

	f, err := d.CheckProhibitions(prohibitionChart(body(chart.Venus, 14, 1.0)), chart.Mars, chart.Jupiter, 25)
	require.NoError(t, err)
	require.True(t, f.Prohibited)
	assert.Equal(t, TypeProhibition, f.Type)
	assert.Equal(t, chart.Venus, f.Abscissor)
	assert.Equal(t, chart.Jupiter, f.Significator)
	assert.Equal(t, chart.Conjunction, f.Aspect)
	assert.InDelta(t, 2.5, f.Days, 1e-9)
	assert.True(t, strings.Contains(f.Reason, "Mars-Jupiter conjunction"), f.Reason)
}

func TestCheckProhibitions_ReferenceIsExclusive(t *testing.T) {
	d := NewDetector(DefaultConfig())
	c := prohibitionChart(body(chart.Venus, 14, 1.0))

	// Venus perfects at exactly 2.5 days: not strictly before a 2.5-day reference.
	f, err := d.CheckProhibitions(c, chart.Mars, chart.Jupiter, 2.5)
	require.NoError(t, err)
	assert.False(t, f.Prohibited)
}

func TestCheckProhibitions_None(t *testing.T) {
	d := NewDetector(DefaultConfig())

	f, err := d.CheckProhibitions(prohibitionChart(body(chart.Venus, 200, 0.5)), chart.Mars, chart.Jupiter, 25)
	require.NoError(t, err)
	assert.False(t, f.Prohibited)
	assert.Empty(t, f.Reason)
}

// #endregion prohibition-tests

// #region void-tests
func TestMoonVoidOfCourse(t *testing.T) {
	d := NewDetector(DefaultConfig())

	void := testChart(
		body(chart.Sun, 100, 1),
		body(chart.Moon, 29, 13),
		body(chart.Mercury, 140, 1),
		body(chart.Venus, 180, 1),
		body(chart.Mars, 230, 0.5),
		body(chart.Jupiter, 250, 0.1),
		body(chart.Saturn, 320, 0.05),
	)
	got, err := d.MoonVoidOfCourse(void)
	require.NoError(t, err)
	assert.True(t, got)

	active := testChart(
		body(chart.Sun, 25, 1),
		body(chart.Moon, 20, 13),
		body(chart.Mercury, 140, 1),
		body(chart.Venus, 180, 1),
		body(chart.Mars, 230, 0.5),
		body(chart.Jupiter, 250, 0.1),
		body(chart.Saturn, 320, 0.05),
	)
	got, err = d.MoonVoidOfCourse(active)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.StepDays = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.PastWindowDays = -1
	assert.Error(t, cfg.Validate())
}

// #endregion void-tests
