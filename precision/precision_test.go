package precision_test

import (
	"bytes"
	"encoding/csv"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rootiter/internal/testutil/testlog"
	"github.com/katalvlaran/rootiter/newton"
	"github.com/katalvlaran/rootiter/precision"
)

// TestPlan_All verifies baseline first, then one variant per variable.
func TestPlan_All(t *testing.T) {
	testlog.Start(t)
	vs, err := precision.Plan(precision.ModeAll, "ignored")
	require.NoError(t, err)
	require.Len(t, vs, 3)
	assert.Equal(t, precision.BaselineName, vs[0].Name)
	assert.True(t, vs[0].IsBaseline())
	assert.Equal(t, "S_float", vs[1].Name)
	assert.Equal(t, []newton.Variable{newton.Radicand}, vs[1].Demoted)
	assert.Equal(t, "x_float", vs[2].Name)
	assert.Equal(t, []newton.Variable{newton.Estimate}, vs[2].Demoted)
}

// TestPlan_Single verifies the single-variable plan and its errors.
func TestPlan_Single(t *testing.T) {
	testlog.Start(t)
	vs, err := precision.Plan(precision.ModeSingle, "x")
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, precision.BaselineName, vs[0].Name)
	assert.Equal(t, "x_float", vs[1].Name)

	_, err = precision.Plan(precision.ModeSingle, "")
	assert.ErrorIs(t, err, precision.ErrVariableRequired)

	_, err = precision.Plan(precision.ModeSingle, "pi")
	assert.ErrorIs(t, err, precision.ErrUnknownVariable)

	_, err = precision.Plan(precision.Mode(9), "")
	assert.ErrorIs(t, err, precision.ErrUnknownMode)
}

// TestParseMode checks accepted spellings.
func TestParseMode(t *testing.T) {
	m, err := precision.ParseMode(" ALL ")
	require.NoError(t, err)
	assert.Equal(t, precision.ModeAll, m)
	assert.Equal(t, "all", m.String())

	m, err = precision.ParseMode("single")
	require.NoError(t, err)
	assert.Equal(t, precision.ModeSingle, m)

	_, err = precision.ParseMode("some")
	assert.ErrorIs(t, err, precision.ErrUnknownMode)
}

// TestClassify covers the three outcomes.
func TestClassify(t *testing.T) {
	ok, reason := precision.Classify(3)
	assert.True(t, ok)
	assert.Equal(t, "valid", reason)

	ok, reason = precision.Classify(math.NaN())
	assert.False(t, ok)
	assert.Equal(t, "NaN", reason)

	ok, reason = precision.Classify(math.Inf(-1))
	assert.False(t, ok)
	assert.Equal(t, "Inf", reason)
}

// TestRelativeError covers equal, zero-baseline and NaN inputs.
func TestRelativeError(t *testing.T) {
	assert.Equal(t, 0.0, precision.RelativeError(2, 2))
	assert.Equal(t, 0.0, precision.RelativeError(0, 0))
	assert.True(t, math.IsInf(precision.RelativeError(1, 0), 1))
	assert.True(t, math.IsNaN(precision.RelativeError(math.NaN(), 1)))
	assert.InDelta(t, 0.5, precision.RelativeError(3, 2), 1e-15)
}

// TestAnalyze_SqrtTwo checks that demoting x costs accuracy while
// demoting S = 2 (exact in float32) does not.
func TestAnalyze_SqrtTwo(t *testing.T) {
	testlog.Start(t)
	vs, err := precision.Plan(precision.ModeAll, "")
	require.NoError(t, err)

	rep, err := precision.Analyze(2, 25, vs)
	require.NoError(t, err)
	require.Len(t, rep.Results, 3)
	assert.Equal(t, 2.0, rep.Radicand)
	assert.Equal(t, 25, rep.Iterations)

	base := rep.Results[0]
	assert.InDelta(t, math.Sqrt2, base.Value, 1e-15)
	assert.Equal(t, 0.0, base.RelError)

	sFloat := rep.Results[1]
	assert.Equal(t, base.Value, sFloat.Value)
	assert.Equal(t, 0.0, sFloat.RelError)

	xFloat := rep.Results[2]
	assert.True(t, xFloat.Valid)
	assert.Equal(t, float64(float32(xFloat.Value)), xFloat.Value)
	assert.InDelta(t, 1.7114271104158468e-08, xFloat.RelError, 1e-12)

	sum := rep.Summary()
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, "S_float", sum.MostStable)
	assert.Equal(t, "x_float", sum.LeastStable)
	assert.Equal(t, 0.0, sum.Min)
	assert.InDelta(t, xFloat.RelError/2, sum.Mean, 1e-18)
}

// TestAnalyze_InexactRadicand checks that a radicand not representable in
// float32 shows a relative error in the S_float variant.
func TestAnalyze_InexactRadicand(t *testing.T) {
	testlog.Start(t)
	rep, err := precision.Analyze(0.1, 25, []precision.Variant{
		precision.Baseline(),
		precision.Demote(newton.Radicand),
	})
	require.NoError(t, err)
	assert.InDelta(t, 7.450580546842562e-09, rep.Results[1].RelError, 1e-12)
}

// TestAnalyze_ZeroRadicand reproduces NaN across every variant.
func TestAnalyze_ZeroRadicand(t *testing.T) {
	testlog.Start(t)
	vs, _ := precision.Plan(precision.ModeAll, "")
	rep, err := precision.Analyze(0, 3, vs)
	require.NoError(t, err)
	for _, r := range rep.Results {
		assert.False(t, r.Valid, r.Variant.Name)
		assert.Equal(t, "NaN", r.Reason, r.Variant.Name)
	}
	assert.Equal(t, 0, rep.Summary().Count, "NaN errors are excluded")
}

// TestAnalyze_NoBaseline rejects plans that do not start with the baseline.
func TestAnalyze_NoBaseline(t *testing.T) {
	_, err := precision.Analyze(2, 5, nil)
	assert.ErrorIs(t, err, precision.ErrNoBaseline)

	_, err = precision.Analyze(2, 5, []precision.Variant{precision.Demote(newton.Estimate)})
	assert.ErrorIs(t, err, precision.ErrNoBaseline)
}

// TestWriteCSV checks header and record layout.
func TestWriteCSV(t *testing.T) {
	vs, _ := precision.Plan(precision.ModeAll, "")
	rep, err := precision.Analyze(9, 25, vs)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, precision.WriteCSV(&buf, rep))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, precision.CSVHeader, recs[0])
	assert.Equal(t, []string{
		precision.BaselineName, "", "3.000000000000000e+00", "true", "valid",
		"0.0000000000e+00", "0.000000", "0.0000000000e+00", "1.0e-06", "true",
	}, recs[1])
	assert.Equal(t, "1.0e-02", recs[2][8])
	assert.Equal(t, "true", recs[3][9])
	assert.Equal(t, "S", recs[2][1])
	assert.Equal(t, "x", recs[3][1])
}

// TestWriteTable checks that every variant and the summary are printed.
func TestWriteTable(t *testing.T) {
	vs, _ := precision.Plan(precision.ModeAll, "")
	rep, err := precision.Analyze(2, 25, vs)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, precision.WriteTable(&buf, rep))
	out := buf.String()
	for _, want := range []string{"S = 2.000000000000000e+00, N = 25", precision.BaselineName, "S_float", "x_float", "variants compared: 2", "(x_float)",
		"stable configurations: baseline_all_double, S_float, x_float", "unstable configurations: none"} {
		assert.Contains(t, out, want)
	}
}

// TestPlan_Full verifies singles first, then the pairwise combination.
func TestPlan_Full(t *testing.T) {
	testlog.Start(t)
	vs, err := precision.Plan(precision.ModeFull, "")
	require.NoError(t, err)

	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name
	}
	assert.Equal(t, []string{precision.BaselineName, "S_float", "x_float", "S_x_float"}, names)
	assert.Equal(t, []newton.Variable{newton.Radicand, newton.Estimate}, vs[3].Demoted)

	m, err := precision.ParseMode("FULL")
	require.NoError(t, err)
	assert.Equal(t, precision.ModeFull, m)
	assert.Equal(t, "full", m.String())
}

// TestAnalyze_CombinedVariant checks the value of the variant demoting
// both S and x.
func TestAnalyze_CombinedVariant(t *testing.T) {
	testlog.Start(t)
	vs, err := precision.Plan(precision.ModeFull, "")
	require.NoError(t, err)

	rep, err := precision.Analyze(0.1, 25, vs)
	require.NoError(t, err)
	require.Len(t, rep.Results, 4)
	both := rep.Results[3]
	assert.Equal(t, "S_x_float", both.Variant.Name)
	assert.InDelta(t, 3.162277638912201e-01, both.Value, 1e-16)
	assert.Equal(t, float64(float32(both.Value)), both.Value)
	assert.True(t, both.Stable)

	// S = 2 is exact in float32, so demoting it next to x changes nothing
	rep, err = precision.Analyze(2, 25, vs)
	require.NoError(t, err)
	assert.Equal(t, rep.Results[2].Value, rep.Results[3].Value)
}

// TestDeviation checks σ/|μ| against hand-computed pairs.
func TestDeviation(t *testing.T) {
	assert.Equal(t, 0.0, precision.Deviation(3, 3))
	// {1, 3}: μ = 2, σ = 1
	assert.InDelta(t, 0.5, precision.Deviation(1, 3), 1e-15)
	assert.InDelta(t, 0.5, precision.Deviation(3, 1), 1e-15)
	// {-1, 1}: μ = 0
	assert.True(t, math.IsInf(precision.Deviation(-1, 1), 1))
	assert.True(t, math.IsNaN(precision.Deviation(0, 0)))
	assert.True(t, math.IsNaN(precision.Deviation(math.NaN(), 1)))

	assert.True(t, precision.IsStable(0, 1e-6))
	assert.False(t, precision.IsStable(1e-2, 1e-2), "the limit itself fails")
	assert.False(t, precision.IsStable(math.NaN(), 1))
}

// TestAnalyze_Thresholds checks the verdict of x_float for √2 under the
// default limit and a tight one.
func TestAnalyze_Thresholds(t *testing.T) {
	testlog.Start(t)
	vs, err := precision.Plan(precision.ModeSingle, "x")
	require.NoError(t, err)

	rep, err := precision.Analyze(2, 25, vs)
	require.NoError(t, err)
	base, xFloat := rep.Results[0], rep.Results[1]
	assert.Equal(t, precision.BaselineThreshold, base.Threshold)
	assert.True(t, base.Stable)
	assert.Equal(t, precision.DefaultThreshold, xFloat.Threshold)
	assert.InDelta(t, xFloat.RelError/2, xFloat.Deviation, 1e-15)
	assert.True(t, xFloat.Stable, "deviation ~8.6e-9 is below 1e-2")

	rep, err = precision.Analyze(2, 25, vs, precision.WithThreshold(1e-9))
	require.NoError(t, err)
	assert.True(t, rep.Results[0].Stable, "baseline keeps its own limit")
	assert.Equal(t, 1e-9, rep.Results[1].Threshold)
	assert.False(t, rep.Results[1].Stable)

	sum := rep.Summary()
	assert.Equal(t, []string{precision.BaselineName}, sum.Stable)
	assert.Equal(t, []string{"x_float"}, sum.Unstable)
}

// TestAnalyze_ZeroRadicandNeverStable checks that NaN results fail.
func TestAnalyze_ZeroRadicandNeverStable(t *testing.T) {
	testlog.Start(t)
	vs, _ := precision.Plan(precision.ModeFull, "")
	rep, err := precision.Analyze(0, 1, vs, precision.WithThreshold(1e6))
	require.NoError(t, err)
	for _, r := range rep.Results {
		assert.True(t, math.IsNaN(r.Deviation), r.Variant.Name)
		assert.False(t, r.Stable, r.Variant.Name)
	}
	sum := rep.Summary()
	assert.Empty(t, sum.Stable)
	assert.Len(t, sum.Unstable, 4)
}

// TestWithThreshold_Panics rejects nonsensical limits.
func TestWithThreshold_Panics(t *testing.T) {
	assert.Panics(t, func() { precision.WithThreshold(0) })
	assert.Panics(t, func() { precision.WithThreshold(-1) })
	assert.Panics(t, func() { precision.WithThreshold(math.NaN()) })
	assert.Panics(t, func() { precision.WithThreshold(math.Inf(1)) })
}
