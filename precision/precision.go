package precision

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/rootiter/newton"
)

// Baseline returns the all-double variant.
func Baseline() Variant {
	return Variant{Name: BaselineName}
}

// Demote returns the variant storing every variable in vs as float32.
// Its name joins the variable names: Demote(S, x) is "S_x_float".
func Demote(vs ...newton.Variable) Variant {
	if len(vs) == 0 {
		return Baseline()
	}
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = string(v)
	}

	return Variant{
		Name:    strings.Join(names, "_") + "_float",
		Demoted: append([]newton.Variable(nil), vs...),
	}
}

// Plan builds the variant list for mode. The baseline always comes first.
//
// ModeSingle requires variable to name a newton.Variable; ModeAll and
// ModeFull ignore it. ModeFull appends the pairwise combinations
// (i < j in newton.Variables order) after the single-variable variants.
func Plan(mode Mode, variable string) ([]Variant, error) {
	switch mode {
	case ModeSingle:
		if variable == "" {
			return nil, ErrVariableRequired
		}
		v := newton.Variable(variable)
		if !v.Valid() {
			return nil, errors.Wrapf(ErrUnknownVariable, "%q (available: %v)", variable, newton.Variables)
		}
		return []Variant{Baseline(), Demote(v)}, nil

	case ModeAll, ModeFull:
		vars := newton.Variables
		out := make([]Variant, 0, 1+len(vars)+len(vars)*(len(vars)-1)/2)
		out = append(out, Baseline())
		for _, v := range vars {
			out = append(out, Demote(v))
		}
		if mode == ModeFull {
			for i := 0; i < len(vars); i++ {
				for j := i + 1; j < len(vars); j++ {
					out = append(out, Demote(vars[i], vars[j]))
				}
			}
		}
		return out, nil

	default:
		return nil, errors.Wrapf(ErrUnknownMode, "%d", mode)
	}
}

// Run executes variant v for radicand s and n updates. The comparison
// fields are left at zero; Analyze fills them in against the baseline.
func Run(s float64, n int, v Variant) Result {
	opts := make([]newton.Option, 0, len(v.Demoted))
	for _, d := range v.Demoted {
		opts = append(opts, newton.WithRounding(d, newton.RoundFloat32))
	}
	// no trace sink, so Sqrt cannot fail
	x, _ := newton.Sqrt(s, n, opts...)
	valid, reason := Classify(x)

	return Result{Variant: v, Value: x, Valid: valid, Reason: reason}
}

// Classify reports whether x is usable and why not.
func Classify(x float64) (bool, string) {
	switch {
	case math.IsNaN(x):
		return false, "NaN"
	case math.IsInf(x, 0):
		return false, "Inf"
	default:
		return true, "valid"
	}
}

// RelativeError returns |x − base| / |base|. Equal values give 0, a zero
// baseline with a different x gives +Inf, and NaN propagates.
func RelativeError(x, base float64) float64 {
	if x == base {
		return 0
	}
	if base == 0 {
		return math.Inf(1)
	}

	return math.Abs(x-base) / math.Abs(base)
}

// Deviation returns σ/|μ| of the pair {ref, cur}, with σ the population
// standard deviation. A zero mean gives NaN or +Inf; NaN inputs give NaN.
func Deviation(ref, cur float64) float64 {
	mu := (ref + cur) / 2
	dr, dc := ref-mu, cur-mu
	sigma := math.Sqrt((dr*dr + dc*dc) / 2)

	return sigma / math.Abs(mu)
}

// IsStable reports whether deviation is strictly below threshold.
// NaN deviations are never stable.
func IsStable(deviation, threshold float64) bool {
	return deviation < threshold
}

// Analyze runs every variant and measures each against variants[0],
// which must be the baseline. The baseline is judged against itself with
// BaselineThreshold, every other variant with DefaultThreshold unless
// WithThreshold overrides it.
func Analyze(s float64, n int, variants []Variant, opts ...AnalyzeOption) (Report, error) {
	if len(variants) == 0 || !variants[0].IsBaseline() {
		return Report{}, ErrNoBaseline
	}
	o := analyzeOptions{threshold: DefaultThreshold}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	rep := Report{
		Radicand:   s,
		Iterations: n,
		Host:       DetectHost(),
		Results:    make([]Result, 0, len(variants)),
	}
	base := Run(s, n, variants[0])
	judge(&base, base.Value, BaselineThreshold)
	rep.Results = append(rep.Results, base)
	for _, v := range variants[1:] {
		r := Run(s, n, v)
		r.RelError = RelativeError(r.Value, base.Value)
		judge(&r, base.Value, o.threshold)
		rep.Results = append(rep.Results, r)
	}

	return rep, nil
}

// judge fills the verdict fields of r against ref.
func judge(r *Result, ref, threshold float64) {
	r.Deviation = Deviation(ref, r.Value)
	r.Threshold = threshold
	r.Stable = IsStable(r.Deviation, threshold)
}

// Summary aggregates the report; see Summary.
func (r Report) Summary() Summary {
	var sum Summary
	var total float64
	var unstable []Result
	for _, res := range r.Results {
		if res.Stable {
			sum.Stable = append(sum.Stable, res.Variant.Name)
		} else {
			unstable = append(unstable, res)
		}

		if res.Variant.IsBaseline() || math.IsNaN(res.RelError) || math.IsInf(res.RelError, 0) {
			continue
		}
		if sum.Count == 0 || res.RelError < sum.Min {
			sum.Min = res.RelError
			sum.MostStable = res.Variant.Name
		}
		if sum.Count == 0 || res.RelError > sum.Max {
			sum.Max = res.RelError
			sum.LeastStable = res.Variant.Name
		}
		total += res.RelError
		sum.Count++
	}
	if sum.Count > 0 {
		sum.Mean = total / float64(sum.Count)
	}

	sort.SliceStable(unstable, func(i, j int) bool {
		a, b := unstable[i].Deviation, unstable[j].Deviation
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a > b
	})
	for _, res := range unstable {
		sum.Unstable = append(sum.Unstable, res.Variant.Name)
	}

	return sum
}
