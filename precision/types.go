package precision

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/rootiter/newton"
)

// BaselineName names the variant that keeps every variable in float64.
const BaselineName = "baseline_all_double"

// Deviation limits. A variant is stable when Deviation(baseline, value)
// stays strictly below its threshold.
const (
	// DefaultThreshold applies to variants that demote at least one variable.
	DefaultThreshold = 1e-2

	// BaselineThreshold applies to the baseline compared with itself.
	BaselineThreshold = 1e-6
)

// panicThresholdInvalid is raised by WithThreshold.
const panicThresholdInvalid = "precision: WithThreshold: threshold must be finite and positive"

var (
	// ErrVariableRequired is returned by Plan in ModeSingle without a variable.
	ErrVariableRequired = errors.New("precision: variable required for single mode")

	// ErrUnknownVariable is returned for a variable the iterator does not hold.
	ErrUnknownVariable = errors.New("precision: unknown variable")

	// ErrUnknownMode is returned by ParseMode and Plan.
	ErrUnknownMode = errors.New("precision: unknown mode")

	// ErrNoBaseline is returned by Analyze when the first variant demotes anything.
	ErrNoBaseline = errors.New("precision: first variant must be the baseline")
)

// Mode selects which variants Plan produces.
type Mode int

const (
	// ModeSingle: baseline plus one variant for the named variable.
	ModeSingle Mode = iota

	// ModeAll: baseline plus one variant per variable.
	ModeAll

	// ModeFull: ModeAll followed by every pairwise combination.
	ModeFull
)

// String returns the config spelling of m.
func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeAll:
		return "all"
	case ModeFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseMode accepts "single", "all" or "full", case-insensitively.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "single":
		return ModeSingle, nil
	case "all":
		return ModeAll, nil
	case "full":
		return ModeFull, nil
	default:
		return 0, errors.Wrapf(ErrUnknownMode, "%q", raw)
	}
}

// Variant is one precision configuration of the iterator.
type Variant struct {
	Name    string
	Demoted []newton.Variable
}

// IsBaseline reports whether v keeps every variable in float64.
func (v Variant) IsBaseline() bool {
	return len(v.Demoted) == 0
}

// Result is the outcome of running one variant.
type Result struct {
	Variant   Variant
	Value     float64
	Valid     bool
	Reason    string  // "valid", "NaN" or "Inf"
	RelError  float64 // |Value − baseline| / |baseline|
	Deviation float64 // σ/|μ| of {baseline, Value}
	Threshold float64
	Stable    bool // Deviation < Threshold
}

// Host describes the CPU the analysis ran on. FMA availability can move
// the last bits of the update step when the compiler fuses it.
type Host struct {
	Vendor string
	Brand  string
	FMA    bool
}

// Report collects every result of one Analyze call.
type Report struct {
	Radicand   float64
	Iterations int
	Host       Host
	Results    []Result
}

// Summary aggregates relative errors over the non-baseline variants with
// a finite relative error, and splits every variant by verdict.
type Summary struct {
	Count       int
	Mean        float64
	Min         float64
	Max         float64
	MostStable  string
	LeastStable string

	Stable   []string // variant names, plan order
	Unstable []string // variant names, largest deviation first; NaN last
}

// AnalyzeOption mutates the analysis configuration.
type AnalyzeOption func(*analyzeOptions)

type analyzeOptions struct {
	threshold float64 // demoted variants; DefaultThreshold
}

// WithThreshold sets the deviation limit for demoted variants. The
// baseline keeps BaselineThreshold.
func WithThreshold(t float64) AnalyzeOption {
	if !(t > 0) || math.IsInf(t, 1) {
		panic(panicThresholdInvalid)
	}

	return func(o *analyzeOptions) { o.threshold = t }
}
