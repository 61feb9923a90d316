package newton

import "io"

// Output formats shared by the iterator and the command-line front ends.
const (
	// TraceHeader is the first line written to the trace sink.
	TraceHeader = " i x_i"

	// TraceFormat formats one trace line: zero-based index padded to two
	// characters, a space, and x in scientific notation.
	TraceFormat = "%2d %.15e\n"

	// ResultFormat formats the single primary-output line.
	ResultFormat = "%.15e\n"
)

// Variable names a value held by the iterator.
type Variable string

const (
	// Radicand is S, the value whose square root is approximated.
	Radicand Variable = "S"

	// Estimate is x, the running approximation.
	Estimate Variable = "x"
)

// Variables lists every Variable in declaration order.
var Variables = []Variable{Radicand, Estimate}

// Valid reports whether v names a known variable.
func (v Variable) Valid() bool {
	return v == Radicand || v == Estimate
}

// RoundFunc maps a freshly computed value to the value actually stored.
// The identity keeps full float64 precision.
type RoundFunc func(float64) float64

// Identity stores values unchanged.
func Identity(v float64) float64 { return v }

// RoundFloat32 stores values as float32 would, then widens them back.
func RoundFloat32(v float64) float64 { return float64(float32(v)) }

// Observer is called after every update with the zero-based index and
// the stored estimate.
type Observer func(i int, x float64)

// ---------- Internal panic messages ----------

const (
	panicNilTrace    = "newton: WithTrace: writer must be non-nil"
	panicNilObserver = "newton: WithObserver: observer must be non-nil"
	panicNilRound    = "newton: WithRounding: round func must be non-nil"
	panicBadVariable = "newton: WithRounding: unknown variable"
)

// Option mutates internal options. Constructors panic only on
// nonsensical arguments (programmer error).
type Option func(*Options)

// Options is the resolved configuration of a single Sqrt call.
type Options struct {
	trace    io.Writer // nil ⇒ no trace
	observer Observer  // nil ⇒ no hook
	roundS   RoundFunc // Identity by default
	roundX   RoundFunc // Identity by default
}

// WithTrace sends the header and one line per iteration to w.
func WithTrace(w io.Writer) Option {
	if w == nil {
		panic(panicNilTrace)
	}

	return func(o *Options) { o.trace = w }
}

// WithObserver registers fn to be called after every update.
func WithObserver(fn Observer) Option {
	if fn == nil {
		panic(panicNilObserver)
	}

	return func(o *Options) { o.observer = fn }
}

// WithRounding sets the storage rounding for variable v.
//
// Radicand rounding is applied once, before the initial guess.
// Estimate rounding is applied to the initial guess and after every update.
func WithRounding(v Variable, fn RoundFunc) Option {
	if fn == nil {
		panic(panicNilRound)
	}
	if !v.Valid() {
		panic(panicBadVariable)
	}

	return func(o *Options) {
		switch v {
		case Radicand:
			o.roundS = fn
		case Estimate:
			o.roundX = fn
		}
	}
}

// gatherOptions resolves opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{roundS: Identity, roundX: Identity}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
