package newton

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sqrt — Newton–Raphson square root with a fixed step count
//
// Description:
//
//	Refines x ≈ √S by applying the Newton update for f(x) = x² − S
//	exactly n times, starting from S / 2.
//
// Algorithm Outline:
//  1. S ← round_S(S); x ← round_x(S / 2).
//  2. Write TraceHeader to the trace sink.
//  3. For i = 0..n-1:
//     x ← round_x(0.5 · (x + S / x))
//     notify the observer with (i, x)
//     write TraceFormat(i, x) to the trace sink
//  4. Return x.
//
// Complexity:
//
//	Time   = O(n)
//	Memory = O(1)
//
// Errors:
//   - ErrTraceWrite — the trace sink rejected a write. Iteration stops and
//     the estimate reached so far is returned alongside the error.
var (
	// ErrTraceWrite indicates the trace sink failed to accept a line.
	ErrTraceWrite = errors.New("newton: trace write failed")
)

// InitialGuess returns the starting estimate S / 2.
func InitialGuess(s float64) float64 {
	return s / 2.0
}

// Step applies one Newton update to x for radicand s.
// x == 0 yields ±Inf or NaN per IEEE-754; nothing is trapped.
func Step(x, s float64) float64 {
	return 0.5 * (x + s/x)
}

// Sqrt approximates √s with exactly n Newton updates and returns the
// final estimate. n <= 0 returns the initial guess unrefined.
//
// The returned error is non-nil only when the trace sink fails; see
// ErrTraceWrite. Non-finite results are not errors.
//
// Example:
//
//	x, err := Sqrt(9.0, 25, WithTrace(os.Stderr))
func Sqrt(s float64, n int, opts ...Option) (float64, error) {
	o := gatherOptions(opts...)

	s = o.roundS(s)
	x := o.roundX(InitialGuess(s))

	if o.trace != nil {
		if _, err := fmt.Fprintln(o.trace, TraceHeader); err != nil {
			return x, errors.Wrapf(ErrTraceWrite, "header: %v", err)
		}
	}

	for i := 0; i < n; i++ {
		x = o.roundX(Step(x, s))
		if o.observer != nil {
			o.observer(i, x)
		}
		if o.trace != nil {
			if _, err := fmt.Fprintf(o.trace, TraceFormat, i, x); err != nil {
				return x, errors.Wrapf(ErrTraceWrite, "line %d: %v", i, err)
			}
		}
	}

	return x, nil
}

// FormatResult renders x as the primary-output line, newline included.
func FormatResult(x float64) string {
	return fmt.Sprintf(ResultFormat, x)
}
