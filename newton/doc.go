// Package newton approximates square roots with a fixed number of
// Newton–Raphson refinement steps and an optional per-iteration trace.
//
// 🚀 What is it?
//
//	Newton–Raphson applied to f(x) = x² − S gives the update
//
//	  x ← 0.5 · (x + S / x)
//
//	Starting from x₀ = S / 2 the iterator applies exactly N updates.
//	There is no convergence test and no early exit: the result after
//	N steps is returned whatever it is, including ±Inf and NaN.
//
// ✨ Key features:
//   - exact step count (N == 0 returns S / 2 unrefined)
//   - trace sink separate from the result (WithTrace)
//   - per-iteration hook (WithObserver)
//   - storage-precision hooks for S and x (WithRounding), used by
//     the precision package to emulate float32 variables
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/rootiter/newton"
//
//	x, err := newton.Sqrt(9.0, 25, newton.WithTrace(os.Stderr))
//	if err != nil {
//	  // the trace sink refused a write
//	}
//	fmt.Print(newton.FormatResult(x)) // 3.000000000000000e+00
//
// Trace format:
//
//	 i x_i
//	 0 3.250000000000000e+00
//	 1 3.009615384615385e+00
//	 ...
//
// Performance:
//
//   - Time:   O(N)
//   - Memory: O(1)
//
// Degenerate inputs are not guarded: S == 0 produces 0/0 = NaN on the
// first update, which then propagates through every later step.
package newton
