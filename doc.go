// Package rootiter is a small numerical playground around one kernel:
// Newton–Raphson square roots with a fixed step count and a readable
// per-iteration trace.
//
// 🚀 What is inside?
//
//	newton/          — the iterator: Sqrt, Step, InitialGuess, trace/observer/rounding options
//	precision/       — float32-storage variants of the iterator, NaN/Inf classification,
//	                   relative error against the all-double baseline, table & CSV reports
//	cmd/newton       — √9 with 25 updates: trace on stderr, result on stdout
//	cmd/precisionctl — precision variant report for any S and N
//	cmd/configgen    — writes or validates the TOML config shared by the commands
//
// Quick example:
//
//	x, _ := newton.Sqrt(9.0, 25, newton.WithTrace(os.Stderr))
//	fmt.Print(newton.FormatResult(x)) // 3.000000000000000e+00
//
// Everything is sequential; there is nothing to cancel and nothing
// shared between calls.
//
//	go install github.com/katalvlaran/rootiter/cmd/newton@latest
package rootiter
