// Package precision measures how storing individual iterator variables in
// single precision changes the Newton square-root result.
//
// A run plan is a list of variants. The first is always the all-double
// baseline; every other variant demotes one or more variables (the
// radicand S, the estimate x) to float32 storage. Each variant is run
// through newton.Sqrt with float32 rounding-on-store for its demoted
// variables, classified (valid, NaN, Inf), and compared against the
// baseline by relative error.
//
//	variants, _ := precision.Plan(precision.ModeAll, "")
//	report, _ := precision.Analyze(2.0, 25, variants)
//	precision.WriteTable(os.Stdout, report)
package precision
