package game

// Built-in evaluators. Production play normally loads learned parameters
// through the driver, but these cover self-play experiments and make useful
// baselines.

// EvaluateClassic combines the four features with widely used hand-tuned
// weights: tall stacks and holes are bad, cleared lines are good.
func EvaluateClassic(f Features) float64 {
	return -0.510066*f.AggregateHeight + 0.760666*f.CompletedLines - 0.35663*f.Holes - 0.184483*f.Bumpiness
}

// EvaluateHolesAverse scores strictly by hole count. It plays badly but its
// behavior is easy to reason about, which makes it handy in tests.
func EvaluateHolesAverse(f Features) float64 {
	return -f.Holes
}
