package analysis

// Score deduction policy for metric violations.
const (
	scoreComplexityFactor = 2
	scoreLengthPenalty    = 2
	scoreArgsPenalty      = 3
	scoreLengthLimit      = 50
	scoreArgsLimit        = 5
)

// computeScore folds findings and metrics into a single 0-100 score.
// Starting from 100, each issue deducts its severity weight, and each
// metric deducts for excess complexity, length over 50 lines, and more
// than 5 arguments. The result is clamped at 0 and is a deterministic
// function of its inputs.
func computeScore(issues []Issue, metrics []FunctionMetric) int {
	score := 100

	for _, issue := range issues {
		score -= issue.Severity.Weight()
	}

	for _, m := range metrics {
		if m.Complexity > maxComplexity {
			score -= (m.Complexity - maxComplexity) * scoreComplexityFactor
		}
		if m.Length > scoreLengthLimit {
			score -= scoreLengthPenalty
		}
		if m.ArgsCount > scoreArgsLimit {
			score -= scoreArgsPenalty
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}
