package analysis

import "testing"

func TestComputeScoreSeverityWeights(t *testing.T) {
	tests := []struct {
		name   string
		issues []Issue
		want   int
	}{
		{"no findings", nil, 100},
		{"one high", []Issue{{Severity: SeverityHigh}}, 90},
		{"one medium", []Issue{{Severity: SeverityMedium}}, 95},
		{"one low", []Issue{{Severity: SeverityLow}}, 98},
		{"unknown severity weighs as low", []Issue{{Severity: "CRITICAL"}}, 98},
		{"mixed", []Issue{{Severity: SeverityHigh}, {Severity: SeverityMedium}, {Severity: SeverityLow}}, 83},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeScore(tt.issues, nil); got != tt.want {
				t.Errorf("computeScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeScoreMetricDeductions(t *testing.T) {
	tests := []struct {
		name    string
		metrics []FunctionMetric
		want    int
	}{
		{"under every threshold", []FunctionMetric{{Complexity: 10, Length: 50, ArgsCount: 5}}, 100},
		{"excess complexity scales", []FunctionMetric{{Complexity: 13}}, 94},
		{"long function", []FunctionMetric{{Complexity: 1, Length: 51}}, 98},
		{"too many args", []FunctionMetric{{Complexity: 1, ArgsCount: 6}}, 97},
		{"all three", []FunctionMetric{{Complexity: 12, Length: 70, ArgsCount: 8}}, 91},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeScore(nil, tt.metrics); got != tt.want {
				t.Errorf("computeScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeScoreClampsAtZero(t *testing.T) {
	var issues []Issue
	for i := 0; i < 15; i++ {
		issues = append(issues, Issue{Severity: SeverityHigh})
	}
	if got := computeScore(issues, nil); got != 0 {
		t.Errorf("expected clamp at 0, got %d", got)
	}
}

func TestComputeScoreMonotonic(t *testing.T) {
	issues := []Issue{}
	prev := computeScore(issues, nil)
	for i := 0; i < 20; i++ {
		issues = append(issues, Issue{Severity: SeverityMedium})
		score := computeScore(issues, nil)
		if score > prev {
			t.Fatalf("score increased from %d to %d after adding a finding", prev, score)
		}
		if score < 0 || score > 100 {
			t.Fatalf("score %d out of [0,100]", score)
		}
		prev = score
	}
}
