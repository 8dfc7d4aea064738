package strength

// Estimate is a baseline strength estimate on the 0..4 scale, with optional
// human-readable warning and suggestions.
type Estimate struct {
	Score       int      `json:"score"`
	Warning     string   `json:"warning,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Estimator is the baseline password-strength scorer the engine builds on.
// Implementations must be deterministic and safe for concurrent use.
type Estimator interface {
	Estimate(password string) Estimate
}

// EstimatorFunc adapts an ordinary function to the Estimator interface.
type EstimatorFunc func(password string) Estimate

// Estimate calls f(password).
func (f EstimatorFunc) Estimate(password string) Estimate {
	return f(password)
}

func clampBaseline(score int) int {
	if score < 0 {
		return 0
	}
	if score > 4 {
		return 4
	}
	return score
}
