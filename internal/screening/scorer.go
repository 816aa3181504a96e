package screening

import (
	"math"

	"github.com/wonny/valuescreen/internal/contracts"
)

// MissingReason is appended to a criterion label when its metric is absent
const MissingReason = "missing (data coverage)"

// Outcome is the judgement of one criterion on a present metric
type Outcome struct {
	Points int
	OK     bool
	Reason string
}

// Criterion is one rule of a screen
type Criterion struct {
	Label  string // e.g. "ROIC", used for the missing-data reason
	Metric string // contracts.Metric* name
	Judge  func(v float64) Outcome
}

var _ contracts.Screen = (*Scorer)(nil)

// Scorer evaluates an ordered list of criteria into an explainable screen result
// ⭐ SSOT: 스크린 점수 집계는 여기서만
type Scorer struct {
	name     string
	criteria []Criterion
}

// NewScorer creates a scorer
func NewScorer(name string, criteria []Criterion) *Scorer {
	return &Scorer{
		name:     name,
		criteria: criteria,
	}
}

// Name returns the screen name
func (s *Scorer) Name() string {
	return s.name
}

// Evaluate applies every criterion in order. Each criterion adds exactly one reason.
// The screen passes only if every metric is present and meets its threshold.
func (s *Scorer) Evaluate(f *contracts.Fundamentals) contracts.ScreenResult {
	result := contracts.ScreenResult{
		Screen:  s.name,
		Passed:  true,
		Reasons: make([]string, 0, len(s.criteria)),
	}

	score := 0
	for _, c := range s.criteria {
		var v *float64
		if f != nil {
			v = f.Metric(c.Metric)
		}

		if v == nil {
			result.Passed = false
			result.Reasons = append(result.Reasons, c.Label+" "+MissingReason)
			continue
		}

		out := c.Judge(*v)
		score += out.Points
		if !out.OK {
			result.Passed = false
		}
		result.Reasons = append(result.Reasons, out.Reason)
	}

	result.Score = clampScore(score)
	return result
}

// clampScore limits a score to 0 ~ 100
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Round rounds half to even, so 12.5 scores 12 and 13.5 scores 14
func Round(v float64) int {
	return int(math.RoundToEven(v))
}
