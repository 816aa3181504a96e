package selection

import (
	"github.com/wonny/valuescreen/internal/contracts"
	"github.com/wonny/valuescreen/internal/screening"
)

// Composite weights: quality counts more than cheapness
const (
	QualityWeight = 0.65
	ValueWeight   = 0.35
)

// Verdict band lower bounds
const (
	StrongMinScore     = 80
	AcceptableMinScore = 60
)

// Composite blends the quality and value screen scores into one 0 ~ 100 score
// ⭐ SSOT: 종합 점수 계산은 여기서만
func Composite(quality, value int) contracts.CompositeScore {
	score := screening.Round(QualityWeight*float64(quality) + ValueWeight*float64(value))
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	return contracts.CompositeScore{
		Score:   score,
		Verdict: VerdictFor(score),
	}
}

// VerdictFor maps a composite score to its band
func VerdictFor(score int) contracts.Verdict {
	switch {
	case score >= StrongMinScore:
		return contracts.VerdictStrong
	case score >= AcceptableMinScore:
		return contracts.VerdictAcceptable
	default:
		return contracts.VerdictWeak
	}
}
