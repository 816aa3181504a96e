package screening

import (
	"fmt"
	"math"

	"github.com/wonny/valuescreen/internal/contracts"
	"github.com/wonny/valuescreen/internal/thresholds"
)

// Quality screen weights (sum = 100)
const (
	QualityPointsROIC             = 35
	QualityPointsMargin           = 25
	QualityPointsDebtToFCF        = 25 // graded: full points only with no net debt
	QualityPointsInterestCoverage = 15
)

// NewQualityScreen creates the profitability/solvency screen
// ⭐ SSOT: 퀄리티 스크린 기준은 여기서만
func NewQualityScreen(t thresholds.QualityThresholds) *Scorer {
	return NewScorer(contracts.ScreenQuality, []Criterion{
		{
			Label:  "ROIC",
			Metric: contracts.MetricROIC,
			Judge: func(v float64) Outcome {
				if v >= t.MinROIC {
					return Outcome{QualityPointsROIC, true, fmt.Sprintf("ROIC ok (%.2f%% ≥ %.2f%%)", v*100, t.MinROIC*100)}
				}
				return Outcome{0, false, fmt.Sprintf("ROIC too low (%.2f%% < %.2f%%)", v*100, t.MinROIC*100)}
			},
		},
		{
			Label:  "Operating margin",
			Metric: contracts.MetricOperatingMargin,
			Judge: func(v float64) Outcome {
				if v >= t.MinOperatingMargin {
					return Outcome{QualityPointsMargin, true, fmt.Sprintf("Operating margin ok (%.2f%% ≥ %.2f%%)", v*100, t.MinOperatingMargin*100)}
				}
				return Outcome{0, false, fmt.Sprintf("Operating margin too low (%.2f%% < %.2f%%)", v*100, t.MinOperatingMargin*100)}
			},
		},
		{
			Label:  "Debt/FCF",
			Metric: contracts.MetricDebtToFCF,
			Judge: func(v float64) Outcome {
				if v <= t.MaxDebtToFCF {
					return Outcome{debtToFCFBonus(v, t.MaxDebtToFCF), true, fmt.Sprintf("Debt/FCF ok (%.2f ≤ %.2f)", v, t.MaxDebtToFCF)}
				}
				return Outcome{0, false, fmt.Sprintf("Debt/FCF too high (%.2f > %.2f)", v, t.MaxDebtToFCF)}
			},
		},
		{
			Label:  "Interest coverage",
			Metric: contracts.MetricInterestCoverage,
			Judge: func(v float64) Outcome {
				if v >= t.MinInterestCoverage {
					return Outcome{QualityPointsInterestCoverage, true, fmt.Sprintf("Interest coverage ok (%.1fx ≥ %.1fx)", v, t.MinInterestCoverage)}
				}
				return Outcome{0, false, fmt.Sprintf("Interest coverage too low (%.1fx < %.1fx)", v, t.MinInterestCoverage)}
			},
		},
	})
}

// debtToFCFBonus grades leverage linearly: lower debt/FCF earns more points.
// A net cash position (negative ratio) earns more than the nominal weight; the screen total is clamped.
func debtToFCFBonus(v, limit float64) int {
	if limit <= 0 {
		return 0
	}
	return Round(QualityPointsDebtToFCF * math.Max(0, (limit-v)/limit))
}
