package screening

import (
	"fmt"

	"github.com/wonny/valuescreen/internal/contracts"
	"github.com/wonny/valuescreen/internal/thresholds"
)

// Value screen weights (sum = 100, all binary)
const (
	ValuePointsPE           = 30
	ValuePointsPB           = 30
	ValuePointsCurrentRatio = 20
	ValuePointsDebtToEquity = 20
)

// NewValueScreen creates the valuation/balance-sheet screen
// ⭐ SSOT: 가치 스크린 기준은 여기서만
func NewValueScreen(t thresholds.ValueThresholds) *Scorer {
	return NewScorer(contracts.ScreenValue, []Criterion{
		{
			Label:  "PE",
			Metric: contracts.MetricPriceEarnings,
			Judge: func(v float64) Outcome {
				// Negative PE means a loss, not a bargain
				if v > 0 && v <= t.MaxPE {
					return Outcome{ValuePointsPE, true, fmt.Sprintf("PE ok (%.1f ≤ %.1f)", v, t.MaxPE)}
				}
				return Outcome{0, false, fmt.Sprintf("PE not ok (%.1f, need 0 < PE ≤ %.1f)", v, t.MaxPE)}
			},
		},
		{
			Label:  "PB",
			Metric: contracts.MetricPriceBook,
			Judge: func(v float64) Outcome {
				if v > 0 && v <= t.MaxPB {
					return Outcome{ValuePointsPB, true, fmt.Sprintf("PB ok (%.2f ≤ %.2f)", v, t.MaxPB)}
				}
				return Outcome{0, false, fmt.Sprintf("PB not ok (%.2f, need 0 < PB ≤ %.2f)", v, t.MaxPB)}
			},
		},
		{
			Label:  "Current ratio",
			Metric: contracts.MetricCurrentRatio,
			Judge: func(v float64) Outcome {
				if v >= t.MinCurrentRatio {
					return Outcome{ValuePointsCurrentRatio, true, fmt.Sprintf("Current ratio ok (%.2f ≥ %.2f)", v, t.MinCurrentRatio)}
				}
				return Outcome{0, false, fmt.Sprintf("Current ratio too low (%.2f < %.2f)", v, t.MinCurrentRatio)}
			},
		},
		{
			Label:  "D/E",
			Metric: contracts.MetricDebtToEquity,
			Judge: func(v float64) Outcome {
				if v >= 0 && v <= t.MaxDebtToEquity {
					return Outcome{ValuePointsDebtToEquity, true, fmt.Sprintf("D/E ok (%.2f ≤ %.2f)", v, t.MaxDebtToEquity)}
				}
				return Outcome{0, false, fmt.Sprintf("D/E not ok (%.2f, need 0 ≤ D/E ≤ %.2f)", v, t.MaxDebtToEquity)}
			},
		},
	})
}
