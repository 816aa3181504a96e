package fundamentals

import (
	"github.com/wonny/valuescreen/internal/contracts"
	"github.com/wonny/valuescreen/internal/reported"
)

// Tax rate bounds applied before computing NOPAT
const (
	MinTaxRate = 0.0
	MaxTaxRate = 0.5
)

// Build derives the fundamentals record from periods sorted ascending by (year, quarter).
// It never fails: anything that cannot be computed is left nil.
// ⭐ SSOT: 재무비율 도출은 여기서만
func Build(periods []contracts.Period, table reported.ConceptTable) contracts.Fundamentals {
	return FromAggregates(reported.NewAggregator(periods, table).Aggregate())
}

// FromAggregates derives every ratio from already windowed inputs
func FromAggregates(agg reported.Aggregates) contracts.Fundamentals {
	f := contracts.Fundamentals{
		RevenueTTM:           agg.Revenue,
		OperatingIncomeTTM:   agg.OperatingIncome,
		PretaxIncomeTTM:      agg.PretaxIncome,
		TaxExpenseTTM:        agg.TaxExpense,
		NetIncomeTTM:         agg.NetIncome,
		InterestExpenseTTM:   agg.InterestExpense,
		OperatingCashflowTTM: agg.OperatingCashflow,
		CapexTTM:             agg.Capex,

		CashAvg:            agg.Cash,
		EquityAvg:          agg.Equity,
		LongTermDebtAvg:    agg.LongTermDebt,
		ShortTermDebtAvg:   agg.ShortTermDebt,
		CurrentAssets:      agg.CurrentAssets,
		CurrentLiabilities: agg.CurrentLiabilities,
	}

	// 1. Profitability
	f.OperatingMargin = div(f.OperatingIncomeTTM, f.RevenueTTM)

	// 2. Interest coverage: expense sign varies by issuer
	f.InterestCoverage = div(f.OperatingIncomeTTM, abs(f.InterestExpenseTTM))

	// 3~4. Tax-adjusted operating profit
	f.TaxRate = clamp(div(f.TaxExpenseTTM, f.PretaxIncomeTTM), MinTaxRate, MaxTaxRate)
	f.NOPATTTM = lift2(f.OperatingIncomeTTM, f.TaxRate, func(opinc, rate float64) float64 {
		return opinc * (1 - rate)
	})

	// 5~7. Capital base
	f.TotalDebt = sumPresent(f.LongTermDebtAvg, f.ShortTermDebtAvg)
	f.InvestedCapital = sub(add(f.EquityAvg, f.TotalDebt), orZero(f.CashAvg))
	f.ROIC = divPositive(f.NOPATTTM, f.InvestedCapital)

	// 8. Leverage against free cash flow; net debt needs a reported cash balance
	f.FCFTTM = sub(f.OperatingCashflowTTM, f.CapexTTM)
	if f.CashAvg != nil {
		f.DebtToFCF = divPositive(sub(f.TotalDebt, f.CashAvg), f.FCFTTM)
	}

	// 9~10. Liquidity and solvency
	f.CurrentRatio = div(f.CurrentAssets, f.CurrentLiabilities)
	f.DebtToEquity = div(f.TotalDebt, f.EquityAvg)

	return f
}
