package reported

import (
	"math"

	"github.com/wonny/valuescreen/internal/contracts"
)

// TTMWindow is the number of quarterly periods in a trailing-twelve-month window
const TTMWindow = 4

// Window returns the trailing n periods of a sorted period list (fewer if history is shorter)
func Window(periods []contracts.Period, n int) []contracts.Period {
	if n <= 0 {
		return nil
	}
	if len(periods) <= n {
		return periods
	}
	return periods[len(periods)-n:]
}

// Aggregator computes trailing aggregates over the last TTMWindow periods
// ⭐ SSOT: TTM 합계 / 2기간 평균 계산은 여기서만
type Aggregator struct {
	window []contracts.Period
	table  ConceptTable
}

// NewAggregator creates an aggregator over the trailing window of periods (sorted ascending)
func NewAggregator(periods []contracts.Period, table ConceptTable) *Aggregator {
	return &Aggregator{
		window: Window(periods, TTMWindow),
		table:  table,
	}
}

// Periods returns the number of periods in the window
func (a *Aggregator) Periods() int {
	return len(a.window)
}

// TTM sums concept over every window period that reports it.
// Nil when no period contributed or the sum overflows.
func (a *Aggregator) TTM(concept Concept) *float64 {
	total := 0.0
	found := false
	for _, p := range a.window {
		v := a.table.Lookup(p, concept)
		if v == nil {
			continue
		}
		total += *v
		found = true
	}
	if !found {
		return nil
	}
	return finite(total)
}

// Average returns the mean of the latest and previous period values.
// The latest value alone is used when the previous one is missing; nil when the latest is missing
// or the mean overflows.
func (a *Aggregator) Average(concept Concept) *float64 {
	latest := a.Latest(concept)
	if latest == nil || len(a.window) < 2 {
		return latest
	}

	previous := a.table.Lookup(a.window[len(a.window)-2], concept)
	if previous == nil {
		return latest
	}

	return finite((*latest + *previous) / 2)
}

// finite returns nil for NaN and ±Inf
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Latest returns the value from the most recent period only
func (a *Aggregator) Latest(concept Concept) *float64 {
	if len(a.window) == 0 {
		return nil
	}
	return a.table.Lookup(a.window[len(a.window)-1], concept)
}

// Aggregates holds every windowed input of the fundamentals derivation
type Aggregates struct {
	Periods int

	// TTM sums
	Revenue           *float64
	OperatingIncome   *float64
	PretaxIncome      *float64
	TaxExpense        *float64
	NetIncome         *float64
	InterestExpense   *float64
	OperatingCashflow *float64
	Capex             *float64 // magnitude

	// Two-point averages
	Cash          *float64
	Equity        *float64
	LongTermDebt  *float64
	ShortTermDebt *float64

	// Latest only
	CurrentAssets      *float64
	CurrentLiabilities *float64
}

// Aggregate computes all flow, balance and latest-only inputs
func (a *Aggregator) Aggregate() Aggregates {
	agg := Aggregates{
		Periods: len(a.window),

		Revenue:           a.TTM(Revenue),
		OperatingIncome:   a.TTM(OperatingIncome),
		PretaxIncome:      a.TTM(PretaxIncome),
		TaxExpense:        a.TTM(TaxExpense),
		NetIncome:         a.TTM(NetIncome),
		InterestExpense:   a.TTM(InterestExpense),
		OperatingCashflow: a.TTM(OperatingCashflow),

		Cash:          a.Average(Cash),
		Equity:        a.Average(Equity),
		LongTermDebt:  a.Average(LongTermDebt),
		ShortTermDebt: a.Average(ShortTermDebt),

		CurrentAssets:      a.Latest(CurrentAssets),
		CurrentLiabilities: a.Latest(CurrentLiabilities),
	}

	// Filings report capex as a negative outflow or a positive payment
	if capex := a.TTM(Capex); capex != nil {
		spend := math.Abs(*capex)
		agg.Capex = &spend
	}

	return agg
}
