package contracts

// Metric names exposed by Fundamentals.Metric / Fundamentals.Metrics
const (
	MetricRevenueTTM           = "revenue_ttm"
	MetricOperatingIncomeTTM   = "operating_income_ttm"
	MetricPretaxIncomeTTM      = "pretax_income_ttm"
	MetricTaxExpenseTTM        = "tax_expense_ttm"
	MetricNetIncomeTTM         = "net_income_ttm"
	MetricInterestExpenseTTM   = "interest_expense_ttm"
	MetricOperatingCashflowTTM = "operating_cashflow_ttm"
	MetricCapexTTM             = "capex_ttm"
	MetricFCFTTM               = "fcf_ttm"
	MetricCashAvg              = "cash_avg"
	MetricEquityAvg            = "equity_avg"
	MetricLongTermDebtAvg      = "long_term_debt_avg"
	MetricShortTermDebtAvg     = "short_term_debt_avg"
	MetricCurrentAssets        = "current_assets"
	MetricCurrentLiabilities   = "current_liabilities"
	MetricTotalDebt            = "total_debt"
	MetricOperatingMargin      = "operating_margin"
	MetricInterestCoverage     = "interest_coverage"
	MetricTaxRate              = "tax_rate"
	MetricNOPATTTM             = "nopat_ttm"
	MetricInvestedCapital      = "invested_capital"
	MetricROIC                 = "roic"
	MetricDebtToFCF            = "debt_to_fcf"
	MetricCurrentRatio         = "current_ratio"
	MetricDebtToEquity         = "debt_to_equity"
	MetricPriceEarnings        = "price_earnings"
	MetricPriceBook            = "price_book"
)

// Fundamentals is the standardized ratio record of one ticker.
// A nil field means the value could not be computed from the available data.
type Fundamentals struct {
	// Trailing-twelve-month flow items
	RevenueTTM           *float64 `json:"revenue_ttm"`
	OperatingIncomeTTM   *float64 `json:"operating_income_ttm"`
	PretaxIncomeTTM      *float64 `json:"pretax_income_ttm"`
	TaxExpenseTTM        *float64 `json:"tax_expense_ttm"`
	NetIncomeTTM         *float64 `json:"net_income_ttm"`
	InterestExpenseTTM   *float64 `json:"interest_expense_ttm"`
	OperatingCashflowTTM *float64 `json:"operating_cashflow_ttm"`
	CapexTTM             *float64 `json:"capex_ttm"` // magnitude
	FCFTTM               *float64 `json:"fcf_ttm"`

	// Balance items (two-point trailing average / latest)
	CashAvg            *float64 `json:"cash_avg"`
	EquityAvg          *float64 `json:"equity_avg"`
	LongTermDebtAvg    *float64 `json:"long_term_debt_avg"`
	ShortTermDebtAvg   *float64 `json:"short_term_debt_avg"`
	CurrentAssets      *float64 `json:"current_assets"`
	CurrentLiabilities *float64 `json:"current_liabilities"`

	// Derived
	TotalDebt        *float64 `json:"total_debt"`
	OperatingMargin  *float64 `json:"operating_margin"`
	InterestCoverage *float64 `json:"interest_coverage"`
	TaxRate          *float64 `json:"tax_rate"`
	NOPATTTM         *float64 `json:"nopat_ttm"`
	InvestedCapital  *float64 `json:"invested_capital"`
	ROIC             *float64 `json:"roic"`
	DebtToFCF        *float64 `json:"debt_to_fcf"`
	CurrentRatio     *float64 `json:"current_ratio"`
	DebtToEquity     *float64 `json:"debt_to_equity"`

	// Valuation (needs price and shares)
	PriceEarnings *float64 `json:"price_earnings"`
	PriceBook     *float64 `json:"price_book"`
}

type namedMetric struct {
	name  string
	value *float64
}

func (f *Fundamentals) named() []namedMetric {
	return []namedMetric{
		{MetricRevenueTTM, f.RevenueTTM},
		{MetricOperatingIncomeTTM, f.OperatingIncomeTTM},
		{MetricPretaxIncomeTTM, f.PretaxIncomeTTM},
		{MetricTaxExpenseTTM, f.TaxExpenseTTM},
		{MetricNetIncomeTTM, f.NetIncomeTTM},
		{MetricInterestExpenseTTM, f.InterestExpenseTTM},
		{MetricOperatingCashflowTTM, f.OperatingCashflowTTM},
		{MetricCapexTTM, f.CapexTTM},
		{MetricFCFTTM, f.FCFTTM},
		{MetricCashAvg, f.CashAvg},
		{MetricEquityAvg, f.EquityAvg},
		{MetricLongTermDebtAvg, f.LongTermDebtAvg},
		{MetricShortTermDebtAvg, f.ShortTermDebtAvg},
		{MetricCurrentAssets, f.CurrentAssets},
		{MetricCurrentLiabilities, f.CurrentLiabilities},
		{MetricTotalDebt, f.TotalDebt},
		{MetricOperatingMargin, f.OperatingMargin},
		{MetricInterestCoverage, f.InterestCoverage},
		{MetricTaxRate, f.TaxRate},
		{MetricNOPATTTM, f.NOPATTTM},
		{MetricInvestedCapital, f.InvestedCapital},
		{MetricROIC, f.ROIC},
		{MetricDebtToFCF, f.DebtToFCF},
		{MetricCurrentRatio, f.CurrentRatio},
		{MetricDebtToEquity, f.DebtToEquity},
		{MetricPriceEarnings, f.PriceEarnings},
		{MetricPriceBook, f.PriceBook},
	}
}

// Metric returns the named metric, or nil when unknown or absent
func (f *Fundamentals) Metric(name string) *float64 {
	for _, m := range f.named() {
		if m.name == name {
			return m.value
		}
	}
	return nil
}

// Metrics returns the record as a name -> optional value mapping
func (f *Fundamentals) Metrics() map[string]*float64 {
	named := f.named()
	out := make(map[string]*float64, len(named))
	for _, m := range named {
		out[m.name] = m.value
	}
	return out
}

// Coverage returns the share of metrics that could be computed (0.0 ~ 1.0)
func (f *Fundamentals) Coverage() float64 {
	named := f.named()
	present := 0
	for _, m := range named {
		if m.value != nil {
			present++
		}
	}
	return float64(present) / float64(len(named))
}
