package reported

import "github.com/wonny/valuescreen/internal/contracts"

// Concept is a canonical financial concept resolved across issuers
type Concept string

const (
	// Flow items (income statement / cash flow)
	Revenue           Concept = "revenue"
	OperatingIncome   Concept = "operating_income"
	PretaxIncome      Concept = "pretax_income"
	TaxExpense        Concept = "tax_expense"
	NetIncome         Concept = "net_income"
	InterestExpense   Concept = "interest_expense"
	OperatingCashflow Concept = "operating_cashflow"
	Capex             Concept = "capex"

	// Balance items
	Cash               Concept = "cash"
	Equity             Concept = "equity"
	LongTermDebt       Concept = "long_term_debt"
	ShortTermDebt      Concept = "short_term_debt"
	CurrentAssets      Concept = "current_assets"
	CurrentLiabilities Concept = "current_liabilities"
)

// ConceptSpec says where a concept is reported and under which tags, in priority order
type ConceptSpec struct {
	Statement contracts.StatementKind
	Aliases   []string
}

// ConceptTable maps canonical concepts to their accepted source tags.
// Treat it as immutable: use With to derive a modified table.
type ConceptTable map[Concept]ConceptSpec

// DefaultConcepts returns a fresh table of the US-GAAP tags issuers commonly use
func DefaultConcepts() ConceptTable {
	return ConceptTable{
		Revenue: {contracts.IncomeStatement, []string{
			"Revenues",
			"SalesRevenueNet",
			"RevenueFromContractWithCustomerExcludingAssessedTax",
		}},
		OperatingIncome: {contracts.IncomeStatement, []string{
			"OperatingIncomeLoss",
			"OperatingIncome",
		}},
		PretaxIncome: {contracts.IncomeStatement, []string{
			"IncomeBeforeIncomeTaxes",
			"IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItems",
		}},
		TaxExpense: {contracts.IncomeStatement, []string{
			"IncomeTaxExpenseBenefit",
		}},
		NetIncome: {contracts.IncomeStatement, []string{
			"NetIncomeLoss",
			"NetIncome",
		}},
		InterestExpense: {contracts.IncomeStatement, []string{
			"InterestExpense",
			"InterestExpenseNonoperating",
		}},
		OperatingCashflow: {contracts.CashFlowStatement, []string{
			"NetCashProvidedByUsedInOperatingActivities",
			"NetCashProvidedByOperatingActivities",
		}},
		Capex: {contracts.CashFlowStatement, []string{
			"PaymentsToAcquirePropertyPlantAndEquipment",
			"CapitalExpenditures",
		}},
		Cash: {contracts.BalanceSheet, []string{
			"CashAndCashEquivalentsAtCarryingValue",
			"CashCashEquivalentsAndShortTermInvestments",
		}},
		Equity: {contracts.BalanceSheet, []string{
			"StockholdersEquity",
			"StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
		}},
		LongTermDebt: {contracts.BalanceSheet, []string{
			"LongTermDebtNoncurrent",
			"LongTermDebt",
		}},
		ShortTermDebt: {contracts.BalanceSheet, []string{
			"DebtCurrent",
			"ShortTermBorrowings",
			"ShortTermDebt",
		}},
		CurrentAssets: {contracts.BalanceSheet, []string{
			"AssetsCurrent",
		}},
		CurrentLiabilities: {contracts.BalanceSheet, []string{
			"LiabilitiesCurrent",
		}},
	}
}

// With returns a copy of the table with spec registered for concept
func (t ConceptTable) With(concept Concept, spec ConceptSpec) ConceptTable {
	out := make(ConceptTable, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	aliases := make([]string, len(spec.Aliases))
	copy(aliases, spec.Aliases)
	out[concept] = ConceptSpec{Statement: spec.Statement, Aliases: aliases}
	return out
}

// Lookup resolves concept within one period. Unknown concepts resolve to nil.
func (t ConceptTable) Lookup(p contracts.Period, concept Concept) *float64 {
	spec, ok := t[concept]
	if !ok {
		return nil
	}
	return Resolve(p.Statement(spec.Statement), spec.Aliases)
}
