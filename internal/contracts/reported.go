package contracts

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// StatementKind identifies one of the three reported statements of a period
type StatementKind string

const (
	IncomeStatement   StatementKind = "ic"
	BalanceSheet      StatementKind = "bs"
	CashFlowStatement StatementKind = "cf"
)

// RawStatementItem is a single reported line item as delivered by the filings source.
// Concept is the taxonomy tag (e.g. "us-gaap_Revenues"), Label the free-text caption.
// Value is whatever the source sent: number, numeric string, null or garbage.
type RawStatementItem struct {
	Concept string      `json:"concept,omitempty"`
	Label   string      `json:"label,omitempty"`
	Value   interface{} `json:"value"`
}

// Float interprets Value as a finite number. Non-numeric, NaN and infinite values are absent.
func (i RawStatementItem) Float() *float64 {
	var v float64
	switch x := i.Value.(type) {
	case nil:
		return nil
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int64:
		v = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		v = f
	default:
		return nil
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Period is one fiscal reporting period identified by (Year, Quarter)
type Period struct {
	Year     int                `json:"year"`
	Quarter  int                `json:"quarter"`
	Income   []RawStatementItem `json:"ic"`
	Balance  []RawStatementItem `json:"bs"`
	CashFlow []RawStatementItem `json:"cf"`
}

// Statement returns the line items of the requested statement
func (p Period) Statement(kind StatementKind) []RawStatementItem {
	switch kind {
	case IncomeStatement:
		return p.Income
	case BalanceSheet:
		return p.Balance
	case CashFlowStatement:
		return p.CashFlow
	default:
		return nil
	}
}

// Before reports whether p sorts before other by (year, quarter)
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Quarter < other.Quarter
}

// TickerInput is everything the core needs to screen one ticker
type TickerInput struct {
	Ticker            string   `json:"ticker"`
	Price             *float64 `json:"price"`
	SharesOutstanding *float64 `json:"shares_outstanding"` // raw; may be expressed in millions
	Periods           []Period `json:"periods"`
}
