package fundamentals

import "github.com/wonny/valuescreen/internal/contracts"

// SharesInMillionsBelow is the share count under which the reported figure is taken to be in millions
const SharesInMillionsBelow = 100_000

// NormalizeShares converts a reported shares-outstanding figure to an absolute count.
// Profile sources often report shares in millions: values below SharesInMillionsBelow
// are scaled by 1,000,000.
func NormalizeShares(shares *float64) *float64 {
	if shares == nil {
		return nil
	}
	if *shares < SharesInMillionsBelow {
		return finite(*shares * 1_000_000)
	}
	return finite(*shares)
}

// WithValuation returns a copy of f with price/earnings and price/book filled in.
// shares must already be normalized. Ratios are left unclamped; negative earnings
// produce a negative multiple which the value screen rejects.
func WithValuation(f contracts.Fundamentals, price, shares *float64) contracts.Fundamentals {
	if shares == nil || *shares == 0 {
		f.PriceEarnings = nil
		f.PriceBook = nil
		return f
	}

	eps := div(f.NetIncomeTTM, shares)
	bookPerShare := div(f.EquityAvg, shares)

	f.PriceEarnings = div(price, eps)
	f.PriceBook = div(price, bookPerShare)
	return f
}
