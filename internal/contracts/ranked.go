package contracts

import "time"

// RankedTicker is an evaluation with its position in the ranking
// ⭐ SSOT: 랭킹 결과 전달
type RankedTicker struct {
	Rank int `json:"rank"` // 1-based ranking
	Evaluation
}

// IsTopRanked checks if the ticker is in top N ranks
func (r *RankedTicker) IsTopRanked(n int) bool {
	return r.Rank <= n && r.Rank > 0
}

// Run is one screening pass over a set of tickers
type Run struct {
	ID             string         `json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	ThresholdsHash string         `json:"thresholds_hash"`
	Results        []RankedTicker `json:"results"`
}

// Count returns the number of ranked tickers
func (r *Run) Count() int {
	return len(r.Results)
}

// Get returns the ranked entry for a ticker
func (r *Run) Get(ticker string) (*RankedTicker, bool) {
	for i := range r.Results {
		if r.Results[i].Ticker == ticker {
			return &r.Results[i], true
		}
	}
	return nil, false
}
