package selection

import (
	"sort"

	"github.com/wonny/valuescreen/internal/contracts"
	"github.com/wonny/valuescreen/pkg/logger"
)

// Ranker orders evaluated tickers by composite score
// ⭐ SSOT: 랭킹 로직은 여기서만
type Ranker struct {
	logger *logger.Logger
}

// NewRanker creates a new ranker
func NewRanker(logger *logger.Logger) *Ranker {
	return &Ranker{
		logger: logger,
	}
}

// Rank sorts evaluations by composite score (descending) and assigns 1-based ranks.
// Ties keep input order. Evaluations that failed ingestion rank with a composite of 0.
func (r *Ranker) Rank(evaluations []contracts.Evaluation) []contracts.RankedTicker {
	ranked := make([]contracts.RankedTicker, 0, len(evaluations))
	failed := 0

	for _, e := range evaluations {
		if e.Failed() {
			e.Composite = contracts.CompositeScore{Score: 0, Verdict: contracts.VerdictWeak}
			failed++
		}
		ranked = append(ranked, contracts.RankedTicker{Evaluation: e})
	}

	// Sort by composite score (descending), stable on ties
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Composite.Score > ranked[j].Composite.Score
	})

	// Assign ranks
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	if len(ranked) == 0 {
		r.logger.Debug("Ranking skipped: no evaluations")
		return ranked
	}

	r.logger.WithFields(map[string]interface{}{
		"total_tickers": len(ranked),
		"failed":        failed,
		"top_score":     ranked[0].Composite.Score,
		"top_ticker":    ranked[0].Ticker,
	}).Info("Ranking completed")

	return ranked
}
