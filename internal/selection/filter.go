package selection

import (
	"strings"

	"github.com/wonny/valuescreen/internal/contracts"
	"github.com/wonny/valuescreen/pkg/logger"
)

// FilterConfig narrows a ranking for display
type FilterConfig struct {
	Query      string            // case-insensitive ticker substring; empty = all
	PassedOnly bool              // keep tickers that passed both screens
	MinVerdict contracts.Verdict // keep this band and better; empty = all
	Offset     int
	Limit      int // 0 = no limit
}

// Filter applies cfg to a ranking. Ranks are kept as assigned over the full set.
func Filter(ranked []contracts.RankedTicker, cfg FilterConfig, log *logger.Logger) []contracts.RankedTicker {
	kept := make([]contracts.RankedTicker, 0, len(ranked))
	filtered := make(map[string]int) // filter name -> count

	for _, r := range ranked {
		if reason := checkConditions(r, cfg); reason != "" {
			filtered[reason]++
			continue
		}
		kept = append(kept, r)
	}

	page := Page(kept, cfg.Offset, cfg.Limit)

	log.WithFields(map[string]interface{}{
		"total_input": len(ranked),
		"matched":     len(kept),
		"returned":    len(page),
		"filters":     filtered,
	}).Debug("Ranking filtered")

	return page
}

// checkConditions returns the name of the first filter that rejects r, or ""
func checkConditions(r contracts.RankedTicker, cfg FilterConfig) string {
	if !MatchTicker(r.Ticker, cfg.Query) {
		return "query"
	}
	if cfg.PassedOnly && !r.PassedBoth() {
		return "passed_only"
	}
	if cfg.MinVerdict != "" && verdictRank(r.Composite.Verdict) < verdictRank(cfg.MinVerdict) {
		return "min_verdict"
	}
	return ""
}

// MatchTicker reports whether ticker contains query, ignoring case
func MatchTicker(ticker, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToUpper(ticker), strings.ToUpper(query))
}

// FilterTickers keeps the tickers matching query, in order
func FilterTickers(tickers []string, query string) []string {
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if MatchTicker(t, query) {
			out = append(out, t)
		}
	}
	return out
}

// Page returns items[offset:offset+limit], clipped to the slice. limit <= 0 means no limit.
func Page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}

func verdictRank(v contracts.Verdict) int {
	switch v {
	case contracts.VerdictStrong:
		return 3
	case contracts.VerdictAcceptable:
		return 2
	case contracts.VerdictWeak:
		return 1
	default:
		return 0
	}
}
