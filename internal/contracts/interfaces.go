package contracts

import "context"

// Screen maps a fundamentals record to an explainable screen result
// ⭐ SSOT: 스크린 인터페이스
type Screen interface {
	Name() string
	Evaluate(f *Fundamentals) ScreenResult
}

// TickerEvaluator screens one ticker end to end
type TickerEvaluator interface {
	Evaluate(ctx context.Context, input TickerInput) Evaluation
}
