package contracts

import (
	"context"
	"time"
)

// ⭐ SSOT: Repository 인터페이스 정의는 여기서만

// InputRepository stores the raw per-ticker inputs delivered by the data collaborators
type InputRepository interface {
	SaveInput(ctx context.Context, input *StoredInput) error
	GetInput(ctx context.Context, ticker string) (*StoredInput, error)
	ListInputs(ctx context.Context) ([]*StoredInput, error)
}

// RunRepository stores screening runs
type RunRepository interface {
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
}

// StoredInput is a ticker's raw financials-reported payload plus market data
type StoredInput struct {
	Ticker    string
	Price     *float64
	Shares    *float64 // raw shares outstanding as reported by the profile source
	Payload   []byte   // financials-reported JSON
	UpdatedAt time.Time
}
