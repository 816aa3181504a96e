package contracts

// Screen names
const (
	ScreenQuality = "quality"
	ScreenValue   = "value"
)

// ScreenResult is the explainable outcome of one rule-based screen.
// Reasons holds one entry per criterion, in evaluation order.
type ScreenResult struct {
	Screen  string   `json:"screen"`
	Passed  bool     `json:"passed"`
	Score   int      `json:"score"` // 0 ~ 100
	Reasons []string `json:"reasons"`
}

// Verdict is the qualitative band of a composite score
type Verdict string

const (
	VerdictStrong     Verdict = "strong"
	VerdictAcceptable Verdict = "acceptable"
	VerdictWeak       Verdict = "weak"
)

// CompositeScore blends the quality and value scores
type CompositeScore struct {
	Score   int     `json:"score"` // 0 ~ 100
	Verdict Verdict `json:"verdict"`
}

// Evaluation is the full screening outcome for one ticker
type Evaluation struct {
	Ticker       string         `json:"ticker"`
	Price        *float64       `json:"price"`
	Shares       *float64       `json:"shares"` // normalized absolute count
	Fundamentals Fundamentals   `json:"fundamentals"`
	Quality      ScreenResult   `json:"quality"`
	Value        ScreenResult   `json:"value"`
	Composite    CompositeScore `json:"composite"`
	Error        string         `json:"error,omitempty"` // input could not be ingested
}

// Failed reports whether the ticker could not be evaluated at all
func (e *Evaluation) Failed() bool {
	return e.Error != ""
}

// PassedBoth reports whether the ticker passed both screens
func (e *Evaluation) PassedBoth() bool {
	return e.Quality.Passed && e.Value.Passed
}
