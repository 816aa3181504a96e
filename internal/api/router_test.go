package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuescreen/internal/api/handlers"
	"github.com/wonny/valuescreen/internal/contracts"
	"github.com/wonny/valuescreen/internal/pipeline"
	"github.com/wonny/valuescreen/internal/store"
	"github.com/wonny/valuescreen/pkg/logger"
)

const samplePayload = `{"data": [
	{"year": 2024, "quarter": 1, "report": {
		"ic": [
			{"concept": "us-gaap_Revenues", "value": 1000},
			{"concept": "us-gaap_OperatingIncomeLoss", "value": 200},
			{"concept": "us-gaap_NetIncomeLoss", "value": 120}
		],
		"bs": [
			{"concept": "us-gaap_StockholdersEquity", "value": 1000},
			{"concept": "us-gaap_AssetsCurrent", "value": 600},
			{"concept": "us-gaap_LiabilitiesCurrent", "value": 300}
		],
		"cf": []
	}}
]}`

// memRuns is an in-memory run repository
type memRuns struct {
	mu   sync.Mutex
	runs map[string]*contracts.Run
}

func newMemRuns() *memRuns {
	return &memRuns{runs: make(map[string]*contracts.Run)}
}

func (m *memRuns) SaveRun(ctx context.Context, run *contracts.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	return nil
}

func (m *memRuns) GetRun(ctx context.Context, id string) (*contracts.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", id, store.ErrNotFound)
	}
	return run, nil
}

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error {
	return errors.New("connection refused")
}

func newTestRouter(t *testing.T, runs contracts.RunRepository, db HealthChecker) http.Handler {
	t.Helper()
	evaluator, err := pipeline.NewEvaluator(pipeline.DefaultConfig(), logger.Nop())
	require.NoError(t, err)
	return NewRouter(handlers.NewScreenHandler(evaluator, runs, logger.Nop()), db, logger.Nop())
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, nil), "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "ok", body["status"])

	rec = do(t, newTestRouter(t, nil, failingPinger{}), "GET", "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	decode(t, rec, &body)
	assert.Equal(t, "degraded", body["status"])
}

func TestGetThresholds(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, nil), "GET", "/api/thresholds", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body handlers.ThresholdsResponse
	decode(t, rec, &body)
	assert.Len(t, body.Hash, 64)
	assert.Equal(t, 15.0, body.Thresholds.Value.MaxPE)
	assert.Equal(t, 0.12, body.Thresholds.Quality.MinROIC)
}

func TestScreen(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		check      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "valid request",
			body:       `{"ticker": " aapl ", "price": 120, "shares_outstanding": 10, "financials": ` + samplePayload + `}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var e contracts.Evaluation
				decode(t, rec, &e)
				assert.Equal(t, "AAPL", e.Ticker)
				assert.Len(t, e.Quality.Reasons, 4)
				assert.Len(t, e.Value.Reasons, 4)
				require.NotNil(t, e.Fundamentals.CurrentRatio)
				assert.InDelta(t, 2.0, *e.Fundamentals.CurrentRatio, 1e-9)
			},
		},
		{
			name:       "missing ticker",
			body:       `{"financials": {}}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "Ticker")
			},
		},
		{
			name:       "negative price",
			body:       `{"ticker": "X", "price": -1, "financials": {}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero price screens with a failing P/E",
			body:       `{"ticker": "X", "price": 0, "shares_outstanding": 10, "financials": ` + samplePayload + `}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var e contracts.Evaluation
				decode(t, rec, &e)
				require.NotNil(t, e.Fundamentals.PriceEarnings)
				assert.Equal(t, 0.0, *e.Fundamentals.PriceEarnings)
				assert.False(t, e.Value.Passed)
			},
		},
		{
			name:       "zero shares leaves valuation absent",
			body:       `{"ticker": "X", "price": 120, "shares_outstanding": 0, "financials": ` + samplePayload + `}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var e contracts.Evaluation
				decode(t, rec, &e)
				assert.Nil(t, e.Fundamentals.PriceEarnings)
				assert.Nil(t, e.Fundamentals.PriceBook)
			},
		},
		{
			name:       "unknown field",
			body:       `{"ticker": "X", "financials": {}, "extra": 1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "financials of the wrong shape",
			body:       `{"ticker": "X", "financials": "rate limited"}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var e contracts.Evaluation
				decode(t, rec, &e)
				assert.True(t, e.Failed())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, "POST", "/api/screen", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.check != nil {
				tt.check(t, rec)
			}
		})
	}
}

func TestRankAndGetRun(t *testing.T) {
	runs := newMemRuns()
	router := newTestRouter(t, runs, nil)

	body := `{"save": true, "tickers": [
		{"ticker": "EMPTY", "financials": {"data": []}},
		{"ticker": "GOOD", "price": 120, "shares_outstanding": 10, "financials": ` + samplePayload + `}
	]}`
	rec := do(t, router, "POST", "/api/rank", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var ranked handlers.RunResponse
	decode(t, rec, &ranked)
	assert.True(t, ranked.Saved)
	assert.Equal(t, 2, ranked.Total)
	require.Len(t, ranked.Results, 2)
	assert.Equal(t, "GOOD", ranked.Results[0].Ticker)
	assert.Equal(t, 1, ranked.Results[0].Rank)

	rec = do(t, router, "GET", "/api/runs/"+ranked.RunID+"?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored handlers.RunResponse
	decode(t, rec, &stored)
	assert.Equal(t, ranked.RunID, stored.RunID)
	assert.Equal(t, 2, stored.Total)
	require.Len(t, stored.Results, 1)
	assert.Equal(t, "GOOD", stored.Results[0].Ticker)

	rec = do(t, router, "GET", "/api/runs/"+ranked.RunID+"?q=emp", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &stored)
	require.Len(t, stored.Results, 1)
	assert.Equal(t, 2, stored.Results[0].Rank)
}

func TestGetRun_Errors(t *testing.T) {
	router := newTestRouter(t, newMemRuns(), nil)

	assert.Equal(t, http.StatusBadRequest, do(t, router, "GET", "/api/runs/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, "GET", "/api/runs/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "GET", "/api/runs/"+uuid.NewString()+"?limit=-1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "GET", "/api/runs/"+uuid.NewString()+"?min_verdict=great", "").Code)

	noStore := newTestRouter(t, nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, noStore, "GET", "/api/runs/"+uuid.NewString(), "").Code)
}

func TestRank_Validation(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	assert.Equal(t, http.StatusBadRequest, do(t, router, "POST", "/api/rank", `{"tickers": []}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "POST", "/api/rank", `{"tickers": [{"financials": {}}]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "POST", "/api/rank", `{"tickers": [{"ticker": "A", "financials": {}}], "min_verdict": "great"}`).Code)

	// Saving needs a store
	rec := do(t, router, "POST", "/api/rank", `{"save": true, "tickers": [{"ticker": "A", "financials": {}}]}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRank_DuplicateTickers(t *testing.T) {
	runs := newMemRuns()
	router := newTestRouter(t, runs, nil)

	body := `{"save": true, "tickers": [
		{"ticker": "aapl", "financials": ` + samplePayload + `},
		{"ticker": "MSFT", "financials": ` + samplePayload + `},
		{"ticker": " AAPL ", "financials": ` + samplePayload + `}
	]}`
	rec := do(t, router, "POST", "/api/rank", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Duplicate ticker: AAPL")
	assert.Empty(t, runs.runs)
}

func TestGetRun_HugeLimit(t *testing.T) {
	runs := newMemRuns()
	router := newTestRouter(t, runs, nil)

	rec := do(t, router, "POST", "/api/rank", `{"save": true, "offset": 1, "limit": 9223372036854775807, "tickers": [
		{"ticker": "A", "financials": ` + samplePayload + `},
		{"ticker": "B", "financials": {"data": []}}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var ranked handlers.RunResponse
	decode(t, rec, &ranked)
	require.Len(t, ranked.Results, 1)
	assert.Equal(t, "B", ranked.Results[0].Ticker)

	rec = do(t, router, "GET", "/api/runs/"+ranked.RunID+"?offset=1&limit=9223372036854775807", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &ranked)
	require.Len(t, ranked.Results, 1)
	assert.Equal(t, 2, ranked.Results[0].Rank)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
