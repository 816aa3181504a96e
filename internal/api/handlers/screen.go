package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wonny/valuescreen/internal/contracts"
	"github.com/wonny/valuescreen/internal/pipeline"
	"github.com/wonny/valuescreen/internal/selection"
	"github.com/wonny/valuescreen/internal/store"
	"github.com/wonny/valuescreen/internal/thresholds"
	"github.com/wonny/valuescreen/pkg/logger"
)

// ScreenHandler handles screening API endpoints
// ⭐ SSOT: 스크리닝 API 핸들러는 이 구조체에서만
type ScreenHandler struct {
	evaluator *pipeline.Evaluator
	runs      contracts.RunRepository // nil when no store is configured
	logger    *logger.Logger
}

// NewScreenHandler creates a new screen handler. runs may be nil.
func NewScreenHandler(evaluator *pipeline.Evaluator, runs contracts.RunRepository, log *logger.Logger) *ScreenHandler {
	return &ScreenHandler{
		evaluator: evaluator,
		runs:      runs,
		logger:    log,
	}
}

// TickerRequest carries one ticker's market data and raw financials-reported payload
type TickerRequest struct {
	Ticker     string          `json:"ticker" validate:"required,max=32"`
	Price      *float64        `json:"price" validate:"omitempty,gte=0"`
	Shares     *float64        `json:"shares_outstanding" validate:"omitempty,gte=0"`
	Financials json.RawMessage `json:"financials" validate:"required"`
}

func (t TickerRequest) stored() *contracts.StoredInput {
	return &contracts.StoredInput{
		Ticker:  strings.ToUpper(strings.TrimSpace(t.Ticker)),
		Price:   t.Price,
		Shares:  t.Shares,
		Payload: t.Financials,
	}
}

// RankRequest screens and ranks a batch of tickers
type RankRequest struct {
	Tickers    []TickerRequest `json:"tickers" validate:"required,min=1,max=1000,dive"`
	Save       bool            `json:"save"`
	Query      string          `json:"query"`
	PassedOnly bool            `json:"passed_only"`
	MinVerdict string          `json:"min_verdict" validate:"omitempty,oneof=strong acceptable weak"`
	Offset     int             `json:"offset" validate:"gte=0"`
	Limit      int             `json:"limit" validate:"gte=0"`
}

// RunResponse is a (filtered) view of a screening run
type RunResponse struct {
	RunID          string                   `json:"run_id"`
	CreatedAt      time.Time                `json:"created_at"`
	ThresholdsHash string                   `json:"thresholds_hash"`
	Total          int                      `json:"total"`
	Saved          bool                     `json:"saved"`
	Results        []contracts.RankedTicker `json:"results"`
}

// ThresholdsResponse describes the thresholds in effect
type ThresholdsResponse struct {
	Hash       string            `json:"hash"`
	Thresholds thresholds.Config `json:"thresholds"`
}

// GetThresholds returns the thresholds in effect
// GET /api/thresholds
func (h *ScreenHandler) GetThresholds(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ThresholdsResponse{
		Hash:       h.evaluator.ThresholdsHash(),
		Thresholds: h.evaluator.Thresholds(),
	})
}

// Screen evaluates a single ticker
// POST /api/screen
func (h *ScreenHandler) Screen(w http.ResponseWriter, r *http.Request) {
	var req TickerRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	evaluation := h.evaluator.EvaluateRaw(r.Context(), req.stored())
	if evaluation.Failed() {
		respondJSON(w, http.StatusUnprocessableEntity, evaluation)
		return
	}

	respondJSON(w, http.StatusOK, evaluation)
}

// Rank evaluates and ranks a batch of tickers, optionally saving the run
// POST /api/rank
func (h *ScreenHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Tickers key the stored results, so each may appear once
	inputs := make([]*contracts.StoredInput, 0, len(req.Tickers))
	seen := make(map[string]struct{}, len(req.Tickers))
	for _, t := range req.Tickers {
		input := t.stored()
		if _, dup := seen[input.Ticker]; dup {
			respondError(w, http.StatusBadRequest, "Duplicate ticker: "+input.Ticker)
			return
		}
		seen[input.Ticker] = struct{}{}
		inputs = append(inputs, input)
	}

	run, err := h.evaluator.Run(r.Context(), inputs)
	if err != nil {
		h.logger.WithError(err).Warn("Screening run aborted")
		respondError(w, http.StatusServiceUnavailable, "Screening run aborted")
		return
	}

	saved := false
	if req.Save {
		if h.runs == nil {
			respondError(w, http.StatusServiceUnavailable, "No store configured; cannot save run")
			return
		}
		if err := h.saveRun(r.Context(), run); err != nil {
			h.logger.WithError(err).Error("Failed to save run")
			respondError(w, http.StatusInternalServerError, "Failed to save run")
			return
		}
		saved = true
	}

	respondJSON(w, http.StatusOK, h.view(run, saved, selection.FilterConfig{
		Query:      req.Query,
		PassedOnly: req.PassedOnly,
		MinVerdict: contracts.Verdict(req.MinVerdict),
		Offset:     req.Offset,
		Limit:      req.Limit,
	}))
}

// GetRun returns a stored run
// GET /api/runs/{id}?q=&passed_only=&min_verdict=&offset=&limit=
func (h *ScreenHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		respondError(w, http.StatusServiceUnavailable, "No store configured")
		return
	}

	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid run id")
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	run, err := h.runs.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Run not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get run")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve run")
		return
	}

	respondJSON(w, http.StatusOK, h.view(run, true, filter))
}

func (h *ScreenHandler) saveRun(ctx context.Context, run *contracts.Run) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return h.runs.SaveRun(ctx, run)
}

func (h *ScreenHandler) view(run *contracts.Run, saved bool, filter selection.FilterConfig) RunResponse {
	return RunResponse{
		RunID:          run.ID,
		CreatedAt:      run.CreatedAt,
		ThresholdsHash: run.ThresholdsHash,
		Total:          run.Count(),
		Saved:          saved,
		Results:        selection.Filter(run.Results, filter, h.logger),
	}
}

// parseFilter reads the ranking filter from query parameters
func parseFilter(r *http.Request) (selection.FilterConfig, error) {
	q := r.URL.Query()
	filter := selection.FilterConfig{
		Query:      q.Get("q"),
		PassedOnly: q.Get("passed_only") == "true",
	}

	if v := q.Get("min_verdict"); v != "" {
		if err := validate.Var(v, "oneof=strong acceptable weak"); err != nil {
			return filter, errors.New("min_verdict must be one of strong, acceptable, weak")
		}
		filter.MinVerdict = contracts.Verdict(v)
	}

	var err error
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		return filter, errors.New("offset must be a non-negative integer")
	}
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		return filter, errors.New("limit must be a non-negative integer")
	}
	return filter, nil
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid")
	}
	return n, nil
}
