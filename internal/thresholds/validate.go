package thresholds

import (
	"fmt"
	"math"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
func Validate(cfg *Config) error {
	// === Quality ===
	q := cfg.Quality
	if err := validateNonNegative(q.MinROIC, "quality.min_roic"); err != nil {
		return err
	}
	if err := validateNonNegative(q.MinOperatingMargin, "quality.min_operating_margin"); err != nil {
		return err
	}
	// The graded debt/FCF bonus divides by this threshold
	if !isFinite(q.MaxDebtToFCF) || q.MaxDebtToFCF <= 0 {
		return ValidationError{"quality.max_debt_to_fcf", "must be > 0"}
	}
	if err := validateNonNegative(q.MinInterestCoverage, "quality.min_interest_coverage"); err != nil {
		return err
	}

	// === Value ===
	v := cfg.Value
	if !isFinite(v.MaxPE) || v.MaxPE <= 0 {
		return ValidationError{"value.max_pe", "must be > 0"}
	}
	if !isFinite(v.MaxPB) || v.MaxPB <= 0 {
		return ValidationError{"value.max_pb", "must be > 0"}
	}
	if err := validateNonNegative(v.MinCurrentRatio, "value.min_current_ratio"); err != nil {
		return err
	}
	if err := validateNonNegative(v.MaxDebtToEquity, "value.max_debt_to_equity"); err != nil {
		return err
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	if cfg.Quality.MinROIC > 1 || cfg.Quality.MinOperatingMargin > 1 {
		warnings = append(warnings, Warning{
			Code:    "PERCENT_AS_RATIO",
			Message: "min_roic / min_operating_margin > 1: thresholds are ratios (0.12 = 12%)",
		})
	}

	if cfg.Value.MaxPE > 40 {
		warnings = append(warnings, Warning{
			Code:    "LENIENT_PE",
			Message: fmt.Sprintf("max_pe=%.1f: value screen barely filters on earnings", cfg.Value.MaxPE),
		})
	}

	if cfg.Value.MinCurrentRatio < 1 {
		warnings = append(warnings, Warning{
			Code:    "LOW_LIQUIDITY",
			Message: "min_current_ratio < 1: current liabilities may exceed current assets",
		})
	}

	return warnings
}

func validateNonNegative(v float64, field string) error {
	if !isFinite(v) || v < 0 {
		return ValidationError{field, "must be a finite number >= 0"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
