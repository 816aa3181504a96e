package thresholds

// Config holds the thresholds of both screens
// ⭐ SSOT: 스크린 임계값은 여기서만 정의
type Config struct {
	Quality QualityThresholds `yaml:"quality" json:"quality"`
	Value   ValueThresholds   `yaml:"value" json:"value"`
}

// QualityThresholds parameterize the quality screen
type QualityThresholds struct {
	MinROIC             float64 `yaml:"min_roic" json:"min_roic"`                           // ratio, 0.12 = 12%
	MinOperatingMargin  float64 `yaml:"min_operating_margin" json:"min_operating_margin"`   // ratio
	MaxDebtToFCF        float64 `yaml:"max_debt_to_fcf" json:"max_debt_to_fcf"`             // years of FCF
	MinInterestCoverage float64 `yaml:"min_interest_coverage" json:"min_interest_coverage"` // multiple
}

// ValueThresholds parameterize the value screen
type ValueThresholds struct {
	MaxPE           float64 `yaml:"max_pe" json:"max_pe"`
	MaxPB           float64 `yaml:"max_pb" json:"max_pb"`
	MinCurrentRatio float64 `yaml:"min_current_ratio" json:"min_current_ratio"`
	MaxDebtToEquity float64 `yaml:"max_debt_to_equity" json:"max_debt_to_equity"`
}

// Default returns the documented fallback thresholds
func Default() Config {
	return Config{
		Quality: DefaultQuality(),
		Value:   DefaultValue(),
	}
}

// DefaultQuality returns the fallback quality thresholds
func DefaultQuality() QualityThresholds {
	return QualityThresholds{
		MinROIC:             0.12, // 12%
		MinOperatingMargin:  0.10, // 10%
		MaxDebtToFCF:        5.0,  // 5 years to repay net debt
		MinInterestCoverage: 5.0,  // 5x
	}
}

// DefaultValue returns the fallback value thresholds
func DefaultValue() ValueThresholds {
	return ValueThresholds{
		MaxPE:           15.0,
		MaxPB:           1.5,
		MinCurrentRatio: 1.5,
		MaxDebtToEquity: 1.0,
	}
}
