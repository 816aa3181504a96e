package fundamentals

import "math"

// Optional arithmetic: nil means "unknown" and propagates through every operation.
// All derived values pass through these helpers so no formula needs its own nil checks.

// finite wraps v, turning NaN and infinities into nil
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// lift2 applies fn when both operands are present
func lift2(a, b *float64, fn func(x, y float64) float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	return finite(fn(*a, *b))
}

// div returns num / den; nil when either is nil or den is zero
func div(num, den *float64) *float64 {
	if den == nil || *den == 0 {
		return nil
	}
	return lift2(num, den, func(x, y float64) float64 { return x / y })
}

// divPositive returns num / den only for a strictly positive denominator
func divPositive(num, den *float64) *float64 {
	if den == nil || *den <= 0 {
		return nil
	}
	return div(num, den)
}

func sub(a, b *float64) *float64 {
	return lift2(a, b, func(x, y float64) float64 { return x - y })
}

func add(a, b *float64) *float64 {
	return lift2(a, b, func(x, y float64) float64 { return x + y })
}

// sumPresent adds the present operands; nil only when all are nil
func sumPresent(values ...*float64) *float64 {
	total := 0.0
	found := false
	for _, v := range values {
		if v == nil {
			continue
		}
		total += *v
		found = true
	}
	if !found {
		return nil
	}
	return finite(total)
}

func abs(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return finite(math.Abs(*v))
}

func clamp(v *float64, lo, hi float64) *float64 {
	if v == nil {
		return nil
	}
	return finite(math.Max(lo, math.Min(hi, *v)))
}

// orZero treats an unknown value as zero
func orZero(v *float64) *float64 {
	if v == nil {
		return value(0)
	}
	return v
}

func value(v float64) *float64 {
	return &v
}
