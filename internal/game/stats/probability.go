package stats

import (
	"fmt"
	"math"
)

// Half is the number of attribute points above the difficulty needed to move
// the success probability from 0.5 to 0.75.
const Half = 5.0

// DefaultCurve is the probability curve built from Half. It is computed once
// during package initialisation.
var DefaultCurve = mustCurve(Half)

// Curve maps the gap between an attribute value and a difficulty to a
// success probability: 1 / (1 + lambda^(value-difficulty)), with
// lambda = (1/3)^(1/half).
type Curve struct {
	half   float64
	lambda float64
}

// NewCurve builds a Curve whose probability reaches 0.75 at half points above
// the difficulty.
//
// Precondition: half must be finite and > 0.
// Postcondition: Returns a usable Curve or a non-nil error.
func NewCurve(half float64) (Curve, error) {
	if math.IsNaN(half) || math.IsInf(half, 0) || half <= 0 {
		return Curve{}, fmt.Errorf("stats: curve half-point must be finite and > 0, got %v", half)
	}
	return Curve{half: half, lambda: math.Pow(1.0/3.0, 1.0/half)}, nil
}

func mustCurve(half float64) Curve {
	c, err := NewCurve(half)
	if err != nil {
		panic(err)
	}
	return c
}

// Half returns the half-point the curve was built with.
func (c Curve) Half() float64 {
	return c.half
}

// Probability returns the chance that an action gated on an attribute of
// value succeeds against difficulty.
//
// Postcondition: returns exactly 0.5 when value == difficulty; the result is
// increasing in value and decreasing in difficulty. Results saturate to 0 or 1
// for gaps far beyond float32 precision.
func (c Curve) Probability(value, difficulty int16) float32 {
	// Subtract in int32 so the full int16 range cannot overflow.
	adjusted := int32(value) - int32(difficulty)
	return float32(1.0 / (1.0 + math.Pow(c.lambda, float64(adjusted))))
}

// Probability returns the chance that an action succeeds using DefaultCurve.
//
// The difficulty is the attribute value at which the chance is exactly 50%.
func Probability(value, difficulty int16) float32 {
	return DefaultCurve.Probability(value, difficulty)
}
