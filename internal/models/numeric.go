// ABOUTME: Validated numeric types for set entry (weight, reps and RIR).
// ABOUTME: Parsing rejects non-numeric and negative input at the boundary.
package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned when weight or reps input cannot be used.
var ErrInvalidNumber = errors.New("invalid number")

// Weight is a non-negative load in the user's unit system.
type Weight float64

// Reps is a non-negative repetition count.
type Reps int

// RIR is reps in reserve: how many more reps the set had left.
type RIR int

// NewWeight validates a raw float as a Weight.
func NewWeight(v float64) (Weight, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: weight %v", ErrInvalidNumber, v)
	}
	return Weight(v), nil
}

// NewReps validates a raw int as Reps.
func NewReps(v int) (Reps, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: reps %d", ErrInvalidNumber, v)
	}
	return Reps(v), nil
}

// NewRIR validates a raw int as RIR.
func NewRIR(v int) (RIR, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: rir %d", ErrInvalidNumber, v)
	}
	return RIR(v), nil
}

// ParseWeight parses user-entered weight text.
func ParseWeight(s string) (Weight, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: weight %q", ErrInvalidNumber, s)
	}
	return NewWeight(v)
}

// ParseReps parses user-entered rep text.
func ParseReps(s string) (Reps, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: reps %q", ErrInvalidNumber, s)
	}
	return NewReps(v)
}

// ParseRIR parses user-entered reps-in-reserve text.
func ParseRIR(s string) (RIR, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: rir %q", ErrInvalidNumber, s)
	}
	return NewRIR(v)
}

// Volume returns weight × reps.
func Volume(w Weight, r Reps) float64 {
	return float64(w) * float64(r)
}
