// ABOUTME: Set model: one logged repetition group within an exercise.
// ABOUTME: Includes set types, creation input, and partial-update patches.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SetType classifies the effort of a set.
type SetType string

const (
	SetWarmup  SetType = "warmup"
	SetWorking SetType = "working"
	SetDropset SetType = "dropset"
)

// AllSetTypes lists the valid set types.
var AllSetTypes = []SetType{SetWarmup, SetWorking, SetDropset}

// ParseSetType validates a set type string.
func ParseSetType(s string) (SetType, error) {
	for _, t := range AllSetTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown set type: %s", s)
}

// Set is a single logged set.
type Set struct {
	ID        uuid.UUID `json:"id"`
	Type      SetType   `json:"type"`
	Weight    Weight    `json:"weight"`
	Reps      Reps      `json:"reps"`
	RIR       *RIR      `json:"rir"`
	IsFailure bool      `json:"is_failure"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Volume returns weight × reps for the set.
func (s Set) Volume() float64 {
	return Volume(s.Weight, s.Reps)
}

// SetInput carries the caller-supplied fields of a new set.
type SetInput struct {
	Type      SetType
	Weight    Weight
	Reps      Reps
	RIR       *RIR
	IsFailure bool
	Notes     string
}

// Validate reports input that the validated constructors would reject.
func (in SetInput) Validate() error {
	return validateSetNumbers(&in.Weight, &in.Reps, in.RIR)
}

func validateSetNumbers(w *Weight, r *Reps, rir *RIR) error {
	if w != nil {
		if _, err := NewWeight(float64(*w)); err != nil {
			return err
		}
	}
	if r != nil {
		if _, err := NewReps(int(*r)); err != nil {
			return err
		}
	}
	if rir != nil {
		if _, err := NewRIR(int(*rir)); err != nil {
			return err
		}
	}
	return nil
}

// NewSet creates a Set from input with a fresh ID and the given timestamp.
func NewSet(in SetInput, at time.Time) Set {
	t := in.Type
	if t == "" {
		t = SetWorking
	}
	return Set{
		ID:        uuid.New(),
		Type:      t,
		Weight:    in.Weight,
		Reps:      in.Reps,
		RIR:       in.RIR,
		IsFailure: in.IsFailure,
		Notes:     in.Notes,
		Timestamp: at,
	}
}

// SetPatch is a partial update; nil fields are left unchanged.
type SetPatch struct {
	Type      *SetType
	Weight    *Weight
	Reps      *Reps
	RIR       *RIR
	ClearRIR  bool
	IsFailure *bool
	Notes     *string
}

// Validate reports patch values that the validated constructors would reject.
func (p SetPatch) Validate() error {
	return validateSetNumbers(p.Weight, p.Reps, p.RIR)
}

// Apply merges the patch into s.
func (p SetPatch) Apply(s *Set) {
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Weight != nil {
		s.Weight = *p.Weight
	}
	if p.Reps != nil {
		s.Reps = *p.Reps
	}
	if p.ClearRIR {
		s.RIR = nil
	} else if p.RIR != nil {
		rir := *p.RIR
		s.RIR = &rir
	}
	if p.IsFailure != nil {
		s.IsFailure = *p.IsFailure
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
}
