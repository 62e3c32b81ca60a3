package loanpredictor

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	ErrMissingField    = errors.New("missing input field")
	ErrInvalidCategory = errors.New("value is not one of the allowed options")
	ErrInvalidNumber   = errors.New("value is not a whole number")
	ErrOutOfBounds     = errors.New("value is out of bounds")
)

// Bounds is the inclusive range accepted for every numeric field
type Bounds struct {
	Min int
	Max int
}

// Validate enforces what the input widgets constrain: every field present and known, each
// category in its vocabulary and each number a whole value within bounds.
func (v Vocabulary) Validate(in Input, b Bounds) error {
	known := make(map[string]struct{})
	for _, field := range v.Categorical {
		known[field.Name] = struct{}{}
	}
	for name := range in.Categorical {
		if _, exists := known[name]; !exists {
			return fmt.Errorf("%s, %w", name, ErrUnexpectedColumn)
		}
	}
	for name := range in.Numeric {
		if !slices.Contains(v.Numeric, name) {
			return fmt.Errorf("%s, %w", name, ErrUnexpectedColumn)
		}
	}

	for _, field := range v.Categorical {
		val, exists := in.Categorical[field.Name]
		if !exists {
			return fmt.Errorf("%s, %w", field.Name, ErrMissingField)
		}
		if !slices.Contains(field.Categories, val) {
			return fmt.Errorf("%s=%q, %w", field.Name, val, ErrInvalidCategory)
		}
	}
	for _, name := range v.Numeric {
		val, exists := in.Numeric[name]
		if !exists {
			return fmt.Errorf("%s, %w", name, ErrMissingField)
		}
		if math.IsNaN(val) || val < float64(b.Min) || val > float64(b.Max) {
			return fmt.Errorf("%s=%g not in [%d, %d], %w", name, val, b.Min, b.Max, ErrOutOfBounds)
		}
		if val != math.Trunc(val) {
			return fmt.Errorf("%s=%g, %w", name, val, ErrInvalidNumber)
		}
	}
	return nil
}

// Validate checks an input against the predictor's vocabulary and the numeric bounds
func (p *Predictor) Validate(in Input, b Bounds) error {
	return p.Vocabulary().Validate(in, b)
}
