// Package preprocess holds the pre-fitted input transforms applied before the regressor: a
// standard scaler for numeric columns and a one-hot encoder for categorical columns. Both are
// loaded from JSON exports of the fitted scikit-learn objects and are immutable once decoded.
package preprocess

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

var (
	ErrMissingColumn      = errors.New("missing input column")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrNoFeatures         = errors.New("no input features")
	ErrFeatureLenMismatch = errors.New("number of fitted statistics does not match number of features")
	ErrDuplicateFeature   = errors.New("duplicate input feature")
	ErrUnknownPolicy      = errors.New("unknown handle_unknown policy")
)

func decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("unable to decode json, %w", err)
	}
	return nil
}

func checkUnique(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, exists := seen[name]; exists {
			return fmt.Errorf("%s, %w", name, ErrDuplicateFeature)
		}
		seen[name] = struct{}{}
	}
	return nil
}
