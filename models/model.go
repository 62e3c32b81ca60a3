// Package models contains the pre-fitted regressor used for inference: an ensemble of gradient
// boosted regression trees decoded from the XGBoost JSON model format, together with an exact
// tree-structured attribution of every prediction.
package models

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Model is an immutable pre-fitted regressor
type Model interface {
	Predict(x mat.Matrix) ([]float64, error)
	Explain(row []float64) (Explanation, error)
	NumFeatures() int
	FeatureNames() []string
}

// Explanation is the additive attribution of a single prediction. The expected value plus the
// sum of all values equals the model output for that row.
type Explanation struct {
	Expected float64   `json:"expected_value"`
	Values   []float64 `json:"values"`
}

// Total reconstructs the model output from the attribution
func (e Explanation) Total() float64 {
	return e.Expected + floats.Sum(e.Values)
}
