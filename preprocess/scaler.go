package preprocess

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
)

// ScalerModel is the serializeable form of a fitted standard scaler.
type ScalerModel struct {
	FeatureNames []string  `json:"feature_names_in"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
	WithMean     *bool     `json:"with_mean,omitempty"`
	WithStd      *bool     `json:"with_std,omitempty"`
}

// StandardScaler centers and scales numeric columns with statistics fixed at training time.
type StandardScaler struct {
	names []string
	mean  []float64
	scale []float64
}

// NewStandardScaler validates the fitted statistics and returns an immutable scaler.
func NewStandardScaler(model ScalerModel) (*StandardScaler, error) {
	n := len(model.FeatureNames)
	if n == 0 {
		return nil, ErrNoFeatures
	}
	if err := checkUnique(model.FeatureNames); err != nil {
		return nil, err
	}

	withMean := model.WithMean == nil || *model.WithMean
	withStd := model.WithStd == nil || *model.WithStd

	mean := make([]float64, n)
	if withMean {
		if len(model.Mean) != n {
			return nil, fmt.Errorf("got %d means for %d features, %w", len(model.Mean), n, ErrFeatureLenMismatch)
		}
		copy(mean, model.Mean)
	}

	scale := make([]float64, n)
	floats.AddConst(1.0, scale)
	if withStd {
		if len(model.Scale) != n {
			return nil, fmt.Errorf("got %d scales for %d features, %w", len(model.Scale), n, ErrFeatureLenMismatch)
		}
		for i, s := range model.Scale {
			// constant features keep their centered value
			if s == 0 {
				continue
			}
			scale[i] = s
		}
	}

	names := make([]string, n)
	copy(names, model.FeatureNames)
	return &StandardScaler{
		names: names,
		mean:  mean,
		scale: scale,
	}, nil
}

// DecodeStandardScaler reads a scaler model from json
func DecodeStandardScaler(r io.Reader) (*StandardScaler, error) {
	var model ScalerModel
	if err := decode(r, &model); err != nil {
		return nil, err
	}
	return NewStandardScaler(model)
}

// Fields returns the input column names in fitted order
func (s *StandardScaler) Fields() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Transform scales a single row keyed by column name and returns the values in fitted order.
func (s *StandardScaler) Transform(row map[string]float64) ([]float64, error) {
	res := make([]float64, len(s.names))
	for i, name := range s.names {
		val, exists := row[name]
		if !exists {
			return nil, fmt.Errorf("%s, %w", name, ErrMissingColumn)
		}
		res[i] = val
	}
	floats.Sub(res, s.mean)
	floats.Div(res, s.scale)
	return res, nil
}

// InverseTransform maps scaled values back to the raw input space.
func (s *StandardScaler) InverseTransform(scaled []float64) ([]float64, error) {
	if len(scaled) != len(s.names) {
		return nil, fmt.Errorf("got %d values for %d features, %w", len(scaled), len(s.names), ErrFeatureLenMismatch)
	}
	res := make([]float64, len(scaled))
	copy(res, scaled)
	floats.Mul(res, s.scale)
	floats.Add(res, s.mean)
	return res, nil
}
