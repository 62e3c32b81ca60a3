package preprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool {
	return &b
}

func testScaler(t *testing.T) *StandardScaler {
	s, err := NewStandardScaler(ScalerModel{
		FeatureNames: []string{"term_in_months", "lender_count"},
		Mean:         []float64{14, 20},
		Scale:        []float64{8, 25},
	})
	require.Nil(t, err)
	return s
}

func TestStandardScalerTransform(t *testing.T) {
	s := testScaler(t)

	testData := map[string]struct {
		row      map[string]float64
		expected []float64
		err      error
	}{
		"at mean": {
			row:      map[string]float64{"term_in_months": 14, "lender_count": 20},
			expected: []float64{0, 0},
		},
		"example input": {
			row:      map[string]float64{"term_in_months": 8, "lender_count": 12},
			expected: []float64{-0.75, -0.32},
		},
		"column order independent of map": {
			row:      map[string]float64{"lender_count": 45, "term_in_months": 22},
			expected: []float64{1, 1},
		},
		"missing column": {
			row: map[string]float64{"term_in_months": 8},
			err: ErrMissingColumn,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := s.Transform(td.row)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.InDeltaSlice(t, td.expected, res, 1e-12)
		})
	}
}

func TestStandardScalerInverseTransform(t *testing.T) {
	s := testScaler(t)

	scaled, err := s.Transform(map[string]float64{"term_in_months": 8, "lender_count": 12})
	require.Nil(t, err)

	raw, err := s.InverseTransform(scaled)
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{8, 12}, raw, 1e-12)

	_, err = s.InverseTransform([]float64{1})
	assert.ErrorIs(t, err, ErrFeatureLenMismatch)
}

func TestNewStandardScaler(t *testing.T) {
	testData := map[string]struct {
		model    ScalerModel
		row      map[string]float64
		expected []float64
		err      error
	}{
		"no features": {
			err: ErrNoFeatures,
		},
		"duplicate features": {
			model: ScalerModel{
				FeatureNames: []string{"a", "a"},
				Mean:         []float64{0, 0},
				Scale:        []float64{1, 1},
			},
			err: ErrDuplicateFeature,
		},
		"mean length mismatch": {
			model: ScalerModel{
				FeatureNames: []string{"a", "b"},
				Mean:         []float64{0},
				Scale:        []float64{1, 1},
			},
			err: ErrFeatureLenMismatch,
		},
		"scale length mismatch": {
			model: ScalerModel{
				FeatureNames: []string{"a", "b"},
				Mean:         []float64{0, 0},
				Scale:        []float64{1},
			},
			err: ErrFeatureLenMismatch,
		},
		"zero scale": {
			model: ScalerModel{
				FeatureNames: []string{"a"},
				Mean:         []float64{3},
				Scale:        []float64{0},
			},
			row:      map[string]float64{"a": 5},
			expected: []float64{2},
		},
		"without mean": {
			model: ScalerModel{
				FeatureNames: []string{"a"},
				Scale:        []float64{2},
				WithMean:     boolPtr(false),
			},
			row:      map[string]float64{"a": 5},
			expected: []float64{2.5},
		},
		"without std": {
			model: ScalerModel{
				FeatureNames: []string{"a"},
				Mean:         []float64{1},
				WithStd:      boolPtr(false),
			},
			row:      map[string]float64{"a": 5},
			expected: []float64{4},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			s, err := NewStandardScaler(td.model)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)

			res, err := s.Transform(td.row)
			require.Nil(t, err)
			assert.InDeltaSlice(t, td.expected, res, 1e-12)
		})
	}
}

func TestDecodeStandardScaler(t *testing.T) {
	s, err := DecodeStandardScaler(strings.NewReader(`{
		"feature_names_in": ["term_in_months", "lender_count"],
		"mean": [14, 20],
		"scale": [8, 25],
		"var": [64, 625],
		"with_mean": true,
		"with_std": true
	}`))
	require.Nil(t, err)
	assert.Equal(t, []string{"term_in_months", "lender_count"}, s.Fields())

	_, err = DecodeStandardScaler(strings.NewReader(`{"feature_names_in": [`))
	assert.NotNil(t, err)
}
