package loanpredictor

import (
	"testing"

	"github.com/aouyang1/go-loanpredictor/artifact"
	"github.com/aouyang1/go-loanpredictor/models"
	"github.com/aouyang1/go-loanpredictor/preprocess"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdataDir = "testdata"

func loadTestBundle(t testing.TB) *artifact.Bundle {
	t.Helper()
	b, err := artifact.Load(artifact.NewDefaultPaths(testdataDir))
	require.Nil(t, err)
	return b
}

func loadTestPredictor(t testing.TB) *Predictor {
	t.Helper()
	p, err := NewFromBundle(loadTestBundle(t), nil)
	require.Nil(t, err)
	return p
}

func exampleInput() Input {
	return Input{
		Categorical: map[string]string{
			"sector":           "Agriculture",
			"borrower_genders": "female",
			"country":          "Kenya",
		},
		Numeric: map[string]float64{
			"term_in_months": 8,
			"lender_count":   12,
		},
	}
}

func TestPredictorPredict(t *testing.T) {
	p := loadTestPredictor(t)

	testData := map[string]struct {
		input      Input
		prediction float64
		lower      int64
		upper      int64
		expected   []float64
		err        error
	}{
		"agriculture kenya": {
			input:      exampleInput(),
			prediction: 470,
			lower:      360,
			upper:      580,
			expected:   []float64{0, -60.5, 18, 0, 0, 0, 0, -12, 0},
		},
		"food philippines": {
			input: Input{
				Categorical: map[string]string{
					"sector":           "Food",
					"borrower_genders": "male",
					"country":          "Philippines",
				},
				Numeric: map[string]float64{
					"term_in_months": 14,
					"lender_count":   33,
				},
			},
			prediction: 650,
			lower:      540,
			upper:      760,
		},
		"unknown category": {
			input: Input{
				Categorical: map[string]string{
					"sector":           "Mining",
					"borrower_genders": "female",
					"country":          "Kenya",
				},
				Numeric: map[string]float64{
					"term_in_months": 8,
					"lender_count":   12,
				},
			},
			err: preprocess.ErrUnknownCategory,
		},
		"missing numeric": {
			input: Input{
				Categorical: exampleInput().Categorical,
				Numeric:     map[string]float64{"term_in_months": 8},
			},
			err: preprocess.ErrMissingColumn,
		},
		"extra column": {
			input: Input{
				Categorical: exampleInput().Categorical,
				Numeric: map[string]float64{
					"term_in_months": 8,
					"lender_count":   12,
					"loan_amount":    400,
				},
			},
			err: ErrUnexpectedColumn,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := p.Predict(td.input)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)

			assert.InDelta(t, td.prediction, res.Prediction, 1e-9)
			assert.Equal(t, td.lower, res.Lower)
			assert.Equal(t, td.upper, res.Upper)
			assert.Equal(t, res.Upper-res.Lower, int64(2*DefaultRangeOffset))
			assert.InDelta(t, 524.5, res.Attribution.Expected, 1e-9)
			assert.InDelta(t, res.Prediction, res.Attribution.Total(), 1e-6)
			require.Len(t, res.Attribution.Contributions, p.Columns().Len())

			if td.expected != nil {
				for i, c := range res.Attribution.Contributions {
					assert.InDelta(t, td.expected[i], c.Attribution, 1e-9, c.Feature)
				}
			}
		})
	}
}

func TestPredictorDeterministic(t *testing.T) {
	p := loadTestPredictor(t)

	first, err := p.Predict(exampleInput())
	require.Nil(t, err)
	second, err := p.Predict(exampleInput())
	require.Nil(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated prediction mismatch (-first +second):\n%s", diff)
	}
}

func TestPredictorRangeOffset(t *testing.T) {
	opt := NewDefaultOptions()
	opt.RangeOffset = 500

	p, err := NewFromBundle(loadTestBundle(t), opt)
	require.Nil(t, err)

	res, err := p.Predict(exampleInput())
	require.Nil(t, err)
	assert.Equal(t, int64(470), res.Rounded)
	assert.Equal(t, int64(0), res.Lower)
	assert.Equal(t, int64(970), res.Upper)
}

func TestPredictorVocabulary(t *testing.T) {
	p := loadTestPredictor(t)

	expected := Vocabulary{
		Categorical: []CategoricalField{
			{Name: "sector", Categories: []string{"Agriculture", "Food", "Retail"}},
			{Name: "borrower_genders", Categories: []string{"female", "male"}},
			{Name: "country", Categories: []string{"Kenya", "Philippines"}},
		},
		Numeric: []string{"term_in_months", "lender_count"},
	}
	if diff := cmp.Diff(expected, p.Vocabulary()); diff != "" {
		t.Errorf("vocabulary mismatch (-want +got):\n%s", diff)
	}
}

func TestPredictorPredictBatch(t *testing.T) {
	p := loadTestPredictor(t)

	food := exampleInput()
	food.Categorical = map[string]string{
		"sector":           "Food",
		"borrower_genders": "male",
		"country":          "Philippines",
	}
	food.Numeric = map[string]float64{"term_in_months": 14, "lender_count": 33}

	res, err := p.PredictBatch([]Input{exampleInput(), food})
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{470, 650}, res, 1e-9)

	_, err = p.PredictBatch(nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestNew(t *testing.T) {
	b := loadTestBundle(t)

	narrow, err := models.NewTreeEnsemble(b.Regressor.Trees(), models.NewDefaultEnsembleOptions(12))
	require.Nil(t, err)

	renamedOpt := models.NewDefaultEnsembleOptions(9)
	renamedOpt.FeatureNames = []string{
		"lender_count", "term_in_months",
		"sector_Agriculture", "sector_Food", "sector_Retail",
		"borrower_genders_female", "borrower_genders_male",
		"country_Kenya", "country_Philippines",
	}
	renamed, err := models.NewTreeEnsemble(b.Regressor.Trees(), renamedOpt)
	require.Nil(t, err)

	testData := map[string]struct {
		regressor models.Model
		opt       *Options
		err       error
	}{
		"valid": {
			regressor: b.Regressor,
		},
		"zero range offset": {
			regressor: b.Regressor,
			opt:       &Options{RangeOffset: 0},
		},
		"negative range offset": {
			regressor: b.Regressor,
			opt:       &Options{RangeOffset: -1},
			err:       ErrInvalidRangeOffset,
		},
		"width mismatch": {
			regressor: narrow,
			err:       ErrFeatureLenMismatch,
		},
		"name mismatch": {
			regressor: renamed,
			err:       ErrColumnMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := New(td.regressor, b.Scaler, b.Encoder, td.opt)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.Nil(t, err)
		})
	}

	_, err = NewFromBundle(nil, nil)
	assert.ErrorIs(t, err, ErrNoBundle)
}
