// Package loanpredictor predicts Kiva loan amounts from a handful of borrower attributes with a
// pre-fitted gradient boosted tree regressor and explains every prediction with additive per
// column attributions.
package loanpredictor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aouyang1/go-loanpredictor/artifact"
	"github.com/aouyang1/go-loanpredictor/feature"
	"github.com/aouyang1/go-loanpredictor/models"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrFeatureLenMismatch = errors.New("assembled columns do not match the number of model features")
	ErrColumnMismatch     = errors.New("assembled columns do not match the model feature names")
	ErrNoBundle           = errors.New("no artifact bundle")
	ErrNoPrediction       = errors.New("regressor returned no prediction")
	ErrInvalidRangeOffset = errors.New("range offset must not be negative")
)

// Predictor assembles raw inputs, predicts the loan amount and attributes the prediction to
// every assembled column. It only reads immutable state and is safe for concurrent use.
type Predictor struct {
	opt       *Options
	assembler *Assembler
	regressor models.Model
}

// New creates a predictor and verifies that the assembled columns line up with the columns
// the regressor was fitted on. If no options are provided a default is used.
func New(regressor models.Model, scaler NumericScaler, encoder CategoricalEncoder, opt *Options) (*Predictor, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if opt.RangeOffset < 0 {
		return nil, fmt.Errorf("range offset %d, %w", opt.RangeOffset, ErrInvalidRangeOffset)
	}

	assembler, err := NewAssembler(scaler, encoder)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize feature assembler, %w", err)
	}

	if assembler.Width() != regressor.NumFeatures() {
		return nil, fmt.Errorf("assembled %d columns, but model expects %d, %w",
			assembler.Width(), regressor.NumFeatures(), ErrFeatureLenMismatch)
	}
	if names := regressor.FeatureNames(); len(names) > 0 {
		for i, col := range assembler.Columns().Strings() {
			if names[i] != col {
				return nil, fmt.Errorf("column %d is %q, but model expects %q, %w", i, col, names[i], ErrColumnMismatch)
			}
		}
	}

	return &Predictor{
		opt:       opt,
		assembler: assembler,
		regressor: regressor,
	}, nil
}

// NewFromBundle creates a predictor from loaded artifacts
func NewFromBundle(b *artifact.Bundle, opt *Options) (*Predictor, error) {
	if b == nil {
		return nil, ErrNoBundle
	}
	return New(b.Regressor, b.Scaler, b.Encoder, opt)
}

// Options returns a copy of the presentation options
func (p *Predictor) Options() *Options {
	opt := *p.opt
	return &opt
}

// Columns returns the assembled column labels
func (p *Predictor) Columns() *feature.Labels {
	return p.assembler.Columns()
}

// Vocabulary returns every accepted input field with the categorical options
func (p *Predictor) Vocabulary() Vocabulary {
	return p.assembler.Vocabulary()
}

// Predict runs the full pipeline for one input
func (p *Predictor) Predict(in Input) (*Results, error) {
	row, err := p.assembler.Assemble(in)
	if err != nil {
		return nil, err
	}

	preds, err := p.regressor.Predict(mat.NewDense(1, len(row), row))
	if err != nil {
		return nil, fmt.Errorf("unable to predict, %w", err)
	}
	if len(preds) != 1 {
		return nil, ErrNoPrediction
	}
	prediction := preds[0]

	exp, err := p.regressor.Explain(row)
	if err != nil {
		return nil, fmt.Errorf("unable to explain prediction, %w", err)
	}

	rounded, lower, upper := displayRange(prediction, p.opt.RangeOffset)
	res := &Results{
		Input:      in,
		Prediction: prediction,
		Rounded:    rounded,
		Lower:      lower,
		Upper:      upper,
		Attribution: Attribution{
			Expected:      exp.Expected,
			Contributions: newContributions(p.assembler.Columns(), in, row, exp.Values),
		},
	}
	slog.Debug("predicted loan amount",
		"prediction", prediction,
		"lower", lower,
		"upper", upper,
		"expected_value", exp.Expected,
	)
	return res, nil
}

// PredictBatch predicts every input without attribution
func (p *Predictor) PredictBatch(inputs []Input) ([]float64, error) {
	x, err := p.assembler.AssembleBatch(inputs)
	if err != nil {
		return nil, err
	}
	return p.regressor.Predict(x)
}
