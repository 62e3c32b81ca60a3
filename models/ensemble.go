package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const DefaultObjective = "reg:squarederror"

// EnsembleOptions describes how the tree outputs are combined into a prediction.
type EnsembleOptions struct {
	BaseScore    float64
	NumFeatures  int
	FeatureNames []string
	Objective    string
}

// NewDefaultEnsembleOptions returns the options of an xgboost regressor with default parameters
// for the given number of features
func NewDefaultEnsembleOptions(numFeatures int) *EnsembleOptions {
	return &EnsembleOptions{
		BaseScore:   0.5,
		NumFeatures: numFeatures,
		Objective:   DefaultObjective,
	}
}

// TreeEnsemble is an additive ensemble of regression trees on top of a base score. The output
// is the raw margin which equals the prediction for identity link regression objectives.
type TreeEnsemble struct {
	opt      *EnsembleOptions
	trees    []*Tree
	expected float64
}

// NewTreeEnsemble creates an immutable ensemble from already validated trees
func NewTreeEnsemble(trees []*Tree, opt *EnsembleOptions) (*TreeEnsemble, error) {
	if len(trees) == 0 {
		return nil, ErrNoTrees
	}
	if opt == nil {
		return nil, ErrNoOptions
	}
	if opt.NumFeatures <= 0 {
		return nil, fmt.Errorf("ensemble has %d features, %w", opt.NumFeatures, ErrFeatureLenMismatch)
	}
	if len(opt.FeatureNames) != 0 && len(opt.FeatureNames) != opt.NumFeatures {
		return nil, fmt.Errorf("got %d feature names for %d features, %w", len(opt.FeatureNames), opt.NumFeatures, ErrFeatureNamesMismatch)
	}
	for i, tree := range trees {
		for _, n := range tree.nodes {
			if !n.IsLeaf() && n.Feature >= opt.NumFeatures {
				return nil, fmt.Errorf("tree %d splits on feature %d of %d, %w", i, n.Feature, opt.NumFeatures, ErrFeatureOutOfRange)
			}
		}
	}

	o := *opt
	o.FeatureNames = make([]string, len(opt.FeatureNames))
	copy(o.FeatureNames, opt.FeatureNames)
	if o.Objective == "" {
		o.Objective = DefaultObjective
	}

	e := &TreeEnsemble{
		opt:      &o,
		trees:    make([]*Tree, len(trees)),
		expected: o.BaseScore,
	}
	copy(e.trees, trees)
	for _, tree := range e.trees {
		e.expected += tree.ExpectedValue()
	}
	return e, nil
}

// NumFeatures returns the number of columns every input row must have
func (e *TreeEnsemble) NumFeatures() int {
	return e.opt.NumFeatures
}

// FeatureNames returns the column names the model was fitted with. It is empty if the model
// was fitted without named columns.
func (e *TreeEnsemble) FeatureNames() []string {
	names := make([]string, len(e.opt.FeatureNames))
	copy(names, e.opt.FeatureNames)
	return names
}

func (e *TreeEnsemble) BaseScore() float64 {
	return e.opt.BaseScore
}

func (e *TreeEnsemble) Objective() string {
	return e.opt.Objective
}

func (e *TreeEnsemble) Trees() []*Tree {
	trees := make([]*Tree, len(e.trees))
	copy(trees, e.trees)
	return trees
}

// ExpectedValue is the base score plus the cover weighted mean output of every tree. This is
// the baseline that attributions are measured against.
func (e *TreeEnsemble) ExpectedValue() float64 {
	return e.expected
}

func (e *TreeEnsemble) checkRow(row []float64) error {
	if len(row) != e.opt.NumFeatures {
		return fmt.Errorf("got %d features in row, but expected %d, %w", len(row), e.opt.NumFeatures, ErrFeatureLenMismatch)
	}
	return nil
}

// PredictRow returns the prediction of a single feature row
func (e *TreeEnsemble) PredictRow(row []float64) (float64, error) {
	if err := e.checkRow(row); err != nil {
		return 0, err
	}
	// accumulated in single precision like the booster
	res := float32(e.opt.BaseScore)
	for _, tree := range e.trees {
		res += float32(tree.Predict(row))
	}
	return float64(res), nil
}

// Predict returns one prediction per row of the design matrix
func (e *TreeEnsemble) Predict(x mat.Matrix) ([]float64, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	m, n := x.Dims()
	if n != e.opt.NumFeatures {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, e.opt.NumFeatures, ErrFeatureLenMismatch)
	}

	res := make([]float64, m)
	row := make([]float64, n)
	for i := 0; i < m; i++ {
		mat.Row(row, i, x)
		pred, err := e.PredictRow(row)
		if err != nil {
			return nil, err
		}
		res[i] = pred
	}
	return res, nil
}

// Explain attributes the prediction of a single row to each of its features
func (e *TreeEnsemble) Explain(row []float64) (Explanation, error) {
	if err := e.checkRow(row); err != nil {
		return Explanation{}, err
	}
	phi := make([]float64, e.opt.NumFeatures)
	for _, tree := range e.trees {
		tree.Attribute(row, phi)
	}
	return Explanation{
		Expected: e.expected,
		Values:   phi,
	}, nil
}
