package loanpredictor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aouyang1/go-loanpredictor/feature"
	mat_ "github.com/aouyang1/go-loanpredictor/mat"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrUnexpectedColumn = errors.New("unexpected input column")
	ErrDuplicateColumn  = errors.New("column is both numeric and categorical")
	ErrEmptyBatch       = errors.New("no inputs in batch")
	ErrWidthMismatch    = errors.New("assembled row width does not match columns")
)

// NumericScaler transforms the numeric fields of one input row
type NumericScaler interface {
	Fields() []string
	Transform(row map[string]float64) ([]float64, error)
}

// CategoricalEncoder one-hot encodes the categorical fields of one input row and owns the
// vocabulary of every field
type CategoricalEncoder interface {
	Fields() []string
	Categories(field string) ([]string, bool)
	FeatureNamesOut() *feature.Labels
	Transform(row map[string]string) ([]float64, error)
}

// Input is a single row of raw user input keyed by field name
type Input struct {
	Categorical map[string]string  `json:"categorical" yaml:"categorical"`
	Numeric     map[string]float64 `json:"numeric" yaml:"numeric"`
}

// CategoricalField is a categorical input and its ordered vocabulary
type CategoricalField struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// Vocabulary lists every input field the assembler accepts
type Vocabulary struct {
	Categorical []CategoricalField `json:"categorical"`
	Numeric     []string           `json:"numeric"`
}

// Assembler turns raw inputs into the feature row the regressor was fitted on: the scaled
// numeric columns followed by the one-hot columns.
type Assembler struct {
	scaler  NumericScaler
	encoder CategoricalEncoder
	labels  *feature.Labels
}

func NewAssembler(scaler NumericScaler, encoder CategoricalEncoder) (*Assembler, error) {
	numeric := make(map[string]struct{})
	var labels []feature.Feature
	for _, name := range scaler.Fields() {
		numeric[name] = struct{}{}
		labels = append(labels, feature.NewNumeric(name))
	}
	for _, name := range encoder.Fields() {
		if _, exists := numeric[name]; exists {
			return nil, fmt.Errorf("%s, %w", name, ErrDuplicateColumn)
		}
	}
	labels = append(labels, encoder.FeatureNamesOut().Labels()...)

	return &Assembler{
		scaler:  scaler,
		encoder: encoder,
		labels:  feature.NewLabels(labels),
	}, nil
}

// Columns returns the labels of the assembled row in order
func (a *Assembler) Columns() *feature.Labels {
	return a.labels
}

// Width is the number of assembled columns
func (a *Assembler) Width() int {
	return a.labels.Len()
}

// Vocabulary returns the accepted fields. Categorical options come from the encoder.
func (a *Assembler) Vocabulary() Vocabulary {
	var v Vocabulary
	for _, name := range a.encoder.Fields() {
		cats, _ := a.encoder.Categories(name)
		v.Categorical = append(v.Categorical, CategoricalField{Name: name, Categories: cats})
	}
	v.Numeric = a.scaler.Fields()
	return v
}

func (a *Assembler) checkColumns(in Input) error {
	var unexpected []string
	known := make(map[string]struct{})
	for _, name := range a.scaler.Fields() {
		known[name] = struct{}{}
	}
	for name := range in.Numeric {
		if _, exists := known[name]; !exists {
			unexpected = append(unexpected, name)
		}
	}

	known = make(map[string]struct{})
	for _, name := range a.encoder.Fields() {
		known[name] = struct{}{}
	}
	for name := range in.Categorical {
		if _, exists := known[name]; !exists {
			unexpected = append(unexpected, name)
		}
	}

	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return fmt.Errorf("%v, %w", unexpected, ErrUnexpectedColumn)
	}
	return nil
}

// Assemble builds the feature row for a single input
func (a *Assembler) Assemble(in Input) ([]float64, error) {
	if err := a.checkColumns(in); err != nil {
		return nil, err
	}

	num, err := a.scaler.Transform(in.Numeric)
	if err != nil {
		return nil, fmt.Errorf("unable to scale numeric features, %w", err)
	}
	cat, err := a.encoder.Transform(in.Categorical)
	if err != nil {
		return nil, fmt.Errorf("unable to encode categorical features, %w", err)
	}

	row := make([]float64, 0, len(num)+len(cat))
	row = append(row, num...)
	row = append(row, cat...)
	if len(row) != a.Width() {
		return nil, fmt.Errorf("assembled %d values for %d columns, %w", len(row), a.Width(), ErrWidthMismatch)
	}
	return row, nil
}

// AssembleBatch builds a design matrix with one assembled row per input
func (a *Assembler) AssembleBatch(inputs []Input) (*mat.Dense, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	rows := make([][]float64, 0, len(inputs))
	for i, in := range inputs {
		row, err := a.Assemble(in)
		if err != nil {
			return nil, fmt.Errorf("at input %d, %w", i, err)
		}
		rows = append(rows, row)
	}
	return mat_.NewDenseFromArray(rows)
}
