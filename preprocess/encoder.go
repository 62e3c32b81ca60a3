package preprocess

import (
	"fmt"
	"io"

	"github.com/aouyang1/go-loanpredictor/feature"
)

// HandleUnknown controls how the encoder treats a category it was not fitted with.
type HandleUnknown string

const (
	HandleUnknownError  HandleUnknown = "error"
	HandleUnknownIgnore HandleUnknown = "ignore"
)

// EncoderModel is the serializeable form of a fitted one-hot encoder.
type EncoderModel struct {
	FeatureNames  []string      `json:"feature_names_in"`
	Categories    [][]string    `json:"categories"`
	HandleUnknown HandleUnknown `json:"handle_unknown,omitempty"`
}

// OneHotEncoder maps each categorical column onto a fixed, ordered vocabulary and emits one
// indicator column per category.
type OneHotEncoder struct {
	names         []string
	categories    [][]string
	index         []map[string]int
	handleUnknown HandleUnknown
	labels        *feature.Labels
}

// NewOneHotEncoder validates the fitted vocabulary and returns an immutable encoder.
func NewOneHotEncoder(model EncoderModel) (*OneHotEncoder, error) {
	n := len(model.FeatureNames)
	if n == 0 {
		return nil, ErrNoFeatures
	}
	if err := checkUnique(model.FeatureNames); err != nil {
		return nil, err
	}
	if len(model.Categories) != n {
		return nil, fmt.Errorf("got %d category lists for %d features, %w", len(model.Categories), n, ErrFeatureLenMismatch)
	}

	handleUnknown := model.HandleUnknown
	switch handleUnknown {
	case "":
		handleUnknown = HandleUnknownError
	case HandleUnknownError, HandleUnknownIgnore:
	default:
		return nil, fmt.Errorf("%s, %w", handleUnknown, ErrUnknownPolicy)
	}

	e := &OneHotEncoder{
		names:         make([]string, n),
		categories:    make([][]string, n),
		index:         make([]map[string]int, n),
		handleUnknown: handleUnknown,
	}
	copy(e.names, model.FeatureNames)

	var labels []feature.Feature
	for i, cats := range model.Categories {
		if len(cats) == 0 {
			return nil, fmt.Errorf("no categories for %s, %w", e.names[i], ErrNoFeatures)
		}
		if err := checkUnique(cats); err != nil {
			return nil, fmt.Errorf("in %s, %w", e.names[i], err)
		}
		e.categories[i] = make([]string, len(cats))
		copy(e.categories[i], cats)

		e.index[i] = make(map[string]int, len(cats))
		for j, cat := range cats {
			e.index[i][cat] = j
			labels = append(labels, feature.NewOneHot(e.names[i], cat))
		}
	}
	e.labels = feature.NewLabels(labels)
	return e, nil
}

// DecodeOneHotEncoder reads an encoder model from json
func DecodeOneHotEncoder(r io.Reader) (*OneHotEncoder, error) {
	var model EncoderModel
	if err := decode(r, &model); err != nil {
		return nil, err
	}
	return NewOneHotEncoder(model)
}

// Fields returns the input column names in fitted order
func (e *OneHotEncoder) Fields() []string {
	names := make([]string, len(e.names))
	copy(names, e.names)
	return names
}

// Categories returns a copy of the ordered vocabulary of a field
func (e *OneHotEncoder) Categories(field string) ([]string, bool) {
	for i, name := range e.names {
		if name == field {
			cats := make([]string, len(e.categories[i]))
			copy(cats, e.categories[i])
			return cats, true
		}
	}
	return nil, false
}

// FeatureNamesOut returns the output column labels, <field>_<category>, in output order
func (e *OneHotEncoder) FeatureNamesOut() *feature.Labels {
	return e.labels
}

// Width is the total number of output columns
func (e *OneHotEncoder) Width() int {
	return e.labels.Len()
}

// Transform encodes a single row keyed by column name.
func (e *OneHotEncoder) Transform(row map[string]string) ([]float64, error) {
	res := make([]float64, e.Width())
	offset := 0
	for i, name := range e.names {
		val, exists := row[name]
		if !exists {
			return nil, fmt.Errorf("%s, %w", name, ErrMissingColumn)
		}
		j, known := e.index[i][val]
		switch {
		case known:
			res[offset+j] = 1.0
		case e.handleUnknown == HandleUnknownError:
			return nil, fmt.Errorf("%q in %s, %w", val, name, ErrUnknownCategory)
		}
		offset += len(e.categories[i])
	}
	return res, nil
}
