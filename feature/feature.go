// Package feature describes the columns of an assembled feature row.
package feature

type FeatureType int

const (
	FeatureTypeNumeric FeatureType = iota
	FeatureTypeOneHot
)

func (t FeatureType) String() string {
	switch t {
	case FeatureTypeNumeric:
		return "numeric"
	case FeatureTypeOneHot:
		return "onehot"
	}
	return "unknown"
}

// Feature is a single column of the feature row presented to the regressor.
type Feature interface {
	// String is the column name the regressor was fitted with
	String() string
	Type() FeatureType
	// Source is the input field the column is derived from
	Source() string
}
