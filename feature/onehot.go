package feature

import "fmt"

// OneHot is the indicator column of one category of a categorical field. The
// column name follows the <field>_<category> convention of the encoder.
type OneHot struct {
	Field    string `json:"field"`
	Category string `json:"category"`
}

func NewOneHot(field, category string) *OneHot {
	return &OneHot{field, category}
}

func (o OneHot) String() string {
	return fmt.Sprintf("%s_%s", o.Field, o.Category)
}

func (o OneHot) Type() FeatureType {
	return FeatureTypeOneHot
}

func (o OneHot) Source() string {
	return o.Field
}
