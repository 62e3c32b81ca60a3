package feature

// Numeric is a scaled numeric input column, named after its input field.
type Numeric struct {
	Name string `json:"name"`
}

func NewNumeric(name string) *Numeric {
	return &Numeric{name}
}

func (n Numeric) String() string {
	return n.Name
}

func (n Numeric) Type() FeatureType {
	return FeatureTypeNumeric
}

func (n Numeric) Source() string {
	return n.Name
}
