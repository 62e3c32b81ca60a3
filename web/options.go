package web

import loanpredictor "github.com/aouyang1/go-loanpredictor"

const (
	DefaultNumericMin   = 0
	DefaultNumericMax   = 100
	DefaultNumericValue = 1
)

// Options bounds the numeric form widgets. The same bounds are enforced server side.
type Options struct {
	NumericMin   int
	NumericMax   int
	NumericValue int
}

func NewDefaultOptions() *Options {
	return &Options{
		NumericMin:   DefaultNumericMin,
		NumericMax:   DefaultNumericMax,
		NumericValue: DefaultNumericValue,
	}
}

// Bounds is the numeric range enforced on submitted inputs
func (o *Options) Bounds() loanpredictor.Bounds {
	return loanpredictor.Bounds{Min: o.NumericMin, Max: o.NumericMax}
}
