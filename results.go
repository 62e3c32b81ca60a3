package loanpredictor

import (
	"math"
	"sort"
	"strconv"

	"github.com/aouyang1/go-loanpredictor/feature"
	"gonum.org/v1/gonum/floats"
)

// Results is the outcome of a single prediction
type Results struct {
	Input       Input       `json:"input" yaml:"input"`
	Prediction  float64     `json:"prediction" yaml:"prediction"`
	Rounded     int64       `json:"rounded" yaml:"rounded"`
	Lower       int64       `json:"lower" yaml:"lower"`
	Upper       int64       `json:"upper" yaml:"upper"`
	Attribution Attribution `json:"attribution" yaml:"attribution"`
}

// Contribution is the share of the prediction attributed to one column. Positive values
// raise the prediction, negative values lower it.
type Contribution struct {
	Feature     string  `json:"feature" yaml:"feature"`
	Source      string  `json:"source" yaml:"source"`
	Category    string  `json:"category,omitempty" yaml:"category,omitempty"`
	Value       float64 `json:"value" yaml:"value"`
	Display     string  `json:"display" yaml:"display"`
	Attribution float64 `json:"attribution" yaml:"attribution"`
}

// Label renders the contribution as "feature = display"
func (c Contribution) Label() string {
	return c.Feature + " = " + c.Display
}

// Attribution breaks a prediction down into a baseline and per column contributions
type Attribution struct {
	Expected      float64        `json:"expected_value" yaml:"expected_value"`
	Contributions []Contribution `json:"contributions" yaml:"contributions"`
}

// Total reconstructs the prediction from the baseline and every contribution
func (a Attribution) Total() float64 {
	vals := make([]float64, 0, len(a.Contributions))
	for _, c := range a.Contributions {
		vals = append(vals, c.Attribution)
	}
	return a.Expected + floats.Sum(vals)
}

// ByField folds the one-hot columns back into their categorical field. The display value of
// a folded field is the active category.
func (a Attribution) ByField() []Contribution {
	var res []Contribution
	idx := make(map[string]int)
	for _, c := range a.Contributions {
		i, exists := idx[c.Source]
		if !exists {
			i = len(res)
			idx[c.Source] = i
			res = append(res, Contribution{Feature: c.Source, Source: c.Source})
		}
		res[i].Attribution += c.Attribution
		switch {
		case c.Feature == c.Source:
			res[i].Value = c.Value
			res[i].Display = c.Display
		case c.Value != 0:
			// active category of a one-hot field
			res[i].Category = c.Category
			res[i].Value = c.Value
			res[i].Display = c.Category
		}
	}
	return res
}

// Ranked returns the non zero contributions ordered by decreasing magnitude
func (a Attribution) Ranked() []Contribution {
	res := make([]Contribution, 0, len(a.Contributions))
	for _, c := range a.Contributions {
		if c.Attribution == 0 {
			continue
		}
		res = append(res, c)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return math.Abs(res[i].Attribution) > math.Abs(res[j].Attribution)
	})
	return res
}

// displayRange rounds the prediction and both ends of the offset range half to even, clamping
// the lower bound at zero
func displayRange(prediction float64, offset int) (rounded, lower, upper int64) {
	rounded = int64(math.RoundToEven(prediction))
	lower = max(0, int64(math.RoundToEven(prediction-float64(offset))))
	upper = int64(math.RoundToEven(prediction + float64(offset)))
	return rounded, lower, upper
}

func newContributions(labels *feature.Labels, in Input, row, values []float64) []Contribution {
	res := make([]Contribution, 0, labels.Len())
	for i, label := range labels.Labels() {
		c := Contribution{
			Feature:     label.String(),
			Source:      label.Source(),
			Value:       row[i],
			Attribution: values[i],
		}
		switch label.Type() {
		case feature.FeatureTypeNumeric:
			c.Display = strconv.FormatFloat(in.Numeric[label.Source()], 'g', -1, 64)
		default:
			if oh, ok := label.(*feature.OneHot); ok {
				c.Category = oh.Category
			}
			c.Display = strconv.FormatFloat(row[i], 'g', -1, 64)
		}
		res = append(res, c)
	}
	return res
}
