package loanpredictor

import (
	"fmt"

	"github.com/aouyang1/go-loanpredictor/artifact"
)

func Example_predictLoanAmount() {
	b, err := artifact.Load(artifact.NewDefaultPaths("testdata"))
	if err != nil {
		panic(err)
	}
	p, err := NewFromBundle(b, nil)
	if err != nil {
		panic(err)
	}

	res, err := p.Predict(Input{
		Categorical: map[string]string{
			"sector":           "Agriculture",
			"borrower_genders": "female",
			"country":          "Kenya",
		},
		Numeric: map[string]float64{
			"term_in_months": 8,
			"lender_count":   12,
		},
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Predicted Loan: %d\n", res.Rounded)
	fmt.Printf("Potential Variation: %d - %d\n", res.Lower, res.Upper)
	fmt.Printf("expected value: %.1f\n", res.Attribution.Expected)
	for _, c := range res.Attribution.Ranked() {
		fmt.Printf("%s: %.1f\n", c.Label(), c.Attribution)
	}
	// Output:
	// Predicted Loan: 470
	// Potential Variation: 360 - 580
	// expected value: 524.5
	// lender_count = 12: -60.5
	// sector_Agriculture = 1: 18.0
	// country_Kenya = 1: -12.0
}
