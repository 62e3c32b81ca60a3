package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	loanpredictor "github.com/aouyang1/go-loanpredictor"
)

type selectOption struct {
	Value    string
	Selected bool
}

type selectField struct {
	Name    string
	Options []selectOption
}

type numberField struct {
	Name  string
	Min   int
	Max   int
	Value string
}

// formState is the rendered form with the current selections
type formState struct {
	Categorical []selectField
	Numeric     []numberField
}

func newFormState(vocab loanpredictor.Vocabulary, opt *Options, in *loanpredictor.Input) formState {
	var f formState
	for _, field := range vocab.Categorical {
		sf := selectField{Name: field.Name}
		selected := ""
		if in != nil {
			selected = in.Categorical[field.Name]
		}
		for i, cat := range field.Categories {
			sf.Options = append(sf.Options, selectOption{
				Value:    cat,
				Selected: cat == selected || (selected == "" && i == 0),
			})
		}
		f.Categorical = append(f.Categorical, sf)
	}
	for _, name := range vocab.Numeric {
		nf := numberField{
			Name:  name,
			Min:   opt.NumericMin,
			Max:   opt.NumericMax,
			Value: strconv.Itoa(opt.NumericValue),
		}
		if in != nil {
			if v, exists := in.Numeric[name]; exists {
				nf.Value = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		f.Numeric = append(f.Numeric, nf)
	}
	return f
}

// parseForm reads the submitted form fields into an input row and validates it
func parseForm(r *http.Request, vocab loanpredictor.Vocabulary, opt *Options) (loanpredictor.Input, error) {
	in := loanpredictor.Input{
		Categorical: make(map[string]string),
		Numeric:     make(map[string]float64),
	}
	if err := r.ParseForm(); err != nil {
		return in, fmt.Errorf("unable to parse form, %w", err)
	}

	for _, field := range vocab.Categorical {
		if !r.PostForm.Has(field.Name) {
			return in, fmt.Errorf("%s, %w", field.Name, loanpredictor.ErrMissingField)
		}
		in.Categorical[field.Name] = r.PostForm.Get(field.Name)
	}
	for _, name := range vocab.Numeric {
		if !r.PostForm.Has(name) {
			return in, fmt.Errorf("%s, %w", name, loanpredictor.ErrMissingField)
		}
		raw := strings.TrimSpace(r.PostForm.Get(name))
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("%s=%q, %w", name, raw, loanpredictor.ErrInvalidNumber)
		}
		in.Numeric[name] = v
	}
	return in, vocab.Validate(in, opt.Bounds())
}
