package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	loanpredictor "github.com/aouyang1/go-loanpredictor"
	urfave "github.com/urfave/cli/v2"
)

var (
	ErrUnknownFormat  = errors.New("unknown output format")
	ErrInvalidSetting = errors.New("expected field=value")
	ErrUnknownField   = errors.New("unknown input field")
	ErrDuplicateField = errors.New("field set more than once")

	setFlag = &urfave.StringSliceFlag{
		Name:    "set",
		Aliases: []string{"s"},
		Usage:   "Input field value, e.g. --set sector=Agriculture --set lender_count=12",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}

	plotFlag = &urfave.StringFlag{
		Name:  "plot",
		Usage: "Write the attribution chart to this html file (optional)",
	}

	predictCmd = &urfave.Command{
		Name:   "predict",
		Usage:  "Predict the loan amount for one input and explain it",
		Action: cmdPredict,
		Flags: []urfave.Flag{
			setFlag,
			formatFlag,
			plotFlag,
		},
	}
)

func cmdPredict(c *urfave.Context) error {
	cfg := getConfig(c)
	p, err := newPredictor(cfg)
	if err != nil {
		return err
	}

	in, err := parseSettings(c.StringSlice(setFlag.Name), p.Vocabulary(), float64(cfg.NumericValue))
	if err != nil {
		return err
	}
	if err := p.Validate(in, loanpredictor.Bounds{Min: cfg.NumericMin, Max: cfg.NumericMax}); err != nil {
		return err
	}

	res, err := p.Predict(in)
	if err != nil {
		return fmt.Errorf("predicting loan amount: %w", err)
	}

	if path := c.String(plotFlag.Name); path != "" {
		if err := loanpredictor.PlotResults(path, res, p.Options()); err != nil {
			return fmt.Errorf("plotting attribution: %w", err)
		}
		slog.Info("attribution plot written", "path", path)
	}

	return encode(c.App.Writer, c.String(formatFlag.Name), res)
}

// parseSettings builds an input from field=value pairs. Fields left unset take the first
// category or the default numeric value, matching the initial state of the form.
func parseSettings(settings []string, vocab loanpredictor.Vocabulary, numericDefault float64) (loanpredictor.Input, error) {
	in := loanpredictor.Input{
		Categorical: make(map[string]string),
		Numeric:     make(map[string]float64),
	}

	categorical := make(map[string]struct{})
	for _, field := range vocab.Categorical {
		categorical[field.Name] = struct{}{}
	}
	numeric := make(map[string]struct{})
	for _, name := range vocab.Numeric {
		numeric[name] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, s := range settings {
		field, val, found := strings.Cut(s, "=")
		field = strings.TrimSpace(field)
		if !found || field == "" {
			return in, fmt.Errorf("%q, %w", s, ErrInvalidSetting)
		}
		if _, exists := seen[field]; exists {
			return in, fmt.Errorf("%s, %w", field, ErrDuplicateField)
		}
		seen[field] = struct{}{}

		if _, exists := categorical[field]; exists {
			in.Categorical[field] = strings.TrimSpace(val)
			continue
		}
		if _, exists := numeric[field]; exists {
			v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil {
				return in, fmt.Errorf("%s=%q, %w", field, val, loanpredictor.ErrInvalidNumber)
			}
			in.Numeric[field] = v
			continue
		}
		return in, fmt.Errorf("%s, %w", field, ErrUnknownField)
	}

	for _, field := range vocab.Categorical {
		if _, exists := in.Categorical[field.Name]; !exists && len(field.Categories) > 0 {
			in.Categorical[field.Name] = field.Categories[0]
			slog.Debug("using default category", "field", field.Name, "value", field.Categories[0])
		}
	}
	for _, name := range vocab.Numeric {
		if _, exists := in.Numeric[name]; !exists {
			in.Numeric[name] = numericDefault
			slog.Debug("using default value", "field", name, "value", numericDefault)
		}
	}
	return in, nil
}

func newPredictor(cfg *appConfig) (*loanpredictor.Predictor, error) {
	slog.Debug("loading artifacts", "dir", cfg.Loader.Paths().Dir)
	b, err := cfg.Loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loading artifacts: %w", err)
	}

	opt := loanpredictor.NewDefaultOptions()
	opt.RangeOffset = cfg.RangeOffset

	p, err := loanpredictor.NewFromBundle(b, opt)
	if err != nil {
		return nil, fmt.Errorf("initializing predictor: %w", err)
	}
	return p, nil
}
