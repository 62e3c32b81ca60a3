package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aouyang1/go-loanpredictor/artifact"
	urfave "github.com/urfave/cli/v2"
)

var inspectCmd = &urfave.Command{
	Name:   "inspect",
	Usage:  "Print a summary of the loaded artifacts",
	Action: cmdInspect,
}

func cmdInspect(c *urfave.Context) error {
	cfg := getConfig(c)
	b, err := cfg.Loader.Load()
	if err != nil {
		return fmt.Errorf("loading artifacts: %w", err)
	}
	return printBundle(c.App.Writer, b)
}

func printBundle(w io.Writer, b *artifact.Bundle) error {
	if err := b.Regressor.TablePrint(w, "", "  "); err != nil {
		return err
	}

	means, err := b.Scaler.InverseTransform(make([]float64, len(b.Scaler.Fields())))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Numeric Inputs:"); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "  Name\tMean\t\n"); err != nil {
		return err
	}
	for i, name := range b.Scaler.Fields() {
		if _, err := fmt.Fprintf(tbl, "  %s\t%.3f\t\n", name, means[i]); err != nil {
			return err
		}
	}
	if err := tbl.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "Categorical Inputs:"); err != nil {
		return err
	}
	tbl = tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	if _, err := fmt.Fprintf(tbl, "  Name\tCategories\t\n"); err != nil {
		return err
	}
	for _, name := range b.Encoder.Fields() {
		cats, _ := b.Encoder.Categories(name)
		if _, err := fmt.Fprintf(tbl, "  %s\t%s\t\n", name, strings.Join(cats, ", ")); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
