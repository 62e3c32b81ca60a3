package models

import (
	"fmt"
	"io"
	"text/tabwriter"
)

func indentExpand(indent string, growth int) string {
	indentByte := []byte(indent)
	out := make([]byte, 0, len(indent)*growth)
	for i := 0; i < growth; i++ {
		out = append(out, indentByte...)
	}
	return string(out)
}

// FeatureUsage counts how often each feature is split on and the training cover at those splits
type FeatureUsage struct {
	Splits int
	Cover  float64
}

// Usage returns the split statistics for every feature index
func (e *TreeEnsemble) Usage() []FeatureUsage {
	usage := make([]FeatureUsage, e.opt.NumFeatures)
	for _, tree := range e.trees {
		for _, n := range tree.nodes {
			if n.IsLeaf() {
				continue
			}
			usage[n.Feature].Splits++
			usage[n.Feature].Cover += n.Cover
		}
	}
	return usage
}

// TablePrint writes a human readable summary of the ensemble and its feature usage
func (e *TreeEnsemble) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sTree Ensemble:\n", prefix, indentExpand(indent, 0)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sObjective: %s\n", prefix, indentExpand(indent, 1), e.opt.Objective); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sBase Score: %.3f    Expected Value: %.3f\n",
		prefix, indentExpand(indent, 1), e.opt.BaseScore, e.expected); err != nil {
		return err
	}

	var leaves, depth int
	for _, tree := range e.trees {
		leaves += tree.NumLeaves()
		depth = max(depth, tree.Depth())
	}
	if _, err := fmt.Fprintf(w, "%s%sTrees: %d    Leaves: %d    Max Depth: %d\n",
		prefix, indentExpand(indent, 1), len(e.trees), leaves, depth); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%sFeatures:\n", prefix, indentExpand(indent, 0)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sIndex\tName\tSplits\tCover\t\n", prefix, indentExpand(indent, 1)); err != nil {
		return err
	}
	for i, u := range e.Usage() {
		name := "..."
		if i < len(e.opt.FeatureNames) {
			name = e.opt.FeatureNames[i]
		}
		if _, err := fmt.Fprintf(tbl, "%s%s%d\t%s\t%d\t%.1f\t\n",
			prefix, indentExpand(indent, 1), i, name, u.Splits, u.Cover); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
