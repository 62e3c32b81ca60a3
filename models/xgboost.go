package models

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

const boosterGBTree = "gbtree"

// objectives whose prediction is the untransformed margin and whose base score is stored
// as a margin
var identityObjectives = map[string]struct{}{
	"reg:squarederror":     {},
	"reg:linear":           {},
	"reg:absoluteerror":    {},
	"reg:pseudohubererror": {},
	"reg:quantileerror":    {},
	"reg:squaredlogerror":  {},
}

// xgbModel mirrors the parts of the xgboost JSON model document that inference needs
type xgbModel struct {
	Learner struct {
		FeatureNames    []string `json:"feature_names"`
		GradientBooster struct {
			Name  string `json:"name"`
			Model struct {
				Trees []xgbTree `json:"trees"`
			} `json:"model"`
		} `json:"gradient_booster"`
		LearnerModelParam struct {
			BaseScore  string `json:"base_score"`
			NumClass   string `json:"num_class"`
			NumFeature string `json:"num_feature"`
			NumTarget  string `json:"num_target"`
		} `json:"learner_model_param"`
		Objective struct {
			Name string `json:"name"`
		} `json:"objective"`
	} `json:"learner"`
	Version []int `json:"version"`
}

type xgbTree struct {
	LeftChildren    []int     `json:"left_children"`
	RightChildren   []int     `json:"right_children"`
	SplitIndices    []int     `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	DefaultLeft     []xgbFlag `json:"default_left"`
	SumHessian      []float64 `json:"sum_hessian"`
	SplitType       []int     `json:"split_type"`
	Categories      []int     `json:"categories"`
}

// xgbFlag accepts both the boolean and the integer encodings xgboost has used for default_left
type xgbFlag bool

func (f *xgbFlag) UnmarshalJSON(data []byte) error {
	switch s := strings.TrimSpace(string(data)); s {
	case "true", "1":
		*f = true
	case "false", "0":
		*f = false
	default:
		return fmt.Errorf("unexpected flag value %s", s)
	}
	return nil
}

// DecodeXGBoost reads an xgboost JSON model as written by Booster.save_model with a .json
// extension and returns the equivalent tree ensemble.
func DecodeXGBoost(r io.Reader) (*TreeEnsemble, error) {
	var doc xgbModel
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode xgboost json, %w", err)
	}
	return doc.ensemble()
}

func (m xgbModel) ensemble() (*TreeEnsemble, error) {
	l := m.Learner
	if l.GradientBooster.Name != boosterGBTree {
		return nil, fmt.Errorf("%q, %w", l.GradientBooster.Name, ErrUnsupportedBooster)
	}
	if _, exists := identityObjectives[l.Objective.Name]; !exists {
		return nil, fmt.Errorf("%q, %w", l.Objective.Name, ErrUnsupportedObjective)
	}
	for _, param := range []string{l.LearnerModelParam.NumClass, l.LearnerModelParam.NumTarget} {
		if n, err := parseParamInt(param); err != nil || n > 1 {
			return nil, ErrUnsupportedMultiOutput
		}
	}

	baseScore, err := parseBaseScore(l.LearnerModelParam.BaseScore)
	if err != nil {
		return nil, err
	}

	numFeatures, err := parseParamInt(l.LearnerModelParam.NumFeature)
	if err != nil {
		return nil, fmt.Errorf("unable to parse num_feature, %w", err)
	}
	if numFeatures == 0 {
		numFeatures = len(l.FeatureNames)
	}

	trees := make([]*Tree, 0, len(l.GradientBooster.Model.Trees))
	for i, xt := range l.GradientBooster.Model.Trees {
		nodes, err := xt.nodes()
		if err != nil {
			return nil, fmt.Errorf("tree %d, %w", i, err)
		}
		tree, err := NewTree(nodes, numFeatures)
		if err != nil {
			return nil, fmt.Errorf("tree %d, %w", i, err)
		}
		trees = append(trees, tree)
	}

	return NewTreeEnsemble(trees, &EnsembleOptions{
		BaseScore:    baseScore,
		NumFeatures:  numFeatures,
		FeatureNames: l.FeatureNames,
		Objective:    l.Objective.Name,
	})
}

func (t xgbTree) nodes() ([]Node, error) {
	n := len(t.LeftChildren)
	for _, size := range []int{len(t.RightChildren), len(t.SplitIndices), len(t.SplitConditions), len(t.DefaultLeft), len(t.SumHessian)} {
		if size != n {
			return nil, ErrTreeArrayLenMismatch
		}
	}

	if len(t.Categories) > 0 {
		return nil, ErrCategoricalSplit
	}
	for i, st := range t.SplitType {
		if st != 0 {
			return nil, fmt.Errorf("node %d, %w", i, ErrCategoricalSplit)
		}
	}

	nodes := make([]Node, n)
	for i := 0; i < n; i++ {
		node := Node{
			Left:        t.LeftChildren[i],
			Right:       t.RightChildren[i],
			Feature:     t.SplitIndices[i],
			DefaultLeft: bool(t.DefaultLeft[i]),
			Cover:       t.SumHessian[i],
		}
		// leaves store their output in the split condition slot
		if node.IsLeaf() {
			node.Value = t.SplitConditions[i]
		} else {
			node.Threshold = t.SplitConditions[i]
		}
		nodes[i] = node
	}
	return nodes, nil
}

// parseBaseScore handles both "5E-1" and the bracketed vector form "[5E-1]" of newer releases
func parseBaseScore(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if s == "" {
		return 0.5, nil
	}
	if strings.Contains(s, ",") {
		return 0, fmt.Errorf("%q, %w", s, ErrUnsupportedMultiOutput)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q, %w", s, ErrInvalidBaseScore)
	}
	return v, nil
}

func parseParamInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
