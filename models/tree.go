package models

import (
	"fmt"
	"math"
)

// Node is a single node of a regression tree. Leaves have no children and carry the leaf value.
// Cover is the training sample weight (hessian sum) that reached the node.
type Node struct {
	Left        int     `json:"left"`
	Right       int     `json:"right"`
	Feature     int     `json:"feature"`
	Threshold   float64 `json:"threshold"`
	DefaultLeft bool    `json:"default_left"`
	Value       float64 `json:"value"`
	Cover       float64 `json:"cover"`
}

// IsLeaf returns true if the node has no children
func (n Node) IsLeaf() bool {
	return n.Left < 0 && n.Right < 0
}

// Tree is an immutable binary regression tree rooted at node 0. A row goes left when
// its split feature is strictly less than the threshold, missing values follow DefaultLeft.
type Tree struct {
	nodes    []Node
	expected float64
}

// NewTree validates the node layout against the number of input features
func NewTree(nodes []Node, numFeatures int) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyTree
	}

	parents := make([]int, len(nodes))
	for i, n := range nodes {
		if n.Cover <= 0 {
			return nil, fmt.Errorf("node %d, %w", i, ErrZeroCover)
		}
		if n.IsLeaf() {
			continue
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= 0 || child >= len(nodes) {
				return nil, fmt.Errorf("node %d has child %d, %w", i, child, ErrInvalidChild)
			}
			parents[child]++
		}
		if n.Feature < 0 || n.Feature >= numFeatures {
			return nil, fmt.Errorf("node %d splits on feature %d of %d, %w", i, n.Feature, numFeatures, ErrFeatureOutOfRange)
		}
	}
	// every node except the root must be reachable from exactly one parent
	for i := 1; i < len(parents); i++ {
		if parents[i] != 1 {
			return nil, fmt.Errorf("node %d has %d parents, %w", i, parents[i], ErrMalformedTree)
		}
	}

	t := &Tree{nodes: make([]Node, len(nodes))}
	copy(t.nodes, nodes)
	if err := t.checkAcyclic(); err != nil {
		return nil, err
	}
	t.expected = t.nodeExpected(0)
	return t, nil
}

func (t *Tree) checkAcyclic() error {
	visited := make([]bool, len(t.nodes))
	stack := []int{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[idx] {
			return fmt.Errorf("node %d visited twice, %w", idx, ErrMalformedTree)
		}
		visited[idx] = true
		n := t.nodes[idx]
		if !n.IsLeaf() {
			stack = append(stack, n.Left, n.Right)
		}
	}
	for i, v := range visited {
		if !v {
			return fmt.Errorf("node %d unreachable, %w", i, ErrMalformedTree)
		}
	}
	return nil
}

// nodeExpected is the cover weighted mean of the leaf values below the node
func (t *Tree) nodeExpected(idx int) float64 {
	n := t.nodes[idx]
	if n.IsLeaf() {
		return n.Value
	}
	left, right := t.nodes[n.Left], t.nodes[n.Right]
	return (left.Cover*t.nodeExpected(n.Left) + right.Cover*t.nodeExpected(n.Right)) / n.Cover
}

// next returns the child the row follows at a split node
func (t *Tree) next(idx int, row []float64) int {
	n := t.nodes[idx]
	val := row[n.Feature]
	if math.IsNaN(val) {
		if n.DefaultLeft {
			return n.Left
		}
		return n.Right
	}
	// splits are evaluated in single precision like the booster that learned them
	if float32(val) < float32(n.Threshold) {
		return n.Left
	}
	return n.Right
}

// Predict returns the leaf value reached by the row. The row must have at least as many
// values as the highest split feature index.
func (t *Tree) Predict(row []float64) float64 {
	idx := 0
	for !t.nodes[idx].IsLeaf() {
		idx = t.next(idx, row)
	}
	return t.nodes[idx].Value
}

// ExpectedValue is the cover weighted mean output of the tree
func (t *Tree) ExpectedValue() float64 {
	return t.expected
}

// Nodes returns a copy of the tree nodes
func (t *Tree) Nodes() []Node {
	nodes := make([]Node, len(t.nodes))
	copy(nodes, t.nodes)
	return nodes
}

// NumLeaves returns the number of leaf nodes
func (t *Tree) NumLeaves() int {
	var cnt int
	for _, n := range t.nodes {
		if n.IsLeaf() {
			cnt++
		}
	}
	return cnt
}

// Depth returns the number of splits on the longest root to leaf path
func (t *Tree) Depth() int {
	return t.depth(0)
}

func (t *Tree) depth(idx int) int {
	n := t.nodes[idx]
	if n.IsLeaf() {
		return 0
	}
	return 1 + max(t.depth(n.Left), t.depth(n.Right))
}
