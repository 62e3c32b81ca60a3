package models

// pathElement tracks one unique feature on the current root to leaf path. zero is the fraction
// of training cover that flows down the path when the feature is unknown, one is 1 when the row
// itself follows the path and 0 otherwise. weight is the permutation weight of the subset size.
type pathElement struct {
	feature int
	zero    float64
	one     float64
	weight  float64
}

// Attribute adds the exact path dependent Shapley values of the tree output for row into phi.
// phi must have one slot per model feature. This is the polynomial time tree algorithm of
// Lundberg et al., "Consistent Individualized Feature Attribution for Tree Ensembles".
func (t *Tree) Attribute(row []float64, phi []float64) {
	t.attribute(row, phi, 0, nil, 1, 1, -1)
}

func (t *Tree) attribute(row, phi []float64, idx int, parent []pathElement, zero, one float64, feat int) {
	path := extendPath(parent, zero, one, feat)

	n := t.nodes[idx]
	if n.IsLeaf() {
		// the first element is the synthetic root entry and carries no feature
		for i := 1; i < len(path); i++ {
			w := unwoundPathSum(path, i)
			el := path[i]
			phi[el.feature] += w * (el.one - el.zero) * n.Value
		}
		return
	}

	hot := t.next(idx, row)
	cold := n.Left
	if hot == n.Left {
		cold = n.Right
	}
	hotZero := t.nodes[hot].Cover / n.Cover
	coldZero := t.nodes[cold].Cover / n.Cover

	incomingZero, incomingOne := 1.0, 1.0
	// a feature already split on above is undone so it is only counted once on the path
	for k := 1; k < len(path); k++ {
		if path[k].feature == n.Feature {
			incomingZero, incomingOne = path[k].zero, path[k].one
			path = unwindPath(path, k)
			break
		}
	}

	t.attribute(row, phi, hot, path, hotZero*incomingZero, incomingOne, n.Feature)
	t.attribute(row, phi, cold, path, coldZero*incomingZero, 0, n.Feature)
}

// extendPath returns a copy of the path grown by one feature with updated permutation weights
func extendPath(parent []pathElement, zero, one float64, feat int) []pathElement {
	l := len(parent)
	path := make([]pathElement, l+1)
	copy(path, parent)

	path[l] = pathElement{feature: feat, zero: zero, one: one}
	if l == 0 {
		path[l].weight = 1
	}
	for i := l - 1; i >= 0; i-- {
		path[i+1].weight += one * path[i].weight * float64(i+1) / float64(l+1)
		path[i].weight = zero * path[i].weight * float64(l-i) / float64(l+1)
	}
	return path
}

// unwindPath returns a copy of the path with element k removed, undoing its extension
func unwindPath(path []pathElement, k int) []pathElement {
	l := len(path) - 1
	one, zero := path[k].one, path[k].zero

	out := make([]pathElement, l)
	copy(out, path[:l])

	next := path[l].weight
	for j := l - 1; j >= 0; j-- {
		if one != 0 {
			tmp := out[j].weight
			out[j].weight = next * float64(l+1) / (float64(j+1) * one)
			next = tmp - out[j].weight*zero*float64(l-j)/float64(l+1)
		} else {
			out[j].weight = out[j].weight * float64(l+1) / (zero * float64(l-j))
		}
	}

	for j := k; j < l; j++ {
		out[j].feature = path[j+1].feature
		out[j].zero = path[j+1].zero
		out[j].one = path[j+1].one
	}
	return out
}

// unwoundPathSum is the total permutation weight of the path if element k were unwound
func unwoundPathSum(path []pathElement, k int) float64 {
	l := len(path) - 1
	one, zero := path[k].one, path[k].zero

	var total float64
	if one != 0 {
		next := path[l].weight
		for j := l - 1; j >= 0; j-- {
			tmp := next * float64(l+1) / (float64(j+1) * one)
			total += tmp
			next = path[j].weight - tmp*zero*float64(l-j)/float64(l+1)
		}
		return total
	}

	for j := l - 1; j >= 0; j-- {
		total += path[j].weight * float64(l+1) / (zero * float64(l-j))
	}
	return total
}
