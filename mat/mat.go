package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyArray  = errors.New("array has no rows or columns")
	ErrColMismatch = errors.New("column size mismatch")
)

// NewDenseFromArray builds a row major dense matrix where every inner slice is one
// observation. All rows must have the same number of columns.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if m == 0 || n <= 0 {
		return nil, ErrEmptyArray
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}
