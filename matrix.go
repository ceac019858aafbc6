package cocluster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DissimilarityFrom converts a co-occurrence matrix into a dissimilarity
// matrix: every entry becomes 1 - value, so the diagonal becomes 0. The
// input is not modified.
func DissimilarityFrom(co *mat.SymDense) *mat.SymDense {
	return oneMinus(co)
}

// CoOccurrenceFrom is the inverse of DissimilarityFrom. Because both are
// the map v -> 1 - v, the round trip reconstructs the original matrix
// bit-for-bit.
func CoOccurrenceFrom(d *mat.SymDense) *mat.SymDense {
	return oneMinus(d)
}

func oneMinus(m *mat.SymDense) *mat.SymDense {
	n := m.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, 1-m.At(i, j))
		}
	}
	return out
}

// checkDissimilarity verifies the values of a caller-supplied dissimilarity
// matrix: a zero diagonal and finite, non-negative off-diagonal entries.
// Squareness and symmetry are carried by the *SymDense type itself; values
// are what a malformed caller matrix can still get wrong.
func checkDissimilarity(d *mat.SymDense) error {
	n := d.SymmetricDim()
	for i := 0; i < n; i++ {
		if d.At(i, i) != 0 {
			return fmt.Errorf("cocluster: dissimilarity diagonal entry (%d,%d) is %g, want 0: %w",
				i, i, d.At(i, i), ErrConfig)
		}
		for j := i + 1; j < n; j++ {
			v := d.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("cocluster: dissimilarity entry (%d,%d) is %g, want finite and >= 0: %w",
					i, j, v, ErrConfig)
			}
		}
	}
	return nil
}

// subsetInput restricts in to the samples listed in idx, preserving their
// order: rows of the feature matrix and the principal submatrix of the
// dissimilarity.
func subsetInput(in Input, idx []int) Input {
	var out Input
	if in.X != nil {
		_, cols := in.X.Dims()
		x := mat.NewDense(len(idx), cols, nil)
		for r, i := range idx {
			x.SetRow(r, mat.Row(nil, i, in.X))
		}
		out.X = x
	}
	if in.Diss != nil {
		d := mat.NewSymDense(len(idx), nil)
		for r, i := range idx {
			for s := r; s < len(idx); s++ {
				d.SetSym(r, s, in.Diss.At(i, idx[s]))
			}
		}
		out.Diss = d
	}
	return out
}
