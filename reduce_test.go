package cocluster

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestReduceNoneIsNoOp(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	got, err := reduceMatrix(x, ReduceNone, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != x {
		t.Error("ReduceNone should pass the matrix through unchanged")
	}

	// Requesting a dimension count with ReduceNone is still a no-op.
	got, err = reduceMatrix(x, ReduceNone, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != x {
		t.Error("NDims with ReduceNone should not change the output")
	}
}

func TestReduceVarKeepsHighVarianceColumns(t *testing.T) {
	// Column 1 is constant; columns 0 and 2 vary, column 2 the most.
	x := mat.NewDense(4, 3, []float64{
		0, 7, 0,
		1, 7, 10,
		0, 7, 20,
		1, 7, 30,
	})

	got, err := reduceMatrix(x, ReduceVar, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, c := got.Dims()
	if r != 4 || c != 1 {
		t.Fatalf("got %dx%d, want 4x1", r, c)
	}
	want := []float64{0, 10, 20, 30}
	for i, w := range want {
		if got.At(i, 0) != w {
			t.Errorf("row %d = %v, want %v", i, got.At(i, 0), w)
		}
	}

	// With two columns kept, original column order is preserved.
	got, err = reduceMatrix(x, ReduceVar, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.At(1, 0) != 1 || got.At(1, 1) != 10 {
		t.Errorf("column order not preserved: row 1 = [%v %v], want [1 10]",
			got.At(1, 0), got.At(1, 1))
	}
}

func TestReduceMAD(t *testing.T) {
	// Column 0 has one extreme outlier but small MAD; column 1 has steady
	// spread and the larger MAD.
	x := mat.NewDense(5, 2, []float64{
		0, 0,
		0, 10,
		0, 20,
		0, 30,
		1000, 40,
	})
	got, err := reduceMatrix(x, ReduceMAD, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.At(1, 0) != 10 || got.At(3, 0) != 30 {
		t.Errorf("MAD filter kept the wrong column: %v", mat.Formatted(got))
	}
}

func TestReducePCA(t *testing.T) {
	x := mat.NewDense(5, 3, []float64{
		0, 0, 1,
		1, 1, 1.1,
		2, 2, 0.9,
		3, 3, 1,
		4, 4, 1.05,
	})
	got, err := reduceMatrix(x, ReducePCA, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, c := got.Dims()
	if r != 5 || c != 2 {
		t.Fatalf("got %dx%d, want 5x2", r, c)
	}

	// Deterministic for fixed input.
	again, err := reduceMatrix(x, ReducePCA, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mat.Equal(got, again) {
		t.Error("PCA reduction not deterministic across calls")
	}
}

func TestReduceDefaultDims(t *testing.T) {
	// NDims <= 0 resolves to a method-specific default, capped at the
	// feature count; with 3 features everything is kept.
	x := mat.NewDense(4, 3, []float64{
		0, 1, 2,
		3, 4, 5,
		6, 7, 8,
		9, 8, 7,
	})
	got, err := reduceMatrix(x, ReduceVar, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, c := got.Dims()
	if c != 3 {
		t.Errorf("got %d columns, want 3 (default capped at feature count)", c)
	}

	got, err = reduceMatrix(x, ReducePCA, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, c := got.Dims()
	if r != 4 || c != 3 {
		t.Errorf("PCA default: got %dx%d, want 4x3", r, c)
	}
}
