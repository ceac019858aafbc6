package cocluster

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestResamplingSubsamplerExactTallies(t *testing.T) {
	// SampleProportion 1 makes every draw see every sample, so the tallies
	// are exact: co-occurrence 1 within each half, 0 across.
	x := mat.NewDense(6, 1, []float64{0, 1, 2, 7, 8, 9})
	opts := SubsampleOptions{
		Resamples:        10,
		SampleProportion: 1,
		Params:           Params{K: 2},
		Seed:             3,
	}

	co, err := ResamplingSubsampler{}.CoCluster(Input{X: x}, valueSplit(5), opts, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if co.SymmetricDim() != 6 {
		t.Fatalf("dim = %d, want 6", co.SymmetricDim())
	}
	for i := 0; i < 6; i++ {
		if co.At(i, i) != 1 {
			t.Errorf("diagonal (%d,%d) = %v, want 1", i, i, co.At(i, i))
		}
		for j := 0; j < 6; j++ {
			sameHalf := (i < 3) == (j < 3)
			want := 0.0
			if sameHalf {
				want = 1.0
			}
			if co.At(i, j) != want {
				t.Errorf("co(%d,%d) = %v, want %v", i, j, co.At(i, j), want)
			}
		}
	}
}

func TestResamplingSubsamplerDeterministicSeed(t *testing.T) {
	x := mat.NewDense(12, 1, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	opts := SubsampleOptions{
		Resamples:        30,
		SampleProportion: 0.6,
		Params:           Params{K: 3},
		Seed:             99,
	}
	fn := roundRobinK()

	first, err := ResamplingSubsampler{}.CoCluster(Input{X: x}, fn, opts, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Different worker count, same seed: the result must be identical.
	second, err := ResamplingSubsampler{}.CoCluster(Input{X: x}, fn, opts, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mat.Equal(first, second) {
		t.Error("co-occurrence differs across worker counts for the same seed")
	}

	opts.Seed = 100
	third, err := ResamplingSubsampler{}.CoCluster(Input{X: x}, fn, opts, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mat.Equal(first, third) {
		t.Error("expected different draws for a different seed")
	}
}

func TestResamplingSubsamplerUnassignedExcludedFromNumerator(t *testing.T) {
	// The draw function leaves everything unassigned: pairs are drawn
	// together but never co-clustered.
	x := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	noAssignments := ZeroOneFunc(func(in Input, p Params) ([]int, error) {
		labels := make([]int, in.Samples())
		for i := range labels {
			labels[i] = Unassigned
		}
		return labels, nil
	})
	opts := SubsampleOptions{
		Resamples:        5,
		SampleProportion: 1,
	}

	co, err := ResamplingSubsampler{}.CoCluster(Input{X: x}, noAssignments, opts, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if co.At(i, j) != 0 {
				t.Errorf("co(%d,%d) = %v, want 0", i, j, co.At(i, j))
			}
		}
	}
}

func TestResamplingSubsamplerDrawErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	failing := KFunc(func(in Input, p Params) ([]int, error) {
		return nil, boom
	})
	x := mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4})
	opts := SubsampleOptions{Resamples: 3, SampleProportion: 1}

	_, err := ResamplingSubsampler{}.CoCluster(Input{X: x}, failing, opts, 2)
	if err == nil {
		t.Fatal("expected error from failing draw function")
	}
	assertIs(t, err, boom)
}

func TestResamplingSubsamplerDrawContract(t *testing.T) {
	wrongLength := KFunc(func(in Input, p Params) ([]int, error) {
		return []int{1}, nil
	})
	x := mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4})
	opts := SubsampleOptions{Resamples: 2, SampleProportion: 1}

	_, err := ResamplingSubsampler{}.CoCluster(Input{X: x}, wrongLength, opts, 1)
	if err == nil {
		t.Fatal("expected contract violation")
	}
	assertIs(t, err, ErrContract)
}

func TestResamplingSubsamplerTinyInput(t *testing.T) {
	x := mat.NewDense(1, 1, []float64{42})
	co, err := ResamplingSubsampler{}.CoCluster(Input{X: x}, roundRobinK(), SubsampleOptions{
		Resamples:        3,
		SampleProportion: 1,
		Params:           Params{K: 1},
	}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if co.SymmetricDim() != 1 || co.At(0, 0) != 1 {
		t.Errorf("single-sample co-occurrence wrong: %v", mat.Formatted(co))
	}
}
