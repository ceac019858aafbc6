package cocluster

import "gonum.org/v1/gonum/mat"

// AlgorithmType declares what kind of partitioning a ClusterFunction
// performs. The type is a static capability, not a data-dependent property:
// pipeline validation consults it before any data is touched.
type AlgorithmType string

const (
	// TypeK marks functions that partition all samples into exactly K
	// clusters. They require Params.K and never leave a sample unassigned.
	TypeK AlgorithmType = "K"

	// TypeZeroOne marks functions that cluster a dissimilarity matrix with
	// values in [0, 1] under a threshold parameter Params.Alpha, and may
	// leave samples unassigned (label Unassigned).
	TypeZeroOne AlgorithmType = "01"
)

// Input carries the data a ClusterFunction may consume. At least one of the
// two fields is non-nil. X has one row per sample; Diss is a symmetric
// pairwise dissimilarity over the same samples.
type Input struct {
	X    *mat.Dense
	Diss *mat.SymDense
}

// Samples returns the number of samples, taken from the dissimilarity
// dimension when present, otherwise from the feature matrix row count.
func (in Input) Samples() int {
	if in.Diss != nil {
		return in.Diss.SymmetricDim()
	}
	if in.X != nil {
		r, _ := in.X.Dims()
		return r
	}
	return 0
}

// Params holds the per-invocation parameters of a base clustering step.
type Params struct {
	// K is the target cluster count for TypeK functions. Ignored by
	// TypeZeroOne functions.
	K int

	// Alpha is the dissimilarity threshold for TypeZeroOne functions, in
	// [0, 1]. Ignored by TypeK functions.
	Alpha float64

	// MinSize is the smallest group reported as a cluster; samples in
	// smaller groups come back as Unassigned. 0 means no minimum.
	MinSize int
}

// ClusterFunction is the capability interface for a pluggable base
// clustering algorithm. Type must be constant for the lifetime of the value;
// validation relies on it before Cluster is ever called. Implementations
// must be safe for concurrent use: the orchestration layer may invoke the
// same function from many goroutines (one per subsample draw).
type ClusterFunction interface {
	Type() AlgorithmType

	// Cluster partitions the samples of in and returns one label per
	// sample. Labels are arbitrary non-negative integers, or Unassigned
	// for samples the algorithm leaves out.
	Cluster(in Input, p Params) ([]int, error)
}

// KFunc adapts a plain function into a TypeK ClusterFunction.
type KFunc func(in Input, p Params) ([]int, error)

func (f KFunc) Type() AlgorithmType                       { return TypeK }
func (f KFunc) Cluster(in Input, p Params) ([]int, error) { return f(in, p) }

// ZeroOneFunc adapts a plain function into a TypeZeroOne ClusterFunction.
type ZeroOneFunc func(in Input, p Params) ([]int, error)

func (f ZeroOneFunc) Type() AlgorithmType                       { return TypeZeroOne }
func (f ZeroOneFunc) Cluster(in Input, p Params) ([]int, error) { return f(in, p) }
