package cocluster

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RunInfo records the provenance of a run: exactly the configuration that
// produced the labels, the warnings raised during validation, and the stop
// reason when the sequential search was used.
type RunInfo struct {
	Subsample  bool
	Sequential bool
	Reduce     ReduceMethod
	NDims      int
	Main       Params
	FindBestK  bool

	SubsampleOpts *SubsampleOptions
	SeqOpts       *SequentialOptions

	// StopReason is set only on sequential runs.
	StopReason string

	// Warnings lists harmless-but-likely-unintended configuration choices.
	// They never alter computed results.
	Warnings []string
}

// RunResult is the output of one orchestrated run. The caller owns it
// exclusively; the package holds no reference after returning.
type RunResult struct {
	// Labels assigns each sample a compact cluster ID (1-indexed) or
	// Unassigned.
	Labels []int

	Info RunInfo

	// Diss is the co-occurrence-derived dissimilarity (1 - coOccurrence)
	// the main step clustered. Present only when Subsample was set without
	// Sequential.
	Diss *mat.SymDense
}

// ClusterSingle validates the full parameter set, applies dimensionality
// reduction to a feature matrix, and dispatches one clustering run: to the
// sequential searcher when cfg.Sequential is set, otherwise to the main
// clustering step (optionally behind the subsampling collaborator).
//
// At least one of x (rows = samples) and diss must be non-nil; when both
// are given they must describe the same samples, and the dissimilarity is
// the driving input. All configuration errors are detected here, before any
// clustering computation runs.
func ClusterSingle(x *mat.Dense, diss *mat.SymDense, cfg Config, fn ClusterFunction) (*RunResult, error) {
	applyDefaults(&cfg)

	hasX, hasDiss := x != nil, diss != nil
	if err := validateConfig(&cfg, fn, hasX, hasDiss); err != nil {
		return nil, err
	}
	if hasX && hasDiss {
		rows, _ := x.Dims()
		if rows != diss.SymmetricDim() {
			return nil, fmt.Errorf("cocluster: feature matrix has %d samples but dissimilarity has %d: %w",
				rows, diss.SymmetricDim(), ErrConfig)
		}
	}
	if hasDiss && cfg.CheckDiss {
		if err := checkDissimilarity(diss); err != nil {
			return nil, err
		}
	}

	info := RunInfo{
		Subsample:     cfg.Subsample,
		Sequential:    cfg.Sequential,
		Reduce:        cfg.Reduce,
		NDims:         cfg.NDims,
		Main:          cfg.Main,
		FindBestK:     cfg.FindBestK,
		SubsampleOpts: cfg.SubsampleOpts,
		SeqOpts:       cfg.SeqOpts,
		Warnings:      configWarnings(&cfg, hasX),
	}

	if hasX {
		reduced, err := reduceMatrix(x, cfg.Reduce, cfg.NDims)
		if err != nil {
			return nil, err
		}
		x = reduced
	}
	in := Input{X: x, Diss: diss}
	m := in.Samples()

	if cfg.Sequential {
		step := func(sub Input, k int) ([]int, error) {
			p := cfg.Main
			p.K = k
			labels, _, err := mainClustering(sub, &cfg, p, fn)
			return labels, err
		}
		res, err := cfg.Searcher.Search(in, *cfg.SeqOpts, step)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, fmt.Errorf("cocluster: sequential searcher returned no result: %w", ErrContract)
		}
		if err := checkLabels(res.Labels, m, "sequential searcher"); err != nil {
			return nil, err
		}
		info.StopReason = res.StopReason
		return &RunResult{Labels: NormalizeLabels(res.Labels), Info: info}, nil
	}

	labels, dissUsed, err := mainClustering(in, &cfg, cfg.Main, fn)
	if err != nil {
		return nil, err
	}
	result := &RunResult{Labels: labels, Info: info}
	if cfg.Subsample {
		result.Diss = dissUsed
	}
	return result, nil
}
