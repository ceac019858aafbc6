// Package cocluster orchestrates pluggable base clustering algorithms and
// builds consensus partitions from repeated noisy clusterings.
//
// The package has two entry points. ClusterSingle validates a pipeline
// configuration (subsampling, sequential multi-resolution search,
// dimensionality reduction) against the declared capability of an injected
// ClusterFunction, routes the data through the chosen stages, and returns
// one label vector with full provenance. MakeConsensus reconciles a matrix
// of prior label assignments into a single robust partition, either by
// exact tuple agreement or by re-clustering a pairwise co-occurrence
// statistic.
//
// Basic usage:
//
//	cfg := cocluster.DefaultConfig()
//	cfg.Subsample = true
//	cfg.SubsampleOpts = &cocluster.SubsampleOptions{Params: cocluster.Params{K: 4}}
//	cfg.Main = cocluster.Params{Alpha: 0.3, MinSize: 5}
//	result, err := cocluster.ClusterSingle(x, nil, cfg, myZeroOneFn)
//	// result.Labels[i] is the cluster ID for sample i (-1 = unassigned)
//
// Consensus over repeated runs:
//
//	res, err := cocluster.MakeConsensus(assignments, cocluster.ConsensusOptions{
//		Proportion:     0.7,
//		ClusterFunc:    myZeroOneFn,
//		MinSize:        5,
//		PropUnassigned: 0.5,
//	})
//
// The package implements no base partitioning algorithm itself: callers
// supply a ClusterFunction, whose AlgorithmType (TypeK or TypeZeroOne)
// gates which pipeline shapes are legal. Every run is a pure computation
// over read-only inputs, so independent runs may execute concurrently
// while sharing the same Config and ClusterFunction.
package cocluster
