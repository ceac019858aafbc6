package cocluster

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// mainClustering invokes the base ClusterFunction once, optionally behind
// the subsampling collaborator, and normalizes its result to a compact
// label vector of length m. On the subsample path it also returns the
// co-occurrence-derived dissimilarity the main step clustered.
func mainClustering(in Input, cfg *Config, p Params, fn ClusterFunction) ([]int, *mat.SymDense, error) {
	m := in.Samples()

	if cfg.Subsample {
		// The resolution parameter only has meaning inside the draws: the
		// main function clusters the derived dissimilarity by threshold and
		// ignores K. A stepped k (sequential search) overrides the configured
		// draw resolution so varying k actually varies the co-occurrence.
		opts := *cfg.SubsampleOpts
		if p.K != 0 {
			opts.Params.K = p.K
		}
		co, err := cfg.Subsampler.CoCluster(in, fn, opts, cfg.Workers)
		if err != nil {
			return nil, nil, err
		}
		if co == nil || co.SymmetricDim() != m {
			dim := -1
			if co != nil {
				dim = co.SymmetricDim()
			}
			return nil, nil, fmt.Errorf("cocluster: subsampler returned a %d-dim co-occurrence matrix for %d samples: %w",
				dim, m, ErrContract)
		}
		d := DissimilarityFrom(co)
		// The original feature matrix is deliberately dropped: from here on
		// the main step operates purely on the derived dissimilarity.
		labels, err := invokeMain(Input{Diss: d}, p, fn, m)
		return labels, d, err
	}

	// ZeroOne functions consume a dissimilarity; derive one from the
	// feature matrix when none was supplied.
	if fn.Type() == TypeZeroOne && in.Diss == nil {
		dist := cfg.Distance
		if dist == nil {
			dist = Euclidean
		}
		in.Diss = pairwiseDissimilarity(in.X, dist, cfg.Workers)
	}

	if cfg.FindBestK && fn.Type() == TypeK {
		labels, err := bestKClustering(in, cfg, p, fn, m)
		return labels, nil, err
	}

	labels, err := invokeMain(in, p, fn, m)
	return labels, nil, err
}

// invokeMain runs the base ClusterFunction, enforces its output contract,
// and renumbers labels to the canonical compact range.
func invokeMain(in Input, p Params, fn ClusterFunction, m int) ([]int, error) {
	labels, err := fn.Cluster(in, p)
	if err != nil {
		return nil, fmt.Errorf("cocluster: main clustering: %w", err)
	}
	if err := checkLabels(labels, m, "main ClusterFunction"); err != nil {
		return nil, err
	}
	return NormalizeLabels(labels), nil
}

// bestKClustering tries every k in cfg.KRange and keeps the labeling with
// the largest average silhouette width over the pairwise dissimilarity.
// Ties keep the smallest k, so the choice is deterministic.
func bestKClustering(in Input, cfg *Config, p Params, fn ClusterFunction, m int) ([]int, error) {
	d := in.Diss
	if d == nil {
		dist := cfg.Distance
		if dist == nil {
			dist = Euclidean
		}
		d = pairwiseDissimilarity(in.X, dist, cfg.Workers)
	}

	var best []int
	bestScore := 0.0
	for k := cfg.KRange[0]; k <= cfg.KRange[1]; k++ {
		kp := p
		kp.K = k
		labels, err := invokeMain(in, kp, fn, m)
		if err != nil {
			return nil, err
		}
		score := averageSilhouette(d, labels)
		if best == nil || score > bestScore {
			best = labels
			bestScore = score
		}
	}
	return best, nil
}
