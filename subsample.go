package cocluster

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// SubsampleOptions configures the repeated-subsampling co-clustering step.
type SubsampleOptions struct {
	// Resamples is the number of independent subsample draws. Default: 100.
	Resamples int

	// SampleProportion is the fraction of samples drawn without replacement
	// per resample, in (0, 1]. Default: 0.7.
	SampleProportion float64

	// Params holds the per-draw clustering parameters (K for a TypeK draw
	// function, Alpha for a TypeZeroOne one). The pipeline overrides K with
	// its own resolution when one is in play (Config.Main.K, or the stepped
	// k of a sequential search).
	Params Params

	// ClusterFunc overrides the function used to cluster each draw. nil
	// means the pipeline's main ClusterFunction.
	ClusterFunc ClusterFunction

	// Seed fixes the draw sequence. For a given Seed the co-occurrence
	// matrix is reproducible regardless of worker scheduling: each draw
	// owns its own generator seeded from Seed and the draw index.
	Seed int64
}

func applySubsampleDefaults(opts *SubsampleOptions) {
	if opts.Resamples == 0 {
		opts.Resamples = 100
	}
	if opts.SampleProportion == 0 {
		opts.SampleProportion = 0.7
	}
}

func validateSubsampleOptions(opts *SubsampleOptions) error {
	if opts.Resamples < 1 {
		return fmt.Errorf("cocluster: SubsampleOpts.Resamples must be >= 1, got %d: %w", opts.Resamples, ErrConfig)
	}
	if opts.SampleProportion <= 0 || opts.SampleProportion > 1 {
		return fmt.Errorf("cocluster: SubsampleOpts.SampleProportion must be in (0, 1], got %g: %w",
			opts.SampleProportion, ErrConfig)
	}
	if opts.Params.MinSize < 0 {
		return fmt.Errorf("cocluster: SubsampleOpts.Params.MinSize must be >= 0, got %d: %w",
			opts.Params.MinSize, ErrConfig)
	}
	return nil
}

// Subsampler repeatedly subsamples the input, clusters each subsample, and
// returns an M x M co-occurrence matrix: how often samples i and j ended up
// in the same cluster, out of the times both were drawn. Implementations
// must return a matrix whose dimension equals in.Samples().
type Subsampler interface {
	CoCluster(in Input, fn ClusterFunction, opts SubsampleOptions, workers int) (*mat.SymDense, error)
}

// ResamplingSubsampler is the default Subsampler. Each of opts.Resamples
// draws selects ceil(SampleProportion * M) samples without replacement,
// clusters them, and tallies which pairs shared a non-sentinel label.
// Entry (i, j) of the result is sameCount / bothDrawnCount, or 0 for pairs
// never drawn together; the diagonal is 1. Draws run in parallel.
type ResamplingSubsampler struct{}

func (ResamplingSubsampler) CoCluster(in Input, fn ClusterFunction, opts SubsampleOptions, workers int) (*mat.SymDense, error) {
	m := in.Samples()
	co := mat.NewSymDense(max(m, 1), nil)
	for i := 0; i < m; i++ {
		co.SetSym(i, i, 1)
	}
	if m < 2 {
		return co, nil
	}

	drawFn := opts.ClusterFunc
	if drawFn == nil {
		drawFn = fn
	}

	size := int(math.Ceil(opts.SampleProportion * float64(m)))
	if size < 2 {
		size = 2
	}
	if size > m {
		size = m
	}

	if workers < 1 {
		workers = 1
	}
	if workers > opts.Resamples {
		workers = opts.Resamples
	}

	// Per-worker tallies over the upper triangle, merged after the draws
	// complete. Integer sums make the merge order irrelevant.
	same := make([][]int, workers)
	both := make([][]int, workers)

	var g errgroup.Group
	drawsPerWorker := (opts.Resamples + workers - 1) / workers

	for w := 0; w < workers; w++ {
		startDraw := w * drawsPerWorker
		endDraw := min(startDraw+drawsPerWorker, opts.Resamples)
		if startDraw >= opts.Resamples {
			break
		}

		wSame := make([]int, m*m)
		wBoth := make([]int, m*m)
		same[w] = wSame
		both[w] = wBoth

		g.Go(func() error {
			for draw := startDraw; draw < endDraw; draw++ {
				rng := rand.New(rand.NewSource(opts.Seed + int64(draw)))
				idx := rng.Perm(m)[:size]
				sort.Ints(idx)

				labels, err := drawFn.Cluster(subsetInput(in, idx), opts.Params)
				if err != nil {
					return fmt.Errorf("cocluster: subsample draw %d: %w", draw, err)
				}
				if err := checkLabels(labels, size, "subsample ClusterFunction"); err != nil {
					return err
				}

				for a := 0; a < size; a++ {
					for b := a + 1; b < size; b++ {
						i, j := idx[a], idx[b]
						wBoth[i*m+j]++
						if labels[a] != Unassigned && labels[a] == labels[b] {
							wSame[i*m+j]++
						}
					}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			s, b := 0, 0
			for w := range same {
				if same[w] == nil {
					continue
				}
				s += same[w][i*m+j]
				b += both[w][i*m+j]
			}
			if b > 0 {
				co.SetSym(i, j, float64(s)/float64(b))
			}
		}
	}
	return co, nil
}
