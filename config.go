package cocluster

import (
	"fmt"
	"runtime"
)

// ReduceMethod names a dimensionality-reduction step applied to a feature
// matrix before clustering.
type ReduceMethod string

const (
	// ReduceNone passes the feature matrix through unchanged.
	ReduceNone ReduceMethod = "none"
	// ReducePCA projects onto the top NDims principal components.
	ReducePCA ReduceMethod = "pca"
	// ReduceVar keeps the NDims features with the largest variance.
	ReduceVar ReduceMethod = "var"
	// ReduceMAD keeps the NDims features with the largest median absolute
	// deviation.
	ReduceMAD ReduceMethod = "mad"
)

// Config controls a single orchestrated clustering run.
// Start with [DefaultConfig] and override the fields you need. A Config is
// validated once, before any numeric work, and is read-only for the rest of
// the run; the same value may drive many concurrent runs.
type Config struct {
	// Subsample routes the data through the Subsampler: the base
	// ClusterFunction then clusters the dissimilarity derived from the
	// subsampling co-occurrence (1 - coOccurrence) instead of the raw
	// input. Requires a TypeZeroOne main function. Default: false.
	Subsample bool

	// Sequential runs the multi-resolution search instead of a single main
	// clustering call: the searcher steps the resolution parameter k
	// starting from SeqOpts.K0. Requires SeqOpts, and a TypeK main function
	// unless Subsample is also set. Default: false.
	Sequential bool

	// Reduce selects the dimensionality reduction applied to a feature
	// matrix before clustering. Has no meaning for dissimilarity input.
	// Default: ReduceNone.
	Reduce ReduceMethod

	// NDims is the target dimension count for Reduce. <= 0 resolves to a
	// method-specific default (50 for PCA, 500 for the filter statistics,
	// both capped at the feature count). Setting NDims with ReduceNone is
	// an observable no-op and produces a warning, not an error.
	NDims int

	// CheckDiss requests a value check of a supplied dissimilarity matrix
	// before it is used: zero diagonal, finite non-negative entries.
	// Symmetry is already guaranteed by the matrix type. Default: false.
	CheckDiss bool

	// Main holds the parameters of the main clustering step. Main.K must
	// not be set when Sequential is true; the search computes k per
	// iteration. When Subsample is set, a non-zero resolution (Main.K, or
	// the stepped k under Sequential) overrides SubsampleOpts.Params.K for
	// the draws.
	Main Params

	// Distance overrides the distance function used to derive a pairwise
	// dissimilarity from a feature matrix. It is rejected when a
	// dissimilarity matrix is supplied directly: a distance function has no
	// meaning once the dissimilarity already exists. nil means Euclidean.
	Distance DistanceFunc

	// FindBestK makes the main step choose k itself by maximizing the
	// average silhouette width over KRange. Requires a TypeK main function
	// with Main.K unset. Rejected when Sequential is true and Subsample is
	// false: the sequential loop already owns the k search in that mode.
	FindBestK bool

	// KRange is the inclusive [low, high] range of k tried by FindBestK.
	// Default: [2, 10].
	KRange [2]int

	// SubsampleOpts configures the Subsampler. Required when Subsample is
	// true.
	SubsampleOpts *SubsampleOptions

	// SeqOpts configures the sequential search. Required when Sequential
	// is true; there is no safe default for the starting resolution K0 or
	// the stability threshold Beta.
	SeqOpts *SequentialOptions

	// Subsampler performs the repeated-subsampling co-clustering. nil means
	// ResamplingSubsampler.
	Subsampler Subsampler

	// Searcher performs the sequential multi-resolution search. nil means
	// StepSearcher.
	Searcher SequentialSearcher

	// Workers controls the number of goroutines for parallelizable stages
	// (pairwise dissimilarities, co-occurrence, subsample draws). 0 means
	// runtime.NumCPU().
	Workers int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Reduce: ReduceNone,
		KRange: [2]int{2, 10},
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Reduce == "" {
		cfg.Reduce = ReduceNone
	}
	if cfg.KRange == [2]int{} {
		cfg.KRange = [2]int{2, 10}
	}
	if cfg.Subsampler == nil {
		cfg.Subsampler = ResamplingSubsampler{}
	}
	if cfg.Searcher == nil {
		cfg.Searcher = StepSearcher{}
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.SubsampleOpts != nil {
		opts := *cfg.SubsampleOpts
		applySubsampleDefaults(&opts)
		cfg.SubsampleOpts = &opts
	}
	if cfg.SeqOpts != nil {
		opts := *cfg.SeqOpts
		applySequentialDefaults(&opts)
		cfg.SeqOpts = &opts
	}
}

// validateConfig checks the full parameter set against the input shape and
// the declared capability of the main ClusterFunction. Every violation is a
// configuration error naming the offending parameter; nothing is silently
// overridden.
func validateConfig(cfg *Config, fn ClusterFunction, hasX, hasDiss bool) error {
	if fn == nil {
		return fmt.Errorf("cocluster: main ClusterFunction is nil: %w", ErrConfig)
	}
	if !hasX && !hasDiss {
		return fmt.Errorf("cocluster: neither a feature matrix nor a dissimilarity matrix was supplied: %w", ErrConfig)
	}

	switch {
	case cfg.Subsample:
		// The main step always clusters a co-occurrence-derived
		// dissimilarity in this mode.
		if fn.Type() != TypeZeroOne {
			return fmt.Errorf("cocluster: Subsample requires a TypeZeroOne main ClusterFunction, got %q: %w",
				fn.Type(), ErrConfig)
		}
	case cfg.Sequential:
		// The search must be able to vary k.
		if fn.Type() != TypeK {
			return fmt.Errorf("cocluster: Sequential without Subsample requires a TypeK main ClusterFunction, got %q: %w",
				fn.Type(), ErrConfig)
		}
	}

	if cfg.Subsample {
		if cfg.SubsampleOpts == nil {
			return fmt.Errorf("cocluster: Subsample is set but SubsampleOpts is nil: %w", ErrConfig)
		}
		if err := validateSubsampleOptions(cfg.SubsampleOpts); err != nil {
			return err
		}
	}

	if cfg.Sequential {
		if cfg.SeqOpts == nil {
			return fmt.Errorf("cocluster: Sequential is set but SeqOpts is nil: %w", ErrConfig)
		}
		if err := validateSequentialOptions(cfg.SeqOpts); err != nil {
			return err
		}
		if cfg.Main.K != 0 {
			return fmt.Errorf("cocluster: Main.K must not be set with Sequential; k is computed per iteration: %w", ErrConfig)
		}
		if cfg.FindBestK && !cfg.Subsample {
			return fmt.Errorf("cocluster: FindBestK with Sequential and no Subsample; the sequential loop already owns the k search: %w", ErrConfig)
		}
	}

	if cfg.FindBestK && !cfg.Sequential {
		if fn.Type() != TypeK {
			return fmt.Errorf("cocluster: FindBestK requires a TypeK main ClusterFunction, got %q: %w", fn.Type(), ErrConfig)
		}
		if cfg.Main.K != 0 {
			return fmt.Errorf("cocluster: FindBestK with Main.K already set: %w", ErrConfig)
		}
		if cfg.KRange[0] < 2 || cfg.KRange[1] < cfg.KRange[0] {
			return fmt.Errorf("cocluster: KRange must satisfy 2 <= low <= high, got [%d, %d]: %w",
				cfg.KRange[0], cfg.KRange[1], ErrConfig)
		}
	}

	if hasDiss && cfg.Distance != nil {
		return fmt.Errorf("cocluster: Distance override has no meaning when a dissimilarity matrix is supplied directly: %w", ErrConfig)
	}

	if cfg.Main.MinSize < 0 {
		return fmt.Errorf("cocluster: Main.MinSize must be >= 0, got %d: %w", cfg.Main.MinSize, ErrConfig)
	}
	if cfg.Main.Alpha < 0 || cfg.Main.Alpha > 1 {
		return fmt.Errorf("cocluster: Main.Alpha must be in [0, 1], got %g: %w", cfg.Main.Alpha, ErrConfig)
	}
	if cfg.NDims < 0 {
		return fmt.Errorf("cocluster: NDims must be >= 0, got %d: %w", cfg.NDims, ErrConfig)
	}

	switch cfg.Reduce {
	case ReduceNone, ReducePCA, ReduceVar, ReduceMAD:
		// valid
	default:
		return fmt.Errorf("cocluster: invalid Reduce method %q: %w", cfg.Reduce, ErrConfig)
	}

	return nil
}

// configWarnings collects non-fatal, likely-unintended configuration
// choices. Warnings never alter computed results.
func configWarnings(cfg *Config, hasX bool) []string {
	var warnings []string
	if cfg.NDims > 0 && cfg.Reduce == ReduceNone {
		warnings = append(warnings, "NDims is set but Reduce is \"none\"; no reduction is applied")
	}
	if cfg.Reduce != ReduceNone && !hasX {
		warnings = append(warnings, "Reduce is set but the driving input is a dissimilarity matrix; no reduction is applied")
	}
	return warnings
}
