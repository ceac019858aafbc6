package cocluster

import "fmt"

// Stop reasons reported by the sequential search.
const (
	// StopKMaxReached: no stable cluster was found before k exceeded KMax.
	StopKMaxReached = "kMaxReached"
	// StopTooFewRemaining: fewer than MinRemain samples were left to search.
	StopTooFewRemaining = "tooFewRemaining"
	// StopExhausted: every sample was assigned to a found cluster.
	StopExhausted = "exhausted"
)

// SequentialOptions configures the multi-resolution search. K0 and Beta are
// required: there is no safe default for the starting resolution or the
// stability threshold.
type SequentialOptions struct {
	// K0 is the starting resolution of each cluster search. Must be >= 2.
	K0 int

	// Beta is the overlap ratio at which the top cluster is considered
	// stable across consecutive resolutions, in (0, 1].
	Beta float64

	// KMax is the largest resolution tried before giving up on the current
	// cluster. Default: K0 + 10.
	KMax int

	// MinRemain stops the search when fewer samples remain. Default: K0 + 1.
	MinRemain int
}

func applySequentialDefaults(opts *SequentialOptions) {
	if opts.KMax == 0 {
		opts.KMax = opts.K0 + 10
	}
	if opts.MinRemain == 0 {
		opts.MinRemain = opts.K0 + 1
	}
}

func validateSequentialOptions(opts *SequentialOptions) error {
	if opts.K0 < 2 {
		return fmt.Errorf("cocluster: SeqOpts.K0 is required and must be >= 2, got %d: %w", opts.K0, ErrConfig)
	}
	if opts.Beta <= 0 || opts.Beta > 1 {
		return fmt.Errorf("cocluster: SeqOpts.Beta is required and must be in (0, 1], got %g: %w", opts.Beta, ErrConfig)
	}
	if opts.KMax < opts.K0 {
		return fmt.Errorf("cocluster: SeqOpts.KMax must be >= K0, got %d < %d: %w", opts.KMax, opts.K0, ErrConfig)
	}
	if opts.MinRemain < 1 {
		return fmt.Errorf("cocluster: SeqOpts.MinRemain must be >= 1, got %d: %w", opts.MinRemain, ErrConfig)
	}
	return nil
}

// StepFunc runs one main clustering step at resolution k over the given
// (possibly subset) input. The orchestrator supplies it; the labels it
// returns are already normalized and length-checked.
type StepFunc func(in Input, k int) ([]int, error)

// SequentialResult is the outcome of a sequential search.
type SequentialResult struct {
	Labels     []int
	StopReason string
	// Found is the number of stable clusters accepted.
	Found int
}

// SequentialSearcher iteratively steps the resolution parameter k, invoking
// the main clustering step at each resolution, and returns the final
// labeling with a stop reason.
type SequentialSearcher interface {
	Search(in Input, opts SequentialOptions, step StepFunc) (*SequentialResult, error)
}

// StepSearcher is the default SequentialSearcher. It finds one stable
// cluster at a time: starting at K0 it raises the resolution and compares
// the largest cluster between consecutive k values; when the Jaccard
// overlap reaches Beta the cluster is accepted, its samples are removed,
// and the search restarts on the remainder.
type StepSearcher struct{}

func (StepSearcher) Search(in Input, opts SequentialOptions, step StepFunc) (*SequentialResult, error) {
	m := in.Samples()
	final := make([]int, m)
	for i := range final {
		final[i] = Unassigned
	}

	remaining := make([]int, m)
	for i := range remaining {
		remaining[i] = i
	}

	result := &SequentialResult{Labels: final}
	for {
		if len(remaining) < opts.MinRemain {
			result.StopReason = StopTooFewRemaining
			return result, nil
		}

		sub := subsetInput(in, remaining)
		prev, err := step(sub, opts.K0)
		if err != nil {
			return nil, err
		}
		prevTop := topCluster(prev)

		var accepted []int
		for k := opts.K0 + 1; k <= opts.KMax; k++ {
			cur, err := step(sub, k)
			if err != nil {
				return nil, err
			}
			curTop := topCluster(cur)
			if jaccard(prevTop, curTop) >= opts.Beta {
				accepted = curTop
				break
			}
			prevTop = curTop
		}

		if len(accepted) == 0 {
			result.StopReason = StopKMaxReached
			return result, nil
		}

		result.Found++
		for _, pos := range accepted {
			final[remaining[pos]] = result.Found
		}

		kept := remaining[:0]
		acceptedSet := make(map[int]bool, len(accepted))
		for _, pos := range accepted {
			acceptedSet[pos] = true
		}
		for pos, i := range remaining {
			if !acceptedSet[pos] {
				kept = append(kept, i)
			}
		}
		remaining = kept

		if len(remaining) == 0 {
			result.StopReason = StopExhausted
			return result, nil
		}
	}
}

// topCluster returns the sample positions of the largest non-sentinel
// cluster; ties break toward the smaller label, which is deterministic
// because step labels are normalized.
func topCluster(labels []int) []int {
	sizes := groupSizes(labels)
	best, bestSize := 0, 0
	for l, s := range sizes {
		if s > bestSize || (s == bestSize && l < best) {
			best, bestSize = l, s
		}
	}
	if bestSize == 0 {
		return nil
	}
	var members []int
	for i, l := range labels {
		if l == best {
			members = append(members, i)
		}
	}
	return members
}

// jaccard computes the intersection-over-union of two position sets. Empty
// union yields 0.
func jaccard(a, b []int) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inA := make(map[int]bool, len(a))
	for _, v := range a {
		inA[v] = true
	}
	inter := 0
	for _, v := range b {
		if inA[v] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
