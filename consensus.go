package cocluster

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ConsensusOptions configures a consensus build over prior clusterings.
type ConsensusOptions struct {
	// Proportion is the agreement level required for two samples to be
	// placed together, in [0, 1]. Exactly 1 selects the exact-agreement
	// algorithm (tuple grouping); anything lower selects the fuzzy
	// algorithm (co-occurrence re-clustering).
	Proportion float64

	// ClusterFunc re-clusters the co-occurrence-derived dissimilarity in
	// the fuzzy branch, with Alpha = 1 - Proportion. Must be TypeZeroOne.
	// Unused when Proportion is 1, but still type-checked if supplied.
	ClusterFunc ClusterFunction

	// MinSize is the smallest group kept as a consensus cluster. Samples
	// in smaller groups come back Unassigned.
	MinSize int

	// PropUnassigned forces a sample to Unassigned when the fraction of
	// input clusterings leaving it unassigned exceeds this threshold, in
	// [0, 1]. Setting it to 1 disables the correction.
	PropUnassigned float64

	// Workers controls the goroutines used for the co-occurrence matrix.
	// 0 means runtime.NumCPU().
	Workers int
}

// ConsensusResult is the output of MakeConsensus.
type ConsensusResult struct {
	// Labels is the consensus clustering after the unassigned correction.
	Labels []int

	// BeforeCorrection is the clustering before the unassigned correction
	// was applied. Always populated, even when the correction changed
	// nothing.
	BeforeCorrection []int

	// PercentageShared is the pairwise co-occurrence matrix of the input
	// clusterings. nil in the exact-agreement branch, where no pairwise
	// statistic is computed; that is intentional, not an omission.
	PercentageShared *mat.SymDense
}

// MakeConsensus reconciles N prior clusterings of the same M samples into a
// single consensus clustering. assignments is sample-major: assignments[i]
// holds sample i's label in each of the N clusterings, with Unassigned
// marking the clusterings that left it out.
//
// With opts.Proportion == 1, samples are grouped by the exact tuple of
// their N labels; a group survives only if it has at least MinSize members
// and is not the all-unassigned tuple. With Proportion < 1, the pairwise
// co-occurrence matrix is computed, converted to a dissimilarity
// (1 - coOccurrence), and re-clustered by opts.ClusterFunc with
// Alpha = 1 - Proportion.
//
// In both branches, any sample left unassigned in more than
// opts.PropUnassigned of the input clusterings is forced to Unassigned in
// Labels; BeforeCorrection preserves the uncorrected clustering.
func MakeConsensus(assignments [][]int, opts ConsensusOptions) (*ConsensusResult, error) {
	m := len(assignments)
	if m == 0 {
		return nil, fmt.Errorf("cocluster: assignments is empty: %w", ErrConfig)
	}
	n := len(assignments[0])
	if n == 0 {
		return nil, fmt.Errorf("cocluster: assignments has no clusterings: %w", ErrConfig)
	}
	for i, row := range assignments {
		if len(row) != n {
			return nil, fmt.Errorf("cocluster: assignments row %d has %d entries, want %d: %w",
				i, len(row), n, ErrConfig)
		}
	}
	if opts.Proportion < 0 || opts.Proportion > 1 {
		return nil, fmt.Errorf("cocluster: Proportion must be in [0, 1], got %g: %w", opts.Proportion, ErrConfig)
	}
	if opts.PropUnassigned < 0 || opts.PropUnassigned > 1 {
		return nil, fmt.Errorf("cocluster: PropUnassigned must be in [0, 1], got %g: %w", opts.PropUnassigned, ErrConfig)
	}
	if opts.MinSize < 0 {
		return nil, fmt.Errorf("cocluster: MinSize must be >= 0, got %d: %w", opts.MinSize, ErrConfig)
	}
	if opts.ClusterFunc != nil && opts.ClusterFunc.Type() != TypeZeroOne {
		return nil, fmt.Errorf("cocluster: consensus ClusterFunc must be TypeZeroOne, got %q: %w",
			opts.ClusterFunc.Type(), ErrConfig)
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.NumCPU()
	}

	var labels []int
	var shared *mat.SymDense
	if opts.Proportion == 1 {
		labels = exactConsensus(assignments, opts.MinSize)
	} else {
		if opts.ClusterFunc == nil {
			return nil, fmt.Errorf("cocluster: ClusterFunc is required when Proportion < 1: %w", ErrConfig)
		}
		shared = coOccurrence(assignments, opts.Workers)
		d := DissimilarityFrom(shared)
		raw, err := opts.ClusterFunc.Cluster(Input{Diss: d}, Params{
			Alpha:   1 - opts.Proportion,
			MinSize: opts.MinSize,
		})
		if err != nil {
			return nil, fmt.Errorf("cocluster: consensus clustering: %w", err)
		}
		if err := checkLabels(raw, m, "consensus ClusterFunc"); err != nil {
			return nil, err
		}
		labels = NormalizeLabels(raw)
	}

	before := append([]int(nil), labels...)
	for i, row := range assignments {
		if unassignedFraction(row) > opts.PropUnassigned {
			labels[i] = Unassigned
		}
	}

	return &ConsensusResult{
		Labels:           labels,
		BeforeCorrection: before,
		PercentageShared: shared,
	}, nil
}

// exactConsensus groups samples by the exact tuple of their prior labels.
// Group IDs are assigned compactly in order of first appearance; the
// all-unassigned tuple and groups below minSize are dropped.
func exactConsensus(assignments [][]int, minSize int) []int {
	groups := make(map[string][]int)
	var order []string
	for i, row := range assignments {
		key := tupleKey(row)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	labels := make([]int, len(assignments))
	for i := range labels {
		labels[i] = Unassigned
	}
	next := 1
	for _, key := range order {
		members := groups[key]
		if len(members) < minSize || allUnassigned(assignments[members[0]]) {
			continue
		}
		for _, i := range members {
			labels[i] = next
		}
		next++
	}
	return labels
}

// tupleKey encodes a label row as an opaque composite key.
func tupleKey(row []int) string {
	var b strings.Builder
	for c, l := range row {
		if c > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(l))
	}
	return b.String()
}

func allUnassigned(row []int) bool {
	for _, l := range row {
		if l != Unassigned {
			return false
		}
	}
	return true
}

func unassignedFraction(row []int) float64 {
	count := 0
	for _, l := range row {
		if l == Unassigned {
			count++
		}
	}
	return float64(count) / float64(len(row))
}
