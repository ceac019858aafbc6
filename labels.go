package cocluster

import "fmt"

// Unassigned is the sentinel label for a sample not assigned to any cluster.
const Unassigned = -1

// NormalizeLabels renumbers cluster labels to the compact range 1..k in
// order of first appearance, leaving Unassigned untouched. The partition is
// preserved exactly: two samples share a label after normalization iff they
// shared one before. The input slice is not modified.
func NormalizeLabels(labels []int) []int {
	out := make([]int, len(labels))
	remap := make(map[int]int)
	next := 1
	for i, l := range labels {
		if l == Unassigned {
			out[i] = Unassigned
			continue
		}
		id, ok := remap[l]
		if !ok {
			id = next
			remap[l] = id
			next++
		}
		out[i] = id
	}
	return out
}

// checkLabels verifies that a collaborator returned one label per sample.
func checkLabels(labels []int, m int, from string) error {
	if len(labels) != m {
		return fmt.Errorf("cocluster: %s returned %d labels for %d samples: %w",
			from, len(labels), m, ErrContract)
	}
	return nil
}

// groupSizes counts samples per non-sentinel label.
func groupSizes(labels []int) map[int]int {
	sizes := make(map[int]int)
	for _, l := range labels {
		if l != Unassigned {
			sizes[l]++
		}
	}
	return sizes
}

// dropSmallGroups replaces the labels of groups smaller than minSize with
// Unassigned. Returns a new slice.
func dropSmallGroups(labels []int, minSize int) []int {
	if minSize <= 1 {
		out := make([]int, len(labels))
		copy(out, labels)
		return out
	}
	sizes := groupSizes(labels)
	out := make([]int, len(labels))
	for i, l := range labels {
		if l != Unassigned && sizes[l] < minSize {
			out[i] = Unassigned
		} else {
			out[i] = l
		}
	}
	return out
}
