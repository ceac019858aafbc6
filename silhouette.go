package cocluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// averageSilhouette computes the mean silhouette width of a labeling over a
// dissimilarity matrix. Unassigned samples are excluded. Samples in
// singleton clusters contribute width 0. Returns 0 when fewer than two
// clusters are present, since "best k" is meaningless there.
func averageSilhouette(d *mat.SymDense, labels []int) float64 {
	n := d.SymmetricDim()
	sizes := groupSizes(labels)
	if len(sizes) < 2 {
		return 0
	}

	var widths []float64
	for i := 0; i < n; i++ {
		li := labels[i]
		if li == Unassigned {
			continue
		}
		if sizes[li] == 1 {
			widths = append(widths, 0)
			continue
		}

		// Mean dissimilarity to every cluster, own cluster excluded from
		// its own count by the j == i skip.
		sums := make(map[int]float64, len(sizes))
		for j := 0; j < n; j++ {
			if j == i || labels[j] == Unassigned {
				continue
			}
			sums[labels[j]] += d.At(i, j)
		}

		a := sums[li] / float64(sizes[li]-1)
		b := math.Inf(1)
		for l, s := range sums {
			if l == li {
				continue
			}
			if m := s / float64(sizes[l]); m < b {
				b = m
			}
		}
		if math.IsInf(b, 1) {
			continue
		}

		denom := math.Max(a, b)
		if denom == 0 {
			widths = append(widths, 0)
			continue
		}
		widths = append(widths, (b-a)/denom)
	}

	if len(widths) == 0 {
		return 0
	}
	return floats.Sum(widths) / float64(len(widths))
}
