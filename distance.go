package cocluster

import "math"

// DistanceFunc measures the dissimilarity between two feature vectors of
// equal length. It is used to derive a pairwise dissimilarity matrix from a
// feature matrix when a TypeZeroOne function needs one and none was supplied.
type DistanceFunc func(a, b []float64) float64

// Euclidean is the L2 distance.
func Euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Manhattan is the L1 (city-block) distance.
func Manhattan(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}
