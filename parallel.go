package cocluster

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// pairwiseDissimilarity computes the full symmetric dissimilarity matrix of
// the rows of x under dist, using multiple goroutines. Each worker handles a
// contiguous range of "source" rows and computes dist(i, j) for all j > i in
// that range. Row ranges don't overlap, so workers write disjoint entries
// and no synchronization is needed. Falls back to a single-threaded loop if
// numWorkers <= 1.
func pairwiseDissimilarity(x *mat.Dense, dist DistanceFunc, numWorkers int) *mat.SymDense {
	n, _ := x.Dims()
	result := mat.NewSymDense(n, nil)
	if n <= 1 {
		return result
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = mat.Row(nil, i, x)
	}

	if numWorkers <= 1 {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				result.SetSym(i, j, dist(rows[i], rows[j]))
			}
		}
		return result
	}

	var wg sync.WaitGroup
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, n)
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				for j := i + 1; j < n; j++ {
					result.SetSym(i, j, dist(rows[i], rows[j]))
				}
			}
		}(startRow, endRow)
	}

	wg.Wait()
	return result
}

// coOccurrence computes the pairwise co-occurrence matrix of a sample-major
// M x N assignment matrix: entry (i, j) is the fraction of the N clusterings
// in which samples i and j share the same non-sentinel label, counting only
// clusterings where both are non-sentinel in the denominator. Pairs with
// zero eligible clusterings get 0, not NaN: "no information" is deliberately
// treated the same as "never co-clustered". The diagonal is forced to 1.
//
// Falls back to a single-threaded loop if numWorkers <= 1; the result is
// identical either way.
func coOccurrence(assignments [][]int, numWorkers int) *mat.SymDense {
	m := len(assignments)
	result := mat.NewSymDense(m, nil)

	fillRow := func(i int) {
		result.SetSym(i, i, 1)
		for j := i + 1; j < m; j++ {
			result.SetSym(i, j, pairCoOccurrence(assignments[i], assignments[j]))
		}
	}

	if numWorkers <= 1 || m <= 1 {
		for i := 0; i < m; i++ {
			fillRow(i)
		}
		return result
	}

	var wg sync.WaitGroup
	rowsPerWorker := (m + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, m)
		if startRow >= m {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fillRow(i)
			}
		}(startRow, endRow)
	}

	wg.Wait()
	return result
}

// pairCoOccurrence computes the co-occurrence of two samples given their
// label rows (length N each).
func pairCoOccurrence(a, b []int) float64 {
	eligible, same := 0, 0
	for c := range a {
		if a[c] == Unassigned || b[c] == Unassigned {
			continue
		}
		eligible++
		if a[c] == b[c] {
			same++
		}
	}
	if eligible == 0 {
		return 0
	}
	return float64(same) / float64(eligible)
}
