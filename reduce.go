package cocluster

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Default dimension counts resolved when NDims <= 0. PCA keeps few dense
// components; the filter statistics keep a larger slice of raw features.
const (
	defaultPCADims    = 50
	defaultFilterDims = 500
)

// reduceMatrix applies the configured dimensionality reduction to a feature
// matrix. ReduceNone returns x unchanged (an observable no-op even when a
// dimension count was requested). The target dimension is capped at the
// feature count.
func reduceMatrix(x *mat.Dense, method ReduceMethod, nDims int) (*mat.Dense, error) {
	if method == ReduceNone {
		return x, nil
	}

	_, cols := x.Dims()
	d := nDims
	if d <= 0 {
		d = defaultDims(method)
	}
	if d > cols {
		d = cols
	}

	switch method {
	case ReducePCA:
		return reducePCA(x, d)
	case ReduceVar:
		return filterColumns(x, d, colVariance), nil
	case ReduceMAD:
		return filterColumns(x, d, colMAD), nil
	default:
		return nil, fmt.Errorf("cocluster: invalid Reduce method %q: %w", method, ErrConfig)
	}
}

func defaultDims(method ReduceMethod) int {
	if method == ReducePCA {
		return defaultPCADims
	}
	return defaultFilterDims
}

// reducePCA projects x onto its top d principal components.
func reducePCA(x *mat.Dense, d int) (*mat.Dense, error) {
	rows, cols := x.Dims()
	if lim := min(rows, cols); d > lim {
		d = lim
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, fmt.Errorf("cocluster: principal component decomposition failed: %w", ErrConfig)
	}

	var vec mat.Dense
	pc.VectorsTo(&vec)

	var proj mat.Dense
	proj.Mul(x, vec.Slice(0, cols, 0, d))
	return &proj, nil
}

// filterColumns keeps the d columns of x with the largest score, preserving
// their original order. Ties break toward the lower column index so the
// selection is deterministic.
func filterColumns(x *mat.Dense, d int, score func(col []float64) float64) *mat.Dense {
	rows, cols := x.Dims()

	scores := make([]float64, cols)
	buf := make([]float64, rows)
	for c := 0; c < cols; c++ {
		mat.Col(buf, c, x)
		scores[c] = score(buf)
	}

	order := make([]int, cols)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	keep := append([]int(nil), order[:d]...)
	sort.Ints(keep)

	out := mat.NewDense(rows, d, nil)
	for oc, c := range keep {
		mat.Col(buf, c, x)
		out.SetCol(oc, buf)
	}
	return out
}

func colVariance(col []float64) float64 {
	return stat.Variance(col, nil)
}

// colMAD is the median absolute deviation from the median.
func colMAD(col []float64) float64 {
	med := median(col)
	devs := make([]float64, len(col))
	for i, v := range col {
		devs[i] = v - med
		if devs[i] < 0 {
			devs[i] = -devs[i]
		}
	}
	return median(devs)
}

func median(v []float64) float64 {
	s := append([]float64(nil), v...)
	sort.Float64s(s)
	n := len(s)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}
