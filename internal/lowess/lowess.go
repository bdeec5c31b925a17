// Package lowess implements locally weighted scatterplot smoothing evaluated on
// an arbitrary grid of query points, plus the half-open grid generator used to
// build those query points.
//
// The smoother is a single pass (no robustness iterations): for every grid
// point it takes the k nearest samples, where k = floor(frac*n), weights them
// with the tricube kernel scaled to the farthest neighbour, and evaluates a
// weighted least-squares line at the grid point.
package lowess

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrTooFewPoints is returned when fewer than two finite (x, y) pairs remain
// after dropping missing values.
var ErrTooFewPoints = errors.New("lowess: fewer than 2 valid points")

// ErrEmptyGrid is returned when there are no query points to evaluate.
var ErrEmptyGrid = errors.New("lowess: empty evaluation grid")

// ErrBadFraction is returned for a bandwidth fraction outside (0, 1].
var ErrBadFraction = errors.New("lowess: bandwidth fraction must be in (0, 1]")

// Point is one (x, y) sample. NaN in either coordinate marks it missing.
type Point struct {
	X float64
	Y float64
}

// Smooth fits y on x and returns one estimate per grid value, in grid order.
// points need not be sorted; pairs with a NaN or infinite coordinate are dropped.
func Smooth(points []Point, grid []float64, frac float64) ([]float64, error) {
	if !(frac > 0 && frac <= 1) {
		return nil, ErrBadFraction
	}
	if len(grid) == 0 {
		return nil, ErrEmptyGrid
	}

	pts := make([]Point, 0, len(points))
	for _, p := range points {
		if isFinite(p.X) && isFinite(p.Y) {
			pts = append(pts, p)
		}
	}
	n := len(pts)
	if n < 2 {
		return nil, ErrTooFewPoints
	}

	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}

	k := max(int(frac*float64(n)+1e-10), 2)
	k = min(k, n)
	xRange := xs[n-1] - xs[0]

	out := make([]float64, len(grid))
	w := make([]float64, k)
	for i, xv := range grid {
		left, right := neighbourhood(xs, xv, k)
		out[i] = fitAt(xs[left:right], ys[left:right], w[:right-left], xv, xRange)
	}
	return out, nil
}

// neighbourhood returns the [left, right) window of the k samples nearest xv.
// xs must be sorted ascending.
func neighbourhood(xs []float64, xv float64, k int) (left, right int) {
	n := len(xs)
	pos := sort.SearchFloat64s(xs, xv)
	left, right = pos, pos
	for right-left < k {
		switch {
		case left == 0:
			right++
		case right == n:
			left--
		case xv-xs[left-1] <= xs[right]-xv:
			left--
		default:
			right++
		}
	}
	return left, right
}

// fitAt evaluates the tricube-weighted least-squares line through (xs, ys) at xv.
func fitAt(xs, ys, w []float64, xv, xRange float64) float64 {
	radius := math.Max(xv-xs[0], xs[len(xs)-1]-xv)

	for j, x := range xs {
		w[j] = 0
		if radius <= 0 {
			w[j] = 1
		} else if d := math.Abs(x-xv) / radius; d <= 0.999 {
			c := 1 - d*d*d
			w[j] = c * c * c
		}
	}
	sumW := floats.Sum(w)
	if sumW <= 0 {
		// Every neighbour sits on the boundary of the window.
		floats.AddConst(1, w)
		sumW = float64(len(w))
	}
	// stat's unbiased estimators divide by sum(w)-1, so pin the sum to the
	// window size. The fit depends only on relative weights.
	floats.Scale(float64(len(w))/sumW, w)

	// A window with no spread in x has no slope; fall back to the weighted mean.
	_, xVar := stat.PopMeanVariance(xs, w)
	if xVar <= 1e-12*xRange*xRange {
		return stat.Mean(ys, w)
	}
	alpha, beta := stat.LinearRegression(xs, ys, w, false)
	return alpha + beta*xv
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
