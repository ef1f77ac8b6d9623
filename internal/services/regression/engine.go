package regression

import (
	"math"
	"sort"

	"QuoteLens/internal/domain/models"
)

// FitResult is a fitted close-vs-time model evaluated over the view's own
// timestamps. Prediction is restricted to observed support; the grid's
// key set equals the view's timestamp set.
type FitResult struct {
	Grid         models.PredictionGrid
	Coefficients []float64
	RSquared     float64
}

// Fit performs a least-squares regression of close price on a natural
// cubic spline basis of the time ordinal with splineCount degrees of
// freedom. The time ordinal is Unix seconds, standardized internally so
// the cubic terms stay well conditioned.
func Fit(view models.FilteredView, splineCount int) (*FitResult, error) {
	if splineCount < 1 {
		return nil, &models.InvalidRangeError{Reason: "spline_count must be a positive integer"}
	}
	if view.Len() < 2 {
		return nil, &models.InsufficientDataError{Rows: view.Len()}
	}

	xs := make([]float64, 0, view.Len())
	seen := make(map[int64]struct{}, view.Len())
	for _, p := range view.Points {
		sec := p.Timestamp.Unix()
		if _, dup := seen[sec]; dup {
			continue
		}
		seen[sec] = struct{}{}
		xs = append(xs, float64(sec))
	}
	sort.Float64s(xs)

	// spline_count >= distinct support means an interpolating or
	// unsolvable fit; refuse rather than degenerate silently
	if splineCount >= len(xs) {
		return nil, &models.UnderdeterminedModelError{SplineCount: splineCount, Distinct: len(xs)}
	}

	mean, scale := standardizer(xs)
	std := make([]float64, len(xs))
	for i, x := range xs {
		std[i] = (x - mean) / scale
	}
	knots := splineKnots(std, splineCount)

	rows := make([][]float64, view.Len())
	y := make([]float64, view.Len())
	for i, p := range view.Points {
		rows[i] = basisRow((float64(p.Timestamp.Unix())-mean)/scale, knots)
		y[i] = p.Close
	}

	w, ok := solveNormal(rows, y)
	if !ok {
		return nil, &models.UnderdeterminedModelError{SplineCount: splineCount, Distinct: len(xs)}
	}

	grid := make(models.PredictionGrid, len(xs))
	for _, p := range view.Points {
		sec := p.Timestamp.Unix()
		if _, done := grid[sec]; done {
			continue
		}
		row := basisRow((float64(sec)-mean)/scale, knots)
		grid[sec] = dot(row, w)
	}

	return &FitResult{
		Grid:         grid,
		Coefficients: w,
		RSquared:     rSquared(rows, y, w),
	}, nil
}

func standardizer(xs []float64) (mean, scale float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		d := x - mean
		scale += d * d
	}
	scale = math.Sqrt(scale / float64(len(xs)))
	if scale == 0 {
		scale = 1
	}
	return mean, scale
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func rSquared(rows [][]float64, y, w []float64) float64 {
	var meanY float64
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(len(y))

	var sse, sst float64
	for i, row := range rows {
		r := y[i] - dot(row, w)
		sse += r * r
		d := y[i] - meanY
		sst += d * d
	}
	if sst == 0 {
		return 1
	}
	return 1 - sse/sst
}
