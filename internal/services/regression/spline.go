package regression

import "math"

// Natural cubic spline basis of a single predictor. With K knots the
// basis has K columns: intercept, the predictor itself, and K-2
// truncated-cubic differences that are linear beyond the boundary knots.
// spline_count degrees of freedom means K = spline_count + 1 knots, so a
// spline_count of 1 degenerates to a straight-line fit.

// splineKnots places spline_count+1 knots over the sorted distinct
// predictor values: boundaries at min and max, interiors at quantiles.
func splineKnots(sorted []float64, df int) []float64 {
	n := len(sorted)
	knots := make([]float64, 0, df+1)
	knots = append(knots, sorted[0])
	for k := 1; k < df; k++ {
		pos := float64(k) / float64(df) * float64(n-1)
		lo := int(math.Floor(pos))
		frac := pos - float64(lo)
		v := sorted[lo]
		if frac > 0 && lo+1 < n {
			v = sorted[lo]*(1-frac) + sorted[lo+1]*frac
		}
		knots = append(knots, v)
	}
	knots = append(knots, sorted[n-1])
	return knots
}

// basisRow evaluates the K basis functions at x.
func basisRow(x float64, knots []float64) []float64 {
	k := len(knots)
	row := make([]float64, k)
	row[0] = 1
	row[1] = x
	if k <= 2 {
		return row
	}
	dLast := truncatedCubic(x, knots, k-2)
	for i := 0; i <= k-3; i++ {
		row[i+2] = truncatedCubic(x, knots, i) - dLast
	}
	return row
}

// truncatedCubic is d_i(x) = ((x-k_i)+^3 - (x-k_last)+^3) / (k_last - k_i).
func truncatedCubic(x float64, knots []float64, i int) float64 {
	last := len(knots) - 1
	num := cubePlus(x-knots[i]) - cubePlus(x-knots[last])
	return num / (knots[last] - knots[i])
}

func cubePlus(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v * v * v
}

// solveNormal solves (AᵀA)w = Aᵀy by Gaussian elimination with partial
// pivoting. Returns false when the system is singular, which means the
// basis is not identifiable on this support.
func solveNormal(rows [][]float64, y []float64) ([]float64, bool) {
	p := len(rows[0])

	ata := make([][]float64, p)
	aty := make([]float64, p)
	for i := range ata {
		ata[i] = make([]float64, p)
	}
	for r, row := range rows {
		for i := 0; i < p; i++ {
			aty[i] += row[i] * y[r]
			for j := 0; j < p; j++ {
				ata[i][j] += row[i] * row[j]
			}
		}
	}

	const eps = 1e-12
	for col := 0; col < p; col++ {
		pivot := col
		for r := col + 1; r < p; r++ {
			if math.Abs(ata[r][col]) > math.Abs(ata[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(ata[pivot][col]) < eps {
			return nil, false
		}
		ata[col], ata[pivot] = ata[pivot], ata[col]
		aty[col], aty[pivot] = aty[pivot], aty[col]

		for r := col + 1; r < p; r++ {
			f := ata[r][col] / ata[col][col]
			for j := col; j < p; j++ {
				ata[r][j] -= f * ata[col][j]
			}
			aty[r] -= f * aty[col]
		}
	}

	w := make([]float64, p)
	for i := p - 1; i >= 0; i-- {
		sum := aty[i]
		for j := i + 1; j < p; j++ {
			sum -= ata[i][j] * w[j]
		}
		w[i] = sum / ata[i][i]
	}
	return w, true
}
