package regression

import (
	"math"

	"QuoteLens/internal/domain/models"
)

// Residuals joins a prediction grid back to its filtered view and
// computes residual = actual close - predicted close per row. Fails with
// JoinError when a view timestamp has no grid entry; unreachable for a
// grid produced by Fit on the same view, but the guard protects against
// grid/view divergence when the components are reused independently.
func Residuals(view models.FilteredView, grid models.PredictionGrid) ([]models.ResidualRecord, models.ResidualStats, error) {
	records := make([]models.ResidualRecord, 0, view.Len())
	var sum float64
	for _, p := range view.Points {
		pred, ok := grid[p.Timestamp.Unix()]
		if !ok {
			return nil, models.ResidualStats{}, &models.JoinError{Timestamp: p.Timestamp}
		}
		r := p.Close - pred
		records = append(records, models.ResidualRecord{
			Timestamp:      p.Timestamp,
			ActualClose:    p.Close,
			PredictedClose: pred,
			Residual:       r,
		})
		sum += r
	}

	stats := models.ResidualStats{Count: len(records)}
	if stats.Count > 0 {
		stats.Mean = sum / float64(stats.Count)
		var ss float64
		for _, rec := range records {
			d := rec.Residual - stats.Mean
			ss += d * d
		}
		stats.StdDev = math.Sqrt(ss / float64(stats.Count))
	}
	return records, stats, nil
}
