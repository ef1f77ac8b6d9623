package timeseries

import (
	"time"

	"QuoteLens/internal/domain/models"
)

// Range bounds a table by an inclusive datetime interval and an inclusive
// close-price interval.
type Range struct {
	From     time.Time
	To       time.Time
	PriceMin float64
	PriceMax float64
}

// Validate rejects malformed bounds before any filtering happens.
func (r Range) Validate() error {
	if r.From.After(r.To) {
		return &models.InvalidRangeError{Reason: "time interval lower bound is after upper bound"}
	}
	if r.PriceMin > r.PriceMax {
		return &models.InvalidRangeError{Reason: "price interval lower bound is above upper bound"}
	}
	return nil
}

// Filter returns the order-preserving subsequence of rows whose timestamp
// lies in [From, To] and whose close lies in [PriceMin, PriceMax]. An
// empty result is valid; idempotent under re-application of the same
// bounds.
func Filter(t models.TimeSeriesTable, r Range) (models.FilteredView, error) {
	if err := r.Validate(); err != nil {
		return models.FilteredView{}, err
	}

	out := make([]models.TimeSeriesPoint, 0, len(t.Points))
	for _, p := range t.Points {
		if p.Timestamp.Before(r.From) || p.Timestamp.After(r.To) {
			continue
		}
		if p.Close < r.PriceMin || p.Close > r.PriceMax {
			continue
		}
		out = append(out, p)
	}
	return models.FilteredView{Points: out}, nil
}

// FilterView re-applies bounds to an already-filtered view; used when
// components are composed independently of a full table.
func FilterView(v models.FilteredView, r Range) (models.FilteredView, error) {
	return Filter(models.TimeSeriesTable{Points: v.Points}, r)
}
