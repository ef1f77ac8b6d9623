package models

import "time"

// TimeSeriesPoint is one normalized OHLCV row. All five numeric fields
// are present and finite by construction.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// TimeSeriesTable is the canonical normalized series: strictly increasing
// by timestamp, no duplicates, immutable once built. A new table is built
// per fetch.
type TimeSeriesTable struct {
	Points []TimeSeriesPoint `json:"points"`
}

func (t TimeSeriesTable) Len() int { return len(t.Points) }

// FilteredView is an order-preserving subsequence of a table, produced by
// the range filter and owned by a single pipeline run.
type FilteredView struct {
	Points []TimeSeriesPoint `json:"points"`
}

func (v FilteredView) Len() int { return len(v.Points) }

// Timestamps returns the view's timestamp sequence in order.
func (v FilteredView) Timestamps() []time.Time {
	ts := make([]time.Time, len(v.Points))
	for i, p := range v.Points {
		ts[i] = p.Timestamp
	}
	return ts
}

// NormalizedSeries pairs a normalized table with the metadata extracted
// from the same fetch. This is the unit the table cache memoizes.
type NormalizedSeries struct {
	Meta  MetaData        `json:"meta"`
	Table TimeSeriesTable `json:"table"`
}
