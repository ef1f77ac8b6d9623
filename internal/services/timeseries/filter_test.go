package timeseries

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"QuoteLens/internal/domain/models"
)

func tableOf(closes ...float64) models.TimeSeriesTable {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.TimeSeriesPoint, len(closes))
	for i, c := range closes {
		points[i] = models.TimeSeriesPoint{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c, High: c, Low: c, Close: c, Volume: 100,
		}
	}
	return models.TimeSeriesTable{Points: points}
}

func allRange() Range {
	return Range{
		From:     time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC),
		PriceMin: math.Inf(-1),
		PriceMax: math.Inf(1),
	}
}

func TestFilterBothBoundsAreConjunctive(t *testing.T) {
	table := tableOf(10, 20, 30, 40, 50)
	r := allRange()
	// days 2..4 by time, closes 30..50 by price; the AND keeps days 3 and 4
	r.From = table.Points[1].Timestamp
	r.To = table.Points[3].Timestamp
	r.PriceMin = 30
	r.PriceMax = 50

	view, err := Filter(table, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Len() != 2 {
		t.Fatalf("rows = %d, want 2", view.Len())
	}
	if view.Points[0].Close != 30 || view.Points[1].Close != 40 {
		t.Fatalf("wrong rows: %+v", view.Points)
	}
}

func TestFilterBoundsInclusive(t *testing.T) {
	table := tableOf(10, 20, 30)
	r := allRange()
	r.From = table.Points[0].Timestamp
	r.To = table.Points[2].Timestamp
	r.PriceMin = 10
	r.PriceMax = 30

	view, err := Filter(table, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Len() != 3 {
		t.Fatalf("rows = %d, want all 3 (bounds are inclusive)", view.Len())
	}
}

func TestFilterIdempotent(t *testing.T) {
	table := tableOf(10, 20, 30, 40, 50)
	r := allRange()
	r.PriceMin = 15
	r.PriceMax = 45

	once, err := Filter(table, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := FilterView(once, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(once.Points, twice.Points) {
		t.Fatalf("filter not idempotent: %v vs %v", once.Points, twice.Points)
	}
}

func TestFilterEmptyResultIsValid(t *testing.T) {
	table := tableOf(10, 20, 30)
	r := allRange()
	r.PriceMin = 1000
	r.PriceMax = 2000

	view, err := Filter(table, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Len() != 0 {
		t.Fatalf("rows = %d, want 0", view.Len())
	}
}

func TestFilterInvalidRanges(t *testing.T) {
	table := tableOf(10)

	r := allRange()
	r.From, r.To = r.To, r.From
	if _, err := Filter(table, r); err == nil {
		t.Fatal("expected InvalidRangeError for inverted time bounds")
	}

	r = allRange()
	r.PriceMin, r.PriceMax = 50, 10
	_, err := Filter(table, r)
	var rangeErr *models.InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
}
