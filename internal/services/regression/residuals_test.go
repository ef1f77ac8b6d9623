package regression

import (
	"errors"
	"math"
	"testing"

	"QuoteLens/internal/domain/models"
)

func TestResidualsMatchFit(t *testing.T) {
	view := viewOf(10, 14, 9, 17, 12, 15, 11, 16)
	fit, err := Fit(view, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, stats, err := Residuals(view, fit.Grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != view.Len() {
		t.Fatalf("records = %d, want %d", len(records), view.Len())
	}
	for i, rec := range records {
		p := view.Points[i]
		if !rec.Timestamp.Equal(p.Timestamp) {
			t.Fatalf("record %d out of order", i)
		}
		want := p.Close - fit.Grid[p.Timestamp.Unix()]
		if math.Abs(rec.Residual-want) > 1e-9 {
			t.Fatalf("residual[%d] = %v, want %v", i, rec.Residual, want)
		}
		if math.Abs(rec.Residual-(rec.ActualClose-rec.PredictedClose)) > 1e-9 {
			t.Fatalf("residual[%d] inconsistent with its own columns", i)
		}
	}
	if stats.Count != len(records) {
		t.Fatalf("stats count = %d", stats.Count)
	}
	// least squares with an intercept column leaves zero-mean residuals
	if math.Abs(stats.Mean) > 1e-6 {
		t.Fatalf("mean residual = %v, want ~0", stats.Mean)
	}
}

func TestResidualsJoinError(t *testing.T) {
	view := viewOf(1, 2, 3)
	fit, err := Fit(view, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	delete(fit.Grid, view.Points[1].Timestamp.Unix())

	_, _, err = Residuals(view, fit.Grid)
	var joinErr *models.JoinError
	if !errors.As(err, &joinErr) {
		t.Fatalf("expected JoinError, got %v", err)
	}
	if !joinErr.Timestamp.Equal(view.Points[1].Timestamp) {
		t.Fatalf("join error at %v, want %v", joinErr.Timestamp, view.Points[1].Timestamp)
	}
}

func TestResidualsEmptyView(t *testing.T) {
	records, stats, err := Residuals(models.FilteredView{}, models.PredictionGrid{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 || stats.Count != 0 {
		t.Fatalf("expected empty result, got %d records", len(records))
	}
}

func TestResidualsStats(t *testing.T) {
	view := viewOf(10, 20)
	grid := models.PredictionGrid{
		view.Points[0].Timestamp.Unix(): 12, // residual -2
		view.Points[1].Timestamp.Unix(): 16, // residual +4
	}
	_, stats, err := Residuals(view, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(stats.Mean-1) > 1e-9 {
		t.Fatalf("mean = %v, want 1", stats.Mean)
	}
	if math.Abs(stats.StdDev-3) > 1e-9 {
		t.Fatalf("stddev = %v, want 3", stats.StdDev)
	}
}
