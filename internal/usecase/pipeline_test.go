package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"QuoteLens/internal/domain/models"
	"QuoteLens/internal/services/timeseries"
)

type fakeSource struct {
	calls int
	resp  *models.RawQuoteResponse
	err   error
}

func (f *fakeSource) Fetch(ctx context.Context, req models.QuoteRequest) (*models.RawQuoteResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type mapCache struct {
	entries map[string]*models.NormalizedSeries
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*models.NormalizedSeries)}
}

func (m *mapCache) Get(ctx context.Context, key string) (*models.NormalizedSeries, bool) {
	s, ok := m.entries[key]
	return s, ok
}

func (m *mapCache) Set(ctx context.Context, key string, s *models.NormalizedSeries) {
	m.entries[key] = s
}

type noopMetrics struct{}

func (noopMetrics) RecordFetch(function, symbol string)      {}
func (noopMetrics) RecordError(kind string)                  {}
func (noopMetrics) RecordRows(symbol string, n int)          {}
func (noopMetrics) RecordLatency(op string, seconds float64) {}

func record(v string) map[string]string {
	return map[string]string{
		"1. open":   v,
		"2. high":   v,
		"3. low":    v,
		"4. close":  v,
		"5. volume": "100",
	}
}

func dailyResponse(symbol string, closes map[string]string) *models.RawQuoteResponse {
	series := make(map[string]map[string]string, len(closes))
	for day, c := range closes {
		series[day] = record(c)
	}
	return &models.RawQuoteResponse{
		MetaData: map[string]string{
			"1. Information":    "Daily Prices",
			"2. Symbol":         symbol,
			"3. Last Refreshed": "2024-03-01",
			"4. Output Size":    "Compact",
			"5. Time Zone":      "US/Eastern",
		},
		Series: series,
	}
}

func wideWindow() timeseries.Range {
	return timeseries.Range{
		From:     time.Unix(0, 0).UTC(),
		To:       time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC),
		PriceMin: math.Inf(-1),
		PriceMax: math.Inf(1),
	}
}

func params() RunParams {
	return RunParams{
		Symbol:      "IBM",
		Function:    models.FuncDaily,
		Window:      wideWindow(),
		SplineCount: 1,
	}
}

func TestRunAssemblesResult(t *testing.T) {
	src := &fakeSource{resp: dailyResponse("IBM", map[string]string{
		"2024-02-26": "10", "2024-02-27": "12", "2024-02-28": "11",
		"2024-02-29": "13", "2024-03-01": "14",
	})}
	p := NewAnalysisPipeline(src, newMapCache(), noopMetrics{})

	result, err := p.Run(context.Background(), params())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Meta.Symbol != "IBM" {
		t.Fatalf("symbol = %q", result.Meta.Symbol)
	}
	if len(result.Points) != 5 || len(result.Residuals) != 5 || len(result.Grid) != 5 {
		t.Fatalf("sizes: points=%d residuals=%d grid=%d",
			len(result.Points), len(result.Residuals), len(result.Grid))
	}
	for i, pt := range result.Points {
		want := pt.Close - pt.Predicted
		if math.Abs(pt.Residual-want) > 1e-9 {
			t.Fatalf("point %d residual %v, want %v", i, pt.Residual, want)
		}
	}
	if result.Fit.SplineCount != 1 || result.Fit.Coefficients != 2 {
		t.Fatalf("fit summary: %+v", result.Fit)
	}
}

func TestRunMemoizesNormalizedTable(t *testing.T) {
	src := &fakeSource{resp: dailyResponse("IBM", map[string]string{
		"2024-02-27": "12", "2024-02-28": "11",
		"2024-02-29": "13", "2024-03-01": "14",
	})}
	p := NewAnalysisPipeline(src, newMapCache(), noopMetrics{})

	first := params()
	if _, err := p.Run(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a spline or range change must reuse the cached table
	second := params()
	second.SplineCount = 2
	second.Window.PriceMin = 11
	if _, err := p.Run(context.Background(), second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src.calls != 1 {
		t.Fatalf("fetches = %d, want 1", src.calls)
	}
}

func TestRunNilCacheFetchesEveryTime(t *testing.T) {
	src := &fakeSource{resp: dailyResponse("IBM", map[string]string{
		"2024-02-29": "13", "2024-03-01": "14", "2024-02-28": "11",
	})}
	p := NewAnalysisPipeline(src, nil, noopMetrics{})

	for i := 0; i < 2; i++ {
		if _, err := p.Run(context.Background(), params()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if src.calls != 2 {
		t.Fatalf("fetches = %d, want 2", src.calls)
	}
}

// A price window far above every close empties the view; the run must
// fail cleanly at the fit stage, not crash.
func TestRunEmptyViewReportsInsufficientData(t *testing.T) {
	src := &fakeSource{resp: dailyResponse("IBM", map[string]string{
		"2024-02-28": "11", "2024-02-29": "13", "2024-03-01": "14",
	})}
	p := NewAnalysisPipeline(src, newMapCache(), noopMetrics{})

	pr := params()
	pr.Window.PriceMin = 1000
	pr.Window.PriceMax = 2000

	_, err := p.Run(context.Background(), pr)
	var insufficient *models.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}

func TestRunPropagatesFetchError(t *testing.T) {
	src := &fakeSource{err: &models.FetchError{Err: errors.New("rate limited")}}
	p := NewAnalysisPipeline(src, newMapCache(), noopMetrics{})

	_, err := p.Run(context.Background(), params())
	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestRunValidatesParams(t *testing.T) {
	p := NewAnalysisPipeline(&fakeSource{}, nil, noopMetrics{})

	bad := params()
	bad.Symbol = ""
	if _, err := p.Run(context.Background(), bad); err == nil {
		t.Fatal("expected error for missing symbol")
	}

	bad = params()
	bad.Function = models.FuncIntraday
	bad.Interval = ""
	if _, err := p.Run(context.Background(), bad); err == nil {
		t.Fatal("expected error for intraday without interval")
	}

	bad = params()
	bad.SplineCount = 0
	if _, err := p.Run(context.Background(), bad); err == nil {
		t.Fatal("expected error for zero spline count")
	}
}
