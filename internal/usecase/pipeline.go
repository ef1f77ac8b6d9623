package usecase

import (
	"context"
	"fmt"
	"time"

	"QuoteLens/internal/domain/models"
	domrepo "QuoteLens/internal/domain/repository"
	"QuoteLens/internal/services/regression"
	"QuoteLens/internal/services/timeseries"
)

// AnalysisPipeline composes fetch, normalize, filter, fit and residual
// stages into the single-shot run invoked on every parameter change.
// The normalized table is memoized per (function, symbol, interval), so a
// range or spline change only recomputes filter onward. The pipeline
// holds no other cross-run state; each run's view, grid and residuals are
// private to that run.
type AnalysisPipeline struct {
	source  domrepo.QuoteSource
	cache   domrepo.TableCache
	metrics domrepo.Metrics
}

// NewAnalysisPipeline builds the orchestrator. cache may be nil to
// disable memoization; correctness does not depend on it.
func NewAnalysisPipeline(source domrepo.QuoteSource, cache domrepo.TableCache, metrics domrepo.Metrics) *AnalysisPipeline {
	return &AnalysisPipeline{source: source, cache: cache, metrics: metrics}
}

// RunParams carries one run's user-supplied parameters. The pipeline
// validates them itself rather than trusting the control surface.
type RunParams struct {
	Symbol      string
	Function    models.SeriesFunction
	Interval    string
	Window      timeseries.Range
	SplineCount int
}

func (p *AnalysisPipeline) validate(params RunParams) error {
	if params.Symbol == "" {
		return fmt.Errorf("symbol required")
	}
	if !params.Function.Valid() {
		return fmt.Errorf("unsupported function %q", params.Function)
	}
	if params.Function.NeedsInterval() && params.Interval == "" {
		return fmt.Errorf("function %s requires an interval", params.Function)
	}
	if err := params.Window.Validate(); err != nil {
		return err
	}
	if params.SplineCount < 1 {
		return &models.InvalidRangeError{Reason: "spline_count must be a positive integer"}
	}
	return nil
}

// Series fetches and normalizes one symbol/endpoint, serving repeat runs
// from the table cache.
func (p *AnalysisPipeline) Series(ctx context.Context, fn models.SeriesFunction, symbol, interval string) (*models.NormalizedSeries, error) {
	key := fmt.Sprintf("table:%s:%s:%s", fn, symbol, interval)
	if p.cache != nil {
		if series, ok := p.cache.Get(ctx, key); ok {
			return series, nil
		}
	}

	start := time.Now()
	raw, err := p.source.Fetch(ctx, models.QuoteRequest{Function: fn, Symbol: symbol, Interval: interval})
	if err != nil {
		p.metrics.RecordError("fetch")
		return nil, err
	}
	p.metrics.RecordFetch(string(fn), symbol)

	series, err := timeseries.Normalize(raw)
	if err != nil {
		p.metrics.RecordError("normalize")
		return nil, err
	}
	p.metrics.RecordLatency("normalize", time.Since(start).Seconds())
	p.metrics.RecordRows(symbol, series.Table.Len())

	if p.cache != nil {
		p.cache.Set(ctx, key, series)
	}
	return series, nil
}

// Run executes filter -> fit -> predict -> residuals over the normalized
// table and assembles the chart payload. Filtering to zero rows is not an
// error here; it surfaces as InsufficientDataError at the fit stage.
func (p *AnalysisPipeline) Run(ctx context.Context, params RunParams) (*models.AnalysisResult, error) {
	if err := p.validate(params); err != nil {
		return nil, err
	}

	series, err := p.Series(ctx, params.Function, params.Symbol, params.Interval)
	if err != nil {
		return nil, err
	}

	view, err := timeseries.Filter(series.Table, params.Window)
	if err != nil {
		p.metrics.RecordError("filter")
		return nil, err
	}

	fitStart := time.Now()
	fit, err := regression.Fit(view, params.SplineCount)
	if err != nil {
		p.metrics.RecordError("fit")
		return nil, err
	}
	p.metrics.RecordLatency("fit", time.Since(fitStart).Seconds())

	records, stats, err := regression.Residuals(view, fit.Grid)
	if err != nil {
		p.metrics.RecordError("residuals")
		return nil, err
	}

	points := make([]models.AnnotatedPoint, len(view.Points))
	for i, pt := range view.Points {
		points[i] = models.AnnotatedPoint{
			TimeSeriesPoint: pt,
			Predicted:       records[i].PredictedClose,
			Residual:        records[i].Residual,
		}
	}

	return &models.AnalysisResult{
		Meta:      series.Meta,
		Points:    points,
		Grid:      fit.Grid,
		Residuals: records,
		Fit: models.FitSummary{
			SplineCount:  params.SplineCount,
			Coefficients: len(fit.Coefficients),
			RSquared:     fit.RSquared,
		},
		Stats: stats,
	}, nil
}
