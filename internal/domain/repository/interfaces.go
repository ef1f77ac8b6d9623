package repository

import (
	"context"

	"QuoteLens/internal/domain/models"
)

// QuoteSource issues the remote quote call. Network and auth failures are
// its concern and surface as *models.FetchError.
type QuoteSource interface {
	Fetch(ctx context.Context, req models.QuoteRequest) (*models.RawQuoteResponse, error)
}

// TableCache memoizes normalized series per (function, symbol, interval).
// Correctness never depends on it; a miss just re-runs normalization.
type TableCache interface {
	Get(ctx context.Context, key string) (*models.NormalizedSeries, bool)
	Set(ctx context.Context, key string, s *models.NormalizedSeries)
}

type Metrics interface {
	RecordFetch(function, symbol string)
	RecordError(kind string)
	RecordRows(symbol string, n int)
	RecordLatency(op string, seconds float64)
}
