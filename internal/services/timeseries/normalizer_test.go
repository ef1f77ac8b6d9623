package timeseries

import (
	"errors"
	"testing"
	"time"

	"QuoteLens/internal/domain/models"
)

func dailyRecord(open, high, low, close, volume string) map[string]string {
	return map[string]string{
		"1. open":   open,
		"2. high":   high,
		"3. low":    low,
		"4. close":  close,
		"5. volume": volume,
	}
}

func adjustedRecord(close, adjusted string) map[string]string {
	return map[string]string{
		"1. open":              "1.0",
		"2. high":              "2.0",
		"3. low":               "0.5",
		"4. close":             close,
		"5. adjusted close":    adjusted,
		"6. volume":            "1000",
		"7. dividend amount":   "0.0",
		"8. split coefficient": "1.0",
	}
}

func metaDaily(symbol string) map[string]string {
	return map[string]string{
		"1. Information":    "Daily Prices (open, high, low, close) and Volumes",
		"2. Symbol":         symbol,
		"3. Last Refreshed": "2024-03-01",
		"4. Output Size":    "Compact",
		"5. Time Zone":      "US/Eastern",
	}
}

func TestNormalizeSortsAscendingAndCountsRows(t *testing.T) {
	raw := &models.RawQuoteResponse{
		MetaData: metaDaily("IBM"),
		Series: map[string]map[string]string{
			// vendor serves newest-first
			"2024-03-01": dailyRecord("3", "3", "3", "3.5", "30"),
			"2024-02-29": dailyRecord("2", "2", "2", "2.5", "20"),
			"2024-02-28": dailyRecord("1", "1", "1", "1.5", "10"),
		},
	}
	series, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Meta.Symbol != "IBM" {
		t.Fatalf("symbol = %q", series.Meta.Symbol)
	}
	if series.Meta.AuxField != "Compact" {
		t.Fatalf("aux_field = %q", series.Meta.AuxField)
	}
	if series.Table.Len() != 3 {
		t.Fatalf("rows = %d, want 3", series.Table.Len())
	}
	for i := 1; i < series.Table.Len(); i++ {
		if !series.Table.Points[i].Timestamp.After(series.Table.Points[i-1].Timestamp) {
			t.Fatalf("table not strictly increasing at %d", i)
		}
	}
	if series.Table.Points[0].Close != 1.5 || series.Table.Points[2].Close != 3.5 {
		t.Fatalf("closes out of order: %+v", series.Table.Points)
	}
}

// An adjusted-close sibling label must never shadow the true close.
func TestNormalizePrefersUnadjustedClose(t *testing.T) {
	raw := &models.RawQuoteResponse{
		MetaData: metaDaily("IBM"),
		Series: map[string]map[string]string{
			"2024-01-01": adjustedRecord("10.0", "9.1"),
			"2024-01-02": adjustedRecord("12.0", "11.2"),
			"2024-01-03": adjustedRecord("11.0", "10.3"),
		},
	}
	series, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{10.0, 12.0, 11.0}
	for i, w := range want {
		if series.Table.Points[i].Close != w {
			t.Fatalf("close[%d] = %v, want %v", i, series.Table.Points[i].Close, w)
		}
	}
}

func TestNormalizeEmptySeries(t *testing.T) {
	raw := &models.RawQuoteResponse{
		MetaData: metaDaily("IBM"),
		Series:   map[string]map[string]string{},
	}
	series, err := Normalize(raw)
	if err != nil {
		t.Fatalf("empty series must normalize: %v", err)
	}
	if series.Table.Len() != 0 {
		t.Fatalf("rows = %d, want 0", series.Table.Len())
	}
}

// Endpoints without an interval concept have three metadata entries; the
// aux field stays empty and normalization must not fail.
func TestNormalizeSparseMetadata(t *testing.T) {
	raw := &models.RawQuoteResponse{
		MetaData: map[string]string{
			"1. Information":    "Weekly Prices",
			"2. Symbol":         "TSCO.LON",
			"3. Last Refreshed": "2024-03-01",
		},
		Series: map[string]map[string]string{
			"2024-03-01": dailyRecord("1", "1", "1", "1", "1"),
		},
	}
	series, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Meta.AuxField != "" {
		t.Fatalf("aux_field = %q, want empty", series.Meta.AuxField)
	}
}

func TestNormalizeParseError(t *testing.T) {
	raw := &models.RawQuoteResponse{
		MetaData: metaDaily("IBM"),
		Series: map[string]map[string]string{
			"2024-03-01": dailyRecord("1", "1", "1", "not-a-number", "1"),
		},
	}
	_, err := Normalize(raw)
	var parseErr *models.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Label != "close" {
		t.Fatalf("label = %q", parseErr.Label)
	}
}

func TestNormalizeBadTimestamp(t *testing.T) {
	raw := &models.RawQuoteResponse{
		MetaData: metaDaily("IBM"),
		Series: map[string]map[string]string{
			"03/01/2024": dailyRecord("1", "1", "1", "1", "1"),
		},
	}
	_, err := Normalize(raw)
	var parseErr *models.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestNormalizeNonFiniteField(t *testing.T) {
	raw := &models.RawQuoteResponse{
		MetaData: metaDaily("IBM"),
		Series: map[string]map[string]string{
			"2024-03-01": dailyRecord("1", "1", "1", "NaN", "1"),
		},
	}
	_, err := Normalize(raw)
	var shapeErr *models.ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeMismatchError, got %v", err)
	}
}

// Distinct series keys resolving to the same instant are rejected.
func TestNormalizeDuplicateTimestamp(t *testing.T) {
	raw := &models.RawQuoteResponse{
		MetaData: metaDaily("IBM"),
		Series: map[string]map[string]string{
			"2024-03-01":          dailyRecord("1", "1", "1", "1", "1"),
			"2024-03-01 00:00:00": dailyRecord("2", "2", "2", "2", "2"),
		},
	}
	_, err := Normalize(raw)
	var dupErr *models.DuplicateTimestampError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateTimestampError, got %v", err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !dupErr.Timestamp.Equal(want) {
		t.Fatalf("duplicate at %v, want %v", dupErr.Timestamp, want)
	}
}

func TestNormalizeIntradayTimestamps(t *testing.T) {
	raw := &models.RawQuoteResponse{
		MetaData: metaDaily("IBM"),
		Series: map[string]map[string]string{
			"2024-03-01 09:30:00": dailyRecord("1", "1", "1", "1", "1"),
			"2024-03-01 09:35:00": dailyRecord("2", "2", "2", "2", "2"),
		},
	}
	series, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Table.Len() != 2 {
		t.Fatalf("rows = %d, want 2", series.Table.Len())
	}
}
