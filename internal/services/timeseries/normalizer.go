package timeseries

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"QuoteLens/internal/domain/models"
)

// Timestamp layouts the quote service uses: date-only for daily and
// slower series, date-time for intraday.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// metadata labels are ordinal-prefixed like series labels, so symbol and
// aux are selected by leading ordinal, not by map iteration order
const (
	symbolOrdinal = "2."
	auxOrdinal    = "4."
)

// Normalize turns one raw quote response into a normalized series. Pure
// function of its input; any per-row failure aborts the whole
// normalization with no partial table.
func Normalize(raw *models.RawQuoteResponse) (*models.NormalizedSeries, error) {
	meta := extractMeta(raw.MetaData)

	points := make([]models.TimeSeriesPoint, 0, len(raw.Series))
	for key, record := range raw.Series {
		ts, err := parseTimestamp(key)
		if err != nil {
			return nil, err
		}

		byRole, err := ClassifyRecord(key, record)
		if err != nil {
			return nil, err
		}

		p := models.TimeSeriesPoint{Timestamp: ts}
		for role, value := range byRole {
			f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil, &models.ParseError{Label: role.String(), Value: value, Err: err}
			}
			switch role {
			case RoleOpen:
				p.Open = f
			case RoleHigh:
				p.High = f
			case RoleLow:
				p.Low = f
			case RoleClose:
				p.Close = f
			case RoleVolume:
				p.Volume = f
			}
		}
		if field, ok := nonFiniteField(p); ok {
			return nil, &models.ShapeMismatchError{Timestamp: key, Field: field}
		}
		points = append(points, p)
	}

	// the vendor serves series newest-first; the table is ascending
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	for i := 1; i < len(points); i++ {
		if points[i].Timestamp.Equal(points[i-1].Timestamp) {
			return nil, &models.DuplicateTimestampError{Timestamp: points[i].Timestamp}
		}
	}

	return &models.NormalizedSeries{
		Meta:  meta,
		Table: models.TimeSeriesTable{Points: points},
	}, nil
}

// extractMeta reads the 2nd metadata entry as symbol and the 4th
// verbatim as aux_field. A missing 4th entry yields an empty aux_field,
// not an error; not every endpoint has an interval concept.
func extractMeta(raw map[string]string) models.MetaData {
	meta := models.MetaData{Raw: raw}
	for label, value := range raw {
		l := strings.TrimSpace(label)
		switch {
		case strings.HasPrefix(l, symbolOrdinal):
			meta.Symbol = value
		case strings.HasPrefix(l, auxOrdinal):
			meta.AuxField = value
		}
	}
	return meta
}

func parseTimestamp(key string) (time.Time, error) {
	s := strings.TrimSpace(key)
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, &models.ParseError{Label: "timestamp", Value: key, Err: lastErr}
}

// nonFiniteField guards the all-fields-finite invariant; "NaN" and "Inf"
// parse as floats but must not enter a table.
func nonFiniteField(p models.TimeSeriesPoint) (string, bool) {
	fields := []struct {
		name  string
		value float64
	}{
		{"open", p.Open},
		{"high", p.High},
		{"low", p.Low},
		{"close", p.Close},
		{"volume", p.Volume},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return f.name, true
		}
	}
	return "", false
}
