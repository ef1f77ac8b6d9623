package models

// SeriesFunction identifies a quote-service endpoint kind.
type SeriesFunction string

const (
	FuncDaily           SeriesFunction = "TIME_SERIES_DAILY"
	FuncDailyAdjusted   SeriesFunction = "TIME_SERIES_DAILY_ADJUSTED"
	FuncWeekly          SeriesFunction = "TIME_SERIES_WEEKLY"
	FuncWeeklyAdjusted  SeriesFunction = "TIME_SERIES_WEEKLY_ADJUSTED"
	FuncMonthly         SeriesFunction = "TIME_SERIES_MONTHLY"
	FuncMonthlyAdjusted SeriesFunction = "TIME_SERIES_MONTHLY_ADJUSTED"
	FuncIntraday        SeriesFunction = "TIME_SERIES_INTRADAY"
)

// Valid reports whether f is a supported endpoint kind.
func (f SeriesFunction) Valid() bool {
	switch f {
	case FuncDaily, FuncDailyAdjusted, FuncWeekly, FuncWeeklyAdjusted,
		FuncMonthly, FuncMonthlyAdjusted, FuncIntraday:
		return true
	}
	return false
}

// NeedsInterval reports whether the endpoint requires an interval parameter.
func (f SeriesFunction) NeedsInterval() bool { return f == FuncIntraday }

// QuoteRequest is the explicit, value-typed request handed to the quote
// source. There is no shared mutable query state; every fetch builds its
// own request.
type QuoteRequest struct {
	Function SeriesFunction
	Symbol   string
	Interval string // required for intraday endpoints only
}

// RawQuoteResponse is the vendor payload reduced to its two top-level
// entries: a metadata mapping and a series mapping keyed by timestamp
// strings, both using ordinal-prefixed labels ("1. open", "2. Symbol").
type RawQuoteResponse struct {
	MetaData map[string]string
	Series   map[string]map[string]string
}

// MetaData is derived once per fetch from the raw metadata mapping.
//
// AuxField carries whatever occupies the 4th metadata slot verbatim. Some
// endpoints put an interval string there, others output-size or unrelated
// text; callers must not assume meaning.
type MetaData struct {
	Symbol   string            `json:"symbol"`
	AuxField string            `json:"aux_field"`
	Raw      map[string]string `json:"raw,omitempty"`
}
