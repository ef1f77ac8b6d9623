package models

// Requests for the analysis HTTP endpoints. Defined in domain for
// consistency and reuse; binding and validation happen at the transport
// boundary, the usecase re-validates ranges itself.

type AnalysisRequest struct {
	Symbol      string   `query:"symbol" json:"symbol" validate:"required"`
	Function    string   `query:"function" json:"function" default:"TIME_SERIES_DAILY" validate:"oneof=TIME_SERIES_DAILY TIME_SERIES_DAILY_ADJUSTED TIME_SERIES_WEEKLY TIME_SERIES_WEEKLY_ADJUSTED TIME_SERIES_MONTHLY TIME_SERIES_MONTHLY_ADJUSTED TIME_SERIES_INTRADAY"`
	Interval    string   `query:"interval" json:"interval" validate:"omitempty,oneof=1min 5min 15min 30min 60min"`
	From        string   `query:"from" json:"from"`
	To          string   `query:"to" json:"to"`
	PriceMin    *float64 `query:"price_min" json:"price_min"`
	PriceMax    *float64 `query:"price_max" json:"price_max"`
	SplineCount int      `query:"spline_count" json:"spline_count" default:"4" validate:"gte=1,lte=64"`
}

type SeriesRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required"`
	Function string `query:"function" json:"function" default:"TIME_SERIES_DAILY" validate:"oneof=TIME_SERIES_DAILY TIME_SERIES_DAILY_ADJUSTED TIME_SERIES_WEEKLY TIME_SERIES_WEEKLY_ADJUSTED TIME_SERIES_MONTHLY TIME_SERIES_MONTHLY_ADJUSTED TIME_SERIES_INTRADAY"`
	Interval string `query:"interval" json:"interval" validate:"omitempty,oneof=1min 5min 15min 30min 60min"`
}
