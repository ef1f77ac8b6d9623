package models

import "time"

// PredictionGrid maps each distinct view timestamp (Unix seconds) to the
// model's predicted close. Its key set equals the view's timestamp set.
type PredictionGrid map[int64]float64

// ResidualRecord is one row of the residual join: actual minus predicted
// close at the same timestamp.
type ResidualRecord struct {
	Timestamp      time.Time `json:"timestamp"`
	ActualClose    float64   `json:"actual_close"`
	PredictedClose float64   `json:"predicted_close"`
	Residual       float64   `json:"residual"`
}

// ResidualStats summarizes a residual sequence for the histogram view.
type ResidualStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// FitSummary describes the fitted model for display next to the trend
// overlay.
type FitSummary struct {
	SplineCount  int     `json:"spline_count"`
	Coefficients int     `json:"coefficients"`
	RSquared     float64 `json:"r_squared"`
}

// AnnotatedPoint is a filtered row with the fit's prediction and residual
// appended, the final form handed to chart assembly.
type AnnotatedPoint struct {
	TimeSeriesPoint
	Predicted float64 `json:"predicted"`
	Residual  float64 `json:"residual"`
}

// AnalysisResult is everything one completed pipeline run exposes: the
// residual-annotated view plus the grid and summaries the three chart
// views draw from. Nothing in it outlives the run on the server side.
type AnalysisResult struct {
	Meta      MetaData         `json:"meta"`
	Points    []AnnotatedPoint `json:"points"`
	Grid      PredictionGrid   `json:"grid"`
	Residuals []ResidualRecord `json:"residuals"`
	Fit       FitSummary       `json:"fit"`
	Stats     ResidualStats    `json:"stats"`
}
