package api

import (
	"errors"
	"math"
	"time"

	"QuoteLens/internal/domain/models"
	"QuoteLens/internal/services/timeseries"
	"QuoteLens/internal/usecase"
	xhttp "QuoteLens/pkg/http"
	xlogger "QuoteLens/pkg/logger"
	"QuoteLens/pkg/util"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler exposes the filter/fit/residual pipeline over HTTP.
// Every parameter change from the chart client is one GET; the handler
// translates the DTO into pipeline params and domain errors into HTTP
// statuses.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	pipeline *usecase.AnalysisPipeline
}

func NewAnalysisHandler(logger *xlogger.Logger, pipeline *usecase.AnalysisPipeline) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, pipeline: pipeline}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analysis", h.Analysis)
	g.GET("/series", h.Series)
	e.GET("/healthz", h.Health)
}

func (h *AnalysisHandler) Analysis(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	params := usecase.RunParams{
		Symbol:      req.Symbol,
		Function:    models.SeriesFunction(req.Function),
		Interval:    req.Interval,
		Window:      windowFromRequest(req),
		SplineCount: req.SplineCount,
	}

	res, err := h.pipeline.Run(c.Request().Context(), params)
	if err != nil {
		h.logger.Error("analysis pipeline error", xlogger.Error(err), xlogger.String("symbol", req.Symbol))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) Series(c echo.Context) error {
	req := &models.SeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	series, err := h.pipeline.Series(c.Request().Context(), models.SeriesFunction(req.Function), req.Symbol, req.Interval)
	if err != nil {
		h.logger.Error("series fetch error", xlogger.Error(err), xlogger.String("symbol", req.Symbol))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, series)
}

func (h *AnalysisHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// windowFromRequest fills unset bounds with the widest valid interval, so
// an absent range means "everything".
func windowFromRequest(req *models.AnalysisRequest) timeseries.Range {
	w := timeseries.Range{
		From:     util.ParseTimeDefault(req.From, time.Unix(0, 0).UTC()),
		To:       util.ParseTimeDefault(req.To, time.Now().UTC()),
		PriceMin: math.Inf(-1),
		PriceMax: math.Inf(1),
	}
	if req.PriceMin != nil {
		w.PriceMin = *req.PriceMin
	}
	if req.PriceMax != nil {
		w.PriceMax = *req.PriceMax
	}
	return w
}

// toAppError maps the domain error taxonomy onto transport statuses.
// Fetch failures are the upstream's fault (502); malformed parameters are
// the client's (400/422); anything else is ours (500).
func toAppError(err error) error {
	var (
		fetchErr     *models.FetchError
		rangeErr     *models.InvalidRangeError
		insufficient *models.InsufficientDataError
		underdet     *models.UnderdeterminedModelError
		missing      *models.MissingFieldError
		shape        *models.ShapeMismatchError
		dup          *models.DuplicateTimestampError
		parse        *models.ParseError
		join         *models.JoinError
	)
	switch {
	case errors.As(err, &fetchErr):
		return xhttp.BadGatewayError(err.Error()).WithError(err)
	case errors.As(err, &rangeErr):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.As(err, &insufficient):
		return xhttp.UnprocessableError("ERR_INSUFFICIENT_DATA", err.Error()).WithError(err)
	case errors.As(err, &underdet):
		return xhttp.UnprocessableError("ERR_UNDERDETERMINED", err.Error()).WithError(err)
	case errors.As(err, &missing), errors.As(err, &shape), errors.As(err, &dup), errors.As(err, &parse):
		return xhttp.UnprocessableError("ERR_MALFORMED_SERIES", err.Error()).WithError(err)
	case errors.As(err, &join):
		return xhttp.InternalError(err.Error()).WithError(err)
	}
	return xhttp.InternalError(err.Error()).WithError(err)
}
