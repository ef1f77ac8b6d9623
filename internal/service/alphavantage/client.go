package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"QuoteLens/internal/domain/models"
	domrepo "QuoteLens/internal/domain/repository"
	"QuoteLens/internal/service/ratelimit"
	xhttp "QuoteLens/pkg/http"
)

// Client implements a QuoteSource backed by the Alpha Vantage query API.
// Each fetch builds its own value-typed request; there is no shared
// mutable query state.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
	limiter *ratelimit.Limiter
	perMin  float64
}

// New creates an Alpha Vantage quote source. requestsPerMinute caps the
// outbound call rate (the free tier throttles hard); <= 0 disables the cap.
func New(baseURL, apiKey string, timeout time.Duration, requestsPerMinute int) domrepo.QuoteSource {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: ratelimit.New(),
		perMin:  float64(requestsPerMinute),
	}
}

// Fetch issues the remote quote call and reduces the payload to its two
// top-level entries. Every failure mode surfaces as *models.FetchError.
func (c *Client) Fetch(ctx context.Context, req models.QuoteRequest) (*models.RawQuoteResponse, error) {
	if req.Symbol == "" {
		return nil, &models.FetchError{Err: errors.New("symbol required")}
	}
	if !req.Function.Valid() {
		return nil, &models.FetchError{Err: fmt.Errorf("unsupported function %q", req.Function)}
	}
	if c.perMin > 0 && !c.limiter.Allow("alphavantage", c.perMin, c.perMin/60.0) {
		return nil, &models.FetchError{Err: errors.New("vendor request quota exhausted")}
	}

	params := map[string][]string{
		"function": {string(req.Function)},
		"symbol":   {req.Symbol},
		"apikey":   {c.apiKey},
		"datatype": {"json"},
	}
	if req.Interval != "" {
		params["interval"] = []string{req.Interval}
	}

	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/query",
		QueryParams: params,
	}, &body)
	if err != nil {
		return nil, &models.FetchError{Err: err}
	}

	raw, err := decodeResponse(body)
	if err != nil {
		return nil, &models.FetchError{Err: err}
	}
	return raw, nil
}

// decodeResponse splits the vendor payload into the metadata mapping and
// the series mapping. The series key varies by endpoint ("Time Series
// (Daily)", "Weekly Time Series", ...) so it is identified by shape, not
// by name.
func decodeResponse(body []byte) (*models.RawQuoteResponse, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// vendor errors arrive as 200s with a single string entry
	for _, label := range []string{"Error Message", "Note", "Information"} {
		if msg, ok := payload[label]; ok {
			var text string
			if err := json.Unmarshal(msg, &text); err == nil {
				return nil, fmt.Errorf("vendor refused request: %s", text)
			}
		}
	}

	resp := &models.RawQuoteResponse{}
	for key, value := range payload {
		if key == "Meta Data" {
			if err := json.Unmarshal(value, &resp.MetaData); err != nil {
				return nil, fmt.Errorf("decode metadata: %w", err)
			}
			continue
		}
		var series map[string]map[string]string
		if err := json.Unmarshal(value, &series); err == nil && resp.Series == nil {
			resp.Series = series
		}
	}

	if resp.MetaData == nil {
		return nil, errors.New("response missing metadata mapping")
	}
	if resp.Series == nil {
		// an empty series entry still decodes above; reaching here
		// means no series-shaped entry existed at all
		return nil, errors.New("response missing series mapping")
	}
	return resp, nil
}
