package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-price-ingestor/internal/models"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API
type YahooFetcher struct {
	client  *http.Client
	baseURL string
}

// NewYahooFetcher creates a new Yahoo Finance fetcher
func NewYahooFetcher() *YahooFetcher {
	return &YahooFetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
	}
}

// yahooChart is the response structure from the Yahoo Finance chart API.
// Close values arrive as a nullable array; null entries mark days without a
// usable close (holidays, halts) and are dropped from the series.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDaily retrieves the daily close series for a symbol over the window.
// An empty series (no trading data for the window) returns (nil, nil).
func (f *YahooFetcher) FetchDaily(ctx context.Context, symbol string, window Window) ([]models.PricePoint, error) {
	u := f.chartURL(symbol, window)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart response for %s: %w", symbol, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		// Unknown symbol: treat as no data rather than a hard failure
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart request for %s returned status %d: %s", symbol, resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("failed to decode chart response for %s: %w", symbol, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	closes := result.Indicators.Quote[0].Close

	points := make([]models.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		day := time.Unix(ts, 0).UTC()
		points = append(points, models.PricePoint{
			Date:  time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Close: decimal.NewFromFloat(*closes[i]),
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

func (f *YahooFetcher) chartURL(symbol string, window Window) string {
	base := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d", f.baseURL, url.PathEscape(symbol))
	if window.IsPeriod() {
		return base + "&range=" + url.QueryEscape(window.Period)
	}
	// Explicit range mode: [Start, End) as unix seconds
	return fmt.Sprintf("%s&period1=%d&period2=%d", base, window.Start.Unix(), window.End.Unix())
}
