package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(handler http.HandlerFunc) (*YahooFetcher, *httptest.Server) {
	server := httptest.NewServer(handler)
	fetcher := NewYahooFetcher()
	fetcher.baseURL = server.URL
	return fetcher, server
}

func chartJSON(timestamps []int64, closes []string) string {
	ts := ""
	for i, t := range timestamps {
		if i > 0 {
			ts += ","
		}
		ts += fmt.Sprintf("%d", t)
	}
	cl := ""
	for i, c := range closes {
		if i > 0 {
			cl += ","
		}
		cl += c
	}
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"timestamp": [%s],
				"indicators": {"quote": [{"close": [%s]}]}
			}],
			"error": null
		}
	}`, ts, cl)
}

func TestYahooFetcher(t *testing.T) {
	ctx := context.Background()
	window := Window{Period: "3mo"}

	t.Run("parses an ordered daily series", func(t *testing.T) {
		day1 := time.Date(2026, 1, 5, 14, 30, 0, 0, time.UTC).Unix()
		day2 := time.Date(2026, 1, 6, 14, 30, 0, 0, time.UTC).Unix()
		fetcher, server := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, chartJSON([]int64{day1, day2}, []string{"101.5", "102.25"}))
		})
		defer server.Close()

		points, err := fetcher.FetchDaily(ctx, "AAPL", window)
		require.NoError(t, err)
		require.Len(t, points, 2)

		assert.True(t, points[0].Date.Equal(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)))
		assert.True(t, points[0].Close.Equal(decimal.NewFromFloat(101.5)))
		assert.True(t, points[1].Date.Equal(time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)))
		assert.True(t, points[1].Close.Equal(decimal.NewFromFloat(102.25)))
	})

	t.Run("null closes exclude the row entirely", func(t *testing.T) {
		day1 := time.Date(2026, 1, 5, 14, 30, 0, 0, time.UTC).Unix()
		day2 := time.Date(2026, 1, 6, 14, 30, 0, 0, time.UTC).Unix()
		day3 := time.Date(2026, 1, 7, 14, 30, 0, 0, time.UTC).Unix()
		fetcher, server := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, chartJSON([]int64{day1, day2, day3}, []string{"101.5", "null", "103.0"}))
		})
		defer server.Close()

		points, err := fetcher.FetchDaily(ctx, "AAPL", window)
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.True(t, points[0].Date.Equal(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)))
		assert.True(t, points[1].Date.Equal(time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		fetcher, server := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
		})
		defer server.Close()

		points, err := fetcher.FetchDaily(ctx, "MSFT", window)
		require.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("not found is treated as no data", func(t *testing.T) {
		fetcher, server := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer server.Close()

		points, err := fetcher.FetchDaily(ctx, "UNKNOWN", window)
		require.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("API error surfaces as an error", func(t *testing.T) {
		fetcher, server := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart": {"result": null, "error": {"code": "Bad Request", "description": "invalid range"}}}`)
		})
		defer server.Close()

		_, err := fetcher.FetchDaily(ctx, "AAPL", window)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid range")
	})

	t.Run("server error surfaces as an error", func(t *testing.T) {
		fetcher, server := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer server.Close()

		_, err := fetcher.FetchDaily(ctx, "AAPL", window)
		require.Error(t, err)
	})

	t.Run("period mode queries a relative range", func(t *testing.T) {
		var gotQuery string
		fetcher, server := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
		})
		defer server.Close()

		_, err := fetcher.FetchDaily(ctx, "AAPL", Window{Period: "3mo"})
		require.NoError(t, err)
		assert.Contains(t, gotQuery, "range=3mo")
		assert.Contains(t, gotQuery, "interval=1d")
	})

	t.Run("range mode queries explicit unix bounds", func(t *testing.T) {
		var gotQuery string
		fetcher, server := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
		})
		defer server.Close()

		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err := fetcher.FetchDaily(ctx, "AAPL", Window{Start: start, End: end})
		require.NoError(t, err)
		assert.Contains(t, gotQuery, fmt.Sprintf("period1=%d", start.Unix()))
		assert.Contains(t, gotQuery, fmt.Sprintf("period2=%d", end.Unix()))
	})
}
