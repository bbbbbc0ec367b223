package provider

import (
	"context"

	"github.com/trogers1052/stock-price-ingestor/internal/models"
)

// Fetcher retrieves an ordered daily price series for a symbol over a window.
// An empty series is a valid outcome, not an error.
type Fetcher interface {
	FetchDaily(ctx context.Context, symbol string, window Window) ([]models.PricePoint, error)
}
