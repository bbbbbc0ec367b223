package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/trogers1052/stock-price-ingestor/internal/calculator"
	"github.com/trogers1052/stock-price-ingestor/internal/models"
	"github.com/trogers1052/stock-price-ingestor/internal/provider"
)

// Store is the persistence surface the pipeline needs
type Store interface {
	GetOrCreateStockID(symbol string) (int, error)
	UpsertStockPrice(p *models.StockPrice) error
}

// Result summarizes one symbol's ingestion
type Result struct {
	Symbol       string
	RowsUpserted int
	RowsFailed   int
	Skipped      bool
}

// Pipeline runs the per-symbol ingestion sequence: resolve stock id, fetch
// the series, derive averages, persist row by row
type Pipeline struct {
	fetcher provider.Fetcher
	store   Store
}

// New creates a Pipeline
func New(fetcher provider.Fetcher, store Store) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		store:   store,
	}
}

// Process ingests one symbol over the given window. A failure before
// persistence aborts the symbol and is returned to the caller; a failure on
// an individual row is logged and the remaining rows are still attempted.
// An empty provider series is a logged skip, not an error.
func (p *Pipeline) Process(ctx context.Context, symbol string, window provider.Window) (Result, error) {
	result := Result{Symbol: symbol}
	log.Printf("Processing symbol %s (window %s)", symbol, window)

	stockID, err := p.store.GetOrCreateStockID(symbol)
	if err != nil {
		return result, fmt.Errorf("failed to resolve stock id for %s: %w", symbol, err)
	}

	points, err := p.fetcher.FetchDaily(ctx, symbol, window)
	if err != nil {
		return result, fmt.Errorf("failed to fetch series for %s: %w", symbol, err)
	}
	if len(points) == 0 {
		log.Printf("Warning: no historical data for %s in window %s, skipping", symbol, window)
		result.Skipped = true
		return result, nil
	}

	for _, d := range calculator.Derive(points) {
		row := &models.StockPrice{
			StockID: stockID,
			Date:    d.Date,
			Price:   d.Price,
			MA5:     d.MA5,
			MA30:    d.MA30,
		}
		if err := p.store.UpsertStockPrice(row); err != nil {
			log.Printf("Warning: failed to persist %s on %s: %v", symbol, d.Date.Format("2006-01-02"), err)
			result.RowsFailed++
			continue
		}
		result.RowsUpserted++
	}

	log.Printf("Upserted %d rows for %s (%d failed)", result.RowsUpserted, symbol, result.RowsFailed)
	return result, nil
}
