package calculator

import (
	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-price-ingestor/internal/models"
)

// Moving-average window sizes in trading days present in the fetched series.
// Non-trading gaps are not backfilled.
const (
	ShortWindow  = 5
	MediumWindow = 30
)

// Derive computes trailing simple moving averages over an ordered price
// series. The output has the same length and order as the input. An average
// is nil until the series holds a full window ending at that point; nil
// means insufficient history, never zero.
func Derive(points []models.PricePoint) []models.DerivedPoint {
	derived := make([]models.DerivedPoint, len(points))
	var shortSum, mediumSum decimal.Decimal

	for i, p := range points {
		shortSum = shortSum.Add(p.Close)
		mediumSum = mediumSum.Add(p.Close)
		if i >= ShortWindow {
			shortSum = shortSum.Sub(points[i-ShortWindow].Close)
		}
		if i >= MediumWindow {
			mediumSum = mediumSum.Sub(points[i-MediumWindow].Close)
		}

		derived[i] = models.DerivedPoint{
			Date:  p.Date,
			Price: p.Close,
		}
		if i >= ShortWindow-1 {
			ma := shortSum.Div(decimal.NewFromInt(ShortWindow))
			derived[i].MA5 = &ma
		}
		if i >= MediumWindow-1 {
			ma := mediumSum.Div(decimal.NewFromInt(MediumWindow))
			derived[i].MA30 = &ma
		}
	}
	return derived
}
