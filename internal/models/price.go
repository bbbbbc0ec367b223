package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one day's close for a symbol as returned by the provider
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// DerivedPoint is a PricePoint augmented with trailing moving averages.
// MA5 and MA30 are nil until the series contains enough history for the
// window; nil and zero are distinct and must not be conflated.
type DerivedPoint struct {
	Date  time.Time        `json:"date"`
	Price decimal.Decimal  `json:"price"`
	MA5   *decimal.Decimal `json:"ma_5day,omitempty"`
	MA30  *decimal.Decimal `json:"ma_30day,omitempty"`
}

// StockPrice is the persisted per-day row, unique on (stock_id, date)
type StockPrice struct {
	ID      int              `json:"id"`
	StockID int              `json:"stock_id"`
	Date    time.Time        `json:"date"`
	Price   decimal.Decimal  `json:"price"`
	MA5     *decimal.Decimal `json:"ma_5day,omitempty"`
	MA30    *decimal.Decimal `json:"ma_30day,omitempty"`
}
