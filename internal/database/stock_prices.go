package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-price-ingestor/internal/models"
)

// UpsertStockPrice inserts the row for (stock_id, date) or overwrites its
// price and averages in place. One statement, so each row commits on its
// own: a later row's failure cannot roll back earlier rows.
func (db *DB) UpsertStockPrice(p *models.StockPrice) error {
	query := `
		INSERT INTO stock_prices (stock_id, date, price, ma_5day, ma_30day)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (stock_id, date) DO UPDATE SET
			price = EXCLUDED.price,
			ma_5day = EXCLUDED.ma_5day,
			ma_30day = EXCLUDED.ma_30day
		RETURNING id
	`
	err := db.conn.QueryRow(query,
		p.StockID, p.Date, p.Price, decimalOrNull(p.MA5), decimalOrNull(p.MA30),
	).Scan(&p.ID)

	if err != nil {
		return fmt.Errorf("failed to upsert stock price: %w", err)
	}
	return nil
}

// GetStockPrice retrieves the row for a specific stock and date
func (db *DB) GetStockPrice(stockID int, date time.Time) (*models.StockPrice, error) {
	query := `
		SELECT id, stock_id, date, price, ma_5day, ma_30day
		FROM stock_prices
		WHERE stock_id = $1 AND date = $2
	`
	p, err := scanStockPrice(db.conn.QueryRow(query, stockID, date))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("stock price not found for stock %d on %s", stockID, date.Format("2006-01-02"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock price: %w", err)
	}
	return p, nil
}

// GetStockPricesByStockID retrieves all rows for a stock ordered by date ascending
func (db *DB) GetStockPricesByStockID(stockID int) ([]*models.StockPrice, error) {
	query := `
		SELECT id, stock_id, date, price, ma_5day, ma_30day
		FROM stock_prices
		WHERE stock_id = $1
		ORDER BY date ASC
	`
	rows, err := db.conn.Query(query, stockID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock prices: %w", err)
	}
	defer rows.Close()

	var prices []*models.StockPrice
	for rows.Next() {
		p, err := scanStockPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, nil
}

// GetLatestStockPrice retrieves the most recent row for a stock
func (db *DB) GetLatestStockPrice(stockID int) (*models.StockPrice, error) {
	query := `
		SELECT id, stock_id, date, price, ma_5day, ma_30day
		FROM stock_prices
		WHERE stock_id = $1
		ORDER BY date DESC
		LIMIT 1
	`
	p, err := scanStockPrice(db.conn.QueryRow(query, stockID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no stock prices found for stock %d", stockID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest stock price: %w", err)
	}
	return p, nil
}

// CountStockPrices returns the number of persisted rows for a stock
func (db *DB) CountStockPrices(stockID int) (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM stock_prices WHERE stock_id = $1`, stockID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count stock prices: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStockPrice(row rowScanner) (*models.StockPrice, error) {
	var p models.StockPrice
	var ma5, ma30 sql.NullString

	err := row.Scan(&p.ID, &p.StockID, &p.Date, &p.Price, &ma5, &ma30)
	if err != nil {
		return nil, err
	}

	if ma5.Valid {
		d, err := decimal.NewFromString(ma5.String)
		if err != nil {
			return nil, fmt.Errorf("invalid ma_5day value %q: %w", ma5.String, err)
		}
		p.MA5 = &d
	}
	if ma30.Valid {
		d, err := decimal.NewFromString(ma30.String)
		if err != nil {
			return nil, fmt.Errorf("invalid ma_30day value %q: %w", ma30.String, err)
		}
		p.MA30 = &d
	}
	return &p, nil
}

// decimalOrNull maps a nil decimal pointer to a SQL NULL, keeping the
// absent-versus-zero distinction intact in the store
func decimalOrNull(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}
