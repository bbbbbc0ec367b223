package database

import (
	"database/sql"
	"fmt"

	"github.com/trogers1052/stock-price-ingestor/internal/models"
)

// GetOrCreateStockID resolves a symbol to its stock id, creating the stock
// row on first encounter. Insert-first with a conflict no-op closes the
// lookup-then-insert race: concurrent runs both succeed, and the loser of
// the insert falls back to the lookup.
func (db *DB) GetOrCreateStockID(symbol string) (int, error) {
	var id int
	err := db.conn.QueryRow(`
		INSERT INTO stocks (symbol)
		VALUES ($1)
		ON CONFLICT (symbol) DO NOTHING
		RETURNING id
	`, symbol).Scan(&id)

	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to create stock %s: %w", symbol, err)
	}

	// Conflict path: the symbol already exists, look it up
	err = db.conn.QueryRow(`SELECT id FROM stocks WHERE symbol = $1`, symbol).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up stock %s: %w", symbol, err)
	}
	return id, nil
}

// GetStockBySymbol retrieves a stock by its symbol
func (db *DB) GetStockBySymbol(symbol string) (*models.Stock, error) {
	var s models.Stock
	err := db.conn.QueryRow(`SELECT id, symbol FROM stocks WHERE symbol = $1`, symbol).
		Scan(&s.ID, &s.Symbol)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("stock not found: %s", symbol)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}
	return &s, nil
}

// GetAllStocks retrieves all stocks ordered by symbol
func (db *DB) GetAllStocks() ([]*models.Stock, error) {
	rows, err := db.conn.Query(`SELECT id, symbol FROM stocks ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get stocks: %w", err)
	}
	defer rows.Close()

	var stocks []*models.Stock
	for rows.Next() {
		var s models.Stock
		if err := rows.Scan(&s.ID, &s.Symbol); err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, &s)
	}
	return stocks, nil
}
