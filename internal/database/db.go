package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps the PostgreSQL connection and exposes repository methods
type DB struct {
	conn *sql.DB
}

// New connects to PostgreSQL and verifies the connection with a ping
func New(connStr string) (*DB, error) {
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn}, nil
}

// NewWithRetry connects to PostgreSQL, retrying up to attempts times with a
// fixed delay between attempts. Exhausting the retries returns the last error.
func NewWithRetry(connStr string, attempts int, delay time.Duration) (*DB, error) {
	var lastErr error
	for i := 1; i <= attempts; i++ {
		db, err := New(connStr)
		if err == nil {
			log.Printf("Connected to PostgreSQL on attempt %d", i)
			return db, nil
		}
		lastErr = err
		log.Printf("Database connection attempt %d/%d failed: %v", i, attempts, err)
		if i < attempts {
			time.Sleep(delay)
		}
	}
	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, lastErr)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}
