package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trogers1052/stock-price-ingestor/internal/config"
	"github.com/trogers1052/stock-price-ingestor/internal/database"
	"github.com/trogers1052/stock-price-ingestor/internal/kafka"
	"github.com/trogers1052/stock-price-ingestor/internal/pipeline"
	"github.com/trogers1052/stock-price-ingestor/internal/provider"
)

const (
	connectAttempts = 5
	connectBackoff  = 5 * time.Second
	fetchCacheTTL   = 15 * time.Minute
)

func main() {
	if err := run(); err != nil {
		log.Printf("Fatal: %v", err)
		os.Exit(1)
	}
}

// run is the whole batch: load config, connect with retry, migrate, process
// each configured symbol sequentially, log a summary. Per-symbol failures
// are contained; only configuration or connection failures are fatal.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.NewWithRetry(cfg.Database.ConnectionString(), connectAttempts, connectBackoff)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return err
	}
	log.Printf("Schema checked/created")

	var fetcher provider.Fetcher = provider.NewYahooFetcher()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		fetcher = provider.NewCachedFetcher(fetcher, client, fetchCacheTTL)
		log.Printf("Fetch cache enabled (redis %s)", cfg.Redis.Addr)
	}

	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		log.Printf("Event publishing enabled (topic %s)", cfg.Kafka.Topic)
	}

	window := provider.ResolveWindow(cfg.Ingest.StartDate, cfg.Ingest.EndDate)
	log.Printf("Processing symbols: %v", cfg.Ingest.Symbols)

	pipe := pipeline.New(fetcher, db)
	var processed, failed, totalRows int
	for _, symbol := range cfg.Ingest.Symbols {
		result, err := pipe.Process(ctx, symbol, window)
		if err != nil {
			log.Printf("Error processing %s: %v; continuing with next symbol", symbol, err)
			failed++
			continue
		}
		processed++
		totalRows += result.RowsUpserted

		if producer != nil {
			if err := producer.PublishSymbolIngested(ctx, symbol, result.RowsUpserted, result.RowsFailed); err != nil {
				log.Printf("Warning: failed to publish event for %s: %v", symbol, err)
			}
		}
	}

	log.Printf("Finished: %d symbols processed, %d failed, %d rows upserted", processed, failed, totalRows)
	return nil
}
