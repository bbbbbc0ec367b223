package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Ingest   IngestConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// IngestConfig holds the symbol list and the optional explicit fetch window
type IngestConfig struct {
	Symbols   []string
	StartDate string
	EndDate   string
}

// KafkaConfig holds Kafka configuration; empty Brokers disables publishing
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RedisConfig holds the optional fetch-cache configuration; empty Addr disables it
type RedisConfig struct {
	Addr string
}

// Load reads configuration from environment variables. The PostgreSQL
// credentials are required; everything else has a default or is optional.
func Load() (*Config, error) {
	db := DatabaseConfig{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     getEnv("POSTGRES_PORT", "5432"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
	for _, required := range []struct {
		name  string
		value string
	}{
		{"POSTGRES_HOST", db.Host},
		{"POSTGRES_USER", db.User},
		{"POSTGRES_PASSWORD", db.Password},
		{"POSTGRES_DB", db.DBName},
	} {
		if required.value == "" {
			return nil, fmt.Errorf("required environment variable %s not set", required.name)
		}
	}

	cfg := &Config{
		Database: db,
		Ingest: IngestConfig{
			Symbols:   ParseSymbols(getEnv("STOCK_SYMBOLS", "AAPL,MSFT")),
			StartDate: os.Getenv("FETCH_START_DATE"),
			EndDate:   os.Getenv("FETCH_END_DATE"),
		},
		Kafka: KafkaConfig{
			Topic: getEnv("KAFKA_TOPIC", "price-ingest-events"),
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
		},
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	return cfg, nil
}

// ParseSymbols normalizes a comma-separated symbol list: trimmed, uppercased,
// empties dropped. Duplicates are kept and processed as given.
func ParseSymbols(raw string) []string {
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

// ConnectionString returns the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.DBName + "?sslmode=" + d.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
