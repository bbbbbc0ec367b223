package models

import "time"

// Stock maps a ticker symbol to its stable database identity.
// Created on first encounter, never mutated afterwards.
type Stock struct {
	ID     int    `json:"id"`
	Symbol string `json:"symbol"`
}

// IngestEvent is published to Kafka after each symbol finishes processing
type IngestEvent struct {
	EventType    string    `json:"event_type"`
	Symbol       string    `json:"symbol"`
	RowsUpserted int       `json:"rows_upserted"`
	RowsFailed   int       `json:"rows_failed"`
	Timestamp    time.Time `json:"timestamp"`
}
