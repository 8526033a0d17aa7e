package store

import "time"

type ReloadRecord struct {
	ID           string
	Location     string
	Status       string
	TablesLoaded int
	TableNames   []string
	Error        *string
	StartedAt    time.Time
	FinishedAt   time.Time
}
