package storage

import (
	"time"

	"qtb/internal/config"
	"qtb/internal/domain"
)

// Storage persists and loads session results (e.g. for the faills viewer).
type Storage interface {
	Save(results []domain.CaseResult, duration time.Duration) error
	Load() (*domain.SessionOutput, error)
	// SaveOutput writes the full output (e.g. after viewer updates).
	SaveOutput(output *domain.SessionOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
