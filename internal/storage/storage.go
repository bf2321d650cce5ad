package storage

import (
	"leavesmoke/internal/config"
	"leavesmoke/internal/domain"
)

// Storage persists and loads run reports (e.g. for the faills viewer).
type Storage interface {
	Save(meta domain.RunMeta, failures []domain.CaseFailure) error
	Load() (*domain.RunOutput, error)
	// SaveOutput writes the full output (e.g. after toggling resolved flags).
	SaveOutput(output *domain.RunOutput) error
}

// JSONStorage stores reports in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
