package memory

import (
	"context"
	"sync"

	"github.com/hirafus/matchday/internal/domain/league"
)

// SettingsRepository holds the single league configuration record.
type SettingsRepository struct {
	mu       sync.RWMutex
	settings league.Settings
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{settings: league.DefaultSettings()}
}

func (r *SettingsRepository) Get(_ context.Context) (league.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.settings, nil
}

func (r *SettingsRepository) Set(_ context.Context, s league.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings = s

	return nil
}
