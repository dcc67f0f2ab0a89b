package memory

import (
	"context"
	"sync"

	"github.com/hirafus/matchday/internal/domain/gameday"
)

// GamedayRepository holds the single in-progress matchday record.
type GamedayRepository struct {
	mu    sync.RWMutex
	state gameday.State
}

func NewGamedayRepository() *GamedayRepository {
	return &GamedayRepository{state: gameday.NewState()}
}

func (r *GamedayRepository) Get(_ context.Context) (gameday.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state, nil
}

func (r *GamedayRepository) Set(_ context.Context, s gameday.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = s

	return nil
}
