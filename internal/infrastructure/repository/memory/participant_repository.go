package memory

import (
	"context"
	"sync"

	"github.com/hirafus/matchday/internal/domain/participant"
)

// ParticipantRepository keeps the roster in memory, preserving insertion
// order so standings ties render deterministically.
type ParticipantRepository struct {
	mu    sync.RWMutex
	order []string
	index map[string]participant.Player
}

func NewParticipantRepository(players []participant.Player) *ParticipantRepository {
	r := &ParticipantRepository{index: make(map[string]participant.Player)}
	for _, p := range players {
		r.order = append(r.order, p.ID)
		r.index[p.ID] = p
	}
	return r
}

func (r *ParticipantRepository) List(_ context.Context) ([]participant.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participant.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.index[id])
	}

	return out, nil
}

func (r *ParticipantRepository) GetByID(_ context.Context, playerID string) (participant.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]

	return p, ok, nil
}

func (r *ParticipantRepository) Upsert(_ context.Context, p participant.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.index[p.ID] = p

	return nil
}

func (r *ParticipantRepository) Delete(_ context.Context, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[playerID]; !ok {
		return false, nil
	}
	delete(r.index, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return true, nil
}

func (r *ParticipantRepository) Replace(_ context.Context, players []participant.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = r.order[:0]
	r.index = make(map[string]participant.Player, len(players))
	for _, p := range players {
		r.order = append(r.order, p.ID)
		r.index[p.ID] = p
	}

	return nil
}
