package memory

import (
	"context"
	"sync"

	"github.com/hirafus/matchday/internal/domain/participant"
)

// GuestRepository keeps the per-matchday guest list in memory.
type GuestRepository struct {
	mu    sync.RWMutex
	order []string
	index map[string]participant.Guest
}

func NewGuestRepository() *GuestRepository {
	return &GuestRepository{index: make(map[string]participant.Guest)}
}

func (r *GuestRepository) List(_ context.Context) ([]participant.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participant.Guest, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.index[id])
	}

	return out, nil
}

func (r *GuestRepository) GetByID(_ context.Context, guestID string) (participant.Guest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.index[guestID]

	return g, ok, nil
}

func (r *GuestRepository) Upsert(_ context.Context, g participant.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[g.ID]; !ok {
		r.order = append(r.order, g.ID)
	}
	r.index[g.ID] = g

	return nil
}

func (r *GuestRepository) Delete(_ context.Context, guestID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[guestID]; !ok {
		return false, nil
	}
	delete(r.index, guestID)
	for i, id := range r.order {
		if id == guestID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return true, nil
}

func (r *GuestRepository) Replace(_ context.Context, guests []participant.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = r.order[:0]
	r.index = make(map[string]participant.Guest, len(guests))
	for _, g := range guests {
		r.order = append(r.order, g.ID)
		r.index[g.ID] = g
	}

	return nil
}
