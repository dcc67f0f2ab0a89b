package memory

import (
	"context"
	"sync"

	"github.com/hirafus/matchday/internal/domain/match"
)

// MatchRepository keeps the ledger in memory, newest entry first.
type MatchRepository struct {
	mu      sync.RWMutex
	entries []match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, len(r.entries))
	copy(out, r.entries)

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.entries {
		if m.ID == matchID {
			return m, true, nil
		}
	}

	return match.Match{}, false, nil
}

func (r *MatchRepository) Prepend(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]match.Match{m}, r.entries...)

	return nil
}

func (r *MatchRepository) Delete(_ context.Context, matchID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.entries {
		if m.ID == matchID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

func (r *MatchRepository) Replace(_ context.Context, entries []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make([]match.Match, len(entries))
	copy(r.entries, entries)

	return nil
}
