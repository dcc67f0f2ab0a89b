package usecase

import (
	"context"
	"sync"
)

// Guard serializes every state-changing operation. The league is a
// single-user model, so one coarse lock is enough to keep each public
// operation atomic: either fully applied or, on a rejected precondition,
// untouched.
type Guard struct {
	mu sync.Mutex
}

func NewGuard() *Guard {
	return &Guard{}
}

func (g *Guard) Lock() {
	g.mu.Lock()
}

func (g *Guard) Unlock() {
	g.mu.Unlock()
}

// Snapshotter persists the authoritative in-memory state as a side effect of
// a completed mutation. Implementations are fire-and-forget: a failed save is
// logged and surfaced as a warning, never as an operation error.
type Snapshotter interface {
	ScheduleSave(ctx context.Context)
}

// NopSnapshotter is used by tests and by callers that wire persistence later.
type NopSnapshotter struct{}

func (NopSnapshotter) ScheduleSave(context.Context) {}
