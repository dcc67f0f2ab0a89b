package gameday

import "context"

// Repository holds the single in-progress matchday state.
type Repository interface {
	Get(ctx context.Context) (State, error)
	Set(ctx context.Context, s State) error
}
