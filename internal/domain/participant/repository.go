package participant

import "context"

// Repository holds the canonical roster. Guests live in their own registry
// because they are wiped on every game reset.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	Upsert(ctx context.Context, p Player) error
	Delete(ctx context.Context, playerID string) (bool, error)
	Replace(ctx context.Context, players []Player) error
}

// GuestRegistry holds the ephemeral per-matchday guests.
type GuestRegistry interface {
	List(ctx context.Context) ([]Guest, error)
	GetByID(ctx context.Context, guestID string) (Guest, bool, error)
	Upsert(ctx context.Context, g Guest) error
	Delete(ctx context.Context, guestID string) (bool, error)
	Replace(ctx context.Context, guests []Guest) error
}
