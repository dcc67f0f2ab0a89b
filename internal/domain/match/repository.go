package match

import "context"

// Repository is the match ledger, newest entry first.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Prepend(ctx context.Context, m Match) error
	Delete(ctx context.Context, matchID string) (bool, error)
	Replace(ctx context.Context, matches []Match) error
}
