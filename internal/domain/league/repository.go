package league

import "context"

// Repository holds the single league settings record.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Set(ctx context.Context, s Settings) error
}
