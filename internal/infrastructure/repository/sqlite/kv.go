package sqlite

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
)

// KV is the snapshot table. Each league collection lives under one key as a
// JSON document.
type KV struct {
	store *Store
}

func NewKV(store *Store) *KV {
	return &KV{store: store}
}

func (r *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.store.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "get %q", key)
	}

	return value, true, nil
}

func (r *KV) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return errors.Wrapf(err, "set %q", key)
	}

	return nil
}

func (r *KV) Delete(ctx context.Context, key string) error {
	if _, err := r.store.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, "delete %q", key)
	}

	return nil
}
