package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/playperu/stationhunt/internal/hunt"
)

func (s *Store) ReadSingleton(ctx context.Context, key string, dest any) error {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM settings WHERE id = ?`, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return hunt.ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (s *Store) UpsertSingleton(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (id, data) VALUES (?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		key, string(data),
	)
	return err
}

func (s *Store) CreateSingleton(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (id, data) VALUES (?, jsonb(?))
		 ON CONFLICT(id) DO NOTHING`,
		key, string(data),
	)
	return err
}
