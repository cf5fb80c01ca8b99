package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Preference keys.
const (
	PrefPlayerName = "player_name"
	PrefAvatar     = "avatar"
	PrefClientID   = "client_id"
)

// SavePreference upserts a preference value.
func (s *Store) SavePreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return nil
}

// Preference returns the stored value for key, or "" when unset.
func (s *Store) Preference(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read preference %s: %w", key, err)
	}
	return value, nil
}

// ClientID returns the stable per-install identifier, minting and
// persisting one on first use.
func (s *Store) ClientID(ctx context.Context) (string, error) {
	id, err := s.Preference(ctx, PrefClientID)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err := s.SavePreference(ctx, PrefClientID, id); err != nil {
		return "", err
	}
	return id, nil
}
