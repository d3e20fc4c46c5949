package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"staffkeeper/internal/cryptox"
	"staffkeeper/internal/dbx"
	"staffkeeper/internal/models"
)

// Item keys inside the session_items table.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyProfile      = "profile"
)

// Store persists session items in SQLite. Values are sealed with a
// per-install key before they touch disk, so tokens are never stored
// in the clear.
type Store struct {
	db  *sql.DB
	key []byte
}

// NewStore wraps an open database handle and a sealing key.
func NewStore(db *sql.DB, key []byte) *Store {
	return &Store{db: db, key: key}
}

func (s *Store) get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var sealed []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM session_items WHERE key = ?`, key).Scan(&sealed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session item [%s]: %w", key, err)
	}
	return cryptox.Open(s.key, sealed)
}

func (s *Store) set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	sealed, err := cryptox.Seal(s.key, value)
	if err != nil {
		return fmt.Errorf("failed to seal session item [%s]: %w", key, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO session_items (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, sealed)
	if err != nil {
		return fmt.Errorf("failed to set session item [%s]: %w", key, err)
	}
	return nil
}

// Load reads the persisted session. A missing, unsealable, or otherwise
// corrupt item yields an absent session rather than an error: the worst
// case of damaged local state is having to log in again.
func (s *Store) Load(ctx context.Context) (Session, error) {
	access, err := s.get(ctx, s.db, keyAccessToken)
	if err != nil {
		return Session{}, nil
	}
	refresh, err := s.get(ctx, s.db, keyRefreshToken)
	if err != nil {
		return Session{}, nil
	}

	sess := Session{Tokens: models.TokenPair{
		AccessToken:  string(access),
		RefreshToken: string(refresh),
	}}

	raw, err := s.get(ctx, s.db, keyProfile)
	if err != nil {
		return Session{}, nil
	}
	if raw != nil {
		var user models.UserProfile
		if err := json.Unmarshal(raw, &user); err != nil {
			return Session{}, nil
		}
		sess.User = &user
	}

	return sess, nil
}

// SaveTokens persists both tokens atomically.
func (s *Store) SaveTokens(ctx context.Context, tokens models.TokenPair) error {
	return dbx.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.set(ctx, tx, keyAccessToken, []byte(tokens.AccessToken)); err != nil {
			return err
		}
		return s.set(ctx, tx, keyRefreshToken, []byte(tokens.RefreshToken))
	})
}

// SaveUser persists the profile of the signed-in user.
func (s *Store) SaveUser(ctx context.Context, user *models.UserProfile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return s.set(ctx, s.db, keyProfile, raw)
}

// Clear removes all session items in a single transaction, so a
// partially cleared session can never be observed after a crash.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session_items`); err != nil {
			return fmt.Errorf("failed to clear session items: %w", err)
		}
		return nil
	})
}
