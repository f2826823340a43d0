package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UpsertUser creates or refreshes the local user for an external identity.
// The profile is re-applied on every successful identity resolution, so
// display name, email and image always track the provider.
func (s *Store) UpsertUser(ctx context.Context, profile User) (User, error) {
	if profile.SpotifyID == "" {
		return User{}, fmt.Errorf("external identity is required")
	}
	if profile.DisplayName == "" {
		return User{}, fmt.Errorf("display name is required")
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM users
		WHERE spotify_id = ?
	`, profile.SpotifyID).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO users (spotify_id, display_name, email, profile_image_url)
			VALUES (?, ?, ?, ?)
		`, profile.SpotifyID, profile.DisplayName, nullIfEmpty(profile.Email), nullIfEmpty(profile.ProfileImageURL))
		if err != nil {
			return User{}, fmt.Errorf("insert user: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return User{}, fmt.Errorf("last insert id: %w", err)
		}
	case err != nil:
		return User{}, fmt.Errorf("lookup user: %w", err)
	default:
		if _, err := s.db.ExecContext(ctx, `
			UPDATE users
			SET display_name = ?, email = ?, profile_image_url = ?
			WHERE id = ?
		`, profile.DisplayName, nullIfEmpty(profile.Email), nullIfEmpty(profile.ProfileImageURL), id); err != nil {
			return User{}, fmt.Errorf("update user: %w", err)
		}
	}

	profile.ID = id
	return profile, nil
}

// UserByID returns the user with the given local id.
func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	var (
		user     User
		email    sql.NullString
		imageURL sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, spotify_id, display_name, email, profile_image_url
		FROM users
		WHERE id = ?
	`, id).Scan(&user.ID, &user.SpotifyID, &user.DisplayName, &email, &imageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	user.Email = email.String
	user.ProfileImageURL = imageURL.String
	return user, nil
}

// DeleteUser removes the user and everything they own: sessions, favorites,
// collections, and every collection item hanging off either. The cascade is
// explicit so no orphaned rows can survive regardless of schema settings.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM collection_items
		WHERE collection_id IN (SELECT id FROM collections WHERE user_id = ?)
		   OR favorite_id IN (SELECT id FROM favorites WHERE user_id = ?)
	`, id, id); err != nil {
		return fmt.Errorf("delete collection items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("delete collections: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("delete favorites: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// CreateSession records a session token for the user.
func (s *Store) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES (?, ?, ?)
	`, token, userID, expiresAt.UTC()); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// UserIDByToken resolves a session token to a local user id. Unknown and
// expired tokens both come back as ErrUnauthorized; expired rows are
// removed on the way out.
func (s *Store) UserIDByToken(ctx context.Context, token string) (int64, error) {
	var (
		userID    int64
		expiresAt time.Time
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, expires_at
		FROM sessions
		WHERE token = ?
	`, token).Scan(&userID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUnauthorized
	}
	if err != nil {
		return 0, fmt.Errorf("lookup session: %w", err)
	}

	if time.Now().After(expiresAt) {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
		return 0, ErrUnauthorized
	}

	return userID, nil
}

// DeleteSession removes a session token. Deleting an absent token is not an
// error, so logout is idempotent.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
