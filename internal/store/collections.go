package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// CreateCollection creates a named collection for the user. The name is
// trimmed and must be non-empty.
func (s *Store) CreateCollection(ctx context.Context, userID int64, name string) (Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Collection{}, ErrEmptyCollectionName
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (user_id, name)
		VALUES (?, ?)
	`, userID, name)
	if err != nil {
		return Collection{}, fmt.Errorf("insert collection: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Collection{}, fmt.Errorf("last insert id: %w", err)
	}

	return Collection{ID: id, UserID: userID, Name: name}, nil
}

// DeleteCollection removes a collection the user owns along with its items.
// The favorites linked through the items are untouched.
func (s *Store) DeleteCollection(ctx context.Context, userID, collectionID int64) error {
	var ownerID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM collections
		WHERE id = ?
	`, collectionID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCollectionNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup collection: %w", err)
	}
	if ownerID != userID {
		return ErrNotOwner
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collection_items WHERE collection_id = ?`, collectionID); err != nil {
		return fmt.Errorf("delete collection items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, collectionID); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// AddToCollection links a favorite into a collection. Both must exist and
// both must belong to the caller, which also rules out cross-user links.
// The duplicate-link check is read-then-write, same trade-off as
// AddFavorite.
func (s *Store) AddToCollection(ctx context.Context, userID, collectionID, favoriteID int64) error {
	var collectionOwner int64
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM collections
		WHERE id = ?
	`, collectionID).Scan(&collectionOwner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCollectionNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup collection: %w", err)
	}

	var favoriteOwner int64
	err = s.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM favorites
		WHERE id = ?
	`, favoriteID).Scan(&favoriteOwner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFavoriteNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup favorite: %w", err)
	}

	if collectionOwner != userID || favoriteOwner != userID {
		return ErrNotOwner
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM collection_items WHERE collection_id = ? AND favorite_id = ?)
	`, collectionID, favoriteID).Scan(&exists); err != nil {
		return fmt.Errorf("check collection item: %w", err)
	}
	if exists {
		return ErrAlreadyInCollection
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO collection_items (collection_id, favorite_id)
		VALUES (?, ?)
	`, collectionID, favoriteID); err != nil {
		return fmt.Errorf("insert collection item: %w", err)
	}

	return nil
}

// RemoveFromCollection unlinks a favorite from a collection the user owns.
func (s *Store) RemoveFromCollection(ctx context.Context, userID, collectionID, favoriteID int64) error {
	var itemID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM collection_items
		WHERE collection_id = ? AND favorite_id = ?
	`, collectionID, favoriteID).Scan(&itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCollectionItemNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup collection item: %w", err)
	}

	var ownerID int64
	if err := s.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM collections
		WHERE id = ?
	`, collectionID).Scan(&ownerID); err != nil {
		return fmt.Errorf("lookup collection: %w", err)
	}
	if ownerID != userID {
		return ErrNotOwner
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM collection_items WHERE id = ?`, itemID); err != nil {
		return fmt.Errorf("delete collection item: %w", err)
	}

	return nil
}

// ListCollections returns the user's collections with their linked
// favorites.
func (s *Store) ListCollections(ctx context.Context, userID int64) ([]CollectionWithItems, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name
		FROM collections
		WHERE user_id = ?
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var collections []CollectionWithItems
	for rows.Next() {
		var c CollectionWithItems
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}

	for i := range collections {
		items, err := s.listCollectionItems(ctx, collections[i].ID)
		if err != nil {
			return nil, err
		}
		collections[i].Items = items
	}

	return collections, nil
}

func (s *Store) listCollectionItems(ctx context.Context, collectionID int64) ([]Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.user_id, f.song_title, f.artist_name, f.cover_url, f.mood
		FROM collection_items ci
		JOIN favorites f ON f.id = ci.favorite_id
		WHERE ci.collection_id = ?
		ORDER BY ci.id ASC
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list collection items: %w", err)
	}
	defer rows.Close()

	var items []Favorite
	for rows.Next() {
		var fav Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.SongTitle, &fav.ArtistName, &fav.CoverURL, &fav.Mood); err != nil {
			return nil, fmt.Errorf("scan collection item: %w", err)
		}
		items = append(items, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection items: %w", err)
	}

	return items, nil
}
