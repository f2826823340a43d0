// Package store provides SQLite-backed persistence for users, sessions,
// favorites and collections.
package store

import (
	"database/sql"
	"errors"
)

var (
	// ErrUnauthorized indicates an invalid, expired or missing session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound indicates no user matches the identifier.
	ErrUserNotFound = errors.New("user not found")
	// ErrFavoriteNotFound indicates no favorite matches the identifier.
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrCollectionNotFound indicates no collection matches the identifier.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrCollectionItemNotFound indicates the favorite is not in the collection.
	ErrCollectionItemNotFound = errors.New("collection item not found")
	// ErrNotOwner indicates the caller does not own the target resource.
	ErrNotOwner = errors.New("not the owner")
	// ErrAlreadyInCollection indicates the favorite is already linked.
	ErrAlreadyInCollection = errors.New("favorite already in this collection")
	// ErrEmptyCollectionName indicates a blank collection name.
	ErrEmptyCollectionName = errors.New("collection name is required")
	// ErrInvalidFavorite indicates a favorite with missing required fields.
	ErrInvalidFavorite = errors.New("title, artist, cover and mood are required")
)

// User is the local identity anchor for an external account.
type User struct {
	ID              int64  `json:"id"`
	SpotifyID       string `json:"spotify_id"`
	DisplayName     string `json:"display_name"`
	Email           string `json:"email,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// Favorite is a track a user saved, tagged with the mood it was found under.
type Favorite struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	SongTitle  string `json:"song_title"`
	ArtistName string `json:"artist_name"`
	CoverURL   string `json:"cover_url"`
	Mood       string `json:"mood"`
}

// Collection is a named, user-owned grouping of favorites.
type Collection struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// CollectionWithItems is a collection together with the favorites it links.
type CollectionWithItems struct {
	Collection
	Items []Favorite `json:"items"`
}

// Store provides persistence backed by SQLite.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
