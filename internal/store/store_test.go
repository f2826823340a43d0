package store

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return New(db)
}

func seedUser(t *testing.T, st *Store, spotifyID string) User {
	t.Helper()

	user, err := st.UpsertUser(context.Background(), User{
		SpotifyID:   spotifyID,
		DisplayName: "Test User " + spotifyID,
		Email:       spotifyID + "@example.com",
	})
	if err != nil {
		t.Fatalf("seed user %q: %v", spotifyID, err)
	}
	return user
}

func seedFavorite(t *testing.T, st *Store, userID int64, title, artist string) Favorite {
	t.Helper()

	fav, created, err := st.AddFavorite(context.Background(), userID, Favorite{
		SongTitle:  title,
		ArtistName: artist,
		CoverURL:   "https://example.com/cover.jpg",
		Mood:       "happy",
	})
	if err != nil {
		t.Fatalf("seed favorite %q: %v", title, err)
	}
	if !created {
		t.Fatalf("seed favorite %q: expected a fresh row", title)
	}
	return fav
}
