package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStore_UpsertUser(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		profile User
		wantErr bool
	}{
		{
			name: "new user",
			profile: User{
				SpotifyID:   "spotify-1",
				DisplayName: "First",
				Email:       "first@example.com",
			},
		},
		{
			name: "missing external identity",
			profile: User{
				DisplayName: "No ID",
			},
			wantErr: true,
		},
		{
			name: "missing display name",
			profile: User{
				SpotifyID: "spotify-2",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := st.UpsertUser(ctx, tt.profile)
			if tt.wantErr {
				if err == nil {
					t.Errorf("UpsertUser() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("UpsertUser() unexpected error = %v", err)
				return
			}
			if user.ID <= 0 {
				t.Errorf("UpsertUser() returned invalid id = %v", user.ID)
			}
		})
	}
}

func TestStore_UpsertUserRefreshesProfile(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	first, err := st.UpsertUser(ctx, User{
		SpotifyID:   "spotify-9",
		DisplayName: "Old Name",
		Email:       "old@example.com",
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := st.UpsertUser(ctx, User{
		SpotifyID:       "spotify-9",
		DisplayName:     "New Name",
		Email:           "new@example.com",
		ProfileImageURL: "https://example.com/avatar.jpg",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("upsert created a second row: ids %d and %d", first.ID, second.ID)
	}

	stored, err := st.UserByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if stored.DisplayName != "New Name" {
		t.Errorf("display name = %q, want %q", stored.DisplayName, "New Name")
	}
	if stored.Email != "new@example.com" {
		t.Errorf("email = %q, want %q", stored.Email, "new@example.com")
	}
	if stored.ProfileImageURL != "https://example.com/avatar.jpg" {
		t.Errorf("image url = %q", stored.ProfileImageURL)
	}
}

func TestStore_UserByIDNotFound(t *testing.T) {
	st := setupTestStore(t)

	_, err := st.UserByID(context.Background(), 12345)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UserByID() error = %v, want ErrUserNotFound", err)
	}
}

func TestStore_Sessions(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "spotify-s")

	if err := st.CreateSession(ctx, "token-live", user.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	userID, err := st.UserIDByToken(ctx, "token-live")
	if err != nil {
		t.Fatalf("UserIDByToken: %v", err)
	}
	if userID != user.ID {
		t.Errorf("resolved user = %d, want %d", userID, user.ID)
	}

	if _, err := st.UserIDByToken(ctx, "token-unknown"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("unknown token error = %v, want ErrUnauthorized", err)
	}

	if err := st.CreateSession(ctx, "token-stale", user.ID, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := st.UserIDByToken(ctx, "token-stale"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expired token error = %v, want ErrUnauthorized", err)
	}
	// The expired row is gone, so a second lookup behaves the same.
	if _, err := st.UserIDByToken(ctx, "token-stale"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expired token second lookup error = %v, want ErrUnauthorized", err)
	}

	if err := st.DeleteSession(ctx, "token-live"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := st.UserIDByToken(ctx, "token-live"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("deleted token error = %v, want ErrUnauthorized", err)
	}
	// Logout is idempotent.
	if err := st.DeleteSession(ctx, "token-live"); err != nil {
		t.Errorf("repeat DeleteSession: %v", err)
	}
}

func TestStore_DeleteUserCascades(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	user := seedUser(t, st, "spotify-del")
	other := seedUser(t, st, "spotify-keep")

	fav := seedFavorite(t, st, user.ID, "Song A", "Artist A")
	otherFav := seedFavorite(t, st, other.ID, "Song B", "Artist B")

	col, err := st.CreateCollection(ctx, user.ID, "Road Trip")
	if err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	if err := st.AddToCollection(ctx, user.ID, col.ID, fav.ID); err != nil {
		t.Fatalf("AddToCollection: %v", err)
	}
	if err := st.CreateSession(ctx, "token-del", user.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := st.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := st.UserByID(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("user still resolvable after delete: %v", err)
	}
	if _, err := st.UserIDByToken(ctx, "token-del"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("session survived user delete: %v", err)
	}

	favorites, err := st.ListFavorites(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListFavorites: %v", err)
	}
	if len(favorites) != 0 {
		t.Errorf("favorites survived user delete: %d rows", len(favorites))
	}

	collections, err := st.ListCollections(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListCollections: %v", err)
	}
	if len(collections) != 0 {
		t.Errorf("collections survived user delete: %d rows", len(collections))
	}

	// The other user's data is untouched.
	otherFavorites, err := st.ListFavorites(ctx, other.ID)
	if err != nil {
		t.Fatalf("ListFavorites(other): %v", err)
	}
	if len(otherFavorites) != 1 || otherFavorites[0].ID != otherFav.ID {
		t.Errorf("other user's favorites changed: %+v", otherFavorites)
	}

	if err := st.DeleteUser(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("repeat DeleteUser error = %v, want ErrUserNotFound", err)
	}
}
