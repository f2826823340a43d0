package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibezone/internal/auth"
	"vibezone/internal/identity"
	"vibezone/internal/store"
)

// Store describes the persistence operations required by the user service.
type Store interface {
	UpsertUser(ctx context.Context, profile store.User) (store.User, error)
	UserByID(ctx context.Context, id int64) (store.User, error)
	DeleteUser(ctx context.Context, id int64) error
	CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	UserIDByToken(ctx context.Context, token string) (int64, error)
	DeleteSession(ctx context.Context, token string) error
	ListFavorites(ctx context.Context, userID int64) ([]store.Favorite, error)
	ListCollections(ctx context.Context, userID int64) ([]store.CollectionWithItems, error)
}

// Profile is everything the profile page shows for one user.
type Profile struct {
	User        store.User                  `json:"user"`
	Favorites   []store.Favorite            `json:"favorites"`
	Collections []store.CollectionWithItems `json:"collections"`
}

// Service exposes identity and account workflows.
type Service interface {
	AuthURL(state string) string
	CompleteLogin(ctx context.Context, code string) (string, error)
	Identify(ctx context.Context, token string) (int64, error)
	Profile(ctx context.Context, userID int64) (Profile, error)
	Logout(ctx context.Context, token string) error
	DeleteProfile(ctx context.Context, userID int64, token string) error
}

type service struct {
	store    Store
	provider identity.Provider
	tokens   *auth.TokenManager
}

// New wires a Service backed by the provided store, identity provider and
// token manager.
func New(st Store, provider identity.Provider, tokens *auth.TokenManager) Service {
	return &service{store: st, provider: provider, tokens: tokens}
}

// AuthURL returns the identity provider URL to send the user to.
func (s *service) AuthURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

// CompleteLogin exchanges the authorization code, resolves the external
// profile into a local user (create-or-update), and opens a session.
func (s *service) CompleteLogin(ctx context.Context, code string) (string, error) {
	oauthToken, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}

	profile, err := s.provider.Profile(ctx, oauthToken)
	if err != nil {
		return "", fmt.Errorf("resolve profile: %w", err)
	}

	user, err := s.store.UpsertUser(ctx, store.User{
		SpotifyID:       profile.ID,
		DisplayName:     profile.DisplayName,
		Email:           profile.Email,
		ProfileImageURL: profile.ImageURL,
	})
	if err != nil {
		return "", fmt.Errorf("upsert user: %w", err)
	}

	sessionToken, expiresAt, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	if err := s.store.CreateSession(ctx, sessionToken, user.ID, expiresAt); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	return sessionToken, nil
}

// Identify resolves a session token to a local user id. The signature check
// rejects tampered or expired tokens before the session lookup; the store
// row is authoritative for revocation.
func (s *service) Identify(ctx context.Context, token string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	claimedID, err := s.tokens.Verify(token)
	if err != nil {
		return 0, store.ErrUnauthorized
	}

	userID, err := s.store.UserIDByToken(ctx, token)
	if err != nil {
		return 0, err
	}
	if userID != claimedID {
		return 0, store.ErrUnauthorized
	}

	return userID, nil
}

// Profile assembles the user record with their favorites and collections.
func (s *service) Profile(ctx context.Context, userID int64) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	favorites, err := s.store.ListFavorites(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	collections, err := s.store.ListCollections(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	return Profile{User: user, Favorites: favorites, Collections: collections}, nil
}

// Logout closes the session.
func (s *service) Logout(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSession(ctx, token)
}

// DeleteProfile removes the user with their owned data and closes the
// calling session.
func (s *service) DeleteProfile(ctx context.Context, userID int64, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}

	// DeleteUser already dropped the user's sessions; this covers a token
	// issued for a user row that no longer matches.
	return s.store.DeleteSession(ctx, token)
}
