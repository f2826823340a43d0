package favorites

import (
	"context"

	"vibezone/internal/store"
)

// Store defines persistence operations required for favorites workflows.
type Store interface {
	AddFavorite(ctx context.Context, userID int64, fav store.Favorite) (store.Favorite, bool, error)
	DeleteFavorite(ctx context.Context, userID, favoriteID int64) error
	ListFavorites(ctx context.Context, userID int64) ([]store.Favorite, error)
}

// Service describes high level favorites operations used by HTTP handlers.
type Service interface {
	Add(ctx context.Context, userID int64, fav store.Favorite) (store.Favorite, bool, error)
	Remove(ctx context.Context, userID, favoriteID int64) error
	List(ctx context.Context, userID int64) ([]store.Favorite, error)
}

type service struct {
	store Store
}

// New constructs a favorites Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Add(ctx context.Context, userID int64, fav store.Favorite) (store.Favorite, bool, error) {
	if err := ctx.Err(); err != nil {
		return store.Favorite{}, false, err
	}
	return s.store.AddFavorite(ctx, userID, fav)
}

func (s *service) Remove(ctx context.Context, userID, favoriteID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteFavorite(ctx, userID, favoriteID)
}

func (s *service) List(ctx context.Context, userID int64) ([]store.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListFavorites(ctx, userID)
}
