package collections

import (
	"context"

	"vibezone/internal/store"
)

// Store defines persistence operations required for collection workflows.
type Store interface {
	CreateCollection(ctx context.Context, userID int64, name string) (store.Collection, error)
	DeleteCollection(ctx context.Context, userID, collectionID int64) error
	AddToCollection(ctx context.Context, userID, collectionID, favoriteID int64) error
	RemoveFromCollection(ctx context.Context, userID, collectionID, favoriteID int64) error
	ListCollections(ctx context.Context, userID int64) ([]store.CollectionWithItems, error)
}

// Service coordinates collection operations for HTTP handlers.
type Service interface {
	Create(ctx context.Context, userID int64, name string) (store.Collection, error)
	Delete(ctx context.Context, userID, collectionID int64) error
	AddItem(ctx context.Context, userID, collectionID, favoriteID int64) error
	RemoveItem(ctx context.Context, userID, collectionID, favoriteID int64) error
	List(ctx context.Context, userID int64) ([]store.CollectionWithItems, error)
}

type service struct {
	store Store
}

// New constructs a collections Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Create(ctx context.Context, userID int64, name string) (store.Collection, error) {
	if err := ctx.Err(); err != nil {
		return store.Collection{}, err
	}
	return s.store.CreateCollection(ctx, userID, name)
}

func (s *service) Delete(ctx context.Context, userID, collectionID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteCollection(ctx, userID, collectionID)
}

func (s *service) AddItem(ctx context.Context, userID, collectionID, favoriteID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.AddToCollection(ctx, userID, collectionID, favoriteID)
}

func (s *service) RemoveItem(ctx context.Context, userID, collectionID, favoriteID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RemoveFromCollection(ctx, userID, collectionID, favoriteID)
}

func (s *service) List(ctx context.Context, userID int64) ([]store.CollectionWithItems, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListCollections(ctx, userID)
}
