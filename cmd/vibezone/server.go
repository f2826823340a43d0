package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"vibezone/internal/app/collections"
	"vibezone/internal/app/favorites"
	"vibezone/internal/app/users"
	"vibezone/internal/auth"
	"vibezone/internal/catalog"
	"vibezone/internal/httpapi"
	"vibezone/internal/identity"
	"vibezone/internal/middleware"
	"vibezone/internal/moods"
	"vibezone/internal/recommend"
	"vibezone/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store) (http.Handler, error) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	selector, err := newMoodSelector(cfg, rnd)
	if err != nil {
		return nil, err
	}

	deezer := catalog.NewDeezerClient(cfg.DeezerBaseURL)
	recommender := recommend.New(selector, deezer, rnd)

	provider := identity.NewSpotifyProvider(cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.SpotifyRedirectURL)
	tokens := auth.NewTokenManager(cfg.SessionSecret)

	userSvc := users.New(dataStore, provider, tokens)
	favoritesSvc := favorites.New(dataStore)
	collectionsSvc := collections.New(dataStore)

	handler := httpapi.New(userSvc, favoritesSvc, collectionsSvc, recommender, cfg.StationsFile).Routes()

	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)

	return handler, nil
}

func newMoodSelector(cfg Config, rnd *rand.Rand) (*moods.Selector, error) {
	if cfg.MoodKeywordsFile == "" {
		return moods.NewSelector(rnd), nil
	}
	selector, err := moods.NewSelectorFromFile(cfg.MoodKeywordsFile, rnd)
	if err != nil {
		return nil, fmt.Errorf("load mood keywords: %w", err)
	}
	return selector, nil
}
