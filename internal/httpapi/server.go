// Package httpapi wires the HTTP surface to the underlying services.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vibezone/internal/app/users"
	"vibezone/internal/logging"
	"vibezone/internal/recommend"
	"vibezone/internal/store"
)

// sessionCookie carries the session token for browser clients; API clients
// may send it as a bearer token instead.
const sessionCookie = "vibezone_session"

// stateCookie carries the OAuth state between login and callback.
const stateCookie = "vibezone_oauth_state"

// UserService captures identity and account operations needed by handlers.
type UserService interface {
	AuthURL(state string) string
	CompleteLogin(ctx context.Context, code string) (string, error)
	Identify(ctx context.Context, token string) (int64, error)
	Profile(ctx context.Context, userID int64) (users.Profile, error)
	Logout(ctx context.Context, token string) error
	DeleteProfile(ctx context.Context, userID int64, token string) error
}

// FavoritesService coordinates favoriting workflows.
type FavoritesService interface {
	Add(ctx context.Context, userID int64, fav store.Favorite) (store.Favorite, bool, error)
	Remove(ctx context.Context, userID, favoriteID int64) error
	List(ctx context.Context, userID int64) ([]store.Favorite, error)
}

// CollectionsService coordinates collection workflows.
type CollectionsService interface {
	Create(ctx context.Context, userID int64, name string) (store.Collection, error)
	Delete(ctx context.Context, userID, collectionID int64) error
	AddItem(ctx context.Context, userID, collectionID, favoriteID int64) error
	RemoveItem(ctx context.Context, userID, collectionID, favoriteID int64) error
	List(ctx context.Context, userID int64) ([]store.CollectionWithItems, error)
}

// Recommender produces mood-based track recommendations.
type Recommender interface {
	Recommend(ctx context.Context, mood string) ([]recommend.Track, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users        UserService
	favorites    FavoritesService
	collections  CollectionsService
	recommender  Recommender
	stationsPath string
}

// New configures a Server with the given services. stationsPath may be
// empty when no station data is deployed.
func New(users UserService, favorites FavoritesService, collections CollectionsService, recommender Recommender, stationsPath string) *Server {
	return &Server{
		users:        users,
		favorites:    favorites,
		collections:  collections,
		recommender:  recommender,
		stationsPath: stationsPath,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth flow
	mux.HandleFunc("GET /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/callback", s.handleCallback)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)

	// Recommendation
	mux.HandleFunc("POST /api/recommend", s.handleRecommend)

	// Favorites
	mux.HandleFunc("POST /api/favorite", s.handleAddFavorite)
	mux.HandleFunc("POST /api/favorite/delete/{id}", s.handleDeleteFavorite)

	// Collections
	mux.HandleFunc("POST /api/create_collection", s.handleCreateCollection)
	mux.HandleFunc("POST /api/add_to_collection", s.handleAddToCollection)
	mux.HandleFunc("POST /api/remove_from_collection", s.handleRemoveFromCollection)
	mux.HandleFunc("POST /api/delete_collection/{id}", s.handleDeleteCollection)

	// Profile
	mux.HandleFunc("GET /api/me", s.handleMe)
	mux.HandleFunc("POST /api/delete_profile", s.handleDeleteProfile)

	// Stations
	mux.HandleFunc("GET /api/stations", s.handleStations)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// identify resolves the request's session token to a user id. On failure it
// writes the 401/500 response and reports ok=false.
func (s *Server) identify(w http.ResponseWriter, r *http.Request) (userID int64, token string, ok bool) {
	token = extractToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "login required"})
		return 0, "", false
	}

	userID, err := s.users.Identify(r.Context(), token)
	if err != nil {
		if errors.Is(err, store.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "login required"})
		} else {
			s.internalError(w, r, err)
		}
		return 0, "", false
	}

	return userID, token, true
}

// internalError logs the cause server-side and answers with a generic
// message; internals never reach the caller.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.WithContext(r.Context()).Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "an unexpected error occurred"})
}

func extractToken(r *http.Request) string {
	if token := parseBearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
