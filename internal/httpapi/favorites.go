package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"vibezone/internal/store"
)

type favoriteRequest struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	CoverURL string `json:"cover_url"`
	Mood     string `json:"mood"`
}

type favoriteResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	FavoriteID int64  `json:"favorite_id,omitempty"`
}

// handleAddFavorite saves a track for the signed-in user. Saving the same
// (title, artist) twice is reported as already_favorited, not an error.
func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identify(w, r)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	fav, created, err := s.favorites.Add(r.Context(), userID, store.Favorite{
		SongTitle:  req.Title,
		ArtistName: req.Artist,
		CoverURL:   req.CoverURL,
		Mood:       req.Mood,
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidFavorite) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.internalError(w, r, err)
		return
	}

	if !created {
		writeJSON(w, http.StatusOK, favoriteResponse{
			Status:  "already_favorited",
			Message: "Track is already in favorites.",
		})
		return
	}

	writeJSON(w, http.StatusOK, favoriteResponse{
		Status:     "success",
		Message:    "Track added to favorites!",
		FavoriteID: fav.ID,
	})
}

// handleDeleteFavorite removes one of the caller's favorites and unlinks it
// from every collection.
func (s *Server) handleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identify(w, r)
	if !ok {
		return
	}

	favoriteID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid favorite id"})
		return
	}

	if err := s.favorites.Remove(r.Context(), userID, favoriteID); err != nil {
		switch {
		case errors.Is(err, store.ErrFavoriteNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "favorite not found"})
		case errors.Is(err, store.ErrNotOwner):
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "not authorized"})
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Track removed from favorites.",
	})
}
