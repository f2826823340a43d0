package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vibezone/internal/catalog"
	"vibezone/internal/moods"
	"vibezone/internal/recommend"
)

type recommendRequest struct {
	Mood string `json:"mood"`
}

// handleRecommend runs the recommendation pipeline for a mood. No
// authentication required; recommendations are public.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	mood := strings.TrimSpace(req.Mood)

	tracks, err := s.recommender.Recommend(r.Context(), mood)
	if err != nil {
		switch {
		case errors.Is(err, moods.ErrUnknownMood):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "please select a valid mood"})
		case errors.Is(err, recommend.ErrNoPlaylists):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no playlists found for %q, try again", mood)})
		case errors.Is(err, recommend.ErrEmptyPlaylist):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "the chosen playlist is empty"})
		case errors.Is(err, catalog.ErrUpstream):
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "the music catalog is unavailable"})
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, tracks)
}
